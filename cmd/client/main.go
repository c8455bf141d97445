package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// renderer - turns protocol lines into readable terminal output. It keeps
// just enough of the conversation to phrase replies the way a player
// reads them.
type renderer struct {
	mu sync.Mutex

	name     string
	lastUser string
	lastRoom string
	lastMode string

	wire    *color.Color
	good    *color.Color
	bad     *color.Color
	notice  *color.Color
	heading *color.Color
}

func newRenderer() *renderer {
	return &renderer{
		wire:    color.New(color.FgHiBlack),
		good:    color.New(color.FgGreen, color.Bold),
		bad:     color.New(color.FgRed),
		notice:  color.New(color.FgYellow),
		heading: color.New(color.FgCyan, color.Bold),
	}
}

// noteOutbound - remembers the context of a command so the matching
// acknowledgement can be narrated.
func (that *renderer) noteOutbound(line string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fields := strings.Split(line, ":")
	switch fields[0] {
	case "LOGIN", "REGISTER":
		if len(fields) > 1 {
			that.lastUser = fields[1]
		}
	case "CREATE":
		if len(fields) > 1 {
			that.lastRoom = fields[1]
		}
	case "JOIN":
		if len(fields) > 2 {
			that.lastRoom = fields[1]
			that.lastMode = fields[2]
		}
	case "ROOMLIST":
		if len(fields) > 1 {
			that.lastMode = fields[1]
		}
	}
}

func (that *renderer) render(line string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.wire.Println(line)

	fields := strings.Split(line, ":")
	switch fields[0] {
	case "BADAUTH":
		that.bad.Println("Error: You must be logged in to perform this action.")
	case "NOROOM":
		that.bad.Println("Error: You are not in a room.")
	case "LOGIN":
		that.renderLoginAck(fields)
	case "REGISTER":
		that.renderRegisterAck(fields)
	case "CREATE":
		that.renderCreateAck(fields)
	case "JOIN":
		that.renderJoinAck(fields)
	case "ROOMLIST":
		that.renderRoomList(fields)
	case "BEGIN":
		if len(fields) == 3 {
			that.heading.Printf("Match between %s and %s will commence, it is currently %s's turn.\n",
				fields[1], fields[2], fields[1])
		}
	case "INPROGRESS":
		if len(fields) == 3 {
			that.heading.Printf("Match between %s and %s is currently in progress, it is currently %s's turn.\n",
				fields[1], fields[2], fields[1])
		}
	case "BOARDSTATUS":
		if len(fields) == 2 {
			that.renderBoard(fields[1])
		}
	case "GAMEEND":
		that.renderGameEnd(fields)
	}
}

func (that *renderer) renderLoginAck(fields []string) {
	if len(fields) != 3 || fields[1] != "ACKSTATUS" {
		return
	}

	switch fields[2] {
	case "0":
		that.name = that.lastUser
		that.good.Printf("Welcome %s\n", that.name)
	case "1":
		that.bad.Println("Error: User not found")
	case "2":
		that.bad.Println("Error: Wrong password")
	case "3":
		that.bad.Println("Error: Invalid message format of LOGIN")
	case "4":
		that.bad.Println("Error: Account is already logged in from another client")
	}
}

func (that *renderer) renderRegisterAck(fields []string) {
	if len(fields) != 3 || fields[1] != "ACKSTATUS" {
		return
	}

	switch fields[2] {
	case "0":
		that.good.Printf("Successfully created user account %s\n", that.lastUser)
	case "1":
		that.bad.Println("Error: User already exists")
	case "2":
		that.bad.Println("Error: Invalid message format of REGISTER")
	case "3":
		that.bad.Println("Error: Username or password is too long (20 characters max)")
	}
}

func (that *renderer) renderCreateAck(fields []string) {
	if len(fields) != 3 || fields[1] != "ACKSTATUS" {
		return
	}

	switch fields[2] {
	case "0":
		that.good.Printf("Successfully created room %s. Waiting for other players to join.\n", that.lastRoom)
	case "1":
		that.bad.Println("Error: Room name is invalid.")
	case "2":
		that.bad.Println("Error: Room already exists.")
	case "3":
		that.bad.Println("Error: Maximum number of rooms reached (256).")
	case "4":
		that.bad.Println("Error: Invalid room creation format.")
	}
}

func (that *renderer) renderJoinAck(fields []string) {
	if len(fields) != 3 || fields[1] != "ACKSTATUS" {
		return
	}

	switch fields[2] {
	case "0":
		that.good.Printf("Successfully joined room %s as a %s\n", that.lastRoom, that.lastMode)
	case "1":
		that.bad.Printf("Error: No room named %s\n", that.lastRoom)
	case "2":
		that.bad.Printf("Error: The room %s already has 2 players\n", that.lastRoom)
	case "3":
		that.bad.Println("Error: Invalid message format of JOIN")
	}
}

func (that *renderer) renderRoomList(fields []string) {
	if len(fields) != 4 || fields[1] != "ACKSTATUS" {
		if len(fields) == 3 && fields[2] == "1" {
			that.bad.Println("Error: Please input a valid mode.")
		}
		return
	}

	if fields[2] != "0" {
		return
	}

	that.heading.Printf("Rooms available to join as %s:\n", that.lastMode)
	for _, room := range strings.Split(fields[3], ",") {
		if room == "" {
			continue
		}
		that.notice.Println(room)
	}
}

func (that *renderer) renderBoard(status string) {
	if len(status) != 9 {
		return
	}

	symbols := map[byte]string{'0': " ", '1': "X", '2': "O"}

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cell, ok := symbols[status[row*3+col]]
			if !ok {
				cell = " "
			}
			cells[col] = cell
		}

		that.notice.Printf(" %s\n", strings.Join(cells, " | "))
		if row < 2 {
			that.notice.Println("---+---+---")
		}
	}
}

func (that *renderer) renderGameEnd(fields []string) {
	if len(fields) < 3 {
		return
	}

	that.renderBoard(fields[1])

	switch fields[2] {
	case "0":
		if len(fields) != 4 {
			return
		}
		if fields[3] == that.name {
			that.good.Println("Congratulations, you won!")
		} else {
			that.notice.Printf("%s has won this game.\n", fields[3])
		}
	case "1":
		that.notice.Println("The game ended in a draw.")
	case "2":
		if len(fields) != 4 {
			return
		}
		that.notice.Printf("%s won due to the opposing player forfeiting.\n", fields[3])
	}
}

func main() {
	addr := flag.String("addr", "localhost:8020", "server address (host:port)")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to server at %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	display := newRenderer()
	display.heading.Printf("Connected to %s. Type protocol commands, e.g. REGISTER:alice:secret, or quit to leave.\n", *addr)

	done := make(chan struct{})
	go func() {
		defer close(done)

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			display.render(scanner.Text())
		}

		display.bad.Println("Server closed the connection.")
	}()

	input := bufio.NewScanner(os.Stdin)
	for input.Scan() {
		line := strings.TrimSpace(input.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			return
		}

		display.noteOutbound(line)

		if _, err = fmt.Fprintf(conn, "%s\n", line); err != nil {
			display.bad.Printf("send failed: %v\n", err)
			return
		}

		select {
		case <-done:
			return
		default:
		}
	}
}

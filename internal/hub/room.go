package hub

import "github.com/playtronix/ticline-backend/internal/game"

// Room - one match and its audience. The creator plays X and moves
// first; the second player to join plays O. Viewers receive every
// broadcast but never occupy a slot and are never removed individually.
// All access happens under the hub lock.
type Room struct {
	Name string

	XPlayer Conn
	YPlayer Conn
	XName   string
	YName   string
	Viewers map[Conn]struct{}

	Started      bool
	Board        game.Board
	CurrentTurn  Conn
	OpposingTurn Conn

	// Moves submitted before the match starts or out of turn wait
	// here, oldest first, until their owner is the side to move.
	XQueue []int
	YQueue []int
}

func newRoom(name string, creator Conn, creatorName string) *Room {
	return &Room{
		Name:        name,
		XPlayer:     creator,
		XName:       creatorName,
		Viewers:     make(map[Conn]struct{}),
		CurrentTurn: creator,
	}
}

// IsFull - reports whether both player slots are taken.
func (that *Room) IsFull() bool {
	return that.XPlayer != nil && that.YPlayer != nil
}

// AssignY - seats the second player and starts the match.
func (that *Room) AssignY(conn Conn, username string) {
	that.YPlayer = conn
	that.YName = username
	that.OpposingTurn = conn
	that.Started = true
}

func (that *Room) markOf(conn Conn) game.Mark {
	if conn == that.XPlayer {
		return game.X
	}

	return game.O
}

func (that *Room) nameOf(conn Conn) string {
	if conn == that.XPlayer {
		return that.XName
	}

	return that.YName
}

func (that *Room) opponentOf(conn Conn) Conn {
	if conn == that.XPlayer {
		return that.YPlayer
	}

	return that.XPlayer
}

func (that *Room) queueOf(conn Conn) *[]int {
	if conn == that.XPlayer {
		return &that.XQueue
	}

	return &that.YQueue
}

func (that *Room) recipients() []Conn {
	conns := make([]Conn, 0, 2+len(that.Viewers))

	if that.XPlayer != nil {
		conns = append(conns, that.XPlayer)
	}
	if that.YPlayer != nil {
		conns = append(conns, that.YPlayer)
	}
	for conn := range that.Viewers {
		conns = append(conns, conn)
	}

	return conns
}

package tcp

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	sendQueueSize = 64
	writeTimeout  = 10 * time.Second
)

type client struct {
	id   string
	conn net.Conn

	out  chan string
	done chan struct{}

	logger    *slog.Logger
	closeOnce sync.Once
}

func newClient(conn net.Conn, logger *slog.Logger) *client {
	return &client{
		id:     uuid.NewString(),
		conn:   conn,
		out:    make(chan string, sendQueueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (that *client) ID() string {
	return that.id
}

// SendLine - queues a line for delivery without ever blocking the caller.
// A client that stops reading fills its queue and gets dropped.
func (that *client) SendLine(line string) {
	select {
	case <-that.done:
	case that.out <- line:
	default:
		that.logger.Warn("send queue overflow, dropping connection", "conn", that.id)
		that.Close()
	}
}

func (that *client) writePump() {
	for {
		select {
		case line := <-that.out:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				that.Close()
				return
			}
			if _, err := fmt.Fprintf(that.conn, "%s\n", line); err != nil {
				that.Close()
				return
			}
		case <-that.done:
			return
		}
	}
}

func (that *client) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
		_ = that.conn.Close()
	})
}

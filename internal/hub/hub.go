package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/playtronix/ticline-backend/internal/protocol"
)

// Conn - the transport handle a session speaks through. SendLine must
// never block; delivery failures are the transport's problem and
// surface later as a disconnect of the failing peer.
type Conn interface {
	ID() string
	SendLine(line string)
}

// accounts - the slice of the account service the hub needs.
type accounts interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) error
}

// Hub - coordinates sessions, rooms, and matches. One mutex guards the
// session registry, the occupancy index, and the room table together;
// every inbound command mutates state inside a single critical section.
// Outbound lines are enqueued under the lock so each connection sees
// events in commit order, and written to sockets elsewhere.
type Hub struct {
	logger   *slog.Logger
	accounts accounts

	mu        sync.Mutex
	sessions  map[Conn]string   // authenticated connection -> username
	occupancy map[string]string // username -> room the user plays in
	rooms     map[string]*Room
}

func New(logger *slog.Logger, accounts accounts) *Hub {
	return &Hub{
		logger:    logger.With("component", "hub"),
		accounts:  accounts,
		sessions:  make(map[Conn]string),
		occupancy: make(map[string]string),
		rooms:     make(map[string]*Room),
	}
}

// Stats - a point-in-time snapshot for the ops endpoint.
type Stats struct {
	Sessions int `json:"sessions"`
	Rooms    int `json:"rooms"`
	Matches  int `json:"matches"`
}

func (that *Hub) Stats() Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	stats := Stats{
		Sessions: len(that.sessions),
		Rooms:    len(that.rooms),
	}

	for _, room := range that.rooms {
		if room.Started {
			stats.Matches++
		}
	}

	return stats
}

// requireSession - resolves the username bound to a connection.
// Callers hold the lock. An unauthenticated connection gets BADAUTH.
func (that *Hub) requireSession(conn Conn) (string, bool) {
	username, ok := that.sessions[conn]
	if !ok {
		conn.SendLine(protocol.MsgBadAuth)
		return "", false
	}

	return username, true
}

// broadcastRoom - enqueues one line for both players and every viewer.
func (that *Hub) broadcastRoom(room *Room, line string) {
	for _, conn := range room.recipients() {
		conn.SendLine(line)
	}
}

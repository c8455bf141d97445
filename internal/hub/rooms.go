package hub

import (
	"regexp"
	"sort"

	"github.com/playtronix/ticline-backend/internal/protocol"
)

const (
	maxRooms       = 256
	maxRoomNameLen = 20
)

var roomNameRe = regexp.MustCompile(`^[a-zA-Z0-9-_ ]+$`)

// CreateRoom - opens a new room with the requester seated as X.
func (that *Hub) CreateRoom(conn Conn, fields []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	username, ok := that.requireSession(conn)
	if !ok {
		return
	}

	if len(fields) != 2 {
		conn.SendLine(protocol.Ack(protocol.CmdCreate, protocol.CreateBadFormat))
		return
	}
	name := fields[1]

	if len(name) > maxRoomNameLen || !roomNameRe.MatchString(name) {
		conn.SendLine(protocol.Ack(protocol.CmdCreate, protocol.CreateBadName))
		return
	}

	if _, taken := that.rooms[name]; taken {
		conn.SendLine(protocol.Ack(protocol.CmdCreate, protocol.CreateNameTaken))
		return
	}

	if len(that.rooms) >= maxRooms {
		conn.SendLine(protocol.Ack(protocol.CmdCreate, protocol.CreateNoCapacity))
		return
	}

	that.rooms[name] = newRoom(name, conn, username)
	that.occupancy[username] = name

	conn.SendLine(protocol.Ack(protocol.CmdCreate, protocol.CreateOK))

	that.logger.Info("room created", "room", name, "user", username)
}

// JoinRoom - seats the requester as the O player or adds them to the
// audience. Seating the second player starts the match: both players
// and every viewer get BEGIN, then any moves X queued while waiting
// are drained.
func (that *Hub) JoinRoom(conn Conn, fields []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	username, ok := that.requireSession(conn)
	if !ok {
		return
	}

	if len(fields) != 3 || (fields[2] != protocol.ModePlayer && fields[2] != protocol.ModeViewer) {
		conn.SendLine(protocol.Ack(protocol.CmdJoin, protocol.JoinBadFormat))
		return
	}
	name, mode := fields[1], fields[2]

	room, exists := that.rooms[name]
	if !exists {
		conn.SendLine(protocol.Ack(protocol.CmdJoin, protocol.JoinNoRoom))
		return
	}

	if mode == protocol.ModeViewer {
		room.Viewers[conn] = struct{}{}
		conn.SendLine(protocol.Ack(protocol.CmdJoin, protocol.JoinOK))

		// A late viewer gets caught up on whatever already happened.
		if room.Started {
			conn.SendLine(protocol.InProgress(room.nameOf(room.CurrentTurn), room.nameOf(room.OpposingTurn)))
		}
		if !room.Board.IsEmpty() {
			conn.SendLine(protocol.BoardStatus(room.Board.String()))
		}

		return
	}

	if room.IsFull() || conn == room.XPlayer {
		conn.SendLine(protocol.Ack(protocol.CmdJoin, protocol.JoinRoomFull))
		return
	}

	room.AssignY(conn, username)
	that.occupancy[username] = name

	conn.SendLine(protocol.Ack(protocol.CmdJoin, protocol.JoinOK))
	that.broadcastRoom(room, protocol.Begin(room.XName, room.YName))

	that.logger.Info("match started", "room", name, "x", room.XName, "y", room.YName)

	that.advance(room, 0, false)
}

// RoomList - answers with the sorted room names visible in the given
// mode; PLAYER mode hides rooms with no free seat.
func (that *Hub) RoomList(conn Conn, fields []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.requireSession(conn); !ok {
		return
	}

	if len(fields) != 2 || (fields[1] != protocol.ModePlayer && fields[1] != protocol.ModeViewer) {
		conn.SendLine(protocol.Ack(protocol.CmdRoomList, protocol.RoomListBadFormat))
		return
	}
	mode := fields[1]

	names := make([]string, 0, len(that.rooms))
	for name, room := range that.rooms {
		if mode == protocol.ModePlayer && room.IsFull() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	conn.SendLine(protocol.RoomListAck(names))
}

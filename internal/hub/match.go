package hub

import (
	"strconv"

	"github.com/playtronix/ticline-backend/internal/game"
	"github.com/playtronix/ticline-backend/internal/protocol"
)

// PlaceMark - admits one move submission. The submitter never gets a
// direct reply: the move either queues silently or surfaces as a
// BOARDSTATUS / GAMEEND broadcast once applied.
func (that *Hub) PlaceMark(conn Conn, fields []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	username, ok := that.requireSession(conn)
	if !ok {
		return
	}

	roomName, playing := that.occupancy[username]
	if !playing {
		conn.SendLine(protocol.MsgNoRoom)
		return
	}
	room := that.rooms[roomName]

	cell, ok := parseCell(fields)
	if !ok {
		that.logger.Debug("dropping malformed move", "user", username, "fields", fields)
		return
	}

	// Before the match starts only the creator is seated; their moves
	// wait in the X queue until an opponent arrives.
	if !room.Started {
		if conn == room.XPlayer {
			room.XQueue = append(room.XQueue, cell)
		}
		return
	}

	if conn != room.CurrentTurn {
		queue := room.queueOf(conn)
		*queue = append(*queue, cell)
		return
	}

	that.advance(room, cell, true)
}

// parseCell - reads PLACE coordinates; both must be integers in 0..2.
func parseCell(fields []string) (int, bool) {
	if len(fields) != 3 {
		return 0, false
	}

	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, false
	}

	if x < 0 || x > 2 || y < 0 || y > 2 {
		return 0, false
	}

	return game.Index(x, y), true
}

// advance - applies moves for the side to move until nothing is left
// to play. Each pass takes the oldest buffered move of the current
// player, or the fresh submission if the buffer is empty; a buffered
// move supersedes the fresh one, which is then discarded. Cells that
// became occupied while waiting are dropped without a broadcast and
// the pass repeats. An applied move broadcasts the board, hands the
// turn over, and lets the opponent's buffer drain next.
// Callers hold the lock.
func (that *Hub) advance(room *Room, fresh int, hasFresh bool) {
	for {
		mover := room.CurrentTurn
		queue := room.queueOf(mover)

		var cell int
		switch {
		case len(*queue) > 0:
			cell = (*queue)[0]
			*queue = (*queue)[1:]
			hasFresh = false
		case hasFresh:
			cell = fresh
			hasFresh = false
		default:
			return
		}

		next, err := room.Board.Apply(cell, room.markOf(mover))
		if err != nil {
			continue // stale move, the cell was taken while it waited
		}
		room.Board = next

		if room.Board.IsFull() {
			that.endMatch(room, protocol.GameEndDraw(room.Board.String()))
			return
		}

		if _, won := room.Board.Winner(); won {
			that.endMatch(room, protocol.GameEndWin(room.Board.String(), room.nameOf(mover)))
			return
		}

		room.CurrentTurn, room.OpposingTurn = room.OpposingTurn, room.CurrentTurn
		that.broadcastRoom(room, protocol.BoardStatus(room.Board.String()))
	}
}

// Forfeit - concedes the requester's match. With no opponent seated
// there is nothing to concede and the room keeps waiting.
func (that *Hub) Forfeit(conn Conn, _ []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	username, ok := that.requireSession(conn)
	if !ok {
		return
	}

	roomName, playing := that.occupancy[username]
	if !playing {
		conn.SendLine(protocol.MsgNoRoom)
		return
	}
	room := that.rooms[roomName]

	if room.YPlayer == nil {
		return
	}

	winner := room.nameOf(room.opponentOf(conn))
	that.endMatch(room, protocol.GameEndForfeit(room.Board.String(), winner))

	that.logger.Info("match forfeited", "room", room.Name, "loser", username, "winner", winner)
}

// Disconnect - runs when a connection's read loop ends for any reason.
// A seated player forfeits their match; a waiting room dies with its
// owner. The session binding is removed last.
func (that *Hub) Disconnect(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	username, ok := that.sessions[conn]
	if !ok {
		return
	}

	if roomName, playing := that.occupancy[username]; playing {
		room := that.rooms[roomName]
		if room.YPlayer == nil {
			that.destroyRoom(room)
		} else {
			winner := room.nameOf(room.opponentOf(conn))
			that.endMatch(room, protocol.GameEndForfeit(room.Board.String(), winner))
		}
	}

	delete(that.sessions, conn)

	that.logger.Info("session closed", "user", username, "conn", conn.ID())
}

// endMatch - broadcasts the terminal line, then tears the room down.
func (that *Hub) endMatch(room *Room, line string) {
	that.broadcastRoom(room, line)
	that.destroyRoom(room)
}

// destroyRoom - removes the room and its players' occupancy entries.
// The occupancy delete is guarded: a player who moved on to another
// room keeps the newer entry.
func (that *Hub) destroyRoom(room *Room) {
	delete(that.rooms, room.Name)

	if that.occupancy[room.XName] == room.Name {
		delete(that.occupancy, room.XName)
	}
	if room.YName != "" && that.occupancy[room.YName] == room.Name {
		delete(that.occupancy, room.YName)
	}
}

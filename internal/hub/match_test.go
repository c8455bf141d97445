package hub

import (
	"testing"

	"github.com/playtronix/ticline-backend/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PlaceMark_WinningMatch(t *testing.T) {
	t.Run("Plays a full match through to a win", func(t *testing.T) {
		// Given: a started match with a viewer joining after the first move
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")

		place(h, connX, 0, 0)
		watcher := newFakeConn("conn-w")
		signUp(t, h, watcher, "carol")
		h.JoinRoom(watcher, []string{protocol.CmdJoin, "arena", protocol.ModeViewer})
		require.Equal(t, []string{
			"JOIN:ACKSTATUS:0",
			"INPROGRESS:bob:alice",
			"BOARDSTATUS:100000000",
		}, watcher.Drain())

		// When: X completes the top row while O plays elsewhere
		place(h, connY, 1, 1)
		place(h, connX, 1, 0)
		place(h, connY, 2, 2)
		place(h, connX, 2, 0)

		// Then: every applied move is broadcast and the win ends the match
		wantX := []string{
			"BOARDSTATUS:100000000",
			"BOARDSTATUS:100020000",
			"BOARDSTATUS:110020000",
			"BOARDSTATUS:110020002",
			"GAMEEND:111020002:0:alice",
		}
		assert.Equal(t, wantX, connX.Drain())
		assert.Equal(t, wantX, connY.Drain())
		assert.Equal(t, wantX[1:], watcher.Drain())

		// Then: the room is gone and both players are free again
		h.RoomList(connX, []string{protocol.CmdRoomList, protocol.ModeViewer})
		assert.Equal(t, []string{"ROOMLIST:ACKSTATUS:0:"}, connX.Drain())

		place(h, connX, 0, 1)
		assert.Equal(t, []string{"NOROOM"}, connX.Drain())

		h.CreateRoom(connY, []string{protocol.CmdCreate, "arena"})
		assert.Equal(t, []string{"CREATE:ACKSTATUS:0"}, connY.Drain())
	})
}

func TestHub_PlaceMark_DrawBeforeWin(t *testing.T) {
	t.Run("Calls a draw when the last move fills the board and completes a line", func(t *testing.T) {
		// Given: a started match
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")

		// When: the ninth move completes the X diagonal on a full board
		place(h, connX, 0, 0) // cell 0
		place(h, connY, 2, 0) // cell 2
		place(h, connX, 1, 0) // cell 1
		place(h, connY, 0, 1) // cell 3
		place(h, connX, 1, 1) // cell 4
		place(h, connY, 0, 2) // cell 6
		place(h, connX, 2, 1) // cell 5
		place(h, connY, 1, 2) // cell 7
		place(h, connX, 2, 2) // cell 8 fills the board and the diagonal

		// Then: the fullness check wins and no winner is named
		lines := connY.Drain()
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Equal(t, "BOARDSTATUS:112211220", lines[len(lines)-2])
		assert.Equal(t, "GAMEEND:112211221:1", lines[len(lines)-1])
	})
}

func TestHub_PlaceMark_Buffering(t *testing.T) {
	t.Run("Applies one queued move when the match begins", func(t *testing.T) {
		// Given: a creator who moved twice before anyone joined
		h := newTestHub()
		connX := newFakeConn("conn-x")
		signUp(t, h, connX, "alice")
		h.CreateRoom(connX, []string{protocol.CmdCreate, "arena"})
		connX.Drain()

		place(h, connX, 0, 0)
		place(h, connX, 1, 1)
		require.Empty(t, connX.Drain(), "queued moves must be silent")

		// When: the second player joins
		connY := newFakeConn("conn-y")
		signUp(t, h, connY, "bob")
		h.JoinRoom(connY, []string{protocol.CmdJoin, "arena", protocol.ModePlayer})

		// Then: only the oldest queued move is applied before O's turn
		assert.Equal(t, []string{
			"BEGIN:alice:bob",
			"BOARDSTATUS:100000000",
		}, connX.Drain())
		assert.Equal(t, []string{
			"JOIN:ACKSTATUS:0",
			"BEGIN:alice:bob",
			"BOARDSTATUS:100000000",
		}, connY.Drain())

		// When: O answers
		place(h, connY, 2, 0)

		// Then: O's move applies and X's remaining buffered move follows
		assert.Equal(t, []string{
			"BOARDSTATUS:102000000",
			"BOARDSTATUS:102010000",
		}, connX.Drain())
	})

	t.Run("Buffers an out of turn move until the turn comes around", func(t *testing.T) {
		// Given: a started match where O jumps the queue
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")

		place(h, connY, 0, 0)
		require.Empty(t, connY.Drain(), "out of turn moves must be silent")

		// When: X takes their turn
		place(h, connX, 1, 1)

		// Then: X's move and O's buffered move apply back to back
		want := []string{
			"BOARDSTATUS:000010000",
			"BOARDSTATUS:200010000",
		}
		assert.Equal(t, want, connX.Drain())
		assert.Equal(t, want, connY.Drain())
	})

	t.Run("Drops a buffered move whose cell was taken while it waited", func(t *testing.T) {
		// Given: O buffered the exact cell X is about to take
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")
		place(h, connY, 1, 0)

		// When: X takes that cell
		place(h, connX, 1, 0)

		// Then: only X's move is broadcast and the stale entry vanishes
		assert.Equal(t, []string{"BOARDSTATUS:010000000"}, connX.Drain())

		// When: O moves somewhere free
		place(h, connY, 0, 0)

		// Then: it is still O's turn and the move applies
		assert.Equal(t, []string{"BOARDSTATUS:210000000"}, connX.Drain())
	})

	t.Run("Ignores an in-turn move onto an occupied cell", func(t *testing.T) {
		// Given: X already took the corner
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")
		place(h, connX, 0, 0)
		connX.Drain()
		connY.Drain()

		// When: O tries the same corner on their own turn
		place(h, connY, 0, 0)

		// Then: nothing is broadcast and the turn does not change hands
		assert.Empty(t, connX.Drain())
		assert.Empty(t, connY.Drain())

		// When: O picks a free cell instead
		place(h, connY, 1, 0)

		// Then: the move applies normally
		assert.Equal(t, []string{"BOARDSTATUS:120000000"}, connX.Drain())
	})

	t.Run("Ignores malformed or out of range coordinates", func(t *testing.T) {
		// Given: a started match
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")

		// When: garbage coordinates arrive from the side to move
		h.PlaceMark(connX, []string{protocol.CmdPlace, "a", "b"})
		h.PlaceMark(connX, []string{protocol.CmdPlace, "5", "5"})
		h.PlaceMark(connX, []string{protocol.CmdPlace, "1"})

		// Then: they are dropped without a reply or a state change
		assert.Empty(t, connX.Drain())
		assert.Empty(t, connY.Drain())

		// When: a well-formed move follows
		place(h, connX, 0, 0)

		// Then: it applies to an untouched board
		assert.Equal(t, []string{"BOARDSTATUS:100000000"}, connX.Drain())
	})
}

func TestHub_Forfeit(t *testing.T) {
	t.Run("Awards the match to the opponent", func(t *testing.T) {
		// Given: a running match with a viewer
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")
		watcher := newFakeConn("conn-w")
		signUp(t, h, watcher, "carol")
		h.JoinRoom(watcher, []string{protocol.CmdJoin, "arena", protocol.ModeViewer})
		watcher.Drain()

		place(h, connX, 0, 0)
		connX.Drain()
		connY.Drain()
		watcher.Drain()

		// When: O concedes
		h.Forfeit(connY, []string{protocol.CmdForfeit})

		// Then: everyone hears the forfeit with X as the winner
		want := []string{"GAMEEND:100000000:2:alice"}
		assert.Equal(t, want, connX.Drain())
		assert.Equal(t, want, connY.Drain())
		assert.Equal(t, want, watcher.Drain())

		// Then: both players may open new rooms immediately
		h.CreateRoom(connX, []string{protocol.CmdCreate, "rematch"})
		assert.Equal(t, []string{"CREATE:ACKSTATUS:0"}, connX.Drain())
		h.CreateRoom(connY, []string{protocol.CmdCreate, "practice"})
		assert.Equal(t, []string{"CREATE:ACKSTATUS:0"}, connY.Drain())
	})

	t.Run("Does nothing while the room is still waiting for an opponent", func(t *testing.T) {
		// Given: a waiting room
		h := newTestHub()
		conn := newFakeConn("conn-1")
		signUp(t, h, conn, "alice")
		h.CreateRoom(conn, []string{protocol.CmdCreate, "arena"})
		conn.Drain()

		// When: the owner forfeits with nobody to concede to
		h.Forfeit(conn, []string{protocol.CmdForfeit})

		// Then: there is no reply and the room survives
		assert.Empty(t, conn.Drain())
		h.RoomList(conn, []string{protocol.CmdRoomList, protocol.ModeViewer})
		assert.Equal(t, []string{"ROOMLIST:ACKSTATUS:0:arena"}, conn.Drain())
	})

	t.Run("Answers NOROOM for a player without a room", func(t *testing.T) {
		// Given: a logged-in user without a room
		h := newTestHub()
		conn := newFakeConn("conn-1")
		signUp(t, h, conn, "alice")

		// When: they forfeit and then try to move
		h.Forfeit(conn, []string{protocol.CmdForfeit})
		place(h, conn, 0, 0)

		// Then: both answers are NOROOM
		assert.Equal(t, []string{"NOROOM", "NOROOM"}, conn.Drain())
	})

	t.Run("Requires a session", func(t *testing.T) {
		// Given: a connection that never logged in
		h := newTestHub()
		conn := newFakeConn("conn-1")

		// When: it forfeits and then moves
		h.Forfeit(conn, []string{protocol.CmdForfeit})
		place(h, conn, 0, 0)

		// Then: both answers are BADAUTH
		assert.Equal(t, []string{"BADAUTH", "BADAUTH"}, conn.Drain())
	})
}

func TestHub_Disconnect(t *testing.T) {
	t.Run("Forfeits a running match for the leaving player", func(t *testing.T) {
		// Given: a running match
		h := newTestHub()
		connX, connY := startMatch(t, h, "arena")

		// When: X's connection goes away
		h.Disconnect(connX)

		// Then: O wins by forfeit and is free to move on
		assert.Equal(t, []string{"GAMEEND:000000000:2:bob"}, connY.Drain())
		h.CreateRoom(connY, []string{protocol.CmdCreate, "next"})
		assert.Equal(t, []string{"CREATE:ACKSTATUS:0"}, connY.Drain())
	})

	t.Run("Destroys a waiting room when its owner leaves", func(t *testing.T) {
		// Given: a waiting room with a viewer
		h := newTestHub()
		conn := newFakeConn("conn-1")
		signUp(t, h, conn, "alice")
		h.CreateRoom(conn, []string{protocol.CmdCreate, "arena"})
		conn.Drain()

		watcher := newFakeConn("conn-w")
		signUp(t, h, watcher, "carol")
		h.JoinRoom(watcher, []string{protocol.CmdJoin, "arena", protocol.ModeViewer})
		watcher.Drain()

		// When: the owner disconnects before anyone joins
		h.Disconnect(conn)

		// Then: the room is gone and the viewer heard nothing
		assert.Empty(t, watcher.Drain())
		h.RoomList(watcher, []string{protocol.CmdRoomList, protocol.ModeViewer})
		assert.Equal(t, []string{"ROOMLIST:ACKSTATUS:0:"}, watcher.Drain())
	})

	t.Run("Is a no-op for a connection that never authenticated", func(t *testing.T) {
		// Given: a hub and a stranger
		h := newTestHub()
		conn := newFakeConn("conn-1")

		// When: the stranger disconnects
		h.Disconnect(conn)

		// Then: nothing happens
		assert.Empty(t, conn.Drain())
		assert.Equal(t, Stats{}, h.Stats())
	})
}

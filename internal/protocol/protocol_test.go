package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	t.Run("Splits a command line on colons", func(t *testing.T) {
		// Given: a login line with surrounding whitespace
		line := " LOGIN:alice:secret\r"

		// When: the line is split
		fields := Fields(line)

		// Then: the command word and both arguments come back clean
		assert.Equal(t, []string{"LOGIN", "alice", "secret"}, fields)
	})

	t.Run("Keeps empty fields so arity checks can see them", func(t *testing.T) {
		// Given: a login line with empty arguments
		fields := Fields("LOGIN::")

		// Then: three fields are reported
		assert.Equal(t, []string{"LOGIN", "", ""}, fields)
	})
}

func TestBuilders(t *testing.T) {
	t.Run("Builds acks and terminal messages", func(t *testing.T) {
		assert.Equal(t, "CREATE:ACKSTATUS:2", Ack(CmdCreate, CreateNameTaken))
		assert.Equal(t, "BEGIN:alice:bob", Begin("alice", "bob"))
		assert.Equal(t, "INPROGRESS:bob:alice", InProgress("bob", "alice"))
		assert.Equal(t, "BOARDSTATUS:100020000", BoardStatus("100020000"))
		assert.Equal(t, "GAMEEND:111020002:0:alice", GameEndWin("111020002", "alice"))
		assert.Equal(t, "GAMEEND:112212121:1", GameEndDraw("112212121"))
		assert.Equal(t, "GAMEEND:100020000:2:bob", GameEndForfeit("100020000", "bob"))
	})

	t.Run("Renders an empty room list with a trailing separator", func(t *testing.T) {
		assert.Equal(t, "ROOMLIST:ACKSTATUS:0:", RoomListAck(nil))
		assert.Equal(t, "ROOMLIST:ACKSTATUS:0:arena,den", RoomListAck([]string{"arena", "den"}))
	})
}

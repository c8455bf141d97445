package protocol

import (
	"fmt"
	"strings"
)

// Client commands. Command words are case sensitive.
const (
	CmdLogin    = "LOGIN"
	CmdRegister = "REGISTER"
	CmdRoomList = "ROOMLIST"
	CmdCreate   = "CREATE"
	CmdJoin     = "JOIN"
	CmdPlace    = "PLACE"
	CmdForfeit  = "FORFEIT"
)

// Server initiated message words.
const (
	MsgBadAuth     = "BADAUTH"
	MsgNoRoom      = "NOROOM"
	wordAckStatus  = "ACKSTATUS"
	wordBegin      = "BEGIN"
	wordInProgress = "INPROGRESS"
	wordBoard      = "BOARDSTATUS"
	wordGameEnd    = "GAMEEND"
)

// Join and room list modes.
const (
	ModePlayer = "PLAYER"
	ModeViewer = "VIEWER"
)

// LOGIN ack statuses.
const (
	LoginOK            = 0
	LoginUnknownUser   = 1
	LoginWrongPassword = 2
	LoginBadFormat     = 3
	LoginAlreadyActive = 4
)

// REGISTER ack statuses.
const (
	RegisterOK        = 0
	RegisterTaken     = 1
	RegisterBadFormat = 2
	RegisterTooLong   = 3
)

// CREATE ack statuses.
const (
	CreateOK         = 0
	CreateBadName    = 1
	CreateNameTaken  = 2
	CreateNoCapacity = 3
	CreateBadFormat  = 4
)

// JOIN ack statuses.
const (
	JoinOK        = 0
	JoinNoRoom    = 1
	JoinRoomFull  = 2
	JoinBadFormat = 3
)

// ROOMLIST ack statuses.
const (
	RoomListOK        = 0
	RoomListBadFormat = 1
)

// GAMEEND reasons.
const (
	EndWin     = 0
	EndDraw    = 1
	EndForfeit = 2
)

// Fields - splits one inbound line into its colon separated fields.
// Surrounding whitespace is stripped before splitting; field 0 is the
// command word.
func Fields(line string) []string {
	return strings.Split(strings.TrimSpace(line), ":")
}

// Ack - builds a `<command>:ACKSTATUS:<n>` reply.
func Ack(command string, status int) string {
	return fmt.Sprintf("%s:%s:%d", command, wordAckStatus, status)
}

// RoomListAck - builds a successful room list reply. The name list is
// comma joined and may be empty.
func RoomListAck(names []string) string {
	return fmt.Sprintf("%s:%s:%d:%s", CmdRoomList, wordAckStatus, RoomListOK, strings.Join(names, ","))
}

// Begin - announces a started match: X player first, then O player.
func Begin(xName, yName string) string {
	return fmt.Sprintf("%s:%s:%s", wordBegin, xName, yName)
}

// InProgress - tells a joining viewer whose turn it is and who waits.
func InProgress(currentName, opposingName string) string {
	return fmt.Sprintf("%s:%s:%s", wordInProgress, currentName, opposingName)
}

// BoardStatus - carries the nine digit board snapshot.
func BoardStatus(board string) string {
	return fmt.Sprintf("%s:%s", wordBoard, board)
}

// GameEndWin - terminal message for a completed line.
func GameEndWin(board, winnerName string) string {
	return fmt.Sprintf("%s:%s:%d:%s", wordGameEnd, board, EndWin, winnerName)
}

// GameEndDraw - terminal message for a full board; carries no winner.
func GameEndDraw(board string) string {
	return fmt.Sprintf("%s:%s:%d", wordGameEnd, board, EndDraw)
}

// GameEndForfeit - terminal message for a forfeit or disconnect; the
// remaining player is the winner.
func GameEndForfeit(board, winnerName string) string {
	return fmt.Sprintf("%s:%s:%d:%s", wordGameEnd, board, EndForfeit, winnerName)
}

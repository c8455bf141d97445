package tcp

import "context"

func (that *Server) handleLogin(ctx context.Context, conn *client, fields []string) {
	that.hub.Login(ctx, conn, fields)
}

func (that *Server) handleRegister(ctx context.Context, conn *client, fields []string) {
	that.hub.Register(ctx, conn, fields)
}

func (that *Server) handleRoomList(_ context.Context, conn *client, fields []string) {
	that.hub.RoomList(conn, fields)
}

func (that *Server) handleCreate(_ context.Context, conn *client, fields []string) {
	that.hub.CreateRoom(conn, fields)
}

func (that *Server) handleJoin(_ context.Context, conn *client, fields []string) {
	that.hub.JoinRoom(conn, fields)
}

func (that *Server) handlePlace(_ context.Context, conn *client, fields []string) {
	that.hub.PlaceMark(conn, fields)
}

func (that *Server) handleForfeit(_ context.Context, conn *client, fields []string) {
	that.hub.Forfeit(conn, fields)
}

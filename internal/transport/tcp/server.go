package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/playtronix/ticline-backend/internal/hub"
	"github.com/playtronix/ticline-backend/internal/protocol"
)

type gameHub interface {
	Login(ctx context.Context, conn hub.Conn, fields []string)
	Register(ctx context.Context, conn hub.Conn, fields []string)
	CreateRoom(conn hub.Conn, fields []string)
	JoinRoom(conn hub.Conn, fields []string)
	RoomList(conn hub.Conn, fields []string)
	PlaceMark(conn hub.Conn, fields []string)
	Forfeit(conn hub.Conn, fields []string)
	Disconnect(conn hub.Conn)
}

type Server struct {
	logger   *slog.Logger
	hub      gameHub
	handlers map[string]func(ctx context.Context, conn *client, fields []string)

	mu       sync.Mutex
	listener net.Listener
	clients  map[string]*client
}

func New(logger *slog.Logger, gameHub gameHub) *Server {
	server := &Server{
		logger:   logger.With("component", "tcp"),
		hub:      gameHub,
		handlers: make(map[string]func(context.Context, *client, []string)),
		clients:  make(map[string]*client),
	}

	server.handlers[protocol.CmdLogin] = server.handleLogin
	server.handlers[protocol.CmdRegister] = server.handleRegister
	server.handlers[protocol.CmdRoomList] = server.handleRoomList
	server.handlers[protocol.CmdCreate] = server.handleCreate
	server.handlers[protocol.CmdJoin] = server.handleJoin
	server.handlers[protocol.CmdPlace] = server.handlePlace
	server.handlers[protocol.CmdForfeit] = server.handleForfeit

	return server
}

// Start - accepts player connections until the context is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	that.mu.Lock()
	that.listener = listener
	that.mu.Unlock()

	that.logger.Info("listening for players", "addr", listener.Addr().String())

	go func() {
		<-ctx.Done()
		_ = listener.Close()
		that.closeClients()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			that.logger.Error("failed to accept connection", "error", err)
			continue
		}

		go that.handleConnection(ctx, conn)
	}
}

// Addr - reports the bound listen address once Start has opened it.
func (that *Server) Addr() net.Addr {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.listener == nil {
		return nil
	}

	return that.listener.Addr()
}

func (that *Server) handleConnection(ctx context.Context, netConn net.Conn) {
	log := that.logger.With("method", "handleConnection")

	conn := newClient(netConn, that.logger)
	that.addClient(conn)

	log.Info("connection established", "conn", conn.ID(), "remote", netConn.RemoteAddr().String())

	go conn.writePump()

	defer func() {
		that.hub.Disconnect(conn)
		conn.Close()
		that.removeClient(conn)
		log.Info("connection closed", "conn", conn.ID())
	}()

	scanner := bufio.NewScanner(netConn)
	for scanner.Scan() {
		fields := protocol.Fields(scanner.Text())
		if fields[0] == "" {
			continue
		}

		handler, ok := that.handlers[fields[0]]
		if !ok {
			log.Debug("ignoring unknown command", "conn", conn.ID(), "command", fields[0])
			continue
		}

		handler(ctx, conn, fields)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Debug("connection read failed", "conn", conn.ID(), "error", err)
	}
}

func (that *Server) addClient(conn *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[conn.ID()] = conn
}

func (that *Server) removeClient(conn *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, conn.ID())
}

func (that *Server) closeClients() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, conn := range that.clients {
		conn.Close()
	}
}

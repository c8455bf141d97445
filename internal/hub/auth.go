package hub

import (
	"context"
	"errors"

	"github.com/playtronix/ticline-backend/internal/protocol"
	"github.com/playtronix/ticline-backend/internal/repository"
	"github.com/playtronix/ticline-backend/internal/service"
)

// Usernames and passwords are capped at the protocol level; the store
// itself accepts any length.
const maxCredentialLen = 20

// Login - binds a connection to an account. The password is verified
// before the duplicate-session check, so a wrong password on an active
// account still answers with the wrong-password status.
func (that *Hub) Login(ctx context.Context, conn Conn, fields []string) {
	log := that.logger.With("method", "Login")

	if len(fields) != 3 {
		conn.SendLine(protocol.Ack(protocol.CmdLogin, protocol.LoginBadFormat))
		return
	}
	username, password := fields[1], fields[2]

	err := that.accounts.Authenticate(ctx, username, password)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		conn.SendLine(protocol.Ack(protocol.CmdLogin, protocol.LoginUnknownUser))
		return
	case errors.Is(err, service.ErrWrongPassword):
		conn.SendLine(protocol.Ack(protocol.CmdLogin, protocol.LoginWrongPassword))
		return
	case err != nil:
		log.Error("could not authenticate account", "user", username, "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for _, active := range that.sessions {
		if active == username {
			conn.SendLine(protocol.Ack(protocol.CmdLogin, protocol.LoginAlreadyActive))
			return
		}
	}

	that.sessions[conn] = username
	conn.SendLine(protocol.Ack(protocol.CmdLogin, protocol.LoginOK))

	log.Info("session opened", "user", username, "conn", conn.ID())
}

// Register - creates an account. Registration needs no session and
// touches no shared game state.
func (that *Hub) Register(ctx context.Context, conn Conn, fields []string) {
	log := that.logger.With("method", "Register")

	if len(fields) != 3 {
		conn.SendLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterBadFormat))
		return
	}
	username, password := fields[1], fields[2]

	if len(username) > maxCredentialLen || len(password) > maxCredentialLen {
		conn.SendLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterTooLong))
		return
	}

	err := that.accounts.Register(ctx, username, password)
	switch {
	case errors.Is(err, repository.ErrAccountExists):
		conn.SendLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterTaken))
		return
	case err != nil:
		log.Error("could not register account", "user", username, "error", err)
		return
	}

	conn.SendLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterOK))

	log.Info("account registered", "user", username)
}

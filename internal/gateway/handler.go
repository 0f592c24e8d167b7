// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/demigame/demiserver/internal/auth"
	"github.com/demigame/demiserver/internal/observability"
	"github.com/demigame/demiserver/internal/protocol"
	"github.com/demigame/demiserver/internal/status"
	"github.com/demigame/demiserver/internal/world"
)

// cleanupTimeout bounds the presence/session cleanup that runs when a
// connection drops, so a slow store cannot pin the handler goroutine.
const cleanupTimeout = 5 * time.Second

// ConnectionHandler handles a single game client connection. All frames on
// one connection are processed serially, so session and presence updates
// for the connection's account never interleave.
type ConnectionHandler struct {
	conn     net.Conn
	reader   *bufio.Reader
	auth     *auth.Service
	world    *world.Service
	metrics  *observability.Metrics
	registry *protocol.Registry
	connID   ulid.ULID
	account  *auth.Account

	// inWorld and characterID are set together at world enter; position
	// saves are accepted only for that character on this connection.
	inWorld     bool
	characterID uuid.UUID
}

// NewConnectionHandler creates a new handler and binds its opcode table.
func NewConnectionHandler(conn net.Conn, authService *auth.Service, worldService *world.Service, metrics *observability.Metrics) *ConnectionHandler {
	h := &ConnectionHandler{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		auth:    authService,
		world:   worldService,
		metrics: metrics,
		connID:  ulid.Make(),
	}

	registry := protocol.NewRegistry()
	registry.Register(protocol.CMSGLogon, h.handleLogon)
	registry.Register(protocol.CMSGCharacterList, h.handleCharacterList)
	registry.Register(protocol.CMSGCharacterCreate, h.handleCharacterCreate)
	registry.Register(protocol.CMSGCharacterDelete, h.handleCharacterDelete)
	registry.Register(protocol.CMSGWorldEnter, h.handleWorldEnter)
	registry.Register(protocol.CMSGWorldLeave, h.handleWorldLeave)
	registry.Register(protocol.CMSGMoveUpdate, h.handleMoveUpdate)
	registry.Register(protocol.CMSGRealmList, h.handleRealmList)
	h.registry = registry

	return h
}

// Handle processes the connection until closed.
func (h *ConnectionHandler) Handle(ctx context.Context) {
	defer func() {
		h.cleanup()
		if err := h.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Debug("error closing connection", "error", err)
		}
	}()

	// done releases the reader goroutine once Handle returns. A send on
	// frameCh alone is not enough: closing the connection cannot wake a
	// goroutine already parked on a channel send, so every send races
	// against done.
	frameCh := make(chan []byte)
	errCh := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			frame, err := protocol.ReadFrame(h.reader)
			if err != nil {
				select {
				case errCh <- err:
				case <-done:
				}
				return
			}
			select {
			case frameCh <- frame:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-errCh:
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("connection read error",
					"conn_id", h.connID.String(),
					"error", err,
				)
			}
			return

		case frame := <-frameCh:
			if !h.processFrame(ctx, frame) {
				return
			}
		}
	}
}

// processFrame dispatches one frame and writes the response, if any.
// Returns false when the connection should be dropped.
func (h *ConnectionHandler) processFrame(ctx context.Context, frame []byte) bool {
	if h.metrics != nil {
		h.metrics.PacketsTotal.WithLabelValues(fmt.Sprintf("0x%02X", frame[0])).Inc()
	}

	response, err := h.registry.Dispatch(ctx, frame)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownOpcode) {
			slog.Warn("unknown opcode",
				"conn_id", h.connID.String(),
				"opcode", fmt.Sprintf("0x%02X", frame[0]),
			)
			return true
		}
		// A decode failure means the stream can no longer be trusted to
		// be frame-aligned, so the connection is dropped.
		slog.Warn("malformed frame, dropping connection",
			"conn_id", h.connID.String(),
			"opcode", fmt.Sprintf("0x%02X", frame[0]),
			"error", err,
		)
		return false
	}
	if response == nil {
		return true
	}

	if _, err := h.conn.Write(response); err != nil {
		slog.Debug("failed to write response",
			"conn_id", h.connID.String(),
			"error", err,
		)
		return false
	}
	return true
}

// cleanup reconciles server-side state when the connection goes away while
// an account is still attached: presence is cleared and the session token
// revoked, the same steps an orderly world-leave performs.
func (h *ConnectionHandler) cleanup() {
	if h.account == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if h.inWorld {
		h.auth.UpdateOnlineCharacter(ctx, h.account.ID, "")
	}
	h.auth.UpdateSession(ctx, h.account, false)
	h.account = nil
	h.inWorld = false
	h.characterID = uuid.Nil
}

// resolveSession looks up the account owning the session token. A token
// that doesn't parse, doesn't resolve, or hits a storage fault yields nil.
func (h *ConnectionHandler) resolveSession(ctx context.Context, sessionID string) *auth.Account {
	token, err := uuid.Parse(sessionID)
	if err != nil {
		slog.Warn("unparseable session token",
			"conn_id", h.connID.String(),
			"error", err,
		)
		return nil
	}

	account := h.auth.FetchAccountBySession(ctx, token)
	if account.Status == auth.LoginUnknown || account.Status == auth.LoginServerError {
		return nil
	}
	return account
}

func (h *ConnectionHandler) handleLogon(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeLogonRequest(frame)
	if err != nil {
		return nil, err
	}

	account := h.auth.TryLogin(ctx, req.Username, req.Password)
	resp := &protocol.LogonResponse{}

	switch account.Status {
	case auth.LoggedIn:
		if account.SessionID != nil {
			resp.Result = protocol.LogonAlreadyLoggedIn
			break
		}
		h.auth.UpdateSession(ctx, account, true)
		if account.Status == auth.LoginServerError {
			resp.Result = protocol.LogonServerError
			break
		}
		h.account = account
		resp.Result = protocol.LogonSuccess
		resp.AccountID = account.ID
		resp.SessionID = account.SessionID.String()
	case auth.LoginUnknown:
		resp.Result = protocol.LogonUnknown
	default:
		resp.Result = protocol.LogonServerError
	}

	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(account.Status.String()).Inc()
	}
	return resp.Encode()
}

func (h *ConnectionHandler) handleCharacterList(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeCharacterListRequest(frame)
	if err != nil {
		return nil, err
	}

	resp := &protocol.CharacterListResponse{}
	account := h.resolveSession(ctx, req.SessionID)
	if account == nil {
		// Unauthenticated list requests see an empty roster.
		return resp.Encode()
	}

	for _, char := range h.world.FetchCharacters(ctx, account.ID) {
		resp.Characters = append(resp.Characters, protocol.CharacterEntry{
			ID:     char.ID.String(),
			Name:   char.Name,
			Level:  char.Level,
			Class:  int32(char.Class),
			Race:   int32(char.Race),
			Vector: char.Vector,
		})
	}
	return resp.Encode()
}

func (h *ConnectionHandler) handleCharacterCreate(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeCharacterCreateRequest(frame)
	if err != nil {
		return nil, err
	}

	resp := &protocol.CharacterCreateResponse{Result: protocol.CharacterServerError}
	account := h.resolveSession(ctx, req.SessionID)
	if account == nil {
		return resp.Encode()
	}

	ok, err := h.world.CanCreate(ctx, account.ID)
	if err != nil {
		slog.Error("character limit check failed",
			"account_id", account.ID,
			"error", err,
		)
		return resp.Encode()
	}
	if !ok {
		slog.Info("character limit reached",
			"account_id", account.ID,
		)
		return resp.Encode()
	}

	switch h.world.CreateCharacter(ctx, account.ID, req.Name, world.Race(req.Race)) {
	case status.OK:
		resp.Result = protocol.CharacterSuccess
	case status.RowExists:
		resp.Result = protocol.CharacterExists
	}

	if h.metrics != nil {
		h.metrics.CharacterOpsTotal.WithLabelValues("create", resultLabel(resp.Result)).Inc()
	}
	return resp.Encode()
}

func (h *ConnectionHandler) handleCharacterDelete(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeCharacterDeleteRequest(frame)
	if err != nil {
		return nil, err
	}

	resp := &protocol.CharacterDeleteResponse{Result: protocol.CharacterServerError}
	account := h.resolveSession(ctx, req.SessionID)
	if account == nil {
		return resp.Encode()
	}

	name := world.NormalizeCharacterName(req.Name)
	switch h.world.DeleteCharacter(ctx, account.ID, name) {
	case status.OK:
		resp.Result = protocol.CharacterSuccess
	default:
		// Unresolved names and storage faults both surface as the
		// generic server error; a delete has no duplicate-row outcome.
		resp.Result = protocol.CharacterServerError
	}

	if h.metrics != nil {
		h.metrics.CharacterOpsTotal.WithLabelValues("delete", resultLabel(resp.Result)).Inc()
	}
	return resp.Encode()
}

func (h *ConnectionHandler) handleWorldEnter(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeWorldEnterRequest(frame)
	if err != nil {
		return nil, err
	}

	account := h.resolveSession(ctx, req.SessionID)
	if account == nil {
		return nil, nil
	}

	id, err := uuid.Parse(req.CharacterID)
	if err != nil {
		slog.Warn("unparseable character id on world enter",
			"conn_id", h.connID.String(),
			"error", err,
		)
		return nil, nil
	}

	// The character must belong to the session's account.
	owned := false
	for _, char := range h.world.FetchCharacters(ctx, account.ID) {
		if char.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		slog.Warn("world enter for character not owned by account",
			"conn_id", h.connID.String(),
			"account_id", account.ID,
			"character_id", id.String(),
		)
		return nil, nil
	}

	if h.auth.UpdateOnlineCharacter(ctx, account.ID, id.String()) == status.OK {
		h.account = account
		h.inWorld = true
		h.characterID = id
	}
	return nil, nil
}

func (h *ConnectionHandler) handleWorldLeave(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeWorldLeaveRequest(frame)
	if err != nil {
		return nil, err
	}

	account := h.resolveSession(ctx, req.SessionID)
	if account == nil {
		return nil, nil
	}

	h.auth.UpdateOnlineCharacter(ctx, account.ID, "")
	h.auth.UpdateSession(ctx, account, false)
	h.account = nil
	h.inWorld = false
	h.characterID = uuid.Nil
	return nil, nil
}

func (h *ConnectionHandler) handleMoveUpdate(ctx context.Context, frame []byte) ([]byte, error) {
	req, err := protocol.DecodeMoveUpdateRequest(frame)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("unparseable character id: %w", err)
	}

	// Position saves are accepted only from the connection that entered
	// the world with this character; anything else is discarded.
	if !h.inWorld || id != h.characterID {
		slog.Warn("move update outside an active world session",
			"conn_id", h.connID.String(),
			"character_id", id.String(),
		)
		return nil, nil
	}

	h.world.SaveCharacter(ctx, &world.Character{ID: id, Vector: req.Vector})
	return nil, nil
}

func (h *ConnectionHandler) handleRealmList(ctx context.Context, frame []byte) ([]byte, error) {
	if _, err := protocol.DecodeRealmListRequest(frame); err != nil {
		return nil, err
	}

	resp := &protocol.RealmListResponse{Realms: h.auth.FetchRealms(ctx)}
	return resp.Encode()
}

func resultLabel(result byte) string {
	switch result {
	case protocol.CharacterSuccess:
		return "success"
	case protocol.CharacterExists:
		return "exists"
	default:
		return "server_error"
	}
}

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/api/metrics"
	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const (
	defaultWriteTimeout = 5 * time.Second
	maxFrameBytes       = 16 << 10
)

// GatewayOptions tunes the channel transport.
type GatewayOptions struct {
	// OriginPatterns lists the browser origins allowed to open a channel.
	// Empty means same-origin only.
	OriginPatterns []string
	WriteTimeout   time.Duration
}

// Gateway runs channel sessions: it upgrades the request, registers the
// connection and dispatches inbound events.
type Gateway struct {
	registry *Registry
	chat     ports.ChatService
	authz    ports.Authorizer
	opts     GatewayOptions
	now      func() time.Time
	log      zerolog.Logger

	ctx  context.Context
	stop context.CancelFunc
}

func NewGateway(registry *Registry, chat ports.ChatService, authz ports.Authorizer, opts GatewayOptions, log zerolog.Logger) *Gateway {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	registry.Guard(domain.AdminRoom, func(ctx context.Context, id domain.Identity) (bool, error) {
		return authz.IsAdmin(ctx, id.Email)
	})
	ctx, stop := context.WithCancel(context.Background())
	return &Gateway{
		registry: registry,
		chat:     chat,
		authz:    authz,
		opts:     opts,
		now:      time.Now,
		log:      log,
		ctx:      ctx,
		stop:     stop,
	}
}

// Close ends every running session.
func (g *Gateway) Close() { g.stop() }

// Serve upgrades the request and runs the session until either side closes.
// identity is the verified handshake identity; the zero value opens an
// anonymous session.
func (g *Gateway) Serve(w http.ResponseWriter, r *http.Request, identity domain.Identity) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: g.opts.OriginPatterns})
	if err != nil {
		// Accept has already written the HTTP error response.
		return err
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxFrameBytes)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stopOnClose := context.AfterFunc(g.ctx, cancel)
	defer stopOnClose()

	client := g.registry.Register(identity)
	defer g.registry.Remove(client)

	log := g.log.With().Str("conn_id", client.ID()).Str("identity", identity.Email).Logger()
	log.Debug().Msg("channel opened")

	go g.writeLoop(ctx, cancel, conn, client, log)
	g.readLoop(ctx, conn, client, log)

	_ = conn.Close(websocket.StatusNormalClosure, "")
	log.Debug().Msg("channel closed")
	return nil
}

func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn, c *Client, log zerolog.Logger) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.Debug().Err(err).Msg("channel read failed")
			}
			return
		}
		if typ != websocket.MessageText {
			g.replyError(c, CodeInvalidMessage, "frames must be JSON text")
			continue
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil || f.Event == "" {
			g.replyError(c, CodeInvalidMessage, "frame must be {\"event\": string, \"data\": any}")
			continue
		}
		g.dispatch(ctx, c, f, log)
	}
}

func (g *Gateway) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, c *Client, log zerolog.Logger) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-c.Send():
			if !ok {
				return
			}
			wctx, wcancel := context.WithTimeout(ctx, g.opts.WriteTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			wcancel()
			if err != nil {
				log.Debug().Err(err).Msg("channel write failed")
				return
			}
		}
	}
}

func (g *Gateway) dispatch(ctx context.Context, c *Client, f Frame, log zerolog.Logger) {
	switch f.Event {
	case domain.EventJoinRoom:
		g.joinUserRoom(c, f.Data)
	case domain.EventJoinAdminRoom:
		g.joinAdminRoom(ctx, c, log)
	case domain.EventUserMessage:
		g.relay(ctx, c, f.Data, domain.SenderUser, g.chat.RelayUserMessage, log)
	case domain.EventAdminMessage:
		g.relay(ctx, c, f.Data, domain.SenderAdmin, g.chat.RelayAdminMessage, log)
	default:
		g.replyError(c, CodeUnknownEvent, "unknown event "+f.Event)
	}
}

// identity returns the connection's identity while its token is still valid.
func (g *Gateway) identity(c *Client) domain.Identity {
	id := c.Identity()
	if !id.ExpiresAt.IsZero() && !g.now().Before(id.ExpiresAt) {
		return domain.Identity{}
	}
	return id
}

// joinUserRoom joins the connection's own room. The room always comes from
// the verified identity; a payload naming another user is refused.
func (g *Gateway) joinUserRoom(c *Client, data json.RawMessage) {
	id := g.identity(c)
	if id.Anonymous() {
		metrics.RoomJoinsTotal.WithLabelValues("user", CodeUnauthenticated).Inc()
		g.replyError(c, CodeUnauthenticated, "authenticate the channel to join a room")
		return
	}

	var req joinRequest
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &req); err != nil {
			// Older clients send the bare user id.
			if err := json.Unmarshal(data, &req.UserID); err != nil {
				g.replyError(c, CodeInvalidMessage, "joinRoom expects {\"userId\": string}")
				return
			}
		}
	}
	if req.UserID != "" && req.UserID != id.Email {
		metrics.RoomJoinsTotal.WithLabelValues("user", CodeForbidden).Inc()
		g.replyError(c, CodeForbidden, "cannot join another user's room")
		return
	}

	g.join(c, id.Email, "user")
}

func (g *Gateway) joinAdminRoom(ctx context.Context, c *Client, log zerolog.Logger) {
	id := g.identity(c)
	if id.Anonymous() {
		metrics.RoomJoinsTotal.WithLabelValues("admin", CodeUnauthenticated).Inc()
		g.replyError(c, CodeUnauthenticated, "authenticate the channel to join a room")
		return
	}

	ok, err := g.authz.IsAdmin(ctx, id.Email)
	if err != nil {
		log.Error().Err(err).Msg("admin check failed")
		metrics.RoomJoinsTotal.WithLabelValues("admin", CodeInternal).Inc()
		g.replyError(c, CodeInternal, "could not verify role")
		return
	}
	if !ok {
		metrics.RoomJoinsTotal.WithLabelValues("admin", CodeForbidden).Inc()
		g.replyError(c, CodeForbidden, "admin role required")
		return
	}

	g.join(c, domain.AdminRoom, "admin")
}

func (g *Gateway) join(c *Client, room, kind string) {
	if err := g.registry.Join(c, room); err != nil {
		return
	}
	metrics.RoomJoinsTotal.WithLabelValues(kind, "ok").Inc()
	_ = g.registry.Reply(c, domain.EventJoined, JoinedPayload{Room: room})
}

type relayFunc func(ctx context.Context, sender domain.Identity, in ports.ChatInput) (*domain.Message, error)

func (g *Gateway) relay(ctx context.Context, c *Client, data json.RawMessage, sender domain.Sender, fn relayFunc, log zerolog.Logger) {
	var req chatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		metrics.ChatMessagesTotal.WithLabelValues(string(sender), CodeInvalidMessage).Inc()
		g.replyError(c, CodeInvalidMessage, "expected {\"userId\": string, \"message\": string}")
		return
	}

	_, err := fn(ctx, g.identity(c), ports.ChatInput{UserID: req.UserID, Message: req.Message})
	if err != nil {
		code, msg := errorCode(err)
		if code == CodeInternal || code == CodePersistenceFailure {
			log.Error().Err(err).Str("sender", string(sender)).Msg("chat message rejected")
		}
		metrics.ChatMessagesTotal.WithLabelValues(string(sender), code).Inc()
		g.replyError(c, code, msg)
		return
	}
	metrics.ChatMessagesTotal.WithLabelValues(string(sender), "relayed").Inc()
}

func (g *Gateway) replyError(c *Client, code, message string) {
	_ = g.registry.Reply(c, domain.EventError, ErrorPayload{Code: code, Message: message})
}

// errorCode maps a domain error to the channel error vocabulary.
func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return CodeUnauthenticated, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return CodeForbidden, "forbidden"
	case errors.Is(err, domain.ErrInvalidInput):
		return CodeInvalidMessage, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return CodeRateLimited, "too many messages, slow down"
	case errors.Is(err, domain.ErrPersistence):
		return CodePersistenceFailure, "message could not be saved"
	default:
		return CodeInternal, "internal error"
	}
}

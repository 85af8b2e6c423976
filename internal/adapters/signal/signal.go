package signal

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/app"
	"github.com/dkeye/SwiftChat/internal/app/orch"
	"github.com/dkeye/SwiftChat/internal/config"
	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

type SignalWSController struct {
	Orch     *orch.Orchestrator
	Sessions *app.Sessions
	Limiter  *RateLimiter
	Cfg      *config.Config

	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, sessions *app.Sessions, cfg *config.Config) *SignalWSController {
	ctl := &SignalWSController{
		Orch:     o,
		Sessions: sessions,
		Cfg:      cfg,
	}
	if cfg.RateLimit.Messages > 0 {
		ctl.Limiter = NewRateLimiter(cfg.RateLimit.Messages, cfg.RateLimit.Interval)
	}
	ctl.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(cfg.AllowedOrigins, r.Header.Get("Origin"))
		},
	}
	return ctl
}

// WsSignalConn implements core.Connection over a gorilla websocket.
type WsSignalConn struct {
	id   domain.ConnectionID
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(id domain.ConnectionID, ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{
		id:   id,
		conn: ws,
		send: make(chan core.Frame, buffer),
	}
}

func (c *WsSignalConn) ID() domain.ConnectionID { return c.id }

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnectionClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("client", token).Msg("ws upgrade")
		return
	}

	conn := newWsSignalConn(domain.NewConnectionID(), ws, ctl.Cfg.SendBuffer)
	log.Info().Str("module", "signal").Str("conn", string(conn.ID())).Str("client", token).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	ctl.Sessions.Bind(conn, token, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, conn)
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

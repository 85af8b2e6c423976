package signal

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/core"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.Cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(c.ID())).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("conn", string(c.ID())).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Cfg.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(c.ID())).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Cfg.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.ID())).Msg("ping failed")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(c.ID())).Msg("readPump closing")
		ctl.Orch.OnDisconnect(c)
		ctl.Sessions.Unbind(c.ID())
		if ctl.Limiter != nil {
			ctl.Limiter.Forget(c.ID())
		}
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.Cfg.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.Cfg.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("conn", string(c.ID())).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("conn", string(c.ID())).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(c *WsSignalConn, data []byte) {
	var in core.Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(c.ID())).Msg("bad json")
		ctl.sendJSON(c, core.Notice("bad json"))
		return
	}

	switch in.Type {
	case core.KindPing:
		ctl.handlePing(c)
	case core.KindDisconnect:
		// the read pump notices the closed socket and runs the disconnect hook
		c.Close()
	default:
		if !ctl.Orch.Handles(in.Type) {
			log.Warn().Str("module", "signal").Str("type", string(in.Type)).Msg("unknown signal")
			ctl.sendJSON(c, core.Notice("unknown event "+string(in.Type)))
			return
		}
		if ctl.Limiter != nil && !ctl.Limiter.Allow(c.ID()) {
			log.Warn().Str("module", "signal").Str("conn", string(c.ID())).Msg("rate limited")
			ctl.sendJSON(c, core.Notice("rate limit exceeded"))
			return
		}
		ctl.Orch.Handle(c, in)
	}
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, ev core.Event) {
	b, err := core.Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

package orch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/app"
	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/metrics"
)

var errEmptyPayload = errors.New("empty payload")

type handlerFunc func(o *Orchestrator, conn core.Connection, in core.Inbound) []core.Delivery

// Orchestrator is the event dispatcher: it maps inbound events to registry
// and router operations and delivers what they produce.
type Orchestrator struct {
	Registry *app.Registry
	Router   *app.MessageRouter
	Presence app.Presence
	Policy   app.Policy
	Metrics  *metrics.Metrics

	// mu makes each event and its fan-out one step of a single logical loop.
	mu       sync.Mutex
	handlers map[core.EventKind]handlerFunc
	validate *validator.Validate
}

func New(reg *app.Registry, policy app.Policy, m *metrics.Metrics) *Orchestrator {
	if policy == nil {
		policy = app.DropPolicy{}
	}
	return &Orchestrator{
		Registry: reg,
		Router:   &app.MessageRouter{Registry: reg},
		Policy:   policy,
		Metrics:  m,
		handlers: dispatchTable(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handle runs one inbound event to completion, deliveries included.
func (o *Orchestrator) Handle(conn core.Connection, in core.Inbound) {
	h, ok := o.handlers[in.Type]
	if !ok {
		log.Warn().Str("module", "orch").Str("conn", string(conn.ID())).Str("type", string(in.Type)).Msg("unknown event")
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Metrics != nil {
		o.Metrics.Event(string(in.Type))
	}
	o.deliver(h(o, conn, in))
}

// OnDisconnect is the per-connection lifecycle hook called by the transport
// once the channel is gone.
func (o *Orchestrator) OnDisconnect(conn core.Connection) {
	o.Handle(conn, core.Inbound{Type: core.KindDisconnect})
}

func (o *Orchestrator) deliver(ds []core.Delivery) {
	for _, d := range ds {
		if len(d.Targets) == 0 {
			continue
		}
		frame, err := core.Encode(d.Event)
		if err != nil {
			log.Error().Err(err).Str("module", "orch").Str("type", string(d.Event.Type)).Msg("encode event")
			continue
		}
		for _, c := range d.Targets {
			if err := c.TrySend(frame); err != nil {
				o.onSendFailure(c, d.Event.Type, err)
				continue
			}
			if o.Metrics != nil {
				o.Metrics.Sent()
			}
		}
	}
}

// onSendFailure never reports back to the sender; the remaining recipients
// are unaffected.
func (o *Orchestrator) onSendFailure(c core.Connection, kind core.EventKind, err error) {
	log.Debug().Err(err).Str("module", "orch").Str("conn", string(c.ID())).Str("type", string(kind)).Msg("delivery dropped")
	if o.Metrics != nil {
		o.Metrics.Dropped()
	}
	switch o.Policy.OnBackPressure(c, err) {
	case app.KickMember:
		log.Warn().Str("module", "orch").Str("conn", string(c.ID())).Msg("kicking slow connection")
		c.Close()
	case app.DropFrame, app.NoAction:
	}
}

func (o *Orchestrator) decode(in core.Inbound, v any) error {
	if len(in.Data) == 0 {
		return errEmptyPayload
	}
	if err := json.Unmarshal(in.Data, v); err != nil {
		return err
	}
	return o.validate.Struct(v)
}

func (o *Orchestrator) invalid(conn core.Connection, in core.Inbound, err error) []core.Delivery {
	log.Warn().Err(err).Str("module", "orch").Str("conn", string(conn.ID())).Str("type", string(in.Type)).Msg("bad payload")
	return []core.Delivery{core.Private(conn, core.Notice(fmt.Sprintf("invalid %s payload", in.Type)))}
}

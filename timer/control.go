// Package timer implements the interactive speech-timer engine: a registry of
// per-(user, channel) countdown timers, each advanced by a single driver
// goroutine that renders a live-updating embed through a narrow messaging
// port, under a per-message edit budget, with milestone notifications at
// fixed remaining-second thresholds.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
	"github.com/Taraldinn/hear-hear-bot-sub000/telemetry"
)

// LangFunc resolves the message language for a guild. Implementations must
// fall back to English on lookup failure.
type LangFunc func(ctx context.Context, guildID uint64) locale.Language

// Options configures a Surface. Zero values get engine defaults.
type Options struct {
	Messenger Messenger
	Clock     Clock
	Lang      LangFunc
	Logger    *slog.Logger
	// MinEditInterval is the regular-frame debounce of the edit gate
	// (default 1s, one edit per wall second).
	MinEditInterval time.Duration
	// FinishMediaURL, when set, is attached to the finished frame.
	FinishMediaURL string
	// ShutdownGrace bounds the final render of each driver during Shutdown.
	ShutdownGrace time.Duration
	// BaseContext is the long-lived context drivers run under; cancelling it
	// broadcast-stops every timer. Defaults to context.Background().
	BaseContext context.Context
}

// Surface is the control surface of the engine: it validates and authorizes
// externally-originated commands and button events, owns the registry, and
// launches one driver per started timer. All timer mutation happens inside
// the drivers; the surface only enqueues events.
type Surface struct {
	reg   *Registry
	msgr  Messenger
	clock Clock
	lang  LangFunc
	log   *slog.Logger
	gate  pushGate

	finishMediaURL string
	shutdownGrace  time.Duration
	baseCtx        context.Context

	drivers sync.WaitGroup
}

// NewSurface wires a Surface around a registry.
func NewSurface(reg *Registry, opts Options) *Surface {
	telemetry.Init()
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Lang == nil {
		opts.Lang = func(context.Context, uint64) locale.Language { return locale.English }
	}
	if opts.MinEditInterval <= 0 {
		opts.MinEditInterval = time.Second
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = 2 * time.Second
	}
	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}
	return &Surface{
		reg:            reg,
		msgr:           opts.Messenger,
		clock:          opts.Clock,
		lang:           opts.Lang,
		log:            opts.Logger,
		gate:           pushGate{minInterval: opts.MinEditInterval},
		finishMediaURL: opts.FinishMediaURL,
		shutdownGrace:  opts.ShutdownGrace,
		baseCtx:        opts.BaseContext,
	}
}

// StartRequest describes a validated-on-entry start command.
type StartRequest struct {
	GuildID   uint64
	ChannelID uint64
	UserID    uint64
	Minutes   int
	Seconds   int
}

// Start validates the duration, claims the (user, channel) slot, posts the
// initial embed and launches the driver. A failed start leaves the registry
// unchanged.
func (s *Surface) Start(ctx context.Context, req StartRequest) error {
	if req.Minutes < 0 || req.Minutes > 120 || req.Seconds < 0 || req.Seconds > 59 {
		return ErrDurationOutOfRange
	}
	total := req.Minutes*60 + req.Seconds
	if total < 1 || total > MaxDuration {
		return ErrDurationOutOfRange
	}

	key := Key{UserID: req.UserID, ChannelID: req.ChannelID}
	h := newHandle(key, req.GuildID, uint32(total), s.clock.Now())
	if !s.reg.tryInsert(h) {
		return ErrAlreadyRunning
	}

	ref, err := s.msgr.PostTimer(ctx, req.ChannelID, Render(h.snapshot()))
	if err != nil {
		s.reg.remove(key)
		return fmt.Errorf("post timer embed: %w", err)
	}
	if s.baseCtx.Err() != nil {
		// Engine began shutting down between the insert and the post; tear
		// the orphaned embed back down rather than leave a dead timer card.
		_ = s.msgr.DeleteTimer(ctx, ref)
		s.reg.remove(key)
		return fmt.Errorf("engine shutting down: %w", s.baseCtx.Err())
	}
	h.msg = ref
	recordPush(h, s.clock.Now())

	telemetry.TimersStarted.Inc()
	telemetry.SetActiveTimers(s.reg.Count())
	s.log.Info("timer started",
		slog.Uint64("user_id", key.UserID),
		slog.Uint64("channel_id", key.ChannelID),
		slog.Int("total_seconds", total))

	s.drivers.Add(1)
	go func() {
		defer s.drivers.Done()
		s.drive(h)
	}()
	return nil
}

// dispatch authorizes and enqueues a control event for the actor's timer in
// the channel. The enqueue is non-blocking: a full queue drops the event with
// a warning rather than stalling the caller.
func (s *Surface) dispatch(key Key, actorID uint64, ev Event) error {
	h := s.reg.get(key)
	if h == nil {
		return ErrNoTimer
	}
	if actorID != h.ownerID {
		return ErrNotOwner
	}
	ev.ActorID = actorID
	select {
	case h.events <- ev:
	default:
		s.log.Warn("control queue full; event dropped",
			slog.Uint64("user_id", key.UserID),
			slog.Uint64("channel_id", key.ChannelID),
			slog.String("event", ev.Kind.String()))
	}
	return nil
}

// Pause enqueues a pause for the actor's timer in the channel.
func (s *Surface) Pause(key Key, actorID uint64) error {
	return s.dispatch(key, actorID, Event{Kind: EventPause})
}

// Resume enqueues a resume.
func (s *Surface) Resume(key Key, actorID uint64) error {
	return s.dispatch(key, actorID, Event{Kind: EventResume})
}

// Stop enqueues a stop.
func (s *Surface) Stop(key Key, actorID uint64) error {
	return s.dispatch(key, actorID, Event{Kind: EventStop})
}

// Extend enqueues an extension by the given seconds; the driver clamps at
// the session ceiling silently.
func (s *Surface) Extend(key Key, actorID uint64, seconds uint32) error {
	return s.dispatch(key, actorID, Event{Kind: EventExtend, Extend: seconds})
}

// Notify acknowledges the notify button. The event is a no-op for the state
// machine but still subject to owner authorization.
func (s *Surface) Notify(key Key, actorID uint64) error {
	return s.dispatch(key, actorID, Event{Kind: EventNotifyAck})
}

// ResetAll enqueues a stop on every live timer. Administrative: callers must
// have verified elevated privilege and pass admin=true. It does not remove
// registry entries; each driver deregisters itself after its final render.
func (s *Surface) ResetAll(admin bool) (int, error) {
	if !admin {
		return 0, ErrAdminRequired
	}
	hs := s.reg.handles()
	for _, h := range hs {
		select {
		case h.events <- Event{Kind: EventStop, ActorID: h.ownerID}:
		default:
		}
	}
	return len(hs), nil
}

// Lookup reports whether the actor has a live timer in the channel.
func (s *Surface) Lookup(key Key) bool { return s.reg.get(key) != nil }

// Language resolves the guild language through the configured lookup.
func (s *Surface) Language(ctx context.Context, guildID uint64) locale.Language {
	return s.lang(ctx, guildID)
}

// Shutdown broadcast-stops every driver and waits up to the grace window for
// final renders. Timers that do not finish in time are dropped; state is
// in-memory only.
func (s *Surface) Shutdown() {
	if _, err := s.ResetAll(true); err != nil {
		return
	}
	done := make(chan struct{})
	go func() {
		s.drivers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(s.shutdownGrace):
		s.log.Warn("shutdown grace expired with drivers still rendering",
			slog.Int("remaining", s.reg.Count()))
	}
}

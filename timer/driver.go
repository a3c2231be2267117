package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
	"github.com/Taraldinn/hear-hear-bot-sub000/telemetry"
)

const (
	tickInterval = time.Second
	// editTimeout bounds every messaging RPC issued from the hot path.
	editTimeout = 10 * time.Second
)

// drive is the per-timer driver loop: the sole mutator of h after launch.
// Each iteration drains queued control events, advances the countdown by one
// second, renders, pushes through the edit gate, and emits crossed
// milestones. It exits on a terminal state or engine shutdown, always
// attempting one final render before deregistering.
func (s *Surface) drive(h *Handle) {
	ctx := s.baseCtx
	log := s.log.With(
		slog.Uint64("user_id", h.key.UserID),
		slog.Uint64("channel_id", h.key.ChannelID))

	defer func() {
		s.reg.remove(h.key)
		telemetry.SetActiveTimers(s.reg.Count())
	}()

	// Creation counts as the edge (initial+1 -> initial), so a timer started
	// exactly on a threshold announces it right away.
	s.emitMilestones(ctx, h, h.initialTotal+1, log)

	deadline := s.clock.Now().Add(tickInterval)
	for {
		h.drain()
		if h.state.Terminal() {
			break
		}

		if shutdown := s.sleepUntil(ctx, h, deadline); shutdown {
			// Synthetic stop: one final render attempt below, bounded by the
			// grace window instead of the cancelled engine context.
			h.apply(Event{Kind: EventStop, ActorID: h.ownerID})
			break
		}
		deadline = deadline.Add(tickInterval)

		h.drain()
		if h.state.Terminal() {
			break
		}

		prev := h.remaining
		h.tickDown()

		if !h.state.Terminal() {
			now := s.clock.Now()
			if s.gate.shouldPush(h, now) {
				s.pushFrame(ctx, h, log)
			} else {
				telemetry.EditsSuppressed.Inc()
			}
			s.emitMilestones(ctx, h, prev, log)
		}
	}

	s.finalize(ctx, h, log)
}

// sleepUntil blocks until the tick deadline, waking early to apply any
// control event so a pause arriving mid-sleep is honored before the next
// decrement. Returns true when the engine is shutting down.
func (s *Surface) sleepUntil(ctx context.Context, h *Handle, deadline time.Time) (shutdown bool) {
	for {
		wait := deadline.Sub(s.clock.Now())
		if wait <= 0 {
			return false
		}
		t := s.clock.NewTimer(wait)
		select {
		case ev := <-h.events:
			t.Stop()
			h.apply(ev)
			if h.state.Terminal() {
				return false
			}
		case <-t.C():
			return false
		case <-ctx.Done():
			t.Stop()
			return true
		}
	}
}

// pushFrame renders the current state and edits the embed. Failures are
// logged and dropped: the timer never aborts because the chat API is
// misbehaving, and the next eligible tick supersedes the lost frame.
func (s *Surface) pushFrame(ctx context.Context, h *Handle, log *slog.Logger) {
	ectx, cancel := context.WithTimeout(ctx, editTimeout)
	defer cancel()
	if err := s.msgr.EditTimer(ectx, h.msg, Render(h.snapshot())); err != nil {
		log.Debug("embed edit dropped",
			slog.String("kind", ClassifyAdapterError(err).String()),
			slog.Any("err", err))
		return
	}
	recordPush(h, s.clock.Now())
	telemetry.EditsPushed.Inc()
}

// emitMilestones fires the thresholds crossed between prev and the current
// remaining value. Only running timers announce, and each threshold is
// one-shot per handle even if an extension re-crosses it.
func (s *Surface) emitMilestones(ctx context.Context, h *Handle, prev uint32, log *slog.Logger) {
	if h.state != StateRunning {
		return
	}
	for _, t := range crossedMilestones(prev, h.remaining) {
		if h.markFired(t) {
			continue
		}
		lang := s.lang(ctx, h.guildID)
		content := locale.Milestone(lang, int(t), mention(h.ownerID))
		sctx, cancel := context.WithTimeout(ctx, editTimeout)
		err := s.msgr.SendText(sctx, h.key.ChannelID, content)
		cancel()
		if err != nil {
			log.Warn("milestone message dropped",
				slog.Int("threshold", int(t)),
				slog.Any("err", err))
			continue
		}
		telemetry.MilestonesSent.Inc()
	}
}

// finalize pushes the terminal frame and side-channel notice, best effort,
// then lets the deferred deregistration run. During shutdown the engine
// context is already cancelled, so the render is bounded by the grace window
// on a detached context.
func (s *Surface) finalize(ctx context.Context, h *Handle, log *slog.Logger) {
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownGrace)
	defer cancel()

	if err := s.msgr.EditTimer(fctx, h.msg, s.finalView(h)); err != nil {
		log.Warn("final render dropped", slog.Any("err", err))
	} else {
		recordPush(h, s.clock.Now())
		telemetry.EditsPushed.Inc()
	}

	lang := s.lang(fctx, h.guildID)
	var notice string
	switch h.state {
	case StateFinished:
		notice = locale.Finish(lang, mention(h.ownerID))
		telemetry.TimersFinished.Inc()
	case StateStopped:
		notice = locale.Stopped(lang, mention(h.ownerID))
		telemetry.TimersStopped.Inc()
	default:
		return
	}
	if err := s.msgr.SendText(fctx, h.key.ChannelID, notice); err != nil {
		log.Warn("terminal notice dropped", slog.Any("err", err))
	}
	log.Info("timer terminated", slog.String("state", h.state.String()))
}

// finalView is the terminal projection, with the celebration media attached
// to finished frames when configured.
func (s *Surface) finalView(h *Handle) View {
	v := Render(h.snapshot())
	if v.ShowFinishedMedia {
		v.MediaURL = s.finishMediaURL
	}
	return v
}

// mention formats a platform mention for a user id.
func mention(userID uint64) string {
	return "<@" + uitoa(userID) + ">"
}

// uitoa avoids fmt on the per-tick path.
func uitoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

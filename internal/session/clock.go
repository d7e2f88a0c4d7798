package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lukia82-netizen/LALK-Stats/internal/events"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// countdown tracks one 1 Hz ticker run. The generation counter is
// checked under the controller lock on every tick, so no tick can apply
// after stop: a stale goroutine sees the bumped generation and exits
// without touching state.
type countdown struct {
	running bool
	gen     int
	cancel  context.CancelFunc
}

func (cd *countdown) stop() {
	cd.running = false
	cd.gen++
	if cd.cancel != nil {
		cd.cancel()
		cd.cancel = nil
	}
}

// runTicker drives tick once per second until the context is cancelled
// or tick reports the run is over.
func runTicker(ctx context.Context, tick func() bool) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !tick() {
				return
			}
		}
	}
}

// StartClock starts the game clock. An active timeout countdown is
// cancelled: the clock and a timeout never run together.
func (c *Controller) StartClock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startClockLocked()
}

func (c *Controller) startClockLocked() {
	if c.clock.running || c.state.Over {
		return
	}
	c.stopTimeoutLocked()
	c.clock.running = true
	c.clock.gen++
	gen := c.clock.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.clock.cancel = cancel
	go runTicker(ctx, func() bool { return c.clockTick(gen) })
}

// PauseClock stops the game clock.
func (c *Controller) PauseClock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.stop()
}

// ToggleClock starts the clock if paused and pauses it if running.
func (c *Controller) ToggleClock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clock.running {
		c.clock.stop()
	} else {
		c.startClockLocked()
	}
}

// ClockRunning reports whether the game clock is ticking.
func (c *Controller) ClockRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.running
}

// ResetClock pauses the clock and sets it to the full length of the
// current period.
func (c *Controller) ResetClock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetClockLocked()
}

func (c *Controller) resetClockLocked() {
	c.clock.stop()
	if game.IsOvertime(c.state.Period) {
		c.state.ClockMinutes = c.cfg.OvertimeMinutes
	} else {
		c.state.ClockMinutes = c.cfg.QuarterMinutes
	}
	c.state.ClockSeconds = 0
}

// SetClock pauses the clock and applies a manual MM:SS entry. Malformed
// or out-of-range input is rejected and the previous value retained.
func (c *Controller) SetClock(input string) error {
	minutes, seconds, err := ParseClock(input)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.stop()
	c.state.ClockMinutes = minutes
	c.state.ClockSeconds = seconds
	return nil
}

// ParseClock parses a manual MM:SS clock entry.
func ParseClock(input string) (minutes, seconds int, err error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidClockInput
	}
	minutes, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidClockInput
	}
	seconds, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidClockInput
	}
	if minutes < 0 || seconds < 0 || seconds > 59 {
		return 0, 0, ErrInvalidClockInput
	}
	return minutes, seconds, nil
}

func (c *Controller) clockTick(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.clock.gen || !c.clock.running {
		return false
	}
	s := c.state
	if s.ClockSeconds == 0 {
		if s.ClockMinutes == 0 {
			// The transition itself waits for the operator: the confirm
			// hook blocks on input, which must not happen on this
			// goroutine while the lock is held.
			c.clock.stop()
			label := game.PeriodLabel(s.Period)
			c.dispatcher.Dispatch(events.Event{Type: events.TypeCuePeriodEnd, Data: label})
			c.dispatcher.Notice(fmt.Sprintf("%s has ended. Run 'period end' to continue.", label))
			return false
		}
		s.ClockMinutes--
		s.ClockSeconds = 59
	} else {
		s.ClockSeconds--
	}
	return true
}

// startTimeoutLocked begins the timeout countdown for a team, pausing
// the game clock if it is running.
func (c *Controller) startTimeoutLocked(team game.TeamID) {
	c.clock.stop()
	c.stopTimeoutLocked()
	c.timeoutOf = team
	c.timeoutLeft = c.cfg.TimeoutSeconds
	c.timeout.running = true
	c.timeout.gen++
	gen := c.timeout.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.timeout.cancel = cancel
	go runTicker(ctx, func() bool { return c.timeoutTick(gen) })
}

func (c *Controller) stopTimeoutLocked() {
	c.timeout.stop()
	c.timeoutOf = ""
	c.timeoutLeft = 0
}

func (c *Controller) timeoutTick(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timeout.gen || !c.timeout.running {
		return false
	}
	c.timeoutLeft--
	if c.timeoutLeft > 0 {
		return true
	}
	team := c.state.Team(c.timeoutOf).Name
	c.stopTimeoutLocked()
	c.dispatcher.Dispatch(events.Event{Type: events.TypeCueTimeoutOver, Data: team})
	c.dispatcher.Notice(fmt.Sprintf("Timeout over - %s back on the floor", team))
	return false
}

// TimeoutCountdown reports the running timeout countdown, if any.
func (c *Controller) TimeoutCountdown() (team game.TeamID, secondsLeft int, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeoutOf, c.timeoutLeft, c.timeout.running
}

// periodEnd runs the period state machine once the clock sits at 00:00.
// Quarter transitions reset team quarter fouls; overtime transitions
// keep fouls and reset the shared overtime timeout pool. A decided
// final period ends the game.
//
// The confirm hook blocks on operator input and may call back into the
// controller, so it is invoked with the lock released; the transition
// is re-validated after the answer in case the state moved meanwhile.
func (c *Controller) periodEnd() {
	c.mu.Lock()
	s := c.state
	if s.Over || !s.Live {
		c.mu.Unlock()
		return
	}
	period := s.Period
	var prompt string
	overtime := false
	switch {
	case period < game.Regulation:
		prompt = fmt.Sprintf("Quarter %d ended! Start Quarter %d?", period, period+1)
	case s.TeamA.Score == s.TeamB.Score:
		overtime = true
		prompt = fmt.Sprintf("%s ended level at %s! Start %s?",
			game.PeriodLabel(period), s.FinalScore(), game.PeriodLabel(period+1))
	default:
		s.Over = true
		c.dispatcher.Dispatch(events.Event{Type: events.TypeGameOver, Data: s.FinalScore()})
		c.dispatcher.Notice(fmt.Sprintf("Game Over! Final score: %s %d - %d %s",
			s.TeamA.Name, s.TeamA.Score, s.TeamB.Score, s.TeamB.Name))
		c.changedLocked()
		c.mu.Unlock()
		return
	}
	confirm := c.confirm
	c.mu.Unlock()

	if !confirm(prompt) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	s = c.state
	if s.Period != period || s.Over || !s.Live {
		return
	}
	if overtime && s.TeamA.Score != s.TeamB.Score {
		// An undo while the prompt was open broke the tie.
		return
	}
	s.Period++
	if overtime {
		s.ClockMinutes = c.cfg.OvertimeMinutes
		s.ClockSeconds = 0
		// Each overtime shares one timeout pool that starts fresh.
		s.TeamA.Timeouts.Overtime = 0
		s.TeamB.Timeouts.Overtime = 0
		c.dispatcher.Notice(fmt.Sprintf("%s ready. Quarter fouls carry over.", game.PeriodLabel(s.Period)))
	} else {
		s.TeamA.QuarterFouls = 0
		s.TeamB.QuarterFouls = 0
		c.resetClockLocked()
		c.dispatcher.Notice(fmt.Sprintf("%s ready. Start the clock when play resumes.", game.PeriodLabel(s.Period)))
	}
	c.changedLocked()
}

// ForcePeriodEnd runs the period transition as if the clock had expired.
// It backs the operator-driven "end period now" control and completes a
// transition announced by a natural clock expiry.
func (c *Controller) ForcePeriodEnd() {
	c.mu.Lock()
	c.clock.stop()
	expired := c.state.ClockMinutes == 0 && c.state.ClockSeconds == 0
	c.state.ClockMinutes = 0
	c.state.ClockSeconds = 0
	if !expired && !c.state.Over {
		c.dispatcher.Dispatch(events.Event{Type: events.TypeCuePeriodEnd, Data: game.PeriodLabel(c.state.Period)})
	}
	c.mu.Unlock()
	c.periodEnd()
}

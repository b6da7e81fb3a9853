// Package engine drives one game: the round state machine, lives, streak,
// and the shared round countdown.
//
// A Session is event-driven and owns no goroutines or real timers. Every
// transition returns a Step telling the caller what changed and which
// timers to arm; the caller delivers timer expiries back via HandleTimer.
// Timers carry a generation token, so pausing or finishing the session
// invalidates every pending callback in one place.
package engine

import (
	"fmt"
	"time"

	"github.com/verte-zerg/mindtiles/internal/model"
	"github.com/verte-zerg/mindtiles/internal/pattern"
	"github.com/verte-zerg/mindtiles/internal/scoring"
)

// Phase is the session state.
type Phase int

const (
	// PhaseIdle is the state before Start.
	PhaseIdle Phase = iota
	// PhaseReveal shows the pattern; input is not accepted.
	PhaseReveal
	// PhaseAwaitInput collects one color at a time.
	PhaseAwaitInput
	// PhaseEvaluated is the pacing gap between an evaluated round and the
	// next reveal.
	PhaseEvaluated
	// PhaseTerminal means the game is over; the session is inert.
	PhaseTerminal
)

// TimerKind identifies a scheduled callback.
type TimerKind int

const (
	// TimerRevealEnd closes the reveal window.
	TimerRevealEnd TimerKind = iota
	// TimerPacing starts the next reveal after an evaluated round.
	TimerPacing
	// TimerCountdown ticks the shared round clock down one second.
	TimerCountdown
)

// Timer is a callback for the caller to schedule. Deliver it back through
// HandleTimer after After elapses; stale generations are dropped.
type Timer struct {
	Kind  TimerKind
	After time.Duration
	Gen   int
}

// Outcome is the evaluation result of a full-length input.
type Outcome int

const (
	// OutcomeNone means no evaluation happened in this step.
	OutcomeNone Outcome = iota
	// OutcomeCorrect means the input matched the pattern.
	OutcomeCorrect
	// OutcomeIncorrect means the input did not match.
	OutcomeIncorrect
)

// Step reports the observable effects of one session event.
type Step struct {
	Revealed   model.Pattern // non-nil when a new pattern was revealed
	InputOpen  bool          // the reveal window ended; input is accepted
	Outcome    Outcome
	RoundScore int               // set when Outcome is OutcomeCorrect
	Result     *model.GameResult // non-nil exactly once per session
	Timers     []Timer
}

const (
	revealBase    = 2 * time.Second
	revealPerTile = 500 * time.Millisecond
	pacingDelay   = time.Second
	countdownTick = time.Second
)

// RevealDuration returns how long a pattern of n tiles stays visible.
func RevealDuration(n int) time.Duration {
	return revealBase + time.Duration(n)*revealPerTile
}

// Session is the state of one game at one level.
type Session struct {
	level int
	cfg   model.GameConfig
	gen   *pattern.Generator
	now   func() time.Time

	phase  Phase
	paused bool

	round         int
	pat           model.Pattern
	input         []model.Color
	score         int
	lives         int
	streak        int
	timeRemaining int

	timerGen        int
	revealDeadline  time.Time
	pacingDeadline  time.Time
	revealRemaining time.Duration
	pacingRemaining time.Duration

	finalized bool
}

// New creates a session for the given level. Levels below 1 are an
// invariant violation; callers vet the level against the catalog first.
func New(level int, cfg model.GameConfig, gen *pattern.Generator) (*Session, error) {
	if level < 1 {
		return nil, fmt.Errorf("invalid level %d", level)
	}
	return &Session{
		level: level,
		cfg:   cfg,
		gen:   gen,
		now:   time.Now,
		phase: PhaseIdle,
	}, nil
}

// Start begins the game: first reveal, countdown armed.
func (s *Session) Start() (Step, error) {
	if s.phase != PhaseIdle {
		return Step{}, fmt.Errorf("session already started")
	}
	s.round = 1
	s.score = 0
	s.streak = 0
	s.lives = s.cfg.Lives
	s.timeRemaining = s.cfg.RoundSeconds
	s.timerGen = 1

	step := s.startReveal()
	step.Timers = append(step.Timers, Timer{Kind: TimerCountdown, After: countdownTick, Gen: s.timerGen})
	return step, nil
}

func (s *Session) startReveal() Step {
	s.pat = s.gen.Generate(s.level)
	s.input = nil
	s.phase = PhaseReveal
	d := RevealDuration(len(s.pat))
	s.revealDeadline = s.now().Add(d)
	return Step{
		Revealed: s.pat,
		Timers:   []Timer{{Kind: TimerRevealEnd, After: d, Gen: s.timerGen}},
	}
}

// Submit appends one color to the input. Ignored outside PhaseAwaitInput,
// so late or racing inputs have no effect.
func (s *Session) Submit(c model.Color) Step {
	if s.phase != PhaseAwaitInput || s.paused {
		return Step{}
	}
	s.input = append(s.input, c)
	if len(s.input) < len(s.pat) {
		return Step{}
	}
	return s.evaluate()
}

func (s *Session) evaluate() Step {
	if model.Pattern(s.input).Equal(s.pat) {
		rs := scoring.RoundScore(s.timeRemaining, s.cfg.RoundSeconds, s.level)
		s.score += rs
		s.streak++
		if s.round < s.cfg.RoundsPerGame {
			s.round++
			return Step{
				Outcome:    OutcomeCorrect,
				RoundScore: rs,
				Timers:     s.armPacing(),
			}
		}
		return Step{
			Outcome:    OutcomeCorrect,
			RoundScore: rs,
			Result:     s.finalize(),
		}
	}

	s.lives--
	s.streak = 0
	if s.lives <= 0 {
		return Step{
			Outcome: OutcomeIncorrect,
			Result:  s.finalize(),
		}
	}
	// Retry the same round with a fresh pattern after the pacing gap.
	s.input = nil
	return Step{
		Outcome: OutcomeIncorrect,
		Timers:  s.armPacing(),
	}
}

func (s *Session) armPacing() []Timer {
	s.phase = PhaseEvaluated
	s.pacingDeadline = s.now().Add(pacingDelay)
	return []Timer{{Kind: TimerPacing, After: pacingDelay, Gen: s.timerGen}}
}

// HandleTimer consumes a scheduled callback. Timers from a previous
// generation (cancelled by pause, finish, or abandon) are dropped.
func (s *Session) HandleTimer(t Timer) Step {
	if t.Gen != s.timerGen || s.paused || s.phase == PhaseTerminal || s.phase == PhaseIdle {
		return Step{}
	}
	switch t.Kind {
	case TimerRevealEnd:
		if s.phase != PhaseReveal {
			return Step{}
		}
		s.phase = PhaseAwaitInput
		return Step{InputOpen: true}
	case TimerPacing:
		if s.phase != PhaseEvaluated {
			return Step{}
		}
		step := s.startReveal()
		return step
	case TimerCountdown:
		s.timeRemaining--
		if s.timeRemaining <= 0 {
			s.timeRemaining = 0
			// Time expiry ends the game regardless of partial progress.
			return Step{Result: s.finalize()}
		}
		return Step{Timers: []Timer{{Kind: TimerCountdown, After: countdownTick, Gen: s.timerGen}}}
	}
	return Step{}
}

// Pause freezes the countdown and all pending timers, keeping partial
// input intact. Remaining durations are recorded for Resume.
func (s *Session) Pause() {
	if s.paused || s.phase == PhaseTerminal || s.phase == PhaseIdle {
		return
	}
	s.paused = true
	s.timerGen++
	now := s.now()
	if s.phase == PhaseReveal {
		s.revealRemaining = remaining(s.revealDeadline, now)
	}
	if s.phase == PhaseEvaluated {
		s.pacingRemaining = remaining(s.pacingDeadline, now)
	}
}

// Resume re-arms timers with their remaining durations.
func (s *Session) Resume() []Timer {
	if !s.paused || s.phase == PhaseTerminal {
		return nil
	}
	s.paused = false
	timers := []Timer{{Kind: TimerCountdown, After: countdownTick, Gen: s.timerGen}}
	switch s.phase {
	case PhaseReveal:
		s.revealDeadline = s.now().Add(s.revealRemaining)
		timers = append(timers, Timer{Kind: TimerRevealEnd, After: s.revealRemaining, Gen: s.timerGen})
	case PhaseEvaluated:
		s.pacingDeadline = s.now().Add(s.pacingRemaining)
		timers = append(timers, Timer{Kind: TimerPacing, After: s.pacingRemaining, Gen: s.timerGen})
	}
	return timers
}

// Abandon ends the session without a result. No timer delivered afterwards
// has any effect, and no GameResult will ever be emitted.
func (s *Session) Abandon() {
	if s.phase == PhaseTerminal {
		return
	}
	s.phase = PhaseTerminal
	s.finalized = true
	s.timerGen++
}

// finalize builds the GameResult exactly once and makes the session inert.
func (s *Session) finalize() *model.GameResult {
	if s.finalized {
		return nil
	}
	s.finalized = true
	s.phase = PhaseTerminal
	s.timerGen++
	res := model.GameResult{
		Score:         scoring.FinalScore(s.score, s.streak),
		Level:         s.level,
		TimeUsed:      s.cfg.RoundSeconds - s.timeRemaining,
		Accuracy:      scoring.Accuracy(s.streak, s.round, len(s.pat)),
		RoundsReached: s.round,
	}
	return &res
}

func remaining(deadline, now time.Time) time.Duration {
	d := deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Level returns the level being played.
func (s *Session) Level() int { return s.level }

// Phase returns the current state.
func (s *Session) Phase() Phase { return s.phase }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Round returns the 1-based round index.
func (s *Session) Round() int { return s.round }

// Lives returns the remaining allowed mistakes.
func (s *Session) Lives() int { return s.lives }

// Streak returns the count of consecutive correct rounds.
func (s *Session) Streak() int { return s.streak }

// Score returns the accumulated round scores, without the streak bonus.
func (s *Session) Score() int { return s.score }

// TimeRemaining returns whole seconds left on the shared round clock.
func (s *Session) TimeRemaining() int { return s.timeRemaining }

// CurrentPattern returns the pattern of the current round.
func (s *Session) CurrentPattern() model.Pattern { return s.pat }

// Input returns the colors submitted so far this round.
func (s *Session) Input() []model.Color { return s.input }

// Package engine runs a single mafia match: the phase state machine, role
// resolution, voting and scoring.
//
// A Match owns all of its players and ballots. Every external input and the
// phase timer are serialized onto one loop goroutine; nothing touches match
// state from outside that loop. Pacing pauses during resolution happen on
// the loop itself, so queued actions wait until resolution completes.
package engine

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/omerta/internal/engine/kill"
	"github.com/louisbranch/omerta/internal/engine/vote"
	"github.com/louisbranch/omerta/internal/event"
	"github.com/louisbranch/omerta/internal/storage"
)

const tracerName = "github.com/louisbranch/omerta/internal/engine"

type command struct {
	fn    func() error
	reply chan error
}

// Match is the single live game instance.
type Match struct {
	id       string
	settings Settings
	sink     event.Sink
	store    storage.PlayerStore
	rand     *rand.Rand
	now      func() time.Time
	sleep    func(time.Duration)
	tracer   trace.Tracer

	ctx  context.Context
	cmds chan command

	phase    Phase
	players  []*Player
	byID     map[string]*Player
	deadline time.Time

	timer    *time.Timer
	timerGen int

	collectingRemaining time.Duration

	dayVote     *vote.Ballot
	eveningVote *vote.BoolBallot
	mafiaVote   *vote.Ballot
	yakuzaVote  *vote.Ballot

	kills     *kill.Manager
	relations *kill.Relations
}

// Option configures a Match.
type Option func(*Match)

// WithStore attaches the persistence collaborator.
func WithStore(store storage.PlayerStore) Option {
	return func(m *Match) { m.store = store }
}

// WithRand seeds the match's random source, for deterministic tests.
func WithRand(rnd *rand.Rand) Option {
	return func(m *Match) { m.rand = rnd }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Match) { m.now = now }
}

// WithSleep overrides the pacing sleep, so tests resolve instantly.
func WithSleep(sleep func(time.Duration)) Option {
	return func(m *Match) { m.sleep = sleep }
}

// New creates an idle match.
func New(settings Settings, sink event.Sink, opts ...Option) *Match {
	m := &Match{
		id:        uuid.NewString(),
		settings:  settings,
		sink:      sink,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
		sleep:     time.Sleep,
		tracer:    otel.Tracer(tracerName),
		ctx:       context.Background(),
		cmds:      make(chan command, 256),
		phase:     PhaseIdle,
		byID:      make(map[string]*Player),
		kills:     kill.NewManager(),
		relations: kill.NewRelations(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Run processes queued commands until ctx is canceled. It must be running
// for the request API to make progress.
func (m *Match) Run(ctx context.Context) {
	m.ctx = ctx
	for {
		select {
		case <-ctx.Done():
			m.cancelTimer()
			return
		case cmd := <-m.cmds:
			err := cmd.fn()
			if cmd.reply != nil {
				cmd.reply <- err
			}
		}
	}
}

// do serializes fn onto the match loop and waits for its result.
func (m *Match) do(fn func() error) error {
	reply := make(chan error, 1)
	select {
	case m.cmds <- command{fn: fn, reply: reply}:
	case <-m.ctx.Done():
		return m.ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-m.ctx.Done():
		return m.ctx.Err()
	}
}

// submitAsync enqueues fn without waiting; used by the timer.
func (m *Match) submitAsync(fn func() error) {
	select {
	case m.cmds <- command{fn: fn}:
	default:
		// The queue is saturated; drop rather than block the timer
		// goroutine. The deadline check on the next command recovers.
		log.Printf("engine: command queue full, dropping timer event for match %s", m.id)
	}
}

// armTimer schedules the phase deadline. A generation counter makes stale
// fires harmless: a timer that lost the race against a manual advance is
// ignored when it finally runs.
func (m *Match) armTimer(d time.Duration) {
	m.timerGen++
	gen := m.timerGen
	m.deadline = m.now().Add(d)
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(d, func() {
		m.submitAsync(func() error {
			m.onTimer(gen)
			return nil
		})
	})
}

func (m *Match) cancelTimer() {
	m.timerGen++
	if m.timer != nil {
		m.timer.Stop()
	}
}

// onTimer dispatches a phase deadline.
func (m *Match) onTimer(gen int) {
	if gen != m.timerGen {
		return
	}
	switch m.phase {
	case PhaseCollecting:
		m.tickCollecting()
	case PhaseMorning:
		m.endMorning()
	case PhaseDay:
		m.endDay()
	case PhaseEvening:
		m.endEvening()
	case PhaseNight:
		m.endNight()
	}
}

func (m *Match) emit(e event.Event) {
	if m.sink != nil {
		m.sink.Emit(e)
	}
}

func (m *Match) newEvent(kind event.Kind, payload any) event.Event {
	return event.New(m.id, kind, payload)
}

// pause is a cooperative beat between resolution announcements. It blocks
// the loop on purpose: inbound actions queue up and apply afterwards.
func (m *Match) pause() {
	if m.settings.PauseTime > 0 {
		m.sleep(m.settings.PauseTime)
	}
}

func (m *Match) alivePlayers() []*Player {
	out := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

func (m *Match) playerByOrdinal(ordinal int) *Player {
	if ordinal < 1 || ordinal > len(m.players) {
		return nil
	}
	p := m.players[ordinal-1]
	if !p.Alive {
		return nil
	}
	return p
}

// reset returns the match to idle, dropping all per-match state.
func (m *Match) reset() {
	m.cancelTimer()
	m.phase = PhaseIdle
	m.players = nil
	m.byID = make(map[string]*Player)
	m.dayVote = nil
	m.eveningVote = nil
	m.mafiaVote = nil
	m.yakuzaVote = nil
	m.kills = kill.NewManager()
	m.relations = kill.NewRelations()
}

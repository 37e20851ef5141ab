package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"crawlkit/internal/model"
	"crawlkit/internal/processor"
)

// DispatcherConfig configures a Dispatcher. Processors and Store are
// shared across every session the dispatcher creates.
type DispatcherConfig struct {
	Processors               []processor.InputProcessor
	Store                    processor.ResultStore
	SessionParallelism       int
	InputProcessingBatchSize int
	MaxCrawlDepth            int
	Throttler                Throttler
	Algorithm                Algorithm
	Logger                   *slog.Logger

	// Listener receives CrawlingFinished/CrawlingFailed events translated
	// from session lifecycle events. Must not block.
	Listener func(ClientEvent)

	// ShutdownGrace bounds how long Shutdown waits for active sessions
	// to observe cancellation before returning. Zero uses the default
	// of 5 seconds.
	ShutdownGrace time.Duration

	// sessionFactory allows dependency injection for testing; nil uses
	// NewSession.
	sessionFactory func(id string, cfg SessionConfig) *Session
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.SessionParallelism <= 0 {
		c.SessionParallelism = 10
	}
	if c.InputProcessingBatchSize <= 0 {
		c.InputProcessingBatchSize = 10
	}
	if c.MaxCrawlDepth <= 0 {
		c.MaxCrawlDepth = unlimitedDepth
	}
	if c.Throttler == nil {
		c.Throttler = NoOpThrottler{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = 5 * time.Second
	}
	if c.sessionFactory == nil {
		c.sessionFactory = NewSession
	}
	return c
}

func (c DispatcherConfig) validate() error {
	if len(c.Processors) == 0 {
		return ErrNoProcessors
	}
	if c.Store == nil {
		return ErrNilResultStore
	}
	if c.SessionParallelism < 1 {
		return ErrInvalidParallelism
	}
	if c.InputProcessingBatchSize < 1 {
		return ErrInvalidBatchSize
	}
	if c.MaxCrawlDepth < 1 {
		return ErrInvalidMaxDepth
	}
	return nil
}

// ClientKind tags the variant carried by a ClientEvent.
type ClientKind int

const (
	// ClientCrawlingFinished fires when a session finishes successfully.
	ClientCrawlingFinished ClientKind = iota
	// ClientCrawlingFailed fires when a session aborts with an error.
	ClientCrawlingFailed
)

// ClientEvent is the dispatcher-level event translated from a session's
// model.Event, per 6.4.
type ClientEvent struct {
	Kind               ClientKind
	InitialInputs      []string
	CrawlingResultID   string
	CrawlingDurationMs int64
	Err                error
}

// pendingSubmission is a queued set of normalized seeds awaiting a free
// session slot.
type pendingSubmission struct {
	seeds []string
}

// Dispatcher accepts submissions, bounds active sessions to a configured
// parallelism, queues overflow submissions, destroys finished sessions,
// promotes queued submissions, and forwards session events to the
// client listener. Grounded on the teacher's BatchProcessor for the
// bounded-concurrency shape, generalized from "run N bounded goroutines
// and wait" to "maintain a long-lived pool of independently-lifecycled
// sessions".
type Dispatcher struct {
	cfg    DispatcherConfig
	logger *slog.Logger

	mu        sync.Mutex
	active    map[string]*Session
	startedAt map[string]time.Time
	pending   []pendingSubmission
	shutdown  bool
	nextID    uint64

	wg sync.WaitGroup
}

// NewDispatcher validates cfg and constructs a Dispatcher.
func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{
		cfg:       cfg,
		logger:    cfg.Logger,
		active:    make(map[string]*Session),
		startedAt: make(map[string]time.Time),
	}, nil
}

// Submit validates and normalizes seed and any extraSeeds, then either
// starts a new session immediately or enqueues a pending submission if
// the dispatcher is already running SessionParallelism sessions.
func (d *Dispatcher) Submit(ctx context.Context, seed string, extraSeeds ...string) error {
	seeds := normalizeSeeds(append([]string{seed}, extraSeeds...))
	if len(seeds) == 0 {
		return ErrEmptySeed
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shutdown {
		return ErrDispatcherShutdown
	}

	if len(d.active) < d.cfg.SessionParallelism {
		d.startLocked(ctx, seeds)
		return nil
	}

	d.pending = append(d.pending, pendingSubmission{seeds: seeds})
	return nil
}

// normalizeSeeds trims whitespace, drops blanks, and deduplicates while
// preserving first-seen order.
func normalizeSeeds(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// startLocked creates and initializes a new session for seeds. Caller
// must hold d.mu.
func (d *Dispatcher) startLocked(ctx context.Context, seeds []string) {
	d.nextID++
	id := "session-" + strconv.FormatUint(d.nextID, 10)

	sessCfg := SessionConfig{
		InitialInputs:            seeds,
		Processors:               d.cfg.Processors,
		Store:                    d.cfg.Store,
		Throttler:                d.cfg.Throttler,
		Algorithm:                d.cfg.Algorithm,
		InputProcessingBatchSize: d.cfg.InputProcessingBatchSize,
		MaxCrawlDepth:            d.cfg.MaxCrawlDepth,
		Logger:                   d.logger,
		Listener:                 d.onSessionEvent,
	}

	sess := d.cfg.sessionFactory(id, sessCfg)
	d.active[id] = sess
	d.startedAt[id] = nowFunc()
	d.wg.Add(1)
	sess.Init(ctx)
}

// onSessionEvent is the Listener passed to every session this dispatcher
// creates. It runs on whichever goroutine the session delivers events
// from, per 6.4's "listener callbacks execute on whichever task delivers
// them" rule.
func (d *Dispatcher) onSessionEvent(ev model.Event) {
	switch ev.Kind {
	case model.EventSessionStarted:
		return
	case model.EventSessionFinished, model.EventSessionFailed:
		d.handleTerminal(ev)
	}
}

func (d *Dispatcher) handleTerminal(ev model.Event) {
	d.mu.Lock()

	sess, ok := d.active[ev.SessionID]
	var durationMs int64
	if ok {
		delete(d.active, ev.SessionID)
		if start, ok := d.startedAt[ev.SessionID]; ok {
			durationMs = nowFunc().Sub(start).Milliseconds()
			delete(d.startedAt, ev.SessionID)
		}
	}

	var clientEv ClientEvent
	if ev.Kind == model.EventSessionFinished {
		clientEv = ClientEvent{
			Kind:               ClientCrawlingFinished,
			InitialInputs:      ev.InitialInputs,
			CrawlingResultID:   ev.ResultID,
			CrawlingDurationMs: durationMs,
		}
	} else {
		clientEv = ClientEvent{
			Kind:               ClientCrawlingFailed,
			InitialInputs:      ev.InitialInputs,
			Err:                ev.Err,
			CrawlingDurationMs: durationMs,
		}
	}

	if !d.shutdown && len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		d.startLocked(context.Background(), next.seeds)
	}

	d.mu.Unlock()

	if ok {
		sess.Destroy()
		d.wg.Done()
	}

	if d.cfg.Listener != nil {
		d.cfg.Listener(clientEv)
	}
}

// Shutdown is idempotent. It clears the pending queue, destroys every
// active session, and marks the dispatcher shut down. It waits, up to
// ShutdownGrace, for active sessions' traversal goroutines to observe
// cancellation and return.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if d.shutdown {
		d.mu.Unlock()
		return
	}
	d.shutdown = true
	d.pending = nil

	ids := make([]string, 0, len(d.active))
	for id := range d.active {
		ids = append(ids, id)
	}
	sessions := make([]*Session, 0, len(ids))
	for _, id := range ids {
		sessions = append(sessions, d.active[id])
	}
	d.mu.Unlock()

	for _, sess := range sessions {
		sess.Destroy()
	}

	waitCh := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
	case <-time.After(d.cfg.ShutdownGrace):
		d.logger.Warn("shutdown grace period elapsed with sessions still finishing",
			"grace", d.cfg.ShutdownGrace.String())
	}
}

// ActiveCount returns the number of currently running sessions. Intended
// for tests and observability, not for flow control (callers racing
// against Submit should rely on Submit's own bound enforcement).
func (d *Dispatcher) ActiveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// PendingCount returns the number of queued submissions awaiting a free
// session slot.
func (d *Dispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (ev ClientEvent) String() string {
	switch ev.Kind {
	case ClientCrawlingFinished:
		return fmt.Sprintf("CrawlingFinished{resultId=%s, durationMs=%d}", ev.CrawlingResultID, ev.CrawlingDurationMs)
	case ClientCrawlingFailed:
		return fmt.Sprintf("CrawlingFailed{err=%v, durationMs=%d}", ev.Err, ev.CrawlingDurationMs)
	default:
		return "ClientEvent(unknown)"
	}
}

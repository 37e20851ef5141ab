package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"crawlkit/internal/model"
	"crawlkit/internal/processor"
)

// unlimitedDepth is the sentinel maxCrawlDepth value meaning "no limit",
// expressed as the largest representable positive depth.
const unlimitedDepth = int(^uint(0) >> 1)

// SessionConfig is the immutable configuration a Session is constructed
// from.
type SessionConfig struct {
	InitialInputs            []string
	Processors               []processor.InputProcessor
	Store                    processor.ResultStore
	Throttler                Throttler
	Algorithm                Algorithm
	InputProcessingBatchSize int
	MaxCrawlDepth            int
	Logger                   *slog.Logger
	Listener                 func(model.Event)
}

// Validate checks SessionConfig invariants, returning a sentinel error
// from this package on the first violation found.
func (c SessionConfig) Validate() error {
	if len(c.Processors) == 0 {
		return ErrNoProcessors
	}
	if c.Store == nil {
		return ErrNilResultStore
	}
	if c.InputProcessingBatchSize < 1 {
		return ErrInvalidBatchSize
	}
	if c.MaxCrawlDepth < 1 {
		return ErrInvalidMaxDepth
	}
	hasSeed := false
	for _, s := range c.InitialInputs {
		if trimmed := trimSpace(s); trimmed != "" {
			hasSeed = true
			break
		}
	}
	if !hasSeed {
		return ErrEmptySeed
	}
	return nil
}

// Session is a long-running task that owns a frontier, a crawling
// context, the invocation guard, and drives the traversal loop until the
// frontier drains or depth caps cut it off. Grounded on the teacher's
// pipeline.Pipeline/BatchProcessor pairing: Pipeline executes one unit of
// work end to end, BatchProcessor fans batches out with errgroup; Session
// folds both roles into the per-batch traversal loop below.
type Session struct {
	id     string
	cfg    SessionConfig
	logger *slog.Logger

	frontier Frontier
	ctxData  *model.CrawlingContext
	guard    *invocationGuard

	cancel context.CancelFunc

	mu   sync.Mutex
	done bool
}

// NewSession constructs a Session. id should be unique within the owning
// dispatcher. cfg must already have passed Validate.
func NewSession(id string, cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:       id,
		cfg:      cfg,
		logger:   logger.With("session_id", id),
		frontier: NewFrontier(cfg.Algorithm),
		ctxData:  model.NewCrawlingContext(),
		guard:    newInvocationGuard(),
	}
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Init starts the background traversal task. Non-blocking. Emits
// EventSessionStarted before work begins.
func (s *Session) Init(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	s.emit(model.Event{Kind: model.EventSessionStarted, SessionID: s.id, InitialInputs: s.cfg.InitialInputs})

	go s.run(ctx)
}

// Destroy cancels the traversal task cooperatively. Idempotent. After
// Destroy returns, no further events are delivered by this session.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) emit(ev model.Event) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done && ev.Kind != model.EventSessionStarted {
		return
	}
	if s.cfg.Listener != nil {
		s.cfg.Listener(ev)
	}
}

// run is the traversal loop described in 4.3: seed the frontier at depth
// 0 under the synthetic root source, then repeatedly remove a batch,
// fan the batch out across every processor, commit resulting outputs,
// and re-enqueue crawlable values below the depth cap.
func (s *Session) run(ctx context.Context) {
	startMs := nowFunc().UnixMilli()

	for _, raw := range s.cfg.InitialInputs {
		input, ok := model.NewCrawlingInput(model.RootSource, raw)
		if !ok {
			continue
		}
		s.frontier.Add(Item{Depth: 0, Input: input})
	}

	err := s.loop(ctx)

	endMs := nowFunc().UnixMilli()
	if endMs <= startMs {
		endMs = startMs + 1
	}

	if err != nil {
		s.emit(model.Event{Kind: model.EventSessionFailed, SessionID: s.id, InitialInputs: s.cfg.InitialInputs, Err: err})
		return
	}

	result := model.CrawlingResult{
		InitialInputs:       s.cfg.InitialInputs,
		Outputs:             s.ctxData.All(),
		CrawlingStartTimeMs: startMs,
		CrawlingEndTimeMs:   endMs,
	}

	resultID, saveErr := s.cfg.Store.Save(ctx, result)
	if saveErr != nil {
		s.emit(model.Event{Kind: model.EventSessionFailed, SessionID: s.id, InitialInputs: s.cfg.InitialInputs, Err: saveErr})
		return
	}

	s.emit(model.Event{Kind: model.EventSessionFinished, SessionID: s.id, InitialInputs: s.cfg.InitialInputs, ResultID: resultID})
}

// batchResult pairs a processor success with the depth its frontier
// children should carry.
type batchResult struct {
	depth  int
	output model.Output
}

func (s *Session) loop(ctx context.Context) error {
	for !s.frontier.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := s.frontier.RemoveBatch(s.cfg.InputProcessingBatchSize)
		if err != nil {
			return err
		}

		results, err := s.processBatch(ctx, batch)
		if err != nil {
			return err
		}

		for _, r := range results {
			stored, crawlableValues := r.output.Flatten()
			s.ctxData.Commit(stored)

			if r.depth >= s.cfg.MaxCrawlDepth {
				continue
			}
			for _, v := range crawlableValues {
				input, ok := model.NewCrawlingInput(r.output.Source, v)
				if !ok {
					continue
				}
				s.frontier.Add(Item{Depth: r.depth, Input: input})
			}
		}
	}
	return nil
}

// processBatch fans a batch of frontier items out across a sub-task per
// item; each item sub-task tries every processor in parallel. Batches
// proceed sequentially: this call returns only once every sub-task of
// the batch has completed, bounding peak parallelism to
// batchSize * |processors|.
func (s *Session) processBatch(ctx context.Context, batch []Item) ([]batchResult, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var results []batchResult

	for _, item := range batch {
		item := item
		childDepth := item.Depth + 1
		for _, p := range s.cfg.Processors {
			p := p
			g.Go(func() error {
				output, ok := s.invokeProcessor(gctx, p, item.Input)
				if !ok {
					return nil
				}
				mu.Lock()
				results = append(results, batchResult{depth: childDepth, output: output})
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// invokeProcessor implements 4.3.1. Any panic from a processor's
// CanProcess or Process is recovered and treated as a logged failure,
// matching the spec's "any unhandled exception is swallowed with a log"
// clause.
func (s *Session) invokeProcessor(ctx context.Context, p processor.InputProcessor, input model.CrawlingInput) (out model.Output, ok bool) {
	source := p.Source()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("processor panicked", "processor", source.ID, "input", input.RawInput, "panic", r)
			ok = false
		}
	}()

	ro := s.ctxData.ReadOnly()

	can := func() (res bool) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("canProcess panicked, treating as false", "processor", source.ID, "panic", r)
				res = false
			}
		}()
		return p.CanProcess(ctx, input, ro)
	}()
	if !can {
		return model.Output{}, false
	}

	// The guard is only marked once CanProcess has actually returned true,
	// so a false (or panicking) CanProcess never blocks a later encounter
	// of the same raw input under richer crawling context. Allow's
	// test-and-set is what keeps a genuinely processable pair at-most-once
	// under the batch's concurrent fan-out.
	if !s.guard.Allow(source.ID, input.RawInput) {
		return model.Output{}, false
	}

	s.cfg.Throttler.Throttle(ctx, source.ID)

	output, err := p.Process(ctx, input, ro)
	if err != nil {
		s.logger.Warn("processor failed", "processor", source.ID, "input", input.RawInput, "error", err)
		return model.Output{}, false
	}

	return output, true
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

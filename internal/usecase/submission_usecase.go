package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user/vidmeta/internal/entity"
	"github.com/user/vidmeta/internal/repository"
	"github.com/user/vidmeta/pkg/metrics"
)

var errAborted = errors.New("request aborted before a response was received")

// Listener receives a snapshot of the state after every transition.
type Listener func(entity.SubmissionState)

type listenerEntry struct {
	id uint64
	fn Listener
}

// SubmissionController owns the form state and runs submission cycles:
// validate, dispatch one request, resolve into a result or an error.
//
// Every Submit starts a new cycle with a higher sequence number. A response
// that arrives after a newer cycle has started is discarded.
type SubmissionController struct {
	repo   repository.MetadataRepository
	logger *zap.Logger

	mu        sync.Mutex
	state     entity.SubmissionState
	listeners []listenerEntry
	nextID    uint64
}

// Option configures a SubmissionController.
type Option func(*SubmissionController)

// WithInitialState resumes a previously stored state. No request can be in
// flight for a restored state, so Loading is cleared.
func WithInitialState(s entity.SubmissionState) Option {
	return func(c *SubmissionController) {
		s = s.Clone()
		s.Loading = false
		if s.Phase == "" || s.Phase == entity.PhaseLoading || s.Phase == entity.PhaseValidating {
			s.Phase = entity.PhaseIdle
		}
		c.state = s
	}
}

// NewSubmissionController creates a controller in the idle state.
func NewSubmissionController(repo repository.MetadataRepository, logger *zap.Logger, opts ...Option) *SubmissionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &SubmissionController{
		repo:   repo,
		logger: logger,
		state:  entity.SubmissionState{Phase: entity.PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *SubmissionController) State() entity.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe registers fn for every state change and returns a function that
// removes it. Listeners run synchronously with the transition and must not
// call back into the controller.
func (c *SubmissionController) Subscribe(fn Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetURL updates the URL text without submitting.
func (c *SubmissionController) SetURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.URL = url
	c.emitLocked()
}

// SelectPlatform sets the platform and immediately runs a full submission
// cycle with the current URL.
func (c *SubmissionController) SelectPlatform(ctx context.Context, p entity.Platform) entity.SubmissionState {
	c.mu.Lock()
	c.state.Platform = p
	c.emitLocked()
	c.mu.Unlock()

	return c.Submit(ctx)
}

// Submit runs one submission cycle and returns the state it left behind.
func (c *SubmissionController) Submit(ctx context.Context) (final entity.SubmissionState) {
	c.mu.Lock()
	c.state.Seq++
	seq := c.state.Seq
	c.state.Phase = entity.PhaseValidating
	c.state.Error = ""
	c.state.Result = nil
	c.state.Outcome = ""
	c.state.Loading = false
	req := c.state.Request()
	c.emitLocked()

	if err := Validate(req.URL, req.Platform); err != nil {
		c.state.Phase = entity.PhaseFailed
		c.state.Error = UserMessage(err)
		c.state.Outcome = outcome(err)
		c.emitLocked()
		final = c.state.Clone()
		c.mu.Unlock()

		metrics.ObserveSubmission(req.Platform.String(), outcome(err))
		c.logger.Info("submission rejected",
			zap.Uint64("seq", seq),
			zap.String("platform", req.Platform.String()),
			zap.String("outcome", outcome(err)),
		)
		return final
	}

	c.state.Phase = entity.PhaseLoading
	c.state.Loading = true
	c.emitLocked()
	c.mu.Unlock()

	start := time.Now()
	var (
		result entity.ScrapeResult
		err    = errAborted
	)
	defer func() {
		final = c.resolve(seq, req, result, err, time.Since(start))
	}()
	result, err = c.repo.FetchMetadata(ctx, req)
	return final
}

// resolve applies the outcome of request seq. Loading is cleared on every
// path; a stale response leaves the newer cycle's state untouched.
func (c *SubmissionController) resolve(seq uint64, req entity.SubmissionRequest, result entity.ScrapeResult, err error, took time.Duration) entity.SubmissionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := []zap.Field{
		zap.Uint64("seq", seq),
		zap.String("platform", req.Platform.String()),
		zap.Duration("took", took),
	}

	if seq != c.state.Seq {
		metrics.ObserveSubmission(req.Platform.String(), "stale")
		c.logger.Info("discarding stale response", append(fields, zap.Uint64("latest_seq", c.state.Seq))...)
		return c.state.Clone()
	}

	if err != nil {
		c.state.Result = nil
		c.state.Error = UserMessage(err)
		c.state.Phase = entity.PhaseFailed
		c.logger.Warn("submission failed", append(fields, zap.String("outcome", outcome(err)), zap.Error(err))...)
	} else {
		if result == nil {
			result = entity.ScrapeResult{}
		}
		c.state.Result = result
		c.state.Error = ""
		c.state.Phase = entity.PhaseSuccess
		c.logger.Info("submission succeeded", append(fields, zap.Int("fields", len(result)))...)
	}
	c.state.Loading = false
	c.state.Outcome = outcome(err)
	metrics.ObserveSubmission(req.Platform.String(), c.state.Outcome)
	c.emitLocked()
	return c.state.Clone()
}

func (c *SubmissionController) emitLocked() {
	if len(c.listeners) == 0 {
		return
	}
	snap := c.state.Clone()
	for _, l := range c.listeners {
		l.fn(snap)
	}
}

package repository

import (
	"context"
	"time"

	"github.com/user/vidmeta/internal/entity"
)

// SessionRepository stores the form state of a browser session between requests.
//
// Each submission cycle claims a sequence number before it runs. A cycle may
// only write its state while no newer cycle has been claimed, so overlapping
// requests on one session resolve to the newest one.
type SessionRepository interface {
	// Load returns the stored state and whether the session exists.
	Load(ctx context.Context, id string) (entity.SubmissionState, bool, error)
	// Save stores the state unconditionally for at most ttl.
	Save(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration) error
	// Claim reserves the next cycle number for the session. It is greater
	// than every number previously claimed or saved.
	Claim(ctx context.Context, id string, ttl time.Duration) (uint64, error)
	// SaveIfLatest stores the state only if state.Seq is not older than the
	// newest claimed cycle. It reports whether the state was written.
	SaveIfLatest(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration) (bool, error)
	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}

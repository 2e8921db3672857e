package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/vidmeta/internal/entity"
)

const sessionKeyPrefix = "vidmeta:session:"

// saveScript writes the state and raises the cycle counter. With ARGV[4]
// set to "1" the write is skipped when a newer cycle has been claimed.
var saveScript = redis.NewScript(`
local latest = tonumber(redis.call('GET', KEYS[2]) or '0')
local seq = tonumber(ARGV[2])
if ARGV[4] == '1' and seq < latest then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
if seq > latest then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('PEXPIRE', KEYS[2], ARGV[3])
end
return 1
`)

var claimScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[1])
return n
`)

// SessionRepoImpl stores session state in Redis as JSON with a TTL, so form
// state survives across server replicas.
type SessionRepoImpl struct {
	client *redis.Client
}

// NewSessionRepo creates a new instance of SessionRepoImpl.
func NewSessionRepo(client *redis.Client) *SessionRepoImpl {
	return &SessionRepoImpl{client: client}
}

func (r *SessionRepoImpl) key(id string) string {
	return sessionKeyPrefix + id
}

func (r *SessionRepoImpl) seqKey(id string) string {
	return sessionKeyPrefix + id + ":seq"
}

// Load fetches and decodes a session. A missing key is not an error.
func (r *SessionRepoImpl) Load(ctx context.Context, id string) (entity.SubmissionState, bool, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.SubmissionState{}, false, nil
	}
	if err != nil {
		return entity.SubmissionState{}, false, fmt.Errorf("loading session: %w", err)
	}

	var state entity.SubmissionState
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&state); err != nil {
		return entity.SubmissionState{}, false, fmt.Errorf("decoding session: %w", err)
	}
	return state, true, nil
}

// Save encodes the state and sets it with the given expiry.
func (r *SessionRepoImpl) Save(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration) error {
	_, err := r.save(ctx, id, state, ttl, false)
	return err
}

// SaveIfLatest is Save guarded by the cycle counter, checked and written
// atomically by a script.
func (r *SessionRepoImpl) SaveIfLatest(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration) (bool, error) {
	return r.save(ctx, id, state, ttl, true)
}

func (r *SessionRepoImpl) save(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration, conditional bool) (bool, error) {
	if ttl.Milliseconds() <= 0 {
		return false, fmt.Errorf("session ttl must be at least 1ms, got %v", ttl)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return false, fmt.Errorf("encoding session: %w", err)
	}
	flag := "0"
	if conditional {
		flag = "1"
	}
	n, err := saveScript.Run(ctx, r.client,
		[]string{r.key(id), r.seqKey(id)},
		raw, state.Seq, ttl.Milliseconds(), flag,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("saving session: %w", err)
	}
	return n == 1, nil
}

// Claim increments the session's cycle counter.
func (r *SessionRepoImpl) Claim(ctx context.Context, id string, ttl time.Duration) (uint64, error) {
	if ttl.Milliseconds() <= 0 {
		return 0, fmt.Errorf("session ttl must be at least 1ms, got %v", ttl)
	}
	n, err := claimScript.Run(ctx, r.client, []string{r.seqKey(id)}, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("claiming session cycle: %w", err)
	}
	return uint64(n), nil
}

// Delete removes a session and its cycle counter.
func (r *SessionRepoImpl) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id), r.seqKey(id)).Err()
}

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/user/vidmeta/internal/entity"
)

// Runs against a real server only when VIDMETA_TEST_REDIS_ADDR is set.
func newTestRepo(t *testing.T) *SessionRepoImpl {
	t.Helper()
	addr := os.Getenv("VIDMETA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VIDMETA_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}
	return NewSessionRepo(client)
}

func TestSessionRepoRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := uuid.NewString()
	t.Cleanup(func() { r.Delete(ctx, id) })

	state := entity.SubmissionState{
		URL:      "https://www.tiktok.com/@a/video/1",
		Platform: entity.PlatformTikTok,
		Phase:    entity.PhaseSuccess,
		Result:   entity.ScrapeResult{"title": "X", "likes": 42},
		Seq:      3,
	}
	if err := r.Save(ctx, id, state, time.Minute); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := r.Load(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Platform != entity.PlatformTikTok || got.Seq != 3 {
		t.Fatalf("Load() = %+v", got)
	}
	if v, _ := got.Result.Get("likes"); v != "42" {
		t.Fatalf("likes = %q", v)
	}
}

func TestSessionRepoMissing(t *testing.T) {
	r := newTestRepo(t)
	_, ok, err := r.Load(context.Background(), uuid.NewString())
	if err != nil || ok {
		t.Fatalf("Load() of unknown id = %v, %v", ok, err)
	}
}

func TestSessionRepoKeepsEmptyResult(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := uuid.NewString()
	t.Cleanup(func() { r.Delete(ctx, id) })

	state := entity.SubmissionState{Phase: entity.PhaseSuccess, Result: entity.ScrapeResult{}, Outcome: entity.OutcomeSuccess}
	if err := r.Save(ctx, id, state, time.Minute); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, _, err := r.Load(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Result == nil {
		t.Fatal("empty result of a successful cycle loaded as nil")
	}
}

func TestSessionRepoClaimAndSaveIfLatest(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	id := uuid.NewString()
	t.Cleanup(func() { r.Delete(ctx, id) })

	if err := r.Save(ctx, id, entity.SubmissionState{URL: "base", Seq: 4}, time.Minute); err != nil {
		t.Fatal(err)
	}
	older, err := r.Claim(ctx, id, time.Minute)
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	newer, _ := r.Claim(ctx, id, time.Minute)
	if older != 5 || newer != 6 {
		t.Fatalf("Claim() = %d, %d, want 5, 6", older, newer)
	}

	if ok, err := r.SaveIfLatest(ctx, id, entity.SubmissionState{URL: "new", Seq: newer}, time.Minute); err != nil || !ok {
		t.Fatalf("SaveIfLatest(newer) = %v, %v", ok, err)
	}
	if ok, err := r.SaveIfLatest(ctx, id, entity.SubmissionState{URL: "old", Seq: older}, time.Minute); err != nil || ok {
		t.Fatalf("SaveIfLatest(older) = %v, %v, want rejected", ok, err)
	}
	if got, _, _ := r.Load(ctx, id); got.URL != "new" {
		t.Fatalf("stored URL = %q, want new", got.URL)
	}
}

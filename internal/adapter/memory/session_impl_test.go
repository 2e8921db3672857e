package memory

import (
	"context"
	"testing"
	"time"

	"github.com/user/vidmeta/internal/entity"
)

func TestSessionRepoSaveLoad(t *testing.T) {
	r := NewSessionRepo()
	ctx := context.Background()

	state := entity.SubmissionState{
		URL:      "https://youtube.com/watch?v=1",
		Platform: entity.PlatformYouTube,
		Phase:    entity.PhaseSuccess,
		Result:   entity.ScrapeResult{"title": "X"},
	}
	if err := r.Save(ctx, "abc", state, time.Minute); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := r.Load(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.URL != state.URL || got.Result["title"] != "X" {
		t.Fatalf("Load() = %+v", got)
	}

	got.Result["title"] = "mutated"
	again, _, _ := r.Load(ctx, "abc")
	if again.Result["title"] != "X" {
		t.Fatal("Load() must return a copy")
	}
}

func TestSessionRepoExpiry(t *testing.T) {
	r := NewSessionRepo()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	r.Save(ctx, "a", entity.SubmissionState{URL: "a"}, time.Minute)
	r.Save(ctx, "b", entity.SubmissionState{URL: "b"}, time.Hour)

	now = now.Add(2 * time.Minute)
	if _, ok, _ := r.Load(ctx, "a"); ok {
		t.Fatal("expired session should not load")
	}
	if _, ok, _ := r.Load(ctx, "b"); !ok {
		t.Fatal("live session should load")
	}
	if removed := r.Sweep(); removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestSessionRepoDelete(t *testing.T) {
	r := NewSessionRepo()
	ctx := context.Background()
	r.Save(ctx, "a", entity.SubmissionState{}, time.Minute)
	r.Delete(ctx, "a")
	if _, ok, _ := r.Load(ctx, "a"); ok {
		t.Fatal("deleted session should not load")
	}
}

func TestRunJanitorStops(t *testing.T) {
	r := NewSessionRepo()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestSessionRepoClaimIsMonotonic(t *testing.T) {
	r := NewSessionRepo()
	ctx := context.Background()

	r.Save(ctx, "a", entity.SubmissionState{Phase: entity.PhaseSuccess, Seq: 4}, time.Minute)
	first, _ := r.Claim(ctx, "a", time.Minute)
	second, _ := r.Claim(ctx, "a", time.Minute)
	if first != 5 || second != 6 {
		t.Fatalf("Claim() = %d, %d, want 5, 6", first, second)
	}

	fresh, _ := r.Claim(ctx, "b", time.Minute)
	if fresh != 1 {
		t.Fatalf("Claim() on a new session = %d, want 1", fresh)
	}
	if got, ok, _ := r.Load(ctx, "b"); !ok || got.Phase != entity.PhaseIdle {
		t.Fatalf("Load() after Claim = %+v, %v", got, ok)
	}
}

func TestSessionRepoSaveIfLatest(t *testing.T) {
	r := NewSessionRepo()
	ctx := context.Background()

	older, _ := r.Claim(ctx, "a", time.Minute)
	newer, _ := r.Claim(ctx, "a", time.Minute)

	ok, err := r.SaveIfLatest(ctx, "a", entity.SubmissionState{URL: "new", Seq: newer}, time.Minute)
	if err != nil || !ok {
		t.Fatalf("SaveIfLatest(newer) = %v, %v", ok, err)
	}
	ok, err = r.SaveIfLatest(ctx, "a", entity.SubmissionState{URL: "old", Seq: older}, time.Minute)
	if err != nil || ok {
		t.Fatalf("SaveIfLatest(older) = %v, %v, want rejected", ok, err)
	}
	if got, _, _ := r.Load(ctx, "a"); got.URL != "new" {
		t.Fatalf("stored URL = %q, want new", got.URL)
	}
}

func TestSessionRepoSaveIfLatestRejectsWhileNewerInFlight(t *testing.T) {
	r := NewSessionRepo()
	ctx := context.Background()

	older, _ := r.Claim(ctx, "a", time.Minute)
	r.Claim(ctx, "a", time.Minute)

	if ok, _ := r.SaveIfLatest(ctx, "a", entity.SubmissionState{URL: "old", Seq: older}, time.Minute); ok {
		t.Fatal("older cycle saved while a newer one was claimed")
	}
}

package engage_test

import (
	"context"
	"testing"

	"github.com/edupath/edupath-backend/internal/engage"
)

func TestProgress_DefaultsToZero(t *testing.T) {
	ctx := context.Background()
	store := engage.NewInMemoryStore()

	p, err := store.Progress(ctx, "stu-1", "blk-1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Percent != 0 || p.Complete() {
		t.Fatalf("untracked block must report 0/incomplete, got %+v", p)
	}
}

func TestUpsert_OverwritesAndClamps(t *testing.T) {
	ctx := context.Background()
	store := engage.NewInMemoryStore()

	if err := store.Upsert(ctx, "stu-1", "blk-1", 40); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Upsert(ctx, "stu-1", "blk-1", 90); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p, _ := store.Progress(ctx, "stu-1", "blk-1"); p.Percent != 90 {
		t.Fatalf("latest write wins, got %v", p.Percent)
	}

	_ = store.Upsert(ctx, "stu-1", "blk-1", 140)
	if p, _ := store.Progress(ctx, "stu-1", "blk-1"); p.Percent != 100 || !p.Complete() {
		t.Fatalf("percent must clamp to 100 and count complete, got %+v", p)
	}
	_ = store.Upsert(ctx, "stu-1", "blk-1", -5)
	if p, _ := store.Progress(ctx, "stu-1", "blk-1"); p.Percent != 0 {
		t.Fatalf("percent must clamp to 0, got %v", p.Percent)
	}
}

func TestUpsert_KeyedPerUserAndBlock(t *testing.T) {
	ctx := context.Background()
	store := engage.NewInMemoryStore()

	_ = store.Upsert(ctx, "stu-1", "blk-1", 100)
	_ = store.Upsert(ctx, "stu-2", "blk-1", 30)

	if p, _ := store.Progress(ctx, "stu-1", "blk-1"); p.Percent != 100 {
		t.Fatalf("stu-1 progress clobbered: %v", p.Percent)
	}
	if p, _ := store.Progress(ctx, "stu-2", "blk-1"); p.Percent != 30 {
		t.Fatalf("stu-2 progress wrong: %v", p.Percent)
	}
	if p, _ := store.Progress(ctx, "stu-1", "blk-2"); p.Percent != 0 {
		t.Fatalf("different block must stay untracked: %v", p.Percent)
	}
}

func TestProgressComplete(t *testing.T) {
	p := engage.Progress{Percent: 100}
	if !p.Complete() {
		t.Fatalf("100%% must be complete")
	}
	p.Percent = 99.5
	if p.Complete() {
		t.Fatalf("99.5%% must not be complete")
	}
}

package jobs

import (
	"context"
	"testing"
	"time"

	"vaultdrive/storage"
)

func TestSweepRespectsFireTime(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore()
	cleaner := NewArchiveCleaner(blobs, 10*time.Minute)

	blobs.Put("archive-1", []byte("zip bytes"))
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cleaner.ScheduleAt("archive-1", base.Add(10*time.Minute))

	if got := cleaner.Sweep(ctx, base.Add(9*time.Minute)); got != 0 {
		t.Errorf("early sweep deleted %d, want 0", got)
	}
	if !blobs.Exists("archive-1") {
		t.Fatal("blob deleted before its fire time")
	}
	if cleaner.PendingCount() != 1 {
		t.Errorf("pending = %d, want 1", cleaner.PendingCount())
	}

	if got := cleaner.Sweep(ctx, base.Add(10*time.Minute)); got != 1 {
		t.Errorf("due sweep deleted %d, want 1", got)
	}
	if blobs.Exists("archive-1") {
		t.Error("blob still present after due sweep")
	}
	if cleaner.PendingCount() != 0 {
		t.Errorf("pending = %d, want 0", cleaner.PendingCount())
	}
}

func TestSweepOnlyDrainsDueEntries(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore()
	cleaner := NewArchiveCleaner(blobs, time.Minute)

	blobs.Put("early", []byte("a"))
	blobs.Put("late", []byte("b"))
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cleaner.ScheduleAt("early", base.Add(time.Minute))
	cleaner.ScheduleAt("late", base.Add(time.Hour))

	if got := cleaner.Sweep(ctx, base.Add(2*time.Minute)); got != 1 {
		t.Fatalf("sweep deleted %d, want 1", got)
	}
	if blobs.Exists("early") {
		t.Error("due blob survived the sweep")
	}
	if !blobs.Exists("late") {
		t.Error("future blob deleted early")
	}
	if cleaner.PendingCount() != 1 {
		t.Errorf("pending = %d, want 1", cleaner.PendingCount())
	}
}

func TestSweepMissingRefIsNoOp(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore()
	cleaner := NewArchiveCleaner(blobs, time.Minute)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cleaner.ScheduleAt("never-stored", base)

	if got := cleaner.Sweep(ctx, base.Add(time.Second)); got != 1 {
		t.Errorf("sweep deleted %d, want 1 attempted", got)
	}
	if cleaner.PendingCount() != 0 {
		t.Errorf("pending = %d, want 0 after no-op delete", cleaner.PendingCount())
	}
	if got := blobs.DeleteCalls("never-stored"); got != 1 {
		t.Errorf("delete calls = %d, want 1", got)
	}
}

func TestScheduleUsesConfiguredDelay(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore()
	cleaner := NewArchiveCleaner(blobs, time.Hour)

	blobs.Put("archive-1", []byte("zip bytes"))
	cleaner.Schedule("archive-1")

	// Fires an hour out, so an immediate sweep must leave it queued.
	if got := cleaner.Sweep(ctx, time.Now()); got != 0 {
		t.Errorf("immediate sweep deleted %d, want 0", got)
	}
	if got := cleaner.Sweep(ctx, time.Now().Add(2*time.Hour)); got != 1 {
		t.Errorf("late sweep deleted %d, want 1", got)
	}
	if blobs.Exists("archive-1") {
		t.Error("blob still present after delayed sweep")
	}
}

func TestDoubleScheduleSameRef(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore()
	cleaner := NewArchiveCleaner(blobs, time.Minute)

	blobs.Put("archive-1", []byte("zip bytes"))
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cleaner.ScheduleAt("archive-1", base)
	cleaner.ScheduleAt("archive-1", base)

	// Second delete hits an already-missing ref and still counts as success.
	if got := cleaner.Sweep(ctx, base.Add(time.Second)); got != 2 {
		t.Errorf("sweep deleted %d, want 2 attempts", got)
	}
	if blobs.Exists("archive-1") {
		t.Error("blob still present")
	}
	if got := blobs.DeleteCalls("archive-1"); got != 2 {
		t.Errorf("delete calls = %d, want 2", got)
	}
}

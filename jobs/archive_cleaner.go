package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"vaultdrive/storage"
)

// ArchiveCleaner deletes temporary export archives from the blob store a
// fixed delay after they were scheduled. Delivery is at-least-once and the
// handler is idempotent: deleting a ref that is already gone is a no-op
// success. Failures are logged and never reach the request that scheduled
// the cleanup.
type ArchiveCleaner struct {
	blobs  storage.BlobStore
	delay  time.Duration
	tick   time.Duration
	logger *log.Logger

	mu      sync.Mutex
	pending []pendingDelete
	stop    chan struct{}
}

type pendingDelete struct {
	ref    string
	fireAt time.Time
}

func NewArchiveCleaner(blobs storage.BlobStore, delay time.Duration) *ArchiveCleaner {
	return &ArchiveCleaner{
		blobs:  blobs,
		delay:  delay,
		tick:   30 * time.Second,
		logger: log.New(log.Writer(), "[ARCHIVE_CLEANER] ", log.LstdFlags),
		stop:   make(chan struct{}),
	}
}

// Schedule queues ref for deletion after the configured delay.
func (c *ArchiveCleaner) Schedule(ref string) {
	c.ScheduleAt(ref, time.Now().Add(c.delay))
}

// ScheduleAt queues ref for deletion no earlier than fireAt.
func (c *ArchiveCleaner) ScheduleAt(ref string, fireAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, pendingDelete{ref: ref, fireAt: fireAt})
}

// Start runs the sweep loop until Stop is called.
func (c *ArchiveCleaner) Start() {
	c.logger.Printf("starting archive cleaner, delay %v", c.delay)
	go func() {
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Sweep(context.Background(), time.Now())
			case <-c.stop:
				return
			}
		}
	}()
}

func (c *ArchiveCleaner) Stop() {
	close(c.stop)
}

// Sweep deletes every queued ref whose fire time has passed and returns how
// many deletions were attempted. A failed delete is logged and dropped; the
// blob backend treats missing refs as success, so a later manual retry
// cannot double-fault.
func (c *ArchiveCleaner) Sweep(ctx context.Context, now time.Time) int {
	c.mu.Lock()
	var due []pendingDelete
	var remaining []pendingDelete
	for _, entry := range c.pending {
		if entry.fireAt.After(now) {
			remaining = append(remaining, entry)
		} else {
			due = append(due, entry)
		}
	}
	c.pending = remaining
	c.mu.Unlock()

	for _, entry := range due {
		if err := c.blobs.Delete(ctx, entry.ref); err != nil {
			c.logger.Printf("failed to delete temporary archive %s: %v", entry.ref, err)
			continue
		}
		c.logger.Printf("temporary archive %s deleted", entry.ref)
	}
	return len(due)
}

// PendingCount reports how many deletions are still queued.
func (c *ArchiveCleaner) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

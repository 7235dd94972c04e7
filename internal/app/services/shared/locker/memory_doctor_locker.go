package locker

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// MemoryDoctorLocker is an in-process lock table. Doctors are spread over
// shards by hash; each shard keeps one semaphore per doctor currently in use,
// so unrelated doctors never wait on each other.
type MemoryDoctorLocker struct {
	shards []*lockShard
}

type lockShard struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func NewMemoryDoctorLocker(shardCount int) *MemoryDoctorLocker {
	if shardCount <= 0 {
		shardCount = 1
	}
	shards := make([]*lockShard, shardCount)
	for i := range shards {
		shards[i] = &lockShard{entries: make(map[string]*lockEntry)}
	}
	return &MemoryDoctorLocker{shards: shards}
}

func (l *MemoryDoctorLocker) shardFor(docID string) *lockShard {
	return l.shards[xxhash.Sum64String(docID)%uint64(len(l.shards))]
}

func (l *MemoryDoctorLocker) Lock(ctx context.Context, docID string) (func(), error) {
	shard := l.shardFor(docID)
	entry := shard.acquireEntry(docID)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		shard.releaseEntry(docID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			shard.releaseEntry(docID, entry)
		})
	}, nil
}

func (s *lockShard) acquireEntry(docID string) *lockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[docID]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		s.entries[docID] = entry
	}
	entry.refs++
	return entry
}

func (s *lockShard) releaseEntry(docID string, entry *lockEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(s.entries, docID)
	}
}

// held returns the number of doctors with a live entry, for tests.
func (l *MemoryDoctorLocker) held() int {
	total := 0
	for _, shard := range l.shards {
		shard.mu.Lock()
		total += len(shard.entries)
		shard.mu.Unlock()
	}
	return total
}

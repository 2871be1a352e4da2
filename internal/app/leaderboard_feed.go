package app

import (
	"context"
	"sync"
	"time"

	"wareeth/internal/domain"
)

const defaultLeaderboardSize = 10

// LeaderboardFeed pushes a fresh leaderboard snapshot to subscribers every
// time a game result is recorded. It implements FinishListener.
type LeaderboardFeed struct {
	stats StatsStore
	size  int
	now   func() time.Time

	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]struct{}
}

func NewLeaderboardFeed(stats StatsStore, size int) *LeaderboardFeed {
	if size <= 0 {
		size = defaultLeaderboardSize
	}
	return &LeaderboardFeed{
		stats:       stats,
		size:        size,
		now:         time.Now,
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

// Snapshot returns the current top players.
func (f *LeaderboardFeed) Snapshot(ctx context.Context) (domain.Leaderboard, error) {
	entries, err := f.stats.TopPlayers(ctx, f.size)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{Entries: entries, UpdatedAt: f.now()}, nil
}

// Subscribe returns a channel receiving leaderboard updates, primed with the
// current snapshot. The caller must invoke the cancel function to avoid leaks.
func (f *LeaderboardFeed) Subscribe(ctx context.Context) (<-chan domain.Leaderboard, func(), error) {
	initial, err := f.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan domain.Leaderboard, 8)
	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	ch <- initial

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel, nil
}

// GameFinished refreshes the snapshot and fans it out to subscribers.
func (f *LeaderboardFeed) GameFinished(int64, domain.GameSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snapshot, err := f.Snapshot(ctx)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale update so a slow reader never blocks the fan-out.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

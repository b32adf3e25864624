package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalogmart/internal/caching"
	"catalogmart/internal/models"
	"catalogmart/pkg/logger"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// subscriberBuffer sizes each subscriber channel. A slow consumer skips
// intermediate snapshots rather than stalling the import.
const subscriberBuffer = 16

// ErrSessionNotFound is returned when a session id is unknown both in memory
// and in the snapshot store.
var ErrSessionNotFound = fmt.Errorf("import session not found")

// ProgressBroker fans import progress snapshots out to subscribers keyed by
// session id. The last snapshot is replayed immediately to every new
// subscriber (reconnect after a page reload), streams end on a terminal
// snapshot, and finished sessions are garbage-collected one retention window
// after completion. Snapshots are mirrored to redis with the same retention
// so a late subscriber can still read the final summary.
type ProgressBroker struct {
	cache     caching.CacheService
	clock     clockwork.Clock
	retention time.Duration
	log       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*progressSession
}

type progressSession struct {
	last        *models.ImportProgress
	subscribers map[int]chan models.ImportProgress
	nextSub     int
	finishedAt  time.Time // zero until a terminal snapshot is published
}

func NewProgressBroker(cache caching.CacheService, clock clockwork.Clock, retention time.Duration) *ProgressBroker {
	return &ProgressBroker{
		cache:     cache,
		clock:     clock,
		retention: retention,
		log:       logger.Get(),
		sessions:  make(map[string]*progressSession),
	}
}

// Publish records a snapshot and delivers it to current subscribers. On a
// terminal snapshot all subscriber channels are closed; the session itself
// lingers for the retention window so reconnects still see the final state.
func (b *ProgressBroker) Publish(ctx context.Context, progress models.ImportProgress) {
	progress.UpdatedAt = b.clock.Now()

	if err := b.cache.SetImportProgress(ctx, &progress, b.retention+time.Minute); err != nil {
		b.log.Warn("failed to store import progress snapshot",
			zap.String("session_id", progress.SessionID),
			zap.Error(err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	session := b.sessions[progress.SessionID]
	if session == nil {
		session = &progressSession{subscribers: make(map[int]chan models.ImportProgress)}
		b.sessions[progress.SessionID] = session
	}
	session.last = &progress

	for id, ch := range session.subscribers {
		select {
		case ch <- progress:
		default:
			// Subscriber is behind; it will catch up from a later snapshot.
			b.log.Debug("dropping progress snapshot for slow subscriber",
				zap.String("session_id", progress.SessionID),
				zap.Int("subscriber", id))
		}
	}

	if progress.Terminal() {
		session.finishedAt = b.clock.Now()
		for id, ch := range session.subscribers {
			close(ch)
			delete(session.subscribers, id)
		}
	}
}

// Subscribe attaches to a session's stream. The last known snapshot is
// delivered first; if the session already reached a terminal state the
// channel closes right after that replay. The returned cancel function
// detaches the subscriber.
func (b *ProgressBroker) Subscribe(ctx context.Context, sessionID string) (<-chan models.ImportProgress, func(), error) {
	b.mu.Lock()
	session := b.sessions[sessionID]

	if session == nil {
		b.mu.Unlock()
		// The session may belong to another process or have been GC'd from
		// memory; fall back to the snapshot store.
		snapshot, err := b.cache.GetImportProgress(ctx, sessionID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read import session: %w", err)
		}
		if snapshot == nil {
			return nil, nil, ErrSessionNotFound
		}
		ch := make(chan models.ImportProgress, 1)
		ch <- *snapshot
		close(ch)
		return ch, func() {}, nil
	}

	ch := make(chan models.ImportProgress, subscriberBuffer)
	if session.last != nil {
		ch <- *session.last
	}
	if session.last != nil && session.last.Terminal() {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}, nil
	}

	id := session.nextSub
	session.nextSub++
	session.subscribers[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s := b.sessions[sessionID]; s != nil {
			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		}
	}
	return ch, cancel, nil
}

// Cleanup drops finished sessions older than the retention window. Run
// periodically by the background scheduler; redis snapshots expire on their
// own TTL.
func (b *ProgressBroker) Cleanup() int {
	now := b.clock.Now()
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for id, session := range b.sessions {
		if !session.finishedAt.IsZero() && now.Sub(session.finishedAt) > b.retention {
			delete(b.sessions, id)
			removed++
		}
	}
	return removed
}

// Package syncer persists the document to the remote blob store. Writes
// are debounced: every mutation resets a quiet-period timer, and only
// the final state of a burst of edits is written (last writer wins).
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/finbook-dev/finbook/internal/model"
)

// RemoteStore is the persistence boundary: one JSON document per user,
// loaded on session start and upserted on save.
type RemoteStore interface {
	Load(ctx context.Context) (model.Document, error)
	Save(ctx context.Context, doc model.Document) error
}

// DefaultQuietPeriod is how long the scheduler waits after the last
// mutation before writing.
const DefaultQuietPeriod = 2 * time.Second

// Scheduler coalesces rapid mutations into a single remote write. A
// failed write is logged and dropped; the next mutation's debounce cycle
// is the only retry.
type Scheduler struct {
	remote   RemoteStore
	snapshot func() model.Document
	quiet    time.Duration
	log      zerolog.Logger

	mu         sync.Mutex
	timer      *time.Timer
	pending    model.Document
	pendingSeq uint64
	seq        uint64

	saveMu   sync.Mutex
	savedSeq uint64
}

// NewScheduler creates a save scheduler. snapshot runs inside Touch on
// the caller's goroutine; the timer goroutine only writes the captured
// copy, so the store is never read off the mutating goroutine. The final
// Touch of a burst captures the final state, so the coalesced write
// still carries every edit.
func NewScheduler(remote RemoteStore, snapshot func() model.Document, quiet time.Duration, log zerolog.Logger) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Scheduler{
		remote:   remote,
		snapshot: snapshot,
		quiet:    quiet,
		log:      log,
	}
}

// Touch captures the current document and schedules a save after the
// quiet period, cancelling any pending one. Wire it to the store's
// change hook.
func (s *Scheduler) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = s.snapshot()
	s.pendingSeq = s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.fire)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	doc, seq := s.pending, s.pendingSeq
	s.timer = nil
	s.mu.Unlock()
	s.save(context.Background(), doc, seq)
}

// Flush cancels any pending save and writes immediately. Used on
// logout/shutdown so the quiet period cannot swallow the final edits.
// Like Touch, it must run on the mutating goroutine.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.Stop()
	s.mu.Lock()
	s.seq++
	doc, seq := s.snapshot(), s.seq
	s.mu.Unlock()
	return s.save(ctx, doc, seq)
}

// Stop cancels a pending save without writing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// save serializes remote writes and drops snapshots older than one
// already written, so an in-flight timer write cannot land after a
// flush and regress the remote.
func (s *Scheduler) save(ctx context.Context, doc model.Document, seq uint64) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if seq <= s.savedSeq {
		return nil
	}
	if err := s.remote.Save(ctx, doc); err != nil {
		// Local state stays intact; the user keeps editing and the next
		// mutation schedules the next attempt.
		s.log.Warn().Err(err).Msg("document save failed; changes may not be persisted")
		return err
	}
	s.savedSeq = seq
	s.log.Debug().Msg("document saved")
	return nil
}

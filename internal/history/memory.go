package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultFlushDebounce = 2 * time.Second

// MemoryStore keeps everything in process memory, optionally mirrored to a
// JSON snapshot file. Writes arm a debounce timer so a burst of updates
// coalesces into one disk write; a crash inside the debounce window loses the
// most recent points, which is the accepted durability tradeoff.
type MemoryStore struct {
	mu       sync.RWMutex
	series   map[string][]PricePoint
	smoothed map[string]float64

	path     string
	debounce time.Duration
	timer    *time.Timer
	dirty    bool
	log      zerolog.Logger
}

type snapshot struct {
	Series   map[string][]PricePoint `json:"series"`
	Smoothed map[string]float64      `json:"smoothed"`
}

// MemoryOption configures MemoryStore construction.
type MemoryOption func(*MemoryStore)

// WithSnapshotPath mirrors the store to a JSON file, loading it at startup.
func WithSnapshotPath(path string) MemoryOption {
	return func(s *MemoryStore) { s.path = path }
}

// WithLogger reports debounced flush failures. Synchronous Flush errors are
// returned to the caller; the background flush has nobody to return to, so it
// logs instead.
func WithLogger(log zerolog.Logger) MemoryOption {
	return func(s *MemoryStore) { s.log = log }
}

// WithFlushDebounce overrides how long writes coalesce before hitting disk.
func WithFlushDebounce(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewMemoryStore builds the store and, when a snapshot path is configured,
// loads the existing snapshot. A missing snapshot file is a clean start, not
// an error.
func NewMemoryStore(opts ...MemoryOption) (*MemoryStore, error) {
	s := &MemoryStore{
		series:   make(map[string][]PricePoint),
		smoothed: make(map[string]float64),
		debounce: defaultFlushDebounce,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.path != "" {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	}
	return s, nil
}

func (s *MemoryStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Series != nil {
		s.series = snap.Series
	}
	if snap.Smoothed != nil {
		s.smoothed = snap.Smoothed
	}
	return nil
}

// Series returns a copy so callers can mutate freely.
func (s *MemoryStore) Series(_ context.Context, playerID string) ([]PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.series[playerID]
	if !ok {
		return nil, nil
	}
	out := make([]PricePoint, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) PutSeries(_ context.Context, playerID string, series []PricePoint) error {
	stored := make([]PricePoint, len(series))
	copy(stored, series)
	s.mu.Lock()
	s.series[playerID] = stored
	s.markDirtyLocked()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Smoothed(_ context.Context, playerID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.smoothed[playerID], nil
}

func (s *MemoryStore) PutSmoothed(_ context.Context, playerID string, v float64) error {
	s.mu.Lock()
	s.smoothed[playerID] = v
	s.markDirtyLocked()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) PlayerIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.series))
	for id := range s.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// markDirtyLocked arms (or re-arms) the debounce timer. Caller holds mu.
func (s *MemoryStore) markDirtyLocked() {
	if s.path == "" {
		return
	}
	s.dirty = true
	if s.timer != nil {
		s.timer.Reset(s.debounce)
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.Flush(context.Background()); err != nil {
			s.log.Error().Err(err).Str("path", s.path).Msg("snapshot flush failed")
		}
	})
}

// Flush writes the snapshot when there are unsaved changes. The write goes
// through a temp file and rename so a crash mid-write never truncates the
// previous snapshot.
func (s *MemoryStore) Flush(_ context.Context) error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snap := snapshot{
		Series:   make(map[string][]PricePoint, len(s.series)),
		Smoothed: make(map[string]float64, len(s.smoothed)),
	}
	for id, series := range s.series {
		cp := make([]PricePoint, len(series))
		copy(cp, series)
		snap.Series[id] = cp
	}
	for id, v := range s.smoothed {
		snap.Smoothed[id] = v
	}
	s.dirty = false
	s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// Close stops the debounce timer and flushes any pending snapshot.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.Flush(context.Background())
}

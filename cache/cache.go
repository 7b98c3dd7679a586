// Package cache serves the Trading 212 instrument catalog from a daily
// disk-backed cache so the strictly rate-limited metadata endpoint is hit at
// most once per calendar day.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/architg25/t212-to-yahoo/t212"
)

const (
	instrumentsFile = "instruments.json"
	memInstruments  = "instruments"
	memExchanges    = "exchanges"
)

var dateDir = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FetchFunc pulls the full catalog from the API. The raw bytes are what gets
// written to disk, so fields the typed model does not cover survive a round
// trip through the cache.
type FetchFunc func(ctx context.Context) ([]t212.Instrument, json.RawMessage, error)

// ExchangeFetchFunc pulls the exchange list from the API.
type ExchangeFetchFunc func(ctx context.Context) ([]t212.Exchange, json.RawMessage, error)

// Store is a three-tier instrument cache: process memory, then today's disk
// snapshot under <dir>/<YYYY-MM-DD>/instruments/instruments.json, then the
// API. Disk failures never surface; a successful fetch is never lost to a
// broken filesystem.
//
// The store assumes a single-threaded caller per process. The disk tier has
// no cross-process locking; concurrent writers race and the last one wins.
type Store struct {
	dir     string
	fetch   FetchFunc
	fetchEx ExchangeFetchFunc
	now     func() time.Time
	mem     *gocache.Cache
	log     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects the time source. Tests use it to simulate date rollover.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithExchangeFetch enables the memory-cached Exchanges lookup.
func WithExchangeFetch(f ExchangeFetchFunc) Option {
	return func(s *Store) { s.fetchEx = f }
}

// WithLogger attaches a logger for best-effort failure diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New builds a store rooted at dir.
func New(dir string, fetch FetchFunc, opts ...Option) *Store {
	s := &Store{
		dir:   dir,
		fetch: fetch,
		now:   time.Now,
		mem:   gocache.New(gocache.NoExpiration, 0),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Instruments returns the catalog, consulting memory, then today's disk
// snapshot, then the API. With useCache false both cache tiers are bypassed
// but still repopulated after the fetch. Fetch errors propagate; every disk
// problem degrades to a miss.
func (s *Store) Instruments(ctx context.Context, useCache bool) ([]t212.Instrument, error) {
	memKey := s.memKey()
	if useCache {
		if v, ok := s.mem.Get(memKey); ok {
			return v.([]t212.Instrument), nil
		}
		if instruments, ok := s.loadFromDisk(); ok {
			s.mem.Set(memKey, instruments, gocache.NoExpiration)
			return instruments, nil
		}
	}

	instruments, raw, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mem.Set(memKey, instruments, gocache.NoExpiration)
	s.saveToDisk(raw)
	s.evictStaleDays()

	return instruments, nil
}

// Find returns the catalog entry for ticker, or nil when the catalog has no
// such instrument.
func (s *Store) Find(ctx context.Context, ticker string) (*t212.Instrument, error) {
	instruments, err := s.Instruments(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range instruments {
		if instruments[i].Ticker == ticker {
			return &instruments[i], nil
		}
	}
	return nil, nil
}

// Exchanges returns the exchange list, cached in memory for the process
// lifetime. There is no disk tier for exchanges.
func (s *Store) Exchanges(ctx context.Context) ([]t212.Exchange, error) {
	if v, ok := s.mem.Get(memExchanges); ok {
		return v.([]t212.Exchange), nil
	}
	if s.fetchEx == nil {
		return nil, errors.New("no exchange fetch configured")
	}
	exchanges, _, err := s.fetchEx(ctx)
	if err != nil {
		return nil, err
	}
	s.mem.Set(memExchanges, exchanges, gocache.NoExpiration)
	return exchanges, nil
}

// Clear drops the in-memory tier only. Today's disk snapshot stays until the
// next successful fetch overwrites it or it is deleted manually.
func (s *Store) Clear() {
	s.mem.Flush()
}

// memKey stamps the memory tier with the calendar day so a long-lived
// process refetches after midnight instead of serving yesterday's catalog.
func (s *Store) memKey() string {
	return memInstruments + ":" + s.now().Format("2006-01-02")
}

func (s *Store) snapshotPath() string {
	day := s.now().Format("2006-01-02")
	return filepath.Join(s.dir, day, "instruments", instrumentsFile)
}

func (s *Store) loadFromDisk() ([]t212.Instrument, bool) {
	path := s.snapshotPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var instruments []t212.Instrument
	if err := json.Unmarshal(data, &instruments); err != nil {
		// Corrupt snapshot: treat as a miss and refetch.
		s.log.Warn("discarding unreadable instrument snapshot", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return instruments, true
}

func (s *Store) saveToDisk(raw json.RawMessage) {
	path := s.snapshotPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.log.Warn("instrument snapshot dir", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		s.log.Warn("write instrument snapshot", zap.String("path", path), zap.Error(err))
	}
}

// evictStaleDays removes every date-named directory other than today's.
// Best effort only.
func (s *Store) evictStaleDays() {
	today := s.now().Format("2006-01-02")
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() || e.Name() == today || !dateDir.MatchString(e.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			s.log.Debug("evict stale cache day", zap.String("dir", e.Name()), zap.Error(err))
		}
	}
}

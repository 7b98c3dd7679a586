package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/architg25/t212-to-yahoo/t212"
)

// countingFetch returns a FetchFunc serving a fixed catalog and counts how
// often the "API" is actually hit.
func countingFetch(instruments []t212.Instrument) (FetchFunc, *int) {
	calls := 0
	return func(ctx context.Context) ([]t212.Instrument, json.RawMessage, error) {
		calls++
		raw, _ := json.Marshal(instruments)
		return instruments, raw, nil
	}, &calls
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testCatalog = []t212.Instrument{
	{Ticker: "AAPL_US_EQ", Name: "Apple Inc.", ShortName: "AAPL"},
	{Ticker: "VUSAl_EQ", Name: "Vanguard S&P 500", ShortName: "VUSA"},
}

func TestInstrumentsSingleFetchPerDay(t *testing.T) {
	dir := t.TempDir()
	fetch, calls := countingFetch(testCatalog)
	day := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)

	s := New(dir, fetch, WithClock(fixedClock(day)))

	first, err := s.Instruments(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := s.Instruments(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, *calls, "second same-day call must not hit the API")

	// The daily snapshot must exist on disk.
	path := filepath.Join(dir, "2025-11-05", "instruments", "instruments.json")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestInstrumentsDiskTierServesNewProcess(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)

	fetch, calls := countingFetch(testCatalog)
	s := New(dir, fetch, WithClock(fixedClock(day)))
	_, err := s.Instruments(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, *calls)

	// A fresh store over the same directory simulates a process restart.
	fetch2, calls2 := countingFetch(nil)
	s2 := New(dir, fetch2, WithClock(fixedClock(day)))

	instruments, err := s2.Instruments(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, instruments, 2)
	assert.Equal(t, 0, *calls2, "today's disk snapshot must satisfy the lookup")
}

func TestInstrumentsDateRolloverRefetchesAndEvicts(t *testing.T) {
	dir := t.TempDir()
	fetch, calls := countingFetch(testCatalog)

	now := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	s := New(dir, fetch, WithClock(func() time.Time { return now }))

	_, err := s.Instruments(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, *calls)

	oldPath := filepath.Join(dir, "2025-11-05")
	_, err = os.Stat(oldPath)
	require.NoError(t, err)

	// Roll the injected clock to the next day. The memory tier is stamped
	// with the day, so the stale snapshot must not be served.
	now = now.Add(24 * time.Hour)

	_, err = s.Instruments(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "new day must trigger a fresh fetch")

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err), "stale date partition must be evicted")

	_, err = os.Stat(filepath.Join(dir, "2025-11-06", "instruments", "instruments.json"))
	assert.NoError(t, err)
}

func TestInstrumentsEvictionSkipsNonDateDirs(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "notes")
	require.NoError(t, os.MkdirAll(keep, 0o755))

	fetch, _ := countingFetch(testCatalog)
	s := New(dir, fetch, WithClock(fixedClock(time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC))))

	_, err := s.Instruments(context.Background(), false)
	require.NoError(t, err)

	_, err = os.Stat(keep)
	assert.NoError(t, err, "only YYYY-MM-DD directories may be evicted")
}

func TestInstrumentsCorruptSnapshotFallsThrough(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)

	snapDir := filepath.Join(dir, "2025-11-05", "instruments")
	require.NoError(t, os.MkdirAll(snapDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(snapDir, "instruments.json"), []byte("{not json"), 0o644))

	fetch, calls := countingFetch(testCatalog)
	s := New(dir, fetch, WithClock(fixedClock(day)))

	instruments, err := s.Instruments(context.Background(), true)
	require.NoError(t, err, "corrupt snapshot is a miss, not an error")
	assert.Len(t, instruments, 2)
	assert.Equal(t, 1, *calls)

	// The fetch must have replaced the corrupt file with a valid one.
	data, err := os.ReadFile(filepath.Join(snapDir, "instruments.json"))
	require.NoError(t, err)
	var parsed []t212.Instrument
	assert.NoError(t, json.Unmarshal(data, &parsed))
}

func TestInstrumentsBypassStillRepopulates(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	fetch, calls := countingFetch(testCatalog)
	s := New(dir, fetch, WithClock(fixedClock(day)))

	_, err := s.Instruments(context.Background(), true)
	require.NoError(t, err)

	_, err = s.Instruments(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "useCache=false must bypass both tiers")

	// The bypass still refilled the memory tier.
	_, err = s.Instruments(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestInstrumentsFetchErrorPropagates(t *testing.T) {
	wantErr := errors.New("network down")
	s := New(t.TempDir(), func(ctx context.Context) ([]t212.Instrument, json.RawMessage, error) {
		return nil, nil, wantErr
	})

	_, err := s.Instruments(context.Background(), true)
	assert.ErrorIs(t, err, wantErr)
}

func TestClearDropsMemoryOnly(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	fetch, calls := countingFetch(testCatalog)
	s := New(dir, fetch, WithClock(fixedClock(day)))

	_, err := s.Instruments(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, *calls)

	s.Clear()

	// Disk tier still holds today's snapshot, so no new fetch happens.
	_, err = s.Instruments(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	_, err = os.Stat(filepath.Join(dir, "2025-11-05", "instruments", "instruments.json"))
	assert.NoError(t, err, "Clear must not touch the disk tier")
}

func TestFind(t *testing.T) {
	fetch, calls := countingFetch(testCatalog)
	s := New(t.TempDir(), fetch)

	inst, err := s.Find(context.Background(), "VUSAl_EQ")
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.Equal(t, "VUSA", inst.ShortName)

	missing, err := s.Find(context.Background(), "NOPE_EQ")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, 1, *calls, "Find must reuse the cached catalog")
}

func TestExchangesMemoryCache(t *testing.T) {
	calls := 0
	fetchEx := func(ctx context.Context) ([]t212.Exchange, json.RawMessage, error) {
		calls++
		return []t212.Exchange{{ID: 1, Name: "LSE"}}, nil, nil
	}

	fetch, _ := countingFetch(testCatalog)
	s := New(t.TempDir(), fetch, WithExchangeFetch(fetchEx))

	first, err := s.Exchanges(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = s.Exchanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	s.Clear()
	_, err = s.Exchanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "Clear drops the exchange tier too")
}

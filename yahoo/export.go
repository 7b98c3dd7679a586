package yahoo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/architg25/t212-to-yahoo/t212"
)

// Headers is the fixed Yahoo Finance portfolio-import column set. Names and
// order must match exactly or the import rejects the file.
var Headers = []string{
	"Symbol", "Current Price", "Date", "Time", "Change", "Open", "High", "Low",
	"Volume", "Trade Date", "Purchase Price", "Quantity", "Commission",
	"High Limit", "Low Limit", "Comment", "Transaction Type",
}

// ErrNoPositions rejects an export of an empty portfolio; the format has no
// meaningful header-only file.
var ErrNoPositions = errors.New("cannot export empty positions list")

// Stats summarizes how the symbols of one export were resolved. Diagnostic
// only; none of it appears in the CSV.
type Stats struct {
	Rows           int
	ExchangeMapped int
	ShortNameUsed  int
}

// Exporter writes portfolio CSV files under
// <dir>/<YYYY-MM-DD>/yahoo/portfolio_<HH-MM-SS>.csv.
type Exporter struct {
	dir string
	now func() time.Time
	log *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock injects the time source used for path construction.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithLogger attaches a logger for the per-export summary line.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// NewExporter builds an exporter rooted at dir.
func NewExporter(dir string, opts ...Option) *Exporter {
	e := &Exporter{dir: dir, now: time.Now, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes one CSV row per position, resolving each symbol through
// Transform with the instrument looked up by ticker (or none when the
// catalog has no match). Returns the path written and resolution stats.
func (e *Exporter) Export(positions []t212.Position, instruments map[string]t212.Instrument) (string, Stats, error) {
	if len(positions) == 0 {
		return "", Stats{}, ErrNoPositions
	}

	now := e.now()
	dir := filepath.Join(e.dir, now.Format("2006-01-02"), "yahoo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Stats{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("portfolio_%s.csv", now.Format("15-04-05")))

	stats, err := e.writeCSV(path, positions, instruments)
	if err != nil {
		return "", Stats{}, err
	}

	e.log.Info("exported portfolio",
		zap.String("path", path),
		zap.Int("positions", stats.Rows),
		zap.Int("exchange_mapped", stats.ExchangeMapped),
		zap.Int("short_name_used", stats.ShortNameUsed))

	return path, stats, nil
}

func (e *Exporter) writeCSV(path string, positions []t212.Position, instruments map[string]t212.Instrument) (Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return Stats{}, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Headers); err != nil {
		return Stats{}, fmt.Errorf("write header: %w", err)
	}

	var stats Stats
	for _, pos := range positions {
		var inst *t212.Instrument
		if i, ok := instruments[pos.Ticker]; ok {
			inst = &i
		}

		symbol, rule := TransformDetail(pos.Ticker, inst)
		switch rule {
		case RuleExchangeSuffix, RuleSuffixFallback:
			stats.ExchangeMapped++
		case RuleShortName:
			stats.ShortNameUsed++
		}

		row := make([]string, len(Headers))
		row[0] = symbol                 // Symbol
		row[1] = f64(pos.CurrentPrice)  // Current Price
		row[10] = f64(pos.AveragePrice) // Purchase Price
		row[11] = f64(pos.Quantity)     // Quantity
		row[12] = "0.0"                 // Commission
		if err := w.Write(row); err != nil {
			return Stats{}, fmt.Errorf("write row: %w", err)
		}
		stats.Rows++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Stats{}, fmt.Errorf("flush csv: %w", err)
	}
	return stats, nil
}

func f64(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

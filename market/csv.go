package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileProvider serves candle series from CSV files on disk, one file per
// (symbol, timeframe) pair named <SYMBOL>_<timeframe>.csv, e.g.
// BTCUSDT_1h.csv. Row format: time,open,high,low,close,volume with time as
// RFC3339 or unix seconds. A header row is detected and skipped.
type FileProvider struct {
	Dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

func (p *FileProvider) Fetch(symbol, timeframe string, start, end time.Time) (*Series, error) {
	path := filepath.Join(p.Dir, fmt.Sprintf("%s_%s.csv", symbol, timeframe))

	candles, err := ReadCandlesCSV(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", symbol, timeframe, err)
	}

	if !start.IsZero() || !end.IsZero() {
		filtered := candles[:0]
		for _, c := range candles {
			if !start.IsZero() && c.Time.Before(start) {
				continue
			}
			if !end.IsZero() && c.Time.After(end) {
				continue
			}
			filtered = append(filtered, c)
		}
		candles = filtered
	}

	return NewSeries(symbol, timeframe, candles)
}

// ReadCandlesCSV loads all candle rows from a single CSV file.
func ReadCandlesCSV(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var candles []Candle
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) == 0 {
			continue
		}
		if line == 1 && isHeaderCell(row[0]) {
			continue
		}
		c, err := parseCandleRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// isHeaderCell reports whether a first-row time cell names the column
// instead of holding a value. Both "time" and "timestamp" appear in the
// wild.
func isHeaderCell(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "time") || strings.EqualFold(s, "timestamp")
}

func parseCandleRow(row []string) (Candle, error) {
	if len(row) < 5 {
		return Candle{}, fmt.Errorf("need at least 5 cols time,open,high,low,close[,volume], got %d", len(row))
	}

	t, err := parseTime(strings.TrimSpace(row[0]))
	if err != nil {
		return Candle{}, fmt.Errorf("bad time %q: %w", row[0], err)
	}

	vals := make([]float64, 0, 5)
	for _, s := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Candle{}, fmt.Errorf("bad value %q: %w", s, err)
		}
		vals = append(vals, v)
		if len(vals) == 5 {
			break
		}
	}

	c := Candle{
		Time:  t,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if len(vals) > 4 {
		c.Volume = vals[4]
	}
	return c, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

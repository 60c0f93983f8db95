package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `time,open,high,low,close,volume
2024-01-01T00:00:00Z,100,101,99,100.5,12.5
2024-01-01T01:00:00Z,100.5,102,100,101.5,8.25
2024-01-01T02:00:00Z,101.5,103,101,102,9
`

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestReadCandlesCSV(t *testing.T) {
	path := writeSample(t, t.TempDir(), "BTCUSDT_1h.csv")

	candles, err := ReadCandlesCSV(path)
	require.NoError(t, err)
	require.Len(t, candles, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), candles[0].Time)
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 101.0, candles[0].High)
	assert.Equal(t, 99.0, candles[0].Low)
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 12.5, candles[0].Volume)
}

func TestReadCandlesCSVTimestampHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ts.csv")
	data := "timestamp,open,high,low,close,volume\n2024-01-01T00:00:00Z,100,101,99,100.5,1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	candles, err := ReadCandlesCSV(path)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), candles[0].Time)
}

func TestReadCandlesCSVUnixSeconds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unix.csv")
	data := "1704067200,100,101,99,100.5,1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	candles, err := ReadCandlesCSV(path)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), candles[0].Time)
}

func TestReadCandlesCSVBadRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("2024-01-01T00:00:00Z,oops,101,99,100\n"), 0o644))

	_, err := ReadCandlesCSV(path)
	assert.Error(t, err)
}

func TestFileProviderFetch(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "BTCUSDT_1h.csv")

	p := NewFileProvider(dir)

	s, err := p.Fetch("BTCUSDT", "1h", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", s.Symbol)
	assert.Equal(t, "1h", s.Timeframe)
	assert.Equal(t, 3, s.Len())
}

func TestFileProviderFetchRange(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "BTCUSDT_1h.csv")

	p := NewFileProvider(dir)
	start := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)

	s, err := p.Fetch("BTCUSDT", "1h", start, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, start, s.Candles[0].Time)
}

func TestFileProviderMissingFile(t *testing.T) {
	p := NewFileProvider(t.TempDir())
	_, err := p.Fetch("NOPE", "1h", time.Time{}, time.Time{})
	assert.Error(t, err)
}

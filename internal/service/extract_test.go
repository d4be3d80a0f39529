package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = "timestamp,name\n2024-03-01,a\n2024-03-02,\"b, c\"\n"

func newTestExtract() *Extract {
	e := NewExtract(nil)
	e.delay = 0
	return e
}

func TestParseCSVSkipsHeader(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2024-03-01", "a"}, {"2024-03-02", "b, c"}}, records)

	records, err = ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBoom }

func TestParseCSVReadError(t *testing.T) {
	_, err := ParseCSV(failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "extract: read csv")
}

func TestExtractLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0o600))

	records, err := newTestExtract().Records(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = newTestExtract().Records(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtractHTTPRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sheet))
	}))
	defer srv.Close()

	records, err := newTestExtract().Records(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.EqualValues(t, 3, calls.Load())
}

func TestExtractHTTPClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestExtract().Records(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "returned 404")
	assert.EqualValues(t, 1, calls.Load())
}

func TestExtractWithoutSource(t *testing.T) {
	_, err := newTestExtract().Records(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = newTestExtract().Records(context.Background(), "ftp://host/sheet.csv")
	assert.Error(t, err)

	_, err = newTestExtract().Records(context.Background(), "s3://bucket/sheet.csv")
	assert.Error(t, err)
}

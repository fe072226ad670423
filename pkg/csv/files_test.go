package csv

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/csv-ingest/internal/testutil"
)

func TestParseFiles(t *testing.T) {
	var paths []string
	want := map[string]Table{}
	for i, name := range []string{"a.csv", "b.csv.gz", "c.csv.lz4", "d.csv.zst", "e.csv"} {
		content := testutil.GenerateCSV(20 + i*10)
		path := testutil.WriteFile(t, name, content)
		paths = append(paths, path)

		table, err := Parse(content)
		require.NoError(t, err)
		want[path] = table
	}

	for _, workers := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("workers %d", workers), func(t *testing.T) {
			// A negative threshold mixes in the streaming reader.
			threshold := int64(-1)
			if workers == 2 {
				threshold = StreamThreshold
			}
			got, err := ParseFiles(context.Background(), paths,
				WithWorkers(workers),
				WithStreamThreshold(threshold),
			)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseFiles_FirstErrorWins(t *testing.T) {
	good := testutil.WriteFile(t, "good.csv", "a,b\n")
	missing := filepath.Join(t.TempDir(), "missing.csv")

	_, err := ParseFiles(context.Background(), []string{good, missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestParseFiles_Empty(t *testing.T) {
	got, err := ParseFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

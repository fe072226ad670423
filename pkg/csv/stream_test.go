package csv

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/csv-ingest/internal/testutil"
)

// TestScanner_Rows tests streaming rows one at a time.
func TestScanner_Rows(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		hasHeaders bool
		wantHeader []string
		want       []Row
	}{
		{
			name:       "with headers",
			input:      "name,age\nAlice,30\nBob,25\n",
			hasHeaders: true,
			wantHeader: []string{"name", "age"},
			want:       []Row{{"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:  "without headers",
			input: "Alice,30\nBob,25\n",
			want:  []Row{{"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:       "blank rows skipped before header",
			input:      "\n , \nname\n\nAlice\n",
			hasHeaders: true,
			wantHeader: []string{"name"},
			want:       []Row{{"Alice"}},
		},
		{
			name:  "quoted multiline",
			input: "\"a\nb\",c\n",
			want:  []Row{{"a\nb", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewReaderScanner(strings.NewReader(tt.input), Config{BufferSize: 2})
			defer s.Close()
			s.SetHasHeaders(tt.hasHeaders)

			var got []Row
			for s.Scan() {
				got = append(got, s.Row())
			}
			require.NoError(t, s.Err())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHeader, s.Headers())
		})
	}
}

func TestScanner_Keyed(t *testing.T) {
	s := NewReaderScanner(strings.NewReader("key,en\napp_name,Hello,extra\nbye\n"), Config{})
	defer s.Close()
	s.SetHasHeaders(true)

	require.True(t, s.Scan())
	assert.Equal(t, KeyedRow{"key": "app_name", "en": "Hello"}, s.Keyed())

	require.True(t, s.Scan())
	assert.Equal(t, KeyedRow{"key": "bye"}, s.Keyed())

	assert.False(t, s.Scan())
	assert.NoError(t, s.Err())
	assert.Nil(t, s.Row())
}

func TestScanner_KeyedWithoutHeaders(t *testing.T) {
	s := NewReaderScanner(strings.NewReader("a,b\n"), Config{})
	defer s.Close()

	require.True(t, s.Scan())
	assert.Empty(t, s.Keyed())
}

func TestScanner_ReadError(t *testing.T) {
	boom := errors.New("boom")
	s := NewReaderScanner(io.MultiReader(strings.NewReader("a\n"), iotest.ErrReader(boom)), Config{BufferSize: 1})
	defer s.Close()

	require.True(t, s.Scan())
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), boom)
	assert.False(t, s.Scan(), "scanner stays stopped after an error")
}

func TestNewScanner_File(t *testing.T) {
	path := testutil.WriteFile(t, "data.csv.zst", testutil.GenerateCSV(30))

	s, err := NewScanner(path)
	require.NoError(t, err)
	defer s.Close()
	s.SetHasHeaders(true)

	n := 0
	for s.Scan() {
		n++
		assert.Len(t, s.Row(), 3)
	}
	require.NoError(t, s.Err())
	assert.Equal(t, 30, n)
	assert.Equal(t, []string{"id", "name", "comment"}, s.Headers())
}

func TestNewScanner_Options(t *testing.T) {
	path := testutil.WriteFile(t, "data.csv", "a\n")

	s, err := NewScanner(path, WithConfig(Config{BufferSize: 1}))
	require.NoError(t, err)
	require.True(t, s.Scan())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = NewScanner(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = NewScanner(filepath.Join(t.TempDir(), "missing.csv"), WithConfig(Config{}))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

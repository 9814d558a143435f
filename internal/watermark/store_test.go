package watermark

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Read(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected uint64
		wantErr  error
	}{
		{name: "missing lock file starts at zero", content: nil, expected: 0},
		{name: "trailing newline is trimmed", content: strPtr("42\n"), expected: 42},
		{name: "surrounding whitespace is trimmed", content: strPtr("  17 \n"), expected: 17},
		{name: "existing empty file is malformed", content: strPtr(""), wantErr: ErrMalformed},
		{name: "negative value is malformed", content: strPtr("-3"), wantErr: ErrMalformed},
		{name: "text is malformed", content: strPtr("latest"), wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "latest.lock")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			value, err := New(path).Read()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestStore_ReadMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "latest.lock")

	_, err := New(path).Read()

	assert.ErrorIs(t, err, ErrNotWritable)
}

func TestStore_ReadUnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "latest.lock")
	require.NoError(t, os.WriteFile(path, []byte("5"), 0644))
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	_, err := New(path).Read()

	assert.ErrorIs(t, err, ErrNotWritable)
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 9, 1234567890, math.MaxUint64}

	for _, v := range values {
		path := filepath.Join(t.TempDir(), "latest.lock")
		store := New(path)

		require.NoError(t, store.Write(v))
		got, err := store.Read()

		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStore_WriteReplacesWholeContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.lock")
	require.NoError(t, os.WriteFile(path, []byte("123456789\ntrailing junk\n"), 0644))

	require.NoError(t, New(path).Write(7))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))
}

// 같은 잠금 파일을 쓰는 두 실행은 서로를 덮어씁니다. 마지막 쓰기가 이깁니다.
func TestStore_ConcurrentRunsLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.lock")
	first, second := New(path), New(path)

	require.NoError(t, first.Write(90))
	require.NoError(t, second.Write(40))

	got, err := first.Read()
	require.NoError(t, err)
	assert.Equal(t, uint64(40), got)
}

func strPtr(s string) *string {
	return &s
}

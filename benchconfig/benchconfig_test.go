package benchconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRangeEqualsSize(t *testing.T) {
	for _, size := range []int64{1, 1_000_000, 100_000_000} {
		d := New(size, 42)
		require.Equal(t, size, d.InputSize)
		require.Equal(t, d.InputSize, d.InputRange)
		require.Equal(t, int64(42), d.Seed)
	}
}

func TestEncodeLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(1_000_000, 42).Encode(&buf))

	want := "input-size = 1000000\ninput-range = 1000000\nseed = 42\n"
	require.Equal(t, want, buf.String())
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// Seed the file with longer content than any document so stale bytes
	// would survive a non-truncating write.
	junk := bytes.Repeat([]byte("# stale\n"), 64)
	require.NoError(t, os.WriteFile(path, junk, 0o644))

	require.NoError(t, WriteFile(path, New(99_000_000, 42)))
	require.NoError(t, WriteFile(path, New(2_000_000, 42)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"input-size = 2000000\ninput-range = 2000000\nseed = 42\n",
		string(raw),
	)

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, New(2_000_000, 42), got)
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.toml")

	err := WriteFile(path, New(1, 42))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "input-size = 5\ninput-range = 5\nseed = 1\nextra = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
}

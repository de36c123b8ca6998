package receipt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	require.Equal(t, "alice - Rp50,000 - Cash", Summary("alice", 50000, "Cash"))
	require.Equal(t, "bob - Rp1,250,000 - Transfer (TF)", Summary("bob", 1250000, "Transfer (TF)"))
}

func TestFileName(t *testing.T) {
	require.Equal(t, "qr_alice_-_Rp50,000_-_Cash.png", FileName("alice - Rp50,000 - Cash"))
	require.Equal(t, "qr_a_b_c.png", FileName("a:b c"))
	require.Equal(t, "qr_.._x.png", FileName("../x"))
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	g := NewGenerator(dir)
	summary := Summary("alice", 50000, "Cash")

	path, err := g.Generate(summary)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, FileName(summary)), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "not a PNG")
}

func TestGenerate_UnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewGenerator(filepath.Join(blocker, "images")).Generate("x")
	require.Error(t, err)
}

func TestNewGenerator_DefaultDir(t *testing.T) {
	require.Equal(t, DefaultDir, NewGenerator("").Dir())
}

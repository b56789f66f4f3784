package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG header plus IHDR chunk start
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectImage(t *testing.T) {
	ct, ext, ok := DetectImage(pngHeader)
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)

	_, _, ok = DetectImage([]byte("just some text"))
	assert.False(t, ok)
}

func TestNewKey(t *testing.T) {
	a := NewKey("blogs", ".png")
	b := NewKey("blogs", ".png")

	assert.True(t, strings.HasPrefix(a, "blogs/"))
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotEqual(t, a, b)
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/images/")

	url, err := u.Upload(context.Background(), "blogs/2024/01/x.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/images/blogs/2024/01/x.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "blogs", "2024", "01", "x.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestLocalUploaderStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "/images")

	url, err := u.Upload(context.Background(), "../../escape.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/images/escape.png", url)
	assert.FileExists(t, filepath.Join(dir, "escape.png"))
}

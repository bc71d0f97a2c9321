package texture

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	if filepath.Ext(path) == ".bmp" {
		require.NoError(t, bmp.Encode(f, img))
		return
	}
	require.NoError(t, png.Encode(f, img))
}

func TestNewTextureValidatesInput(t *testing.T) {
	rec := backendtest.New()

	_, err := NewTexture(rec, "zero", 0, 4, nil)
	assert.Error(t, err)
	_, err = NewTexture(rec, "short", 2, 2, make([]byte, 3))
	assert.Error(t, err)
	assert.Equal(t, 0, rec.Created(backendtest.ResourceTexture))

	tex, err := NewTexture(rec, "empty", 8, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, tex.Width())
	assert.Equal(t, 4, tex.Height())
	assert.Equal(t, backendtest.TextureSize{Width: 8, Height: 4}, rec.Calls()[0].Value)
}

func TestNewTextureFromFileDecodesPNGAndBMP(t *testing.T) {
	dir := t.TempDir()
	rec := backendtest.New()

	for _, name := range []string{"tile.png", "tile.bmp"} {
		path := filepath.Join(dir, name)
		writeImage(t, path, 3, 2)
		tex, err := NewTextureFromFile(rec, name, path)
		require.NoError(t, err)
		assert.Equal(t, 3, tex.Width())
		assert.Equal(t, 2, tex.Height())
	}

	_, err := NewTextureFromFile(rec, "missing", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestBindNegativeSlotWarnsWithoutGPUCall(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rec := backendtest.New()
	tex, err := NewTexture(rec, "t", 1, 1, []byte{0, 0, 0, 255}, WithTextureLogger(zap.New(core)))
	require.NoError(t, err)

	tex.Bind(-1)
	assert.Equal(t, 0, rec.Count("BindTexture"))
	assert.Equal(t, 1, logs.Len())

	tex.Bind(3)
	assert.Equal(t, tex.ID(), rec.TextureAt(3))
}

func TestReleaseIsIdempotent(t *testing.T) {
	rec := backendtest.New()
	tex, err := NewTexture(rec, "t", 1, 1, nil)
	require.NoError(t, err)
	tex.Release()
	tex.Release()
	assert.Equal(t, 1, rec.Deleted(backendtest.ResourceTexture))
	tex.Bind(0)
	assert.Equal(t, 0, rec.Count("BindTexture"))
}

func TestRegistryCreateReusesByName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeImage(t, path, 2, 2)
	rec := backendtest.New()
	reg := NewRegistry(rec)

	first, err := reg.Create("a", path)
	require.NoError(t, err)
	second, err := reg.Create("a", "/does/not/matter.png")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, rec.Created(backendtest.ResourceTexture))
}

func TestRegistryBind(t *testing.T) {
	rec := backendtest.New()
	reg := NewRegistry(rec)
	_, err := reg.CreateFromPixels("white", 1, 1, []byte{255, 255, 255, 255})
	require.NoError(t, err)

	assert.False(t, reg.Bind("ghost", 0))
	assert.True(t, reg.Bind("white", 1))
	assert.Equal(t, reg.Texture("white").ID(), rec.TextureAt(1))
}

func TestRegistryPreload(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{}
	for _, name := range []string{"wall", "floor", "box"} {
		path := filepath.Join(dir, name+".png")
		writeImage(t, path, 4, 4)
		paths[name] = path
	}
	paths["broken"] = filepath.Join(dir, "broken.png")

	rec := backendtest.New()
	reg := NewRegistry(rec, WithDecodeWorkers(2))
	err := reg.Preload(context.Background(), paths)

	assert.ErrorContains(t, err, "broken")
	assert.Equal(t, []string{"box", "floor", "wall"}, reg.Names())

	require.NoError(t, reg.Preload(context.Background(), map[string]string{"wall": paths["wall"]}))
	assert.Equal(t, 3, rec.Created(backendtest.ResourceTexture))
}

func TestRegistryPreloadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reg := NewRegistry(backendtest.New())
	err := reg.Preload(ctx, map[string]string{"a": "a.png"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryClear(t *testing.T) {
	rec := backendtest.New()
	reg := NewRegistry(rec)
	_, err := reg.CreateFromPixels("a", 1, 1, nil)
	require.NoError(t, err)
	_, err = reg.CreateFromPixels("b", 1, 1, nil)
	require.NoError(t, err)

	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, rec.Live(backendtest.ResourceTexture))
}

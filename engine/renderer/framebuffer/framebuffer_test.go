package framebuffer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramebufferAllocatesAttachments(t *testing.T) {
	rec := backendtest.New()
	fb, err := NewFramebuffer(rec, 640, 480)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Live(backendtest.ResourceFramebuffer))
	assert.Equal(t, 1, rec.Live(backendtest.ResourceTexture))
	assert.Equal(t, 1, rec.Live(backendtest.ResourceRenderbuffer))
	assert.Equal(t, 640, fb.ColorAttachment().Width())
	assert.Equal(t, 480, fb.ColorAttachment().Height())
	assert.Equal(t, uint32(0), rec.CurrentFramebuffer())
}

func TestNewFramebufferRejectsInvalidSize(t *testing.T) {
	rec := backendtest.New()
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 10}} {
		_, err := NewFramebuffer(rec, size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
	assert.Empty(t, rec.Calls())
}

func TestNewFramebufferIncompleteReleasesHandles(t *testing.T) {
	rec := backendtest.New()
	rec.SetFramebufferStatus(backend.FramebufferIncompleteAttachment)

	fb, err := NewFramebuffer(rec, 64, 64)
	assert.Nil(t, fb)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, backend.FramebufferIncompleteAttachment, statusErr.Status)
	assert.Equal(t, 0, rec.TotalLive())
}

func TestResizeRecreatesEverything(t *testing.T) {
	rec := backendtest.New()
	fb, err := NewFramebuffer(rec, 100, 100)
	require.NoError(t, err)
	oldID := fb.ID()
	oldColor := fb.ColorAttachment()

	require.NoError(t, fb.Resize(200, 50))

	assert.NotEqual(t, oldID, fb.ID())
	assert.Zero(t, oldColor.ID())
	assert.Equal(t, 200, fb.ColorAttachment().Width())
	assert.Equal(t, 50, fb.ColorAttachment().Height())
	assert.Equal(t, 2, rec.Created(backendtest.ResourceFramebuffer))
	assert.Equal(t, 2, rec.Created(backendtest.ResourceRenderbuffer))
	assert.Equal(t, 2, rec.Created(backendtest.ResourceTexture))
	assert.Equal(t, 3, rec.TotalLive())

	sameID := fb.ID()
	require.NoError(t, fb.Resize(200, 50))
	assert.NotEqual(t, sameID, fb.ID())
	assert.Equal(t, 3, rec.Created(backendtest.ResourceFramebuffer))
	assert.Equal(t, 3, rec.Created(backendtest.ResourceRenderbuffer))
	assert.Equal(t, 3, rec.Created(backendtest.ResourceTexture))
	assert.Equal(t, 3, rec.TotalLive())

	assert.ErrorIs(t, fb.Resize(0, 50), ErrInvalidSize)
	assert.Equal(t, 200, fb.Width())
}

func TestBindSetsViewport(t *testing.T) {
	rec := backendtest.New()
	fb, err := NewFramebuffer(rec, 320, 240)
	require.NoError(t, err)

	fb.Bind()
	assert.Equal(t, fb.ID(), rec.CurrentFramebuffer())
	assert.Equal(t, [4]int{0, 0, 320, 240}, rec.CurrentViewport())

	fb.Unbind()
	assert.Equal(t, uint32(0), rec.CurrentFramebuffer())
}

func TestReleaseIsIdempotent(t *testing.T) {
	rec := backendtest.New()
	fb, err := NewFramebuffer(rec, 8, 8)
	require.NoError(t, err)

	fb.Release()
	fb.Release()
	assert.Equal(t, 0, rec.TotalLive())
	assert.Equal(t, 1, rec.Deleted(backendtest.ResourceFramebuffer))
}

package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickReportsAfterInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(WithLogger(zap.New(core)), WithInterval(time.Second))
	start := p.lastTime

	for i := range 59 {
		assert.False(t, p.tickAt(start.Add(time.Duration(i)*time.Millisecond)))
	}
	require.True(t, p.tickAt(start.Add(2*time.Second)))

	assert.InDelta(t, 30, p.Last().FPS, 0.001)
	assert.Positive(t, p.Last().HeapMB)

	entries := logs.FilterMessage("profiler").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "fps")

	assert.False(t, p.tickAt(start.Add(2*time.Second+time.Millisecond)), "counter restarts after a report")
}

func TestDefaults(t *testing.T) {
	p := NewProfiler(WithInterval(-1), WithLogger(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
	assert.False(t, p.Tick())
}

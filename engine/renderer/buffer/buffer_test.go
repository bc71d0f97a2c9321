package buffer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutComputesOffsetsAndStride(t *testing.T) {
	l := NewLayout(
		Element{Name: "a_position", Type: DataTypeFloat3},
		Element{Name: "a_normal", Type: DataTypeFloat3},
		Element{Name: "a_texcoord", Type: DataTypeFloat2},
		Element{Name: "a_flag", Type: DataTypeBool},
	)

	offsets := []int{}
	for _, e := range l.Elements() {
		offsets = append(offsets, e.Offset)
	}
	assert.Equal(t, []int{0, 12, 24, 32}, offsets)
	assert.Equal(t, 33, l.Stride())
	assert.Equal(t, 4, l.Len())
}

func TestDataTypeTable(t *testing.T) {
	cases := []struct {
		typ        DataType
		components int32
		size       int
	}{
		{DataTypeFloat, 1, 4},
		{DataTypeFloat2, 2, 8},
		{DataTypeFloat3, 3, 12},
		{DataTypeFloat4, 4, 16},
		{DataTypeInt, 1, 4},
		{DataTypeInt2, 2, 8},
		{DataTypeInt3, 3, 12},
		{DataTypeInt4, 4, 16},
		{DataTypeBool, 1, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.components, c.typ.Components())
		assert.Equal(t, c.size, c.typ.Size())
	}
}

func TestVertexBufferUploadsAndReleasesOnce(t *testing.T) {
	rec := backendtest.New()
	vb := NewVertexBuffer(rec, []float32{1, 2, 3})

	require.NotZero(t, vb.ID())
	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "BufferData", calls[1].Op)
	assert.Equal(t, 12, calls[1].Value)

	vb.Release()
	vb.Release()
	assert.Zero(t, vb.ID())
	assert.Equal(t, 1, rec.Deleted(backendtest.ResourceBuffer))
	assert.Equal(t, 0, rec.Live(backendtest.ResourceBuffer))
}

func TestIndexBufferCount(t *testing.T) {
	rec := backendtest.New()
	ib := NewIndexBuffer(rec, []uint32{0, 1, 2, 2, 3, 0})
	assert.Equal(t, int32(6), ib.Count())
	ib.Release()
	ib.Release()
	assert.Equal(t, 1, rec.Deleted(backendtest.ResourceBuffer))
}

func TestVertexArrayAttributeIndicesContinueAcrossBuffers(t *testing.T) {
	rec := backendtest.New()
	va := NewVertexArray(rec)

	first := NewLayout(Element{Name: "a_position", Type: DataTypeFloat3}, Element{Name: "a_normal", Type: DataTypeFloat3})
	second := NewLayout(Element{Name: "a_id", Type: DataTypeInt})

	require.NoError(t, va.AddVertexBuffer(NewVertexBuffer(rec, make([]float32, 18)), first))
	require.NoError(t, va.AddVertexBuffer(NewVertexBuffer(rec, make([]float32, 3)), second))

	var pointers []backendtest.AttribPointer
	var enabled []uint32
	for _, c := range rec.Calls() {
		switch c.Op {
		case "VertexAttribPointer":
			pointers = append(pointers, c.Value.(backendtest.AttribPointer))
		case "EnableVertexAttribArray":
			enabled = append(enabled, c.Value.(uint32))
		}
	}
	require.Len(t, pointers, 3)
	assert.Equal(t, backendtest.AttribPointer{Index: 0, Size: 3, Type: backend.AttribTypeFloat, Stride: 24, Offset: 0}, pointers[0])
	assert.Equal(t, backendtest.AttribPointer{Index: 1, Size: 3, Type: backend.AttribTypeFloat, Stride: 24, Offset: 12}, pointers[1])
	assert.Equal(t, backendtest.AttribPointer{Index: 2, Size: 1, Type: backend.AttribTypeInt, Stride: 4, Offset: 0}, pointers[2])
	assert.Equal(t, []uint32{0, 1, 2}, enabled)
	assert.Equal(t, uint32(3), va.AttributeCount())
}

func TestVertexArrayRejectsEmptyLayout(t *testing.T) {
	rec := backendtest.New()
	va := NewVertexArray(rec)
	err := va.AddVertexBuffer(NewVertexBuffer(rec, nil), NewLayout())
	assert.ErrorIs(t, err, ErrEmptyLayout)
	assert.Empty(t, va.VertexBuffers())
}

func TestVertexArrayRejectsNilBuffers(t *testing.T) {
	rec := backendtest.New()
	va := NewVertexArray(rec)
	layout := NewLayout(Element{Name: "a_position", Type: DataTypeFloat3})

	assert.ErrorIs(t, va.AddVertexBuffer(nil, layout), ErrNilBuffer)
	assert.ErrorIs(t, va.SetIndexBuffer(nil), ErrNilBuffer)
	assert.Empty(t, va.VertexBuffers())
	assert.Nil(t, va.IndexBuffer())
	assert.Zero(t, va.AttributeCount())

	va.Release()
	assert.ErrorIs(t, va.SetIndexBuffer(NewIndexBuffer(rec, []uint32{0})), ErrReleased)
}

func TestSetIndexBufferReleasesPrevious(t *testing.T) {
	rec := backendtest.New()
	va := NewVertexArray(rec)

	old := NewIndexBuffer(rec, []uint32{0, 1, 2})
	require.NoError(t, va.SetIndexBuffer(old))
	replacement := NewIndexBuffer(rec, []uint32{0, 1, 2, 2, 3, 0})
	require.NoError(t, va.SetIndexBuffer(replacement))

	assert.Zero(t, old.ID())
	assert.Equal(t, replacement, va.IndexBuffer())
	assert.Equal(t, int32(6), va.IndexBuffer().Count())
}

func TestVertexArrayReleaseFreesEverythingOnce(t *testing.T) {
	rec := backendtest.New()
	va := NewVertexArray(rec)
	layout := NewLayout(Element{Name: "a_position", Type: DataTypeFloat3})
	require.NoError(t, va.AddVertexBuffer(NewVertexBuffer(rec, make([]float32, 9)), layout))
	require.NoError(t, va.AddVertexBuffer(NewVertexBuffer(rec, make([]float32, 9)), layout))
	require.NoError(t, va.SetIndexBuffer(NewIndexBuffer(rec, []uint32{0, 1, 2})))

	va.Release()
	va.Release()

	assert.Equal(t, 0, rec.TotalLive())
	assert.Equal(t, 3, rec.Deleted(backendtest.ResourceBuffer))
	assert.Equal(t, 1, rec.Deleted(backendtest.ResourceVertexArray))
	assert.ErrorIs(t, va.AddVertexBuffer(NewVertexBuffer(rec, nil), layout), ErrReleased)
}

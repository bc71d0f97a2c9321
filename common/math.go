package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FrontFromAngles returns the unit view direction for a yaw/pitch pair in radians.
// Yaw 0 looks down +X; yaw -pi/2 looks down -Z.
//
// Parameters:
//   - yaw: rotation around the world Y axis
//   - pitch: elevation above the XZ plane
//
// Returns:
//   - mgl32.Vec3: the normalized direction
func FrontFromAngles(yaw, pitch float32) mgl32.Vec3 {
	cy, sy := float32(math.Cos(float64(yaw))), float32(math.Sin(float64(yaw)))
	cp, sp := float32(math.Cos(float64(pitch))), float32(math.Sin(float64(pitch)))
	return mgl32.Vec3{cy * cp, sp, sy * cp}.Normalize()
}

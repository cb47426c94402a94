// Package component defines the engine-supplied component types. Components
// are plain data: no methods with behavior, no Go pointers (pool storage is
// raw bytes the garbage collector never scans).
package component

// Position is a world-space location.
type Position struct {
	X, Y, Z float32
}

// Velocity is units per second.
type Velocity struct {
	X, Y, Z float32
}

// Rotation is Euler angles in radians.
type Rotation struct {
	Pitch, Yaw, Roll float32
}

// Scale is a per-axis multiplier.
type Scale struct {
	X, Y, Z float32
}

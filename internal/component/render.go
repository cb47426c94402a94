package component

// Renderable carries the ids a renderer needs to draw an entity. The core is
// render-agnostic: these are opaque handles into whatever resource manager
// the graphics layer runs.
type Renderable struct {
	MeshID     uint32
	MaterialID uint32
	Layer      int32
}

package component

// Script binds an entity to a Lua handler registered with the scripting
// engine. The handler is referenced by id rather than name because component
// storage cannot hold a Go string.
type Script struct {
	Handler uint32
}

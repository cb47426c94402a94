// Package arena provides fixed-size, category-keyed memory pools. All bulk
// storage in the engine (component pools in particular) is carved from an
// Arena rather than allocated ad hoc, so memory use is bounded and observable.
package arena

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

// DefaultAlignment is used when a caller passes align <= 0.
const DefaultAlignment = 16

// ErrOutOfMemory is returned when a category pool cannot satisfy an
// allocation. Pools never grow and never evict; callers must treat this as
// fatal for the triggering operation.
var ErrOutOfMemory = errors.New("arena: pool out of memory")

// Block is a single allocation issued by the Arena. It remembers its origin
// so Free can validate ownership.
type Block struct {
	category Category
	offset   int
	size     int
	data     []byte
}

// Bytes returns the allocated region. The slice is valid until the owning
// category is Reset or the arena is Released.
func (b Block) Bytes() []byte { return b.data }

func (b Block) Size() int          { return b.size }
func (b Block) Category() Category { return b.category }

// Stats is a point-in-time snapshot of one category pool.
type Stats struct {
	Category Category
	Size     int
	Used     int
	Peak     int
	Live     int // blocks issued and not yet freed
}

type pool struct {
	mu     sync.Mutex
	buf    []byte
	used   int
	peak   int
	blocks map[int]int // offset -> size, for ownership and leak tracking
}

// Arena owns one bump-allocated pool per Category. Allocation within a
// category is serialized by that category's lock; different categories never
// contend. Free is bookkeeping only — space comes back in bulk via Reset or
// Release.
type Arena struct {
	pools [numCategories]pool
	log   *zap.Logger
}

// New builds an arena with the given pool sizes. The buffers are committed
// up front.
func New(sizes Sizes, log *zap.Logger) *Arena {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Arena{log: log}
	for c := Category(0); c < numCategories; c++ {
		n := sizes.forCategory(c)
		a.pools[c] = pool{
			buf:    make([]byte, n),
			blocks: make(map[int]int),
		}
	}
	log.Info("arena initialized",
		zap.Int("general_bytes", sizes.forCategory(General)),
		zap.Int("temp_bytes", sizes.forCategory(Temp)))
	return a
}

// Alloc carves size bytes aligned to align out of the category's pool. It
// never reclaims or grows: exhaustion returns ErrOutOfMemory.
func (a *Arena) Alloc(size, align int, cat Category) (Block, error) {
	if size <= 0 {
		panic(fmt.Sprintf("arena: invalid allocation size %d", size))
	}
	if align <= 0 {
		align = DefaultAlignment
	}
	if align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", align))
	}

	p := &a.pools[cat]
	p.mu.Lock()
	defer p.mu.Unlock()

	base := uintptr(unsafe.Pointer(&p.buf[0]))
	addr := base + uintptr(p.used)
	aligned := (addr + uintptr(align) - 1) &^ (uintptr(align) - 1)
	off := p.used + int(aligned-addr)

	if off+size > len(p.buf) {
		a.log.Error("arena pool exhausted",
			zap.Stringer("category", cat),
			zap.Int("requested", size),
			zap.Int("used", p.used),
			zap.Int("size", len(p.buf)))
		return Block{}, fmt.Errorf("%w: %s pool (%d requested, %d of %d used)",
			ErrOutOfMemory, cat, size, p.used, len(p.buf))
	}

	p.used = off + size
	if p.used > p.peak {
		p.peak = p.used
	}
	p.blocks[off] = size

	return Block{
		category: cat,
		offset:   off,
		size:     size,
		data:     p.buf[off : off+size : off+size],
	}, nil
}

// Free records that a block is no longer in use. The space itself is not
// reclaimed until Reset or Release. Freeing a block that was never issued
// from its category is a programming error and panics.
func (a *Arena) Free(b Block) {
	if b.data == nil {
		return
	}
	p := &a.pools[b.category]
	p.mu.Lock()
	defer p.mu.Unlock()

	size, ok := p.blocks[b.offset]
	if !ok || size != b.size {
		panic(fmt.Sprintf("arena: freeing block not issued from %s pool (offset %d, size %d)",
			b.category, b.offset, b.size))
	}
	delete(p.blocks, b.offset)
}

// Reset reclaims a whole category at once. Any Block previously issued from
// it becomes invalid.
func (a *Arena) Reset(cat Category) {
	p := &a.pools[cat]
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used = 0
	clear(p.blocks)
}

// Release drops every pool buffer. The arena must not be used afterwards.
func (a *Arena) Release() {
	for c := Category(0); c < numCategories; c++ {
		p := &a.pools[c]
		p.mu.Lock()
		p.buf = nil
		p.used = 0
		p.blocks = nil
		p.mu.Unlock()
	}
}

// Stats snapshots one category.
func (a *Arena) Stats(cat Category) Stats {
	p := &a.pools[cat]
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Category: cat,
		Size:     len(p.buf),
		Used:     p.used,
		Peak:     p.peak,
		Live:     len(p.blocks),
	}
}

// LogStatistics writes a usage summary for every category, typically at
// shutdown. Categories with live blocks are flagged: a live count other than
// zero at teardown usually means a leak.
func (a *Arena) LogStatistics() {
	for c := Category(0); c < numCategories; c++ {
		s := a.Stats(c)
		if s.Size == 0 {
			continue
		}
		a.log.Info("arena pool statistics",
			zap.Stringer("category", c),
			zap.Int("used", s.Used),
			zap.Int("peak", s.Peak),
			zap.Int("size", s.Size),
			zap.Int("live_blocks", s.Live))
	}
}

package ecs

import (
	"fmt"
	"unsafe"

	"github.com/embercore/ember/internal/core/arena"
)

// componentPool is densely packed storage for one component type: a
// contiguous arena block of capacity×elemSize bytes with occupied slots
// exactly [0, size). Removal relocates the last element into the freed slot
// so the payload never fragments. The pool has no entity lookup of its own;
// the parallel owners slice is the back-reference the World uses to patch a
// relocated element's index immediately after swapRemove.
//
// All unsafe byte arithmetic in the package is confined to this file.
// Component types must be plain data: a Go pointer stored inside pool bytes
// is invisible to the garbage collector.
type componentPool struct {
	arena     *arena.Arena
	block     arena.Block
	data      []byte
	elemSize  int
	elemAlign int
	size      int
	capacity  int
	owners    []EntityID
}

func newComponentPool(a *arena.Arena, info componentInfo, capacity int) (*componentPool, error) {
	if capacity < 1 {
		capacity = 1
	}
	block, err := a.Alloc(info.size*capacity, info.align, arena.General)
	if err != nil {
		return nil, fmt.Errorf("component pool %s: %w", info.name, err)
	}
	return &componentPool{
		arena:     a,
		block:     block,
		data:      block.Bytes(),
		elemSize:  info.size,
		elemAlign: info.align,
		capacity:  capacity,
		owners:    make([]EntityID, 0, capacity),
	}, nil
}

// slot returns a pointer to the component bytes at index. The pointer is
// invalidated by growth and by swapRemove; callers must not retain it across
// mutations.
func (p *componentPool) slot(index int) unsafe.Pointer {
	if index < 0 || index >= p.size {
		panic(fmt.Sprintf("ecs: pool index %d out of range [0,%d)", index, p.size))
	}
	return unsafe.Pointer(&p.data[index*p.elemSize])
}

// append copies src into the slot at the current size, growing the backing
// block when full. Returns the new component's index.
func (p *componentPool) append(src []byte, owner EntityID) (int, error) {
	if p.size == p.capacity {
		if err := p.grow(); err != nil {
			return 0, err
		}
	}
	index := p.size
	copy(p.data[index*p.elemSize:(index+1)*p.elemSize], src)
	p.owners = append(p.owners, owner)
	p.size++
	return index, nil
}

// grow doubles capacity: new block from the arena, raw copy of the live
// bytes, release of the old block.
func (p *componentPool) grow() error {
	newCap := p.capacity * 2
	block, err := p.arena.Alloc(p.elemSize*newCap, p.elemAlign, arena.General)
	if err != nil {
		return err
	}
	copy(block.Bytes(), p.data[:p.size*p.elemSize])
	p.arena.Free(p.block)
	p.block = block
	p.data = block.Bytes()
	p.capacity = newCap
	return nil
}

// swapRemove frees the slot at index. Unless index was the last slot, the
// last element's bytes are copied into it and that element's owner is
// returned so the caller can patch the owner's index table in the same
// step — the patch must happen before anything else observes the pool.
func (p *componentPool) swapRemove(index int) (movedOwner EntityID, moved bool) {
	if index < 0 || index >= p.size {
		panic(fmt.Sprintf("ecs: pool remove index %d out of range [0,%d)", index, p.size))
	}
	last := p.size - 1
	if index < last {
		copy(p.data[index*p.elemSize:(index+1)*p.elemSize],
			p.data[last*p.elemSize:(last+1)*p.elemSize])
		p.owners[index] = p.owners[last]
		movedOwner = p.owners[index]
		moved = true
	}
	p.owners = p.owners[:last]
	p.size = last
	return movedOwner, moved
}

func (p *componentPool) ownerAt(index int) EntityID { return p.owners[index] }

func (p *componentPool) Size() int     { return p.size }
func (p *componentPool) Capacity() int { return p.capacity }

func (p *componentPool) release() {
	p.arena.Free(p.block)
	p.data = nil
	p.size = 0
	p.capacity = 0
	p.owners = nil
}

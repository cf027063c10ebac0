package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
)

// View is a typed window into the Arena: a named section of base-field
// elements with a fixed row width (Dim: 1 for base columns, 3 for
// extension-typed columns packed as 3 consecutive base positions).
type View struct {
	Offset int
	Len    int
	Dim    int
}

// Arena is the single flat allocation every prover task addresses every
// buffer through by offset, per spec §9's "pointer graphs into a single
// arena" design note. Aliasing between views is checked once, at
// construction, never at access time.
type Arena struct {
	data  []core.GLElement
	views map[string]View
}

// NewArena allocates a zeroed slab of size total and an empty view table.
func NewArena(total int) *Arena {
	return &Arena{data: make([]core.GLElement, total), views: make(map[string]View)}
}

// Reserve registers a named view at the given offset/length/dim, failing if
// it overlaps any previously reserved view.
func (a *Arena) Reserve(name string, offset, length, dim int) error {
	if offset < 0 || length < 0 || offset+length > len(a.data) {
		return newErr(ErrShape, "arena: view %q [%d,%d) out of bounds for slab of size %d", name, offset, offset+length, len(a.data))
	}
	for other, v := range a.views {
		if offset < v.Offset+v.Len && v.Offset < offset+length {
			return newErr(ErrShape, "arena: view %q [%d,%d) overlaps existing view %q [%d,%d)", name, offset, offset+length, other, v.Offset, v.Offset+v.Len)
		}
	}
	a.views[name] = View{Offset: offset, Len: length, Dim: dim}
	return nil
}

// Slice returns the named view's backing slice.
func (a *Arena) Slice(name string) ([]core.GLElement, error) {
	v, ok := a.views[name]
	if !ok {
		return nil, newErr(ErrShape, "arena: no such view %q", name)
	}
	return a.data[v.Offset : v.Offset+v.Len], nil
}

// View returns the view descriptor for name.
func (a *Arena) View(name string) (View, bool) {
	v, ok := a.views[name]
	return v, ok
}

// Size reports the slab's total element count.
func (a *Arena) Size() int { return len(a.data) }

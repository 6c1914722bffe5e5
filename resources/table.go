package resources

import (
	"github.com/wippyai/jsbindgen/errors"
	"github.com/wippyai/jsbindgen/names"
	"go.bytecodealliance.org/wit"
)

// RootModule is the import module of resources declared directly in a world
const RootModule = "$root"

// Table fixes the direction of every resource in a world and tracks which
// resources need drop and finalization wiring.
type Table struct {
	world   *wit.World
	names   *names.Allocator
	byDef   map[*wit.TypeDef]*Resource
	exports []*Resource
	used    []*Resource
	isUsed  map[*Resource]bool
}

// NewTable creates a table for world. Interface prefixes are allocated
// through alloc so they match the binding identifiers.
func NewTable(world *wit.World, alloc *names.Allocator) *Table {
	if alloc == nil {
		alloc = names.NewAllocator()
	}
	return &Table{
		world:  world,
		names:  alloc,
		byDef:  make(map[*wit.TypeDef]*Resource),
		isUsed: make(map[*Resource]bool),
	}
}

// Classify walks the world's imports and exports once and records the
// direction of every resource they declare.
func (t *Table) Classify() error {
	for key, item := range t.world.Imports.All() {
		switch item := item.(type) {
		case *wit.InterfaceRef:
			for _, td := range item.Interface.TypeDefs.All() {
				if err := t.declare(td, key, Import); err != nil {
					return err
				}
			}
		case *wit.TypeDef:
			if err := t.declare(item, RootModule, Import); err != nil {
				return err
			}
		}
	}
	for key, item := range t.world.Exports.All() {
		ref, ok := item.(*wit.InterfaceRef)
		if !ok {
			continue
		}
		for _, td := range ref.Interface.TypeDefs.All() {
			if err := t.declare(td, "[export]"+key, Export); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Table) declare(td *wit.TypeDef, module string, dir Direction) error {
	if _, ok := td.Kind.(*wit.Resource); !ok {
		return nil
	}
	return t.Record(td, module, dir)
}

// Record fixes the direction of the resource def. Recording the same
// direction again is a no-op; a different direction is an error.
func (t *Table) Record(def *wit.TypeDef, module string, dir Direction) error {
	if existing, ok := t.byDef[def]; ok {
		if existing.Direction != dir {
			return errors.DirectionConflict(typeName(def), existing.Direction.String(), dir.String())
		}
		return nil
	}

	r := &Resource{
		Def:       def,
		Name:      typeName(def),
		Prefix:    t.prefix(def),
		Module:    module,
		Direction: dir,
	}
	if _, ok := def.Owner.(*wit.World); ok && dir == Import {
		r.Module = RootModule
	}
	t.byDef[def] = r
	if dir == Export {
		t.exports = append(t.exports, r)
	}
	return nil
}

func (t *Table) prefix(def *wit.TypeDef) string {
	switch owner := def.Owner.(type) {
	case *wit.Interface:
		id, ok := names.InterfaceID(owner)
		if !ok {
			return ""
		}
		if name, ok := t.names.Interface(id); ok {
			return name + "$"
		}
	case *wit.World:
		if owner != t.world {
			return "$world$" + names.LowerCamel(owner.Name) + "$"
		}
	}
	return ""
}

// Lookup resolves def through aliases to its classified resource
func (t *Table) Lookup(def *wit.TypeDef) (*Resource, error) {
	def = Dealias(def)
	if r, ok := t.byDef[def]; ok {
		return r, nil
	}
	return nil, errors.NotFound(errors.PhaseClassify, "resource", typeName(def))
}

// Exports returns export resources in world export order
func (t *Table) Exports() []*Resource { return t.exports }

// Imported returns the import resources referenced by discovered bindings,
// in first-discovery order.
func (t *Table) Imported() []*Resource { return t.used }

// Wired returns every resource that needs operations and a registry:
// export resources first, then referenced import resources.
func (t *Table) Wired() []*Resource {
	out := make([]*Resource, 0, len(t.exports)+len(t.used))
	out = append(out, t.exports...)
	return append(out, t.used...)
}

// Ops returns the resource operation slots in $bindings order
func (t *Table) Ops() []Op {
	var ops []Op
	for _, r := range t.Wired() {
		ops = append(ops, r.Ops()...)
	}
	return ops
}

// Use marks an import resource as referenced by an emitted binding
func (t *Table) Use(r *Resource) {
	if r.Direction != Import || t.isUsed[r] {
		return
	}
	t.isUsed[r] = true
	t.used = append(t.used, r)
}

// Dealias follows type aliases to the underlying definition
func Dealias(def *wit.TypeDef) *wit.TypeDef {
	for def != nil {
		next, ok := def.Kind.(*wit.TypeDef)
		if !ok {
			return def
		}
		def = next
	}
	return def
}

func typeName(def *wit.TypeDef) string {
	if def == nil || def.Name == nil {
		return "<anonymous>"
	}
	return *def.Name
}

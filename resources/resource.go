package resources

import (
	"github.com/wippyai/jsbindgen/names"
	"go.bytecodealliance.org/wit"
)

// Direction records which side owns instances of a resource
type Direction int

const (
	// Import resources are owned by the host; the generated module must drop them.
	Import Direction = iota
	// Export resources are owned by the generated module's rep table.
	Export
)

func (d Direction) String() string {
	if d == Export {
		return "export"
	}
	return "import"
}

// Resource is a classified resource type
type Resource struct {
	Def       *wit.TypeDef
	Name      string // declared kebab name
	Prefix    string // "iface$", "$world$name$" or empty
	Module    string // import module, "$root" or "[export]<key>"
	Direction Direction
}

// Camel returns the lowerCamel resource name
func (r *Resource) Camel() string { return names.LowerCamel(r.Name) }

// Class returns the UpperCamel class name
func (r *Resource) Class() string { return names.UpperCamel(r.Name) }

// Registry returns the name of the finalization registry for r
func (r *Resource) Registry() string {
	return "finalizationRegistry_" + r.Direction.String() + "$" + r.Prefix + r.Camel()
}

// Op is one resource operation injected through $bindings together with the
// canonical import the splicer wires to it.
type Op struct {
	Binding string
	Module  string
	Name    string
	Arity   uint32
}

// Slot returns the JS identifier the operation is destructured into
func (o Op) Slot() string { return "$resource_" + o.Binding }

// NewOp returns the slot that creates an export handle
func (r *Resource) NewOp() string { return "$resource_" + r.Prefix + "new$" + r.Camel() }

// RepOp returns the slot that resolves an export handle to its rep
func (r *Resource) RepOp() string { return "$resource_" + r.Prefix + "rep$" + r.Camel() }

// DropOp returns the slot that drops a handle
func (r *Resource) DropOp() string {
	return "$resource_" + r.Direction.String() + "$" + r.Prefix + "drop$" + r.Camel()
}

// Ops lists the operations the resource needs, in slot order.
//
// Export resources need new, rep and drop on the export's own resource
// table. Import resources only need drop on the importing module.
func (r *Resource) Ops() []Op {
	kebab := names.Kebab(r.Name)
	camel := r.Camel()
	if r.Direction == Export {
		return []Op{
			{Binding: r.Prefix + "new$" + camel, Module: r.Module, Name: "[resource-new]" + kebab, Arity: 1},
			{Binding: r.Prefix + "rep$" + camel, Module: r.Module, Name: "[resource-rep]" + kebab, Arity: 1},
			{Binding: "export$" + r.Prefix + "drop$" + camel, Module: r.Module, Name: "[resource-drop]" + kebab, Arity: 0},
		}
	}
	return []Op{
		{Binding: "import$" + r.Prefix + "drop$" + camel, Module: r.Module, Name: "[resource-drop]" + kebab, Arity: 0},
	}
}

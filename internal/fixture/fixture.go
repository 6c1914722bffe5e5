// Package fixture builds small resolved WIT worlds for tests.
package fixture

import (
	"github.com/coreos/go-semver/semver"
	"go.bytecodealliance.org/wit"
)

// Ptr returns a pointer to s
func Ptr(s string) *string { return &s }

// Package creates a package named ns:name, versioned when version is non-empty.
func Package(ns, name, version string) *wit.Package {
	pkg := &wit.Package{Name: wit.Ident{Namespace: ns, Package: name}}
	if version != "" {
		pkg.Name.Version = semver.New(version)
	}
	return pkg
}

// Interface creates a named interface in pkg
func Interface(pkg *wit.Package, name string) *wit.Interface {
	return &wit.Interface{Name: Ptr(name), Package: pkg}
}

// World creates an empty world
func World(name string) *wit.World {
	return &wit.World{Name: name}
}

// Named creates a named type definition owned by owner and registers it on
// the owning interface.
func Named(owner wit.TypeOwner, name string, kind wit.TypeDefKind) *wit.TypeDef {
	td := &wit.TypeDef{Name: Ptr(name), Kind: kind, Owner: owner}
	if iface, ok := owner.(*wit.Interface); ok {
		iface.TypeDefs.Set(name, td)
	}
	return td
}

// Resource declares a resource type
func Resource(owner wit.TypeOwner, name string) *wit.TypeDef {
	return Named(owner, name, &wit.Resource{})
}

// Anon wraps kind in an anonymous type definition
func Anon(kind wit.TypeDefKind) *wit.TypeDef {
	return &wit.TypeDef{Kind: kind}
}

// Own is an owned handle to r
func Own(r *wit.TypeDef) *wit.TypeDef { return Anon(&wit.Own{Type: r}) }

// Borrow is a borrowed handle to r
func Borrow(r *wit.TypeDef) *wit.TypeDef { return Anon(&wit.Borrow{Type: r}) }

// List is list<t>
func List(t wit.Type) *wit.TypeDef { return Anon(&wit.List{Type: t}) }

// Option is option<t>
func Option(t wit.Type) *wit.TypeDef { return Anon(&wit.Option{Type: t}) }

// Result is result<ok, err>; either may be nil
func Result(ok, err wit.Type) *wit.TypeDef { return Anon(&wit.Result{OK: ok, Err: err}) }

// Tuple is tuple<ts...>
func Tuple(ts ...wit.Type) *wit.TypeDef { return Anon(&wit.Tuple{Types: ts}) }

// P is a named parameter
func P(name string, t wit.Type) wit.Param { return wit.Param{Name: name, Type: t} }

// Func creates a freestanding function
func Func(name string, params []wit.Param, result wit.Type) *wit.Function {
	return fn(name, &wit.Freestanding{}, params, result)
}

// Constructor creates [constructor]res returning own<res>
func Constructor(res *wit.TypeDef, params []wit.Param) *wit.Function {
	return fn("[constructor]"+*res.Name, &wit.Constructor{Type: res}, params, Own(res))
}

// Method creates [method]res.name with the implicit self borrow first
func Method(res *wit.TypeDef, name string, params []wit.Param, result wit.Type) *wit.Function {
	all := append([]wit.Param{P("self", Borrow(res))}, params...)
	return fn("[method]"+*res.Name+"."+name, &wit.Method{Type: res}, all, result)
}

// Static creates [static]res.name
func Static(res *wit.TypeDef, name string, params []wit.Param, result wit.Type) *wit.Function {
	return fn("[static]"+*res.Name+"."+name, &wit.Static{Type: res}, params, result)
}

func fn(name string, kind wit.FunctionKind, params []wit.Param, result wit.Type) *wit.Function {
	f := &wit.Function{Name: name, Kind: kind, Params: params}
	if result != nil {
		f.Results = []wit.Param{{Type: result}}
	}
	return f
}

// AddFuncs registers functions on iface under their canonical names
func AddFuncs(iface *wit.Interface, fns ...*wit.Function) *wit.Interface {
	for _, f := range fns {
		iface.Functions.Set(f.Name, f)
	}
	return iface
}

// Ref wraps iface as a world import or export item
func Ref(iface *wit.Interface) *wit.InterfaceRef {
	return &wit.InterfaceRef{Interface: iface}
}

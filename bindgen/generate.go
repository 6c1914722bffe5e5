package bindgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wippyai/jsbindgen/abi"
	"github.com/wippyai/jsbindgen/errors"
	"github.com/wippyai/jsbindgen/internal/intrinsics"
	"github.com/wippyai/jsbindgen/internal/source"
	"github.com/wippyai/jsbindgen/names"
	"github.com/wippyai/jsbindgen/resources"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// Identifiers bound by the module preamble or provided by the host
const (
	memory        = "$memory"
	realloc       = "$realloc"
	sourceModule  = "$source_mod"
	defineBuiltin = "defineBuiltinModule"
)

// reservedGlobals are identifiers the generated module declares or expects
// besides the intrinsics.
var reservedGlobals = []string{
	memory, realloc, sourceModule, defineBuiltin,
	"repCnt", "repTable", "TextEncoder", "TextDecoder", "contentGlobal",
	"bindExports", "__sourceName", "__iface",
	"BindingsError", "getInterfaceExport", "verifyInterfaceFn", "verifyInterfaceResource",
}

// BindingItem describes one generated function binding
type BindingItem struct {
	Iface       bool
	IfaceName   string
	BindingName string
	Resource    names.Role
	Name        string
	Func        abi.CoreFn
}

// Export is an export binding keyed by its world export name
type Export struct {
	Name string
	Item BindingItem
}

// Import is an import binding keyed by its import specifier
type Import struct {
	Specifier string
	Item      BindingItem
}

// ResourceImport is a canonical resource operation the splicer must wire
type ResourceImport struct {
	Module string
	Name   string
	Arity  uint32
}

// Componentization is the complete output of one generation run
type Componentization struct {
	JSBindings      string
	Exports         []Export
	Imports         []Import
	ResourceImports []ResourceImport
}

// generator holds the accumulators of one run
type generator struct {
	world      *wit.World
	opts       Options
	log        *zap.Logger
	names      *names.Allocator
	table      *resources.Table
	deriver    *abi.Deriver
	sizes      *abi.SizeAlign
	intrinsics *intrinsics.Set
	src        source.Source
	esm        *esmTree

	exports []Export
	imports []Import

	// class names of emitted import resource wrappers, by specifier and resource
	classes map[classKey]string
	emitted map[*resources.Resource]bool
}

type classKey struct {
	specifier string
	resource  string
}

// Generate produces the JS bindings module for world. When world is nil and
// resolve holds exactly one world, that world is used.
func Generate(resolve *wit.Resolve, world *wit.World, opts Options) (*Componentization, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		if resolve == nil || len(resolve.Worlds) != 1 {
			return nil, errors.InvalidInput(errors.PhaseConfig, "no world selected and the resolve does not hold exactly one world")
		}
		world = resolve.Worlds[0]
	}

	g := newGenerator(world, opts)
	g.log.Debug("generating bindings")

	if err := g.table.Classify(); err != nil {
		return nil, err
	}
	if err := g.importsBindgen(); err != nil {
		return nil, err
	}
	if err := g.exportsBindgen(); err != nil {
		return nil, err
	}
	return g.finish()
}

func newGenerator(world *wit.World, opts Options) *generator {
	alloc := names.NewAllocator(intrinsics.GlobalNames()...)
	alloc.Exclude(reservedGlobals...)
	alloc.ExcludeNumbered(bodyLocals...)
	deriver := abi.NewDeriver(nil)
	return &generator{
		world:      world,
		opts:       opts,
		log:        Logger().With(zap.String("world", world.Name)),
		names:      alloc,
		table:      resources.NewTable(world, alloc),
		deriver:    deriver,
		sizes:      deriver.Sizes(),
		intrinsics: intrinsics.NewSet(),
		esm:        newESMTree(),
		classes:    make(map[classKey]string),
		emitted:    make(map[*resources.Resource]bool),
	}
}

// finish orders the collected bindings and assembles the module text.
func (g *generator) finish() (*Componentization, error) {
	// The splicer fills the $bindings import slots positionally from
	// Componentization.Imports, so both must stay in specifier order.
	slices.SortStableFunc(g.imports, func(a, b Import) int {
		return strings.Compare(a.Specifier, b.Specifier)
	})

	g.emitUnboundClasses()

	var resourceImports []ResourceImport
	for _, op := range g.table.Ops() {
		resourceImports = append(resourceImports, ResourceImport{Module: op.Module, Name: op.Name, Arity: op.Arity})
	}

	js, err := g.assemble()
	if err != nil {
		return nil, err
	}

	g.log.Debug("bindings generated",
		zap.Int("exports", len(g.exports)),
		zap.Int("imports", len(g.imports)),
		zap.Int("resource_imports", len(resourceImports)),
		zap.Int("bytes", len(js)))

	return &Componentization{
		JSBindings:      js,
		Exports:         g.exports,
		Imports:         g.imports,
		ResourceImports: resourceImports,
	}, nil
}

// funcRole returns the resource role of fn and the resource it is bound to.
func funcRole(fn *wit.Function) (names.Role, *wit.TypeDef, error) {
	var (
		typ  wit.Type
		role func(string) names.Role
	)
	switch kind := fn.Kind.(type) {
	case *wit.Freestanding:
		return names.Role{}, nil, nil
	case *wit.Constructor:
		typ, role = kind.Type, names.Constructor
	case *wit.Method:
		typ, role = kind.Type, names.Method
	case *wit.Static:
		typ, role = kind.Type, names.Static
	default:
		return names.Role{}, nil, errors.New(errors.PhaseEmit, errors.KindUnsupported).
			Path(fn.Name).
			Detail("function kind %T is not supported", fn.Kind).
			Build()
	}

	td, ok := typ.(*wit.TypeDef)
	if !ok {
		return names.Role{}, nil, errors.InvalidType(errors.PhaseNaming, []string{fn.Name},
			fmt.Sprintf("%T", typ), "resource function is not bound to a type definition")
	}
	def := resources.Dealias(td)
	return role(defName(def)), def, nil
}

func defName(def *wit.TypeDef) string {
	if def == nil || def.Name == nil {
		return ""
	}
	return *def.Name
}

// interfaceName returns the allocated namespace of iface, or empty.
func (g *generator) interfaceName(iface *wit.Interface) string {
	id, ok := names.InterfaceID(iface)
	if !ok {
		return ""
	}
	name, _ := g.names.Interface(id)
	return name
}

package bindgen

import (
	"strconv"
	"strings"

	"github.com/wippyai/jsbindgen/abi"
	"github.com/wippyai/jsbindgen/errors"
	"github.com/wippyai/jsbindgen/internal/intrinsics"
	"github.com/wippyai/jsbindgen/names"
	"github.com/wippyai/jsbindgen/resources"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// importSite locates an import binding in the world
type importSite struct {
	specifier string
	iface     bool
	ifaceName string
	// class is set when the function is a member of an import wrapper
	class string
}

// exportSite locates an export binding in the world
type exportSite struct {
	key       string
	iface     bool
	ifaceName string
	// local is the host-side binding the callee is resolved from
	local string
}

func argList(from, to int) []string {
	args := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		args = append(args, "arg"+strconv.Itoa(i))
	}
	return args
}

// importFunction emits the JS callable for an imported function: arguments
// are lowered, the core import is called and its result lifted.
func (g *generator) importFunction(site importSite, fn *wit.Function) error {
	role, _, err := funcRole(fn)
	if err != nil {
		return err
	}
	uses, err := g.table.Discover(fn)
	if err != nil {
		return err
	}

	item := names.ItemName(fn.Name)
	id := g.names.Binding(site.ifaceName, role, item)
	sig := g.deriver.Signature(fn, abi.GuestExport)
	core := g.deriver.CoreFn(fn, abi.GuestImport)

	e := g.newEmitter(site.specifier, fn.Name)
	camel := names.LowerCamel(item)
	args := argList(0, len(fn.Params))

	switch role.Kind {
	case names.RoleNone:
		e.line("")
		e.line("function import_%s(%s) {", id, strings.Join(args, ", "))
	case names.RoleConstructor:
		e.class = site.class
		e.line("constructor(%s) {", strings.Join(args, ", "))
	case names.RoleStatic:
		e.line("static %s(%s) {", camel, strings.Join(args, ", "))
	case names.RoleMethod:
		e.line("%s(%s) {", camel, strings.Join(args[1:], ", "))
		e.line("const arg0 = this;")
	}

	e.callImport(fn, sig, "$import_"+id, args)
	e.line("}")
	if e.err != nil {
		return e.err
	}

	g.imports = append(g.imports, Import{
		Specifier: site.specifier,
		Item: BindingItem{
			Iface:       site.iface,
			IfaceName:   site.ifaceName,
			BindingName: id,
			Resource:    role,
			Name:        item,
			Func:        core,
		},
	})
	g.log.Debug("import binding",
		zap.String("specifier", site.specifier),
		zap.String("binding", id),
		zap.Stringer("role", role.Kind),
		zap.Int("resources", uses.Len()),
		zap.Stringer("core", core))
	return nil
}

// callImport lowers args, calls callee and returns the lifted result.
func (e *emitter) callImport(fn *wit.Function, sig abi.Signature, callee string, args []string) {
	var flat []string
	if sig.IndirectParams {
		info, offsets := e.g.deriver.ParamsLayout(fn)
		ptr := e.temp("ptr")
		e.line("const %s = %s(0, 0, %d, %d);", ptr, realloc, info.Align, info.Size)
		for i, p := range fn.Params {
			e.store(p.Type, args[i], ptr, offsets[i])
		}
		flat = []string{ptr}
	} else {
		for i, p := range fn.Params {
			flat = append(flat, e.lower(p.Type, args[i])...)
		}
	}

	result := abi.ResultType(fn)
	call := callee + "(" + strings.Join(flat, ", ") + ")"
	if result == nil {
		e.line("%s;", call)
		return
	}

	ret := e.temp("ret")
	e.line("const %s = %s;", ret, call)

	var val string
	if sig.RetPtr {
		val = e.load(result, ret, 0)
	} else {
		val = e.lift(result, []string{ret})
	}

	if _, ok := resultOf(result); ok {
		v := e.bind("result", val)
		e.line("if (%s.tag === 'err') {", v)
		e.line("throw new %s(%s.val);", e.use(intrinsics.ComponentError), v)
		e.line("}")
		e.line("return %s.val;", v)
		return
	}
	e.line("return %s;", val)
}

// importClass emits the wrapper class of an import resource with its
// constructor, static functions and methods.
func (g *generator) importClass(site importSite, r *resources.Resource, fns []*wit.Function) error {
	g.table.Use(r)
	class := importClass(r)
	site.class = class

	g.src.Line("")
	g.src.Linef("class %s {", class)
	for _, fn := range fns {
		if err := g.importFunction(site, fn); err != nil {
			return err
		}
	}
	g.disposer(r)
	g.src.Line("}")

	g.classes[classKey{site.specifier, r.Name}] = class
	g.emitted[r] = true
	return nil
}

// disposer emits the explicit resource disposal method of an import wrapper.
func (g *generator) disposer(r *resources.Resource) {
	sym := g.intrinsics.Use(intrinsics.SymbolResourceHandle)
	dispose := g.intrinsics.Use(intrinsics.SymbolDispose)
	g.src.Linef("[%s]() {", dispose)
	g.src.Linef("%s.unregister(this);", r.Registry())
	g.src.Linef("%s(this[%s]);", r.DropOp(), sym)
	g.src.Linef("this[%s] = undefined;", sym)
	g.src.Line("}")
}

// emitUnboundClasses emits wrappers for import resources that are passed
// across the boundary but have no functions of their own.
func (g *generator) emitUnboundClasses() {
	for _, r := range g.table.Imported() {
		if g.emitted[r] {
			continue
		}
		g.src.Line("")
		g.src.Linef("class %s {", importClass(r))
		g.disposer(r)
		g.src.Line("}")
		g.emitted[r] = true
	}
}

// exportFunction emits the async core-facing callable of an exported
// function: core arguments are lifted, the host implementation awaited and
// its result lowered.
func (g *generator) exportFunction(site exportSite, fn *wit.Function) error {
	role, _, err := funcRole(fn)
	if err != nil {
		return err
	}
	uses, err := g.table.Discover(fn)
	if err != nil {
		return err
	}

	item := names.ItemName(fn.Name)
	camel := names.LowerCamel(item)
	var callee string
	switch role.Kind {
	case names.RoleMethod:
		callee = site.local + ".prototype." + camel + ".call"
	case names.RoleStatic:
		callee = site.local + "." + camel
	case names.RoleConstructor:
		callee = "new " + site.local
	default:
		callee = site.local
	}

	id := "export_" + g.names.Binding(site.ifaceName, role, item)
	sig := g.deriver.Signature(fn, abi.GuestImport)
	core := g.deriver.CoreFn(fn, abi.GuestExport)

	e := g.newEmitter(site.key, fn.Name)
	args := argList(0, len(sig.Params))
	e.line("")
	e.line("async function %s(%s) {", id, strings.Join(args, ", "))
	e.callExport(fn, sig, "await "+callee, args)
	e.line("}")
	if e.err != nil {
		return e.err
	}

	g.exports = append(g.exports, Export{
		Name: site.key,
		Item: BindingItem{
			Iface:       site.iface,
			IfaceName:   site.ifaceName,
			BindingName: id,
			Resource:    role,
			Name:        item,
			Func:        core,
		},
	})
	g.log.Debug("export binding",
		zap.String("key", site.key),
		zap.String("binding", id),
		zap.Stringer("role", role.Kind),
		zap.Int("resources", uses.Len()),
		zap.Stringer("core", core))
	return nil
}

// callExport lifts the core args, calls callee and lowers its result.
func (e *emitter) callExport(fn *wit.Function, sig abi.Signature, callee string, args []string) {
	var params []string
	if sig.IndirectParams {
		_, offsets := e.g.deriver.ParamsLayout(fn)
		for i, p := range fn.Params {
			params = append(params, e.load(p.Type, args[0], offsets[i]))
		}
	} else {
		core := args
		if sig.RetPtr {
			core = args[:len(args)-1]
		}
		params = e.liftArgs(fn.Params, core)
	}

	call := callee + "(" + strings.Join(params, ", ") + ")"
	result := abi.ResultType(fn)
	if result == nil {
		e.line("%s;", call)
		return
	}

	ret := e.temp("ret")
	if _, ok := resultOf(result); ok {
		ex := e.temp("e")
		e.line("let %s;", ret)
		e.line("try {")
		e.line("%s = { tag: 'ok', val: %s };", ret, call)
		e.line("} catch (%s) {", ex)
		e.line("%s = { tag: 'err', val: %s(%s) };", ret, e.use(intrinsics.GetErrorPayload), ex)
		e.line("}")
	} else {
		e.line("const %s = %s;", ret, call)
	}

	if sig.RetPtr {
		e.store(result, ret, args[len(args)-1], 0)
		return
	}
	flat := e.lower(result, ret)
	switch len(flat) {
	case 0:
	case 1:
		e.line("return %s;", flat[0])
	default:
		e.fail(errors.InvalidInput(errors.PhaseSignature, "direct result must lower to at most one core value"))
	}
}

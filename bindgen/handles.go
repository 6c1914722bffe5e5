package bindgen

import (
	"github.com/wippyai/jsbindgen/internal/intrinsics"
	"github.com/wippyai/jsbindgen/resources"
	"go.bytecodealliance.org/wit"
)

func (e *emitter) resource(def *wit.TypeDef) (*resources.Resource, bool) {
	r, err := e.g.table.Lookup(def)
	if err != nil {
		e.fail(err)
		return nil, false
	}
	return r, true
}

// importClass returns the wrapper class name of an import resource
func importClass(r *resources.Resource) string {
	return "import_" + r.Prefix + r.Class()
}

// lowerHandle converts a resource value into its handle.
//
// Export resources are stored in repTable and handed to the component
// through the new operation. Import resources carry their handle on the
// wrapper object; passing ownership detaches the wrapper.
func (e *emitter) lowerHandle(def *wit.TypeDef, own bool, v string) string {
	r, ok := e.resource(def)
	if !ok {
		return "0"
	}

	if r.Direction == resources.Export {
		rep, handle := e.temp("rep"), e.temp("handle")
		e.line("const %s = repCnt++;", rep)
		e.line("repTable.set(%s, { rep: %s, own: %t });", rep, v, own)
		e.line("const %s = %s(%s);", handle, r.NewOp(), rep)
		return handle
	}

	e.g.table.Use(r)
	class := importClass(r)
	sym := e.use(intrinsics.SymbolResourceHandle)
	val := e.bind("rsc", v)
	handle := e.temp("handle")
	e.line("if (!(%s instanceof %s)) {", val, class)
	e.line("throw new TypeError('Resource error: Not a valid \"%s\" resource.');", r.Class())
	e.line("}")
	e.line("const %s = %s[%s];", handle, val, sym)
	e.line("if (%s === undefined) {", handle)
	e.line("throw new TypeError('Resource error: \"%s\" lifetime expired.');", r.Class())
	e.line("}")
	if own {
		e.line("%s.unregister(%s);", r.Registry(), val)
		e.line("%s[%s] = undefined;", val, sym)
	}
	return handle
}

// liftHandle converts a handle into its resource value.
func (e *emitter) liftHandle(def *wit.TypeDef, own bool, handle string) string {
	r, ok := e.resource(def)
	if !ok {
		return "undefined"
	}

	if r.Direction == resources.Export {
		if !own {
			return "repTable.get(" + handle + ").rep"
		}
		h := e.bind("handle", handle)
		rep, rsc := e.temp("rep"), e.temp("rsc")
		e.line("const %s = %s(%s);", rep, r.RepOp(), h)
		e.line("const %s = repTable.get(%s).rep;", rsc, rep)
		e.line("repTable.delete(%s);", rep)
		e.line("%s.register(%s, %s, %s);", r.Registry(), rsc, h, rsc)
		return rsc
	}

	e.g.table.Use(r)
	class := importClass(r)
	sym := e.use(intrinsics.SymbolResourceHandle)
	handle = e.bind("handle", handle)
	rsc := e.temp("rsc")
	if e.class == class {
		e.line("const %s = new.target === %s ? this : Object.create(%s.prototype);", rsc, class, class)
	} else {
		e.line("const %s = Object.create(%s.prototype);", rsc, class)
	}
	e.line("Object.defineProperty(%s, %s, { writable: true, value: %s });", rsc, sym, handle)
	if own {
		e.line("%s.register(%s, %s, %s);", r.Registry(), rsc, handle, rsc)
	}
	return rsc
}

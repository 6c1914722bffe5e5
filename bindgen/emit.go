package bindgen

import (
	"fmt"
	"strconv"

	"github.com/wippyai/jsbindgen/abi"
	"github.com/wippyai/jsbindgen/errors"
	"github.com/wippyai/jsbindgen/internal/intrinsics"
	"github.com/wippyai/jsbindgen/internal/source"
	"go.bytecodealliance.org/wit"
)

// emitter writes the body of one function binding. The first failure is
// kept and reported once emission of the body is done.
type emitter struct {
	g    *generator
	src  *source.Source
	tmp  int
	err  error
	path []string

	// class is the import wrapper whose constructor is being emitted
	class string
}

func (g *generator) newEmitter(path ...string) *emitter {
	return &emitter{g: g, src: &g.src, path: path}
}

func (e *emitter) line(format string, args ...any) {
	if len(args) == 0 {
		e.src.Line(format)
		return
	}
	e.src.Linef(format, args...)
}

// bodyLocals are the prefixes of numbered names declared inside binding
// bodies. Module-level locals never take one of these forms.
var bodyLocals = []string{
	"arg", "base", "bool", "e", "enum", "flags", "handle", "i", "len", "ptr",
	"record", "rep", "result", "ret", "rsc", "tuple", "v", "val", "variant",
}

// temp returns a fresh body-local name; all prefixes share one counter.
func (e *emitter) temp(prefix string) string {
	name := prefix + strconv.Itoa(e.tmp)
	e.tmp++
	return name
}

// bind evaluates expr once into a const unless it is already a plain name.
func (e *emitter) bind(prefix, expr string) string {
	if isName(expr) {
		return expr
	}
	name := e.temp(prefix)
	e.line("const %s = %s;", name, expr)
	return name
}

func (e *emitter) use(i intrinsics.Intrinsic) string {
	return e.g.intrinsics.Use(i)
}

func (e *emitter) fail(err error) {
	if e.err == nil && err != nil {
		e.err = errors.WithPath(errors.PhaseEmit, err, e.path...)
	}
}

func (e *emitter) unsupported(t wit.Type) {
	e.fail(errors.New(errors.PhaseEmit, errors.KindUnsupported).
		WitType(witTypeName(t)).
		Detail("type cannot cross the component boundary").
		Build())
}

// view returns the DataView expression over linear memory
func (e *emitter) view() string {
	return e.use(intrinsics.DataView) + "(" + memory + ")"
}

func addr(ptr string, off uint32) string {
	if off == 0 {
		return ptr
	}
	return ptr + " + " + strconv.FormatUint(uint64(off), 10)
}

// discAccess returns the DataView accessor suffix for a discriminant width.
func discAccess(size uint32) string {
	switch size {
	case 1:
		return "Uint8"
	case 2:
		return "Uint16"
	default:
		return "Int32"
	}
}

func (e *emitter) loadDisc(size uint32, ptr string, off uint32) string {
	if size == 1 {
		return fmt.Sprintf("%s.getUint8(%s)", e.view(), addr(ptr, off))
	}
	return fmt.Sprintf("%s.get%s(%s, true)", e.view(), discAccess(size), addr(ptr, off))
}

func (e *emitter) storeDisc(size uint32, v, ptr string, off uint32) {
	if size == 1 {
		e.line("%s.setInt8(%s, %s);", e.view(), addr(ptr, off), v)
		return
	}
	e.line("%s.set%s(%s, %s, true);", e.view(), discAccess(size), addr(ptr, off), v)
}

// coerceLower converts a payload slot of type from into a joined variant
// slot of type to.
func (e *emitter) coerceLower(x string, from, to abi.CoreTy) string {
	switch {
	case from == to:
		return x
	case from == abi.F32 && to == abi.I32:
		return e.use(intrinsics.F32ToI32) + "(" + x + ")"
	case from == abi.I32 && to == abi.I64:
		return "BigInt(" + x + " >>> 0)"
	case from == abi.F32 && to == abi.I64:
		return "BigInt(" + e.use(intrinsics.F32ToI32) + "(" + x + ") >>> 0)"
	case from == abi.F64 && to == abi.I64:
		return e.use(intrinsics.F64ToI64) + "(" + x + ")"
	}
	return x
}

// coerceLift converts a joined variant slot of type from back into the
// payload slot type to.
func (e *emitter) coerceLift(x string, from, to abi.CoreTy) string {
	switch {
	case from == to:
		return x
	case from == abi.I32 && to == abi.F32:
		return e.use(intrinsics.I32ToF32) + "(" + x + ")"
	case from == abi.I64 && to == abi.I32:
		return "Number(BigInt.asUintN(32, " + x + "))"
	case from == abi.I64 && to == abi.F32:
		return e.use(intrinsics.I32ToF32) + "(Number(BigInt.asUintN(32, " + x + ")))"
	case from == abi.I64 && to == abi.F64:
		return e.use(intrinsics.I64ToF64) + "(" + x + ")"
	}
	return x
}

func zero(t abi.CoreTy) string {
	if t == abi.I64 {
		return "0n"
	}
	return "0"
}

// deref follows aliases to the defining type.
func deref(t wit.Type) wit.Type {
	for {
		td, ok := t.(*wit.TypeDef)
		if !ok || td == nil {
			return t
		}
		inner, ok := td.Kind.(wit.Type)
		if !ok {
			return td
		}
		t = inner
	}
}

// resultOf returns the result kind of t when t is a result type.
func resultOf(t wit.Type) (*wit.Result, bool) {
	td, ok := deref(t).(*wit.TypeDef)
	if !ok {
		return nil, false
	}
	r, ok := td.Kind.(*wit.Result)
	return r, ok
}

func witTypeName(t wit.Type) string {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return fmt.Sprintf("%T", t)
	}
	if td.Name != nil {
		return *td.Name
	}
	return fmt.Sprintf("%T", td.Kind)
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

type shapeKind int

const (
	shapeVariant shapeKind = iota
	shapeOption
	shapeResult
)

type variantCase struct {
	name string
	typ  wit.Type
}

// variantShape is the common view of variants, options and results.
type variantShape struct {
	name  string
	kind  shapeKind
	cases []variantCase
}

func shapeOf(td *wit.TypeDef) (variantShape, bool) {
	switch kind := td.Kind.(type) {
	case *wit.Variant:
		s := variantShape{name: witTypeName(td), kind: shapeVariant}
		for _, c := range kind.Cases {
			s.cases = append(s.cases, variantCase{name: c.Name, typ: c.Type})
		}
		return s, true
	case *wit.Option:
		return variantShape{
			name:  "option",
			kind:  shapeOption,
			cases: []variantCase{{name: "none"}, {name: "some", typ: kind.Type}},
		}, true
	case *wit.Result:
		return variantShape{
			name:  "result",
			kind:  shapeResult,
			cases: []variantCase{{name: "ok", typ: kind.OK}, {name: "err", typ: kind.Err}},
		}, true
	}
	return variantShape{}, false
}

func (s variantShape) payloads() []wit.Type {
	out := make([]wit.Type, len(s.cases))
	for i, c := range s.cases {
		out[i] = c.typ
	}
	return out
}

// matchCases dispatches on the JS value v and emits body once per case.
// payload is the case value expression, empty for cases without one.
func (e *emitter) matchCases(s variantShape, v string, body func(i int, c variantCase, payload string)) {
	val := e.temp("variant")
	e.line("const %s = %s;", val, v)

	if s.kind == shapeOption {
		e.line("if (%s === undefined || %s === null) {", val, val)
		body(0, s.cases[0], "")
		e.line("} else {")
		body(1, s.cases[1], val)
		e.line("}")
		return
	}

	e.line("switch (%s.tag) {", val)
	for i, c := range s.cases {
		e.line("case '%s': {", c.name)
		payload := ""
		if c.typ != nil {
			payload = e.temp("e")
			e.line("const %s = %s.val;", payload, val)
		}
		body(i, c, payload)
		e.line("break;")
		e.line("}")
	}
	e.line("default: {")
	e.line("throw new TypeError(`invalid variant tag value ${JSON.stringify(%s.tag)} specified for %s`);", val, s.name)
	e.line("}")
	e.line("}")
}

// buildCases dispatches on a discriminant and assembles the JS value of the
// selected case from its lifted payload.
func (e *emitter) buildCases(s variantShape, disc string, payload func(c variantCase) string) string {
	res := e.temp("variant")
	e.line("let %s;", res)
	e.line("switch (%s) {", disc)
	for i, c := range s.cases {
		e.line("case %d: {", i)
		val := "undefined"
		if c.typ != nil {
			val = payload(c)
		}
		switch {
		case s.kind == shapeOption:
			e.line("%s = %s;", res, val)
		case s.kind == shapeVariant && c.typ == nil:
			e.line("%s = { tag: '%s' };", res, c.name)
		default:
			e.line("%s = { tag: '%s', val: %s };", res, c.name, val)
		}
		e.line("break;")
		e.line("}")
	}
	e.line("default: {")
	e.line("throw new TypeError('invalid variant discriminant for %s');", s.name)
	e.line("}")
	e.line("}")
	return res
}

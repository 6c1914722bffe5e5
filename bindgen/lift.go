package bindgen

import (
	"fmt"
	"strings"

	"github.com/wippyai/jsbindgen/abi"
	"github.com/wippyai/jsbindgen/errors"
	"github.com/wippyai/jsbindgen/internal/intrinsics"
	"github.com/wippyai/jsbindgen/names"
	"go.bytecodealliance.org/wit"
)

// lift converts the flat core values vals of type t into a JS value
// expression. len(vals) must equal the flat count of t.
func (e *emitter) lift(t wit.Type, vals []string) string {
	switch t := deref(t).(type) {
	case wit.String:
		return e.liftString(vals[0], vals[1])
	case *wit.TypeDef:
		return e.liftDef(t, vals)
	default:
		if x, ok := e.liftPrimitive(t, vals[0]); ok {
			return x
		}
		e.unsupported(t)
		return "undefined"
	}
}

func (e *emitter) liftPrimitive(t wit.Type, x string) (string, bool) {
	switch t.(type) {
	case wit.Bool:
		b := e.bind("bool", x)
		return fmt.Sprintf("%s === 0 ? false : (%s === 1 ? true : %s())", b, b, e.use(intrinsics.ThrowInvalidBool)), true
	case wit.U8:
		return x + " & 0xFF", true
	case wit.S8:
		return x + " << 24 >> 24", true
	case wit.U16:
		return x + " & 0xFFFF", true
	case wit.S16:
		return x + " << 16 >> 16", true
	case wit.U32:
		return x + " >>> 0", true
	case wit.S32:
		return x + " | 0", true
	case wit.U64:
		return "BigInt.asUintN(64, " + x + ")", true
	case wit.S64:
		return "BigInt.asIntN(64, " + x + ")", true
	case wit.F32, wit.F64:
		return x, true
	case wit.Char:
		return e.use(intrinsics.ValidateGuestChar) + "(" + x + " >>> 0)", true
	}
	return "", false
}

func (e *emitter) liftString(ptr, length string) string {
	p, l, res := e.temp("ptr"), e.temp("len"), e.temp("result")
	e.line("const %s = %s;", p, ptr)
	e.line("const %s = %s;", l, length)
	e.line("const %s = %s.decode(new Uint8Array(%s.buffer, %s, %s));", res, e.use(intrinsics.Utf8Decoder), memory, p, l)
	return res
}

func (e *emitter) liftDef(td *wit.TypeDef, vals []string) string {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := make([]string, len(kind.Fields))
		rest := vals
		for i, f := range kind.Fields {
			n := len(abi.Flatten(f.Type))
			fields[i] = names.LowerCamel(f.Name) + ": " + e.lift(f.Type, rest[:n])
			rest = rest[n:]
		}
		return e.record(fields)
	case *wit.Tuple:
		elems := make([]string, len(kind.Types))
		rest := vals
		for i, t := range kind.Types {
			n := len(abi.Flatten(t))
			elems[i] = e.lift(t, rest[:n])
			rest = rest[n:]
		}
		return e.tuple(elems)
	case *wit.Flags:
		return e.liftFlags(kind, vals)
	case *wit.Enum:
		return e.liftEnum(td, kind, vals[0])
	case *wit.Variant, *wit.Option, *wit.Result:
		s, _ := shapeOf(td)
		joined := abi.Flatten(td)[1:]
		return e.buildCases(s, vals[0], func(c variantCase) string {
			types := abi.Flatten(c.typ)
			args := make([]string, len(types))
			for j, ty := range types {
				args[j] = e.coerceLift(vals[1+j], joined[j], ty)
			}
			return e.lift(c.typ, args)
		})
	case *wit.List:
		return e.liftList(kind, vals[0], vals[1])
	case *wit.Own:
		return e.liftHandle(kind.Type, true, vals[0])
	case *wit.Borrow:
		return e.liftHandle(kind.Type, false, vals[0])
	default:
		e.unsupported(td)
		return "undefined"
	}
}

func (e *emitter) record(fields []string) string {
	res := e.temp("record")
	e.line("const %s = { %s };", res, strings.Join(fields, ", "))
	return res
}

func (e *emitter) tuple(elems []string) string {
	res := e.temp("tuple")
	e.line("const %s = [%s];", res, strings.Join(elems, ", "))
	return res
}

func (e *emitter) liftFlags(f *wit.Flags, slots []string) string {
	bound := make([]string, len(slots))
	for i, s := range slots {
		bound[i] = e.bind("flags", s)
	}
	fields := make([]string, len(f.Flags))
	for i, flag := range f.Flags {
		mask := int32(uint32(1) << (i % 32))
		fields[i] = fmt.Sprintf("%s: Boolean(%s & %d)", names.LowerCamel(flag.Name), bound[i/32], mask)
	}
	return e.record(fields)
}

func (e *emitter) liftEnum(td *wit.TypeDef, kind *wit.Enum, disc string) string {
	res := e.temp("enum")
	e.line("let %s;", res)
	e.line("switch (%s) {", disc)
	for i, c := range kind.Cases {
		e.line("case %d: {", i)
		e.line("%s = '%s';", res, c.Name)
		e.line("break;")
		e.line("}")
	}
	e.line("default: {")
	e.line("throw new TypeError('invalid discriminant specified for %s');", witTypeName(td))
	e.line("}")
	e.line("}")
	return res
}

func (e *emitter) liftList(l *wit.List, ptr, length string) string {
	size := e.g.sizes.Size(l.Type)
	p, n, res := e.temp("ptr"), e.temp("len"), e.temp("result")
	idx, base := e.temp("i"), e.temp("base")
	e.line("const %s = %s;", p, ptr)
	e.line("const %s = %s;", n, length)
	e.line("const %s = [];", res)
	e.line("for (let %s = 0; %s < %s; %s++) {", idx, idx, n, idx)
	e.line("const %s = %s + %s * %d;", base, p, idx, size)
	e.line("%s.push(%s);", res, e.load(l.Type, base, 0))
	e.line("}")
	return res
}

// load reads a value of type t from linear memory at ptr+off and returns
// its JS value expression.
func (e *emitter) load(t wit.Type, ptr string, off uint32) string {
	at := addr(ptr, off)
	switch t := deref(t).(type) {
	case wit.String:
		return e.liftString(
			fmt.Sprintf("%s.getUint32(%s, true)", e.view(), at),
			fmt.Sprintf("%s.getUint32(%s, true)", e.view(), addr(ptr, off+4)))
	case *wit.TypeDef:
		return e.loadDef(t, ptr, off)
	case wit.Bool, wit.Char:
		raw := fmt.Sprintf("%s.get%s(%s, true)", e.view(), primitiveAccess(t), at)
		if e.g.sizes.Size(t) == 1 {
			raw = fmt.Sprintf("%s.get%s(%s)", e.view(), primitiveAccess(t), at)
		}
		x, _ := e.liftPrimitive(t, raw)
		return x
	default:
		if e.g.sizes.Size(t) == 0 {
			e.unsupported(t)
			return "undefined"
		}
		if e.g.sizes.Size(t) == 1 {
			return fmt.Sprintf("%s.get%s(%s)", e.view(), primitiveAccess(t), at)
		}
		return fmt.Sprintf("%s.get%s(%s, true)", e.view(), primitiveAccess(t), at)
	}
}

func (e *emitter) loadDef(td *wit.TypeDef, ptr string, off uint32) string {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		fields := make([]string, len(types))
		for i, o := range e.g.sizes.FieldOffsets(types) {
			fields[i] = names.LowerCamel(kind.Fields[i].Name) + ": " + e.load(types[i], ptr, off+o)
		}
		return e.record(fields)
	case *wit.Tuple:
		elems := make([]string, len(kind.Types))
		for i, o := range e.g.sizes.FieldOffsets(kind.Types) {
			elems[i] = e.load(kind.Types[i], ptr, off+o)
		}
		return e.tuple(elems)
	case *wit.Flags:
		var slots []string
		switch info := abi.FlagsLayout(len(kind.Flags)); info.Size {
		case 0:
		case 1:
			slots = []string{fmt.Sprintf("%s.getUint8(%s)", e.view(), addr(ptr, off))}
		case 2:
			slots = []string{fmt.Sprintf("%s.getUint16(%s, true)", e.view(), addr(ptr, off))}
		default:
			for i := range abi.FlagsI32Count(len(kind.Flags)) {
				slots = append(slots, fmt.Sprintf("%s.getInt32(%s, true)", e.view(), addr(ptr, off+uint32(4*i))))
			}
		}
		return e.liftFlags(kind, slots)
	case *wit.Enum:
		disc := e.loadDisc(abi.DiscriminantSize(len(kind.Cases)), ptr, off)
		return e.liftEnum(td, kind, disc)
	case *wit.Variant, *wit.Option, *wit.Result:
		s, _ := shapeOf(td)
		payloads := s.payloads()
		disc := e.loadDisc(abi.DiscriminantSize(len(payloads)), ptr, off)
		payOff := off + e.g.sizes.PayloadOffset(payloads)
		return e.buildCases(s, disc, func(c variantCase) string {
			return e.load(c.typ, ptr, payOff)
		})
	case *wit.List:
		return e.liftList(kind,
			fmt.Sprintf("%s.getUint32(%s, true)", e.view(), addr(ptr, off)),
			fmt.Sprintf("%s.getUint32(%s, true)", e.view(), addr(ptr, off+4)))
	case *wit.Own:
		h := e.bind("handle", fmt.Sprintf("%s.getInt32(%s, true)", e.view(), addr(ptr, off)))
		return e.liftHandle(kind.Type, true, h)
	case *wit.Borrow:
		h := e.bind("handle", fmt.Sprintf("%s.getInt32(%s, true)", e.view(), addr(ptr, off)))
		return e.liftHandle(kind.Type, false, h)
	default:
		e.unsupported(td)
		return "undefined"
	}
}

// liftArgs lifts the declared parameters from flat core arguments.
func (e *emitter) liftArgs(params []wit.Param, args []string) []string {
	out := make([]string, 0, len(params))
	rest := args
	for _, p := range params {
		n := len(abi.Flatten(p.Type))
		if n > len(rest) {
			e.fail(errors.InvalidInput(errors.PhaseSignature,
				fmt.Sprintf("parameter %s needs %d core values, %d left", p.Name, n, len(rest))))
			return out
		}
		out = append(out, e.lift(p.Type, rest[:n]))
		rest = rest[n:]
	}
	return out
}

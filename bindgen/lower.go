package bindgen

import (
	"strconv"
	"strings"

	"github.com/wippyai/jsbindgen/abi"
	"github.com/wippyai/jsbindgen/internal/intrinsics"
	"github.com/wippyai/jsbindgen/names"
	"go.bytecodealliance.org/wit"
)

// lower converts the JS value v of type t into its flat core values.
func (e *emitter) lower(t wit.Type, v string) []string {
	switch t := deref(t).(type) {
	case wit.String:
		return e.lowerString(v)
	case *wit.TypeDef:
		return e.lowerDef(t, v)
	default:
		if x, ok := e.lowerPrimitive(t, v); ok {
			return []string{x}
		}
		e.unsupported(t)
		return []string{"0"}
	}
}

func (e *emitter) lowerPrimitive(t wit.Type, v string) (string, bool) {
	call := func(i intrinsics.Intrinsic) string { return e.use(i) + "(" + v + ")" }
	switch t.(type) {
	case wit.Bool:
		return "(" + v + " ? 1 : 0)", true
	case wit.U8:
		return call(intrinsics.ToUint8), true
	case wit.S8:
		return call(intrinsics.ToInt8), true
	case wit.U16:
		return call(intrinsics.ToUint16), true
	case wit.S16:
		return call(intrinsics.ToInt16), true
	case wit.U32:
		return call(intrinsics.ToUint32), true
	case wit.S32:
		return call(intrinsics.ToInt32), true
	case wit.U64:
		return call(intrinsics.ToUint64), true
	case wit.S64:
		return call(intrinsics.ToInt64), true
	case wit.F32, wit.F64:
		return "+(" + v + ")", true
	case wit.Char:
		return call(intrinsics.ValidateHostChar), true
	}
	return "", false
}

func (e *emitter) lowerString(v string) []string {
	ptr, length := e.temp("ptr"), e.temp("len")
	e.line("const %s = %s(%s, %s, %s);", ptr, e.use(intrinsics.Utf8Encode), v, realloc, memory)
	e.line("const %s = %s;", length, e.use(intrinsics.Utf8EncodedLen))
	return []string{ptr, length}
}

func (e *emitter) lowerDef(td *wit.TypeDef, v string) []string {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := e.destructureRecord(kind, v)
		var out []string
		for i, f := range kind.Fields {
			out = append(out, e.lower(f.Type, fields[i])...)
		}
		return out
	case *wit.Tuple:
		elems := e.destructureTuple(kind, v)
		var out []string
		for i, t := range kind.Types {
			out = append(out, e.lower(t, elems[i])...)
		}
		return out
	case *wit.Flags:
		return e.lowerFlags(kind, v)
	case *wit.Enum:
		return []string{e.lowerEnum(td, kind, v)}
	case *wit.Variant, *wit.Option, *wit.Result:
		s, _ := shapeOf(td)
		return e.lowerVariant(s, v, abi.Flatten(td))
	case *wit.List:
		ptr, length := e.lowerList(kind, v)
		return []string{ptr, length}
	case *wit.Own:
		return []string{e.lowerHandle(kind.Type, true, v)}
	case *wit.Borrow:
		return []string{e.lowerHandle(kind.Type, false, v)}
	default:
		e.unsupported(td)
		return make([]string, len(abi.Flatten(td)))
	}
}

func (e *emitter) destructureRecord(r *wit.Record, v string) []string {
	base := e.temp("v")
	fields := make([]string, len(r.Fields))
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = base + "_" + strconv.Itoa(i)
		parts[i] = names.LowerCamel(f.Name) + ": " + fields[i]
	}
	e.line("const { %s } = %s;", strings.Join(parts, ", "), v)
	return fields
}

func (e *emitter) destructureTuple(t *wit.Tuple, v string) []string {
	base := e.temp("tuple")
	elems := make([]string, len(t.Types))
	for i := range t.Types {
		elems[i] = base + "_" + strconv.Itoa(i)
	}
	e.line("const [%s] = %s;", strings.Join(elems, ", "), v)
	return elems
}

func (e *emitter) lowerFlags(f *wit.Flags, v string) []string {
	n := abi.FlagsI32Count(len(f.Flags))
	if n == 0 {
		return nil
	}
	val := e.bind("flags", v)
	base := e.temp("flags")
	slots := make([]string, n)
	for i := range slots {
		slots[i] = base + "_" + strconv.Itoa(i)
	}
	e.line("let %s;", strings.Join(slots, ", "))
	e.line("if (typeof %s === 'object' && %s !== null) {", val, val)
	for i := range slots {
		var bits []string
		for j := i * 32; j < len(f.Flags) && j < (i+1)*32; j++ {
			bits = append(bits, "("+val+"."+names.LowerCamel(f.Flags[j].Name)+" ? 1 : 0) << "+strconv.Itoa(j%32))
		}
		e.line("%s = %s;", slots[i], strings.Join(bits, " | "))
	}
	e.line("} else if (%s !== null && %s !== undefined) {", val, val)
	e.line("throw new TypeError('only an object, undefined or null can be converted to flags');")
	e.line("} else {")
	for _, s := range slots {
		e.line("%s = 0;", s)
	}
	e.line("}")
	return slots
}

func (e *emitter) lowerEnum(td *wit.TypeDef, kind *wit.Enum, v string) string {
	val := e.bind("val", v)
	res := e.temp("enum")
	e.line("let %s;", res)
	e.line("switch (%s) {", val)
	for i, c := range kind.Cases {
		e.line("case '%s': {", c.Name)
		e.line("%s = %d;", res, i)
		e.line("break;")
		e.line("}")
	}
	e.line("default: {")
	e.line("throw new TypeError(`\"${%s}\" is not one of the cases of %s`);", val, witTypeName(td))
	e.line("}")
	e.line("}")
	return res
}

func (e *emitter) lowerVariant(s variantShape, v string, flat []abi.CoreTy) []string {
	joined := flat[1:]
	base := e.temp("variant")
	slots := make([]string, len(flat))
	for i := range slots {
		slots[i] = base + "_" + strconv.Itoa(i)
	}
	e.line("let %s;", strings.Join(slots, ", "))
	e.matchCases(s, v, func(i int, c variantCase, payload string) {
		var lowered []string
		var types []abi.CoreTy
		if c.typ != nil {
			lowered = e.lower(c.typ, payload)
			types = abi.Flatten(c.typ)
		}
		e.line("%s = %d;", slots[0], i)
		for j, jt := range joined {
			if j < len(lowered) {
				e.line("%s = %s;", slots[j+1], e.coerceLower(lowered[j], types[j], jt))
			} else {
				e.line("%s = %s;", slots[j+1], zero(jt))
			}
		}
	})
	return slots
}

// lowerList copies the elements of v into a fresh allocation and returns
// the pointer and length names.
func (e *emitter) lowerList(l *wit.List, v string) (string, string) {
	info := e.g.sizes.Of(l.Type)
	val := e.bind("val", v)
	length, ptr := e.temp("len"), e.temp("result")
	idx, base := e.temp("i"), e.temp("base")
	e.line("const %s = %s.length;", length, val)
	e.line("const %s = %s(0, 0, %d, %s * %d);", ptr, realloc, info.Align, length, info.Size)
	e.line("for (let %s = 0; %s < %s; %s++) {", idx, idx, length, idx)
	e.line("const %s = %s + %s * %d;", base, ptr, idx, info.Size)
	e.store(l.Type, val+"["+idx+"]", base, 0)
	e.line("}")
	return ptr, length
}

// store writes the JS value v of type t into linear memory at ptr+off.
func (e *emitter) store(t wit.Type, v, ptr string, off uint32) {
	at := addr(ptr, off)
	switch t := deref(t).(type) {
	case wit.String:
		parts := e.lowerString(v)
		e.line("%s.setUint32(%s, %s, true);", e.view(), at, parts[0])
		e.line("%s.setUint32(%s, %s, true);", e.view(), addr(ptr, off+4), parts[1])
	case *wit.TypeDef:
		e.storeDef(t, v, ptr, off)
	default:
		x, ok := e.lowerPrimitive(t, v)
		if !ok {
			e.unsupported(t)
			return
		}
		setter := primitiveAccess(t)
		if e.g.sizes.Size(t) == 1 {
			e.line("%s.set%s(%s, %s);", e.view(), setter, at, x)
			return
		}
		e.line("%s.set%s(%s, %s, true);", e.view(), setter, at, x)
	}
}

func (e *emitter) storeDef(td *wit.TypeDef, v, ptr string, off uint32) {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := e.destructureRecord(kind, v)
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		for i, o := range e.g.sizes.FieldOffsets(types) {
			e.store(types[i], fields[i], ptr, off+o)
		}
	case *wit.Tuple:
		elems := e.destructureTuple(kind, v)
		for i, o := range e.g.sizes.FieldOffsets(kind.Types) {
			e.store(kind.Types[i], elems[i], ptr, off+o)
		}
	case *wit.Flags:
		slots := e.lowerFlags(kind, v)
		switch info := abi.FlagsLayout(len(kind.Flags)); info.Size {
		case 0:
		case 1:
			e.line("%s.setInt8(%s, %s);", e.view(), addr(ptr, off), slots[0])
		case 2:
			e.line("%s.setUint16(%s, %s, true);", e.view(), addr(ptr, off), slots[0])
		default:
			for i, s := range slots {
				e.line("%s.setInt32(%s, %s, true);", e.view(), addr(ptr, off+uint32(4*i)), s)
			}
		}
	case *wit.Enum:
		disc := e.lowerEnum(td, kind, v)
		e.storeDisc(abi.DiscriminantSize(len(kind.Cases)), disc, ptr, off)
	case *wit.Variant, *wit.Option, *wit.Result:
		s, _ := shapeOf(td)
		payloads := s.payloads()
		size := abi.DiscriminantSize(len(payloads))
		payOff := off + e.g.sizes.PayloadOffset(payloads)
		e.matchCases(s, v, func(i int, c variantCase, payload string) {
			e.storeDisc(size, strconv.Itoa(i), ptr, off)
			if c.typ != nil {
				e.store(c.typ, payload, ptr, payOff)
			}
		})
	case *wit.List:
		p, length := e.lowerList(kind, v)
		e.line("%s.setUint32(%s, %s, true);", e.view(), addr(ptr, off), p)
		e.line("%s.setUint32(%s, %s, true);", e.view(), addr(ptr, off+4), length)
	case *wit.Own:
		h := e.lowerHandle(kind.Type, true, v)
		e.line("%s.setInt32(%s, %s, true);", e.view(), addr(ptr, off), h)
	case *wit.Borrow:
		h := e.lowerHandle(kind.Type, false, v)
		e.line("%s.setInt32(%s, %s, true);", e.view(), addr(ptr, off), h)
	default:
		e.unsupported(td)
	}
}

// primitiveAccess returns the DataView accessor suffix for a primitive
func primitiveAccess(t wit.Type) string {
	switch t.(type) {
	case wit.Bool, wit.U8:
		return "Uint8"
	case wit.S8:
		return "Int8"
	case wit.U16:
		return "Uint16"
	case wit.S16:
		return "Int16"
	case wit.U32, wit.Char:
		return "Uint32"
	case wit.S32:
		return "Int32"
	case wit.U64:
		return "BigUint64"
	case wit.S64:
		return "BigInt64"
	case wit.F32:
		return "Float32"
	case wit.F64:
		return "Float64"
	}
	return "Int32"
}

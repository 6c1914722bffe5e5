package abi

import (
	"go.bytecodealliance.org/wit"
)

// Canonical ABI flattening limits
const (
	MaxFlatParams  = 16
	MaxFlatResults = 1
)

// FlattenTypes flattens WIT types to core wasm types
func FlattenTypes(types []wit.Type) []CoreTy {
	var result []CoreTy
	for _, t := range types {
		result = append(result, Flatten(t)...)
	}
	return result
}

// Flatten flattens a WIT type to core wasm types
func Flatten(t wit.Type) []CoreTy {
	if t == nil {
		return nil
	}

	switch v := t.(type) {
	case wit.Bool, wit.U8, wit.U16, wit.U32, wit.S8, wit.S16, wit.S32, wit.Char:
		return []CoreTy{I32}
	case wit.U64, wit.S64:
		return []CoreTy{I64}
	case wit.F32:
		return []CoreTy{F32}
	case wit.F64:
		return []CoreTy{F64}
	case wit.String:
		return []CoreTy{I32, I32} // ptr, len
	case *wit.TypeDef:
		return flattenTypeDef(v)
	default:
		return []CoreTy{I32}
	}
}

func flattenTypeDef(td *wit.TypeDef) []CoreTy {
	if td == nil || td.Kind == nil {
		return []CoreTy{I32}
	}

	switch kind := td.Kind.(type) {
	case *wit.Record:
		var flat []CoreTy
		for _, field := range kind.Fields {
			flat = append(flat, Flatten(field.Type)...)
		}
		return flat
	case *wit.Tuple:
		return FlattenTypes(kind.Types)
	case *wit.List:
		return []CoreTy{I32, I32}
	case *wit.Variant:
		payloads := make([]wit.Type, len(kind.Cases))
		for i, c := range kind.Cases {
			payloads[i] = c.Type
		}
		return flattenVariant(payloads)
	case *wit.Enum:
		return []CoreTy{I32}
	case *wit.Option:
		return flattenVariant([]wit.Type{nil, kind.Type})
	case *wit.Result:
		return flattenVariant([]wit.Type{kind.OK, kind.Err})
	case *wit.Flags:
		n := FlagsI32Count(len(kind.Flags))
		flat := make([]CoreTy, n)
		for i := range flat {
			flat[i] = I32
		}
		return flat
	case *wit.Own, *wit.Borrow:
		return []CoreTy{I32} // handle
	case wit.Type:
		return Flatten(kind)
	default:
		return []CoreTy{I32}
	}
}

// flattenVariant flattens to discriminant + joined case payloads
func flattenVariant(payloads []wit.Type) []CoreTy {
	joined := JoinPayloads(payloads)
	return append([]CoreTy{I32}, joined...)
}

// JoinPayloads returns the joined flat slots shared by all case payloads.
func JoinPayloads(payloads []wit.Type) []CoreTy {
	var flat []CoreTy
	for _, p := range payloads {
		if p == nil {
			continue
		}
		for i, ft := range Flatten(p) {
			if i < len(flat) {
				flat[i] = Join(flat[i], ft)
			} else {
				flat = append(flat, ft)
			}
		}
	}
	return flat
}

// Join unions two core types for variant payloads
func Join(a, b CoreTy) CoreTy {
	if a == b {
		return a
	}
	// 32-bit types can share storage
	if (a == I32 && b == F32) || (a == F32 && b == I32) {
		return I32
	}
	// Different sizes require i64
	return I64
}

// FlagsI32Count returns the number of i32 slots for n flags
func FlagsI32Count(n int) int {
	return (n + 31) / 32
}

// FlatCount counts flat slots without allocating
func FlatCount(t wit.Type) int {
	switch t := t.(type) {
	case nil:
		return 0
	case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.U64, wit.S64, wit.F32, wit.F64, wit.Char:
		return 1
	case wit.String:
		return 2
	case *wit.TypeDef:
		switch kind := t.Kind.(type) {
		case *wit.Record:
			count := 0
			for _, f := range kind.Fields {
				count += FlatCount(f.Type)
			}
			return count
		case *wit.Tuple:
			count := 0
			for _, elem := range kind.Types {
				count += FlatCount(elem)
			}
			return count
		case *wit.List:
			return 2
		case *wit.Enum, *wit.Own, *wit.Borrow:
			return 1
		case *wit.Flags:
			return FlagsI32Count(len(kind.Flags))
		case *wit.Option:
			return 1 + FlatCount(kind.Type)
		case *wit.Result:
			return 1 + max(FlatCount(kind.OK), FlatCount(kind.Err))
		case *wit.Variant:
			maxPayload := 0
			for _, c := range kind.Cases {
				maxPayload = max(maxPayload, FlatCount(c.Type))
			}
			return 1 + maxPayload
		case wit.Type:
			return FlatCount(kind)
		}
	}
	return 1
}

package abi

import (
	"strings"

	"github.com/tetratelabs/wazero/api"
)

// CoreTy is a core wasm value type. Pointers and lengths are I32 on wasm32.
type CoreTy = api.ValueType

const (
	I32 CoreTy = api.ValueTypeI32
	I64 CoreTy = api.ValueTypeI64
	F32 CoreTy = api.ValueTypeF32
	F64 CoreTy = api.ValueTypeF64
)

// CoreFn is the derived core signature handed to the splicer.
type CoreFn struct {
	Ret      *CoreTy
	Params   []CoreTy
	RetSize  uint32
	RetPtr   bool
	ParamPtr bool
}

// String renders the signature as "[i32, i32] -> i32".
func (f CoreFn) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(api.ValueTypeName(p))
	}
	b.WriteString("] -> ")
	if f.Ret == nil {
		b.WriteString("()")
	} else {
		b.WriteString(api.ValueTypeName(*f.Ret))
	}
	return b.String()
}

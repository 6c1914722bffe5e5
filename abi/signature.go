package abi

import (
	"go.bytecodealliance.org/wit"
)

// Variant selects which side allocates the return area
type Variant int

const (
	// GuestImport: the caller passes a return pointer as the last parameter.
	GuestImport Variant = iota
	// GuestExport: the callee returns a pointer to its return area.
	GuestExport
)

func (v Variant) String() string {
	if v == GuestExport {
		return "guest-export"
	}
	return "guest-import"
}

// Signature is the flattened core shape of a WIT function
type Signature struct {
	Params         []CoreTy
	Results        []CoreTy
	IndirectParams bool
	RetPtr         bool
}

// ParamTypes returns the declared parameter types of fn in order
func ParamTypes(fn *wit.Function) []wit.Type {
	types := make([]wit.Type, len(fn.Params))
	for i, p := range fn.Params {
		types[i] = p.Type
	}
	return types
}

// ResultTypes returns the declared result types of fn in order
func ResultTypes(fn *wit.Function) []wit.Type {
	types := make([]wit.Type, len(fn.Results))
	for i, r := range fn.Results {
		types[i] = r.Type
	}
	return types
}

// ResultType returns the single declared result of fn, or nil
func ResultType(fn *wit.Function) wit.Type {
	if len(fn.Results) == 0 {
		return nil
	}
	return fn.Results[0].Type
}

// FuncSignature derives the core signature from parameter and result types
func FuncSignature(params, results []wit.Type, variant Variant) Signature {
	var sig Signature

	sig.Params = FlattenTypes(params)
	if len(sig.Params) > MaxFlatParams {
		sig.Params = []CoreTy{I32}
		sig.IndirectParams = true
	}

	sig.Results = FlattenTypes(results)
	if len(sig.Results) > MaxFlatResults {
		sig.RetPtr = true
		switch variant {
		case GuestImport:
			sig.Params = append(sig.Params, I32)
			sig.Results = nil
		case GuestExport:
			sig.Results = []CoreTy{I32}
		}
	}

	return sig
}

// Deriver computes core signatures and return-area sizes
type Deriver struct {
	sizes *SizeAlign
}

// NewDeriver creates a deriver sharing the given layout cache
func NewDeriver(sizes *SizeAlign) *Deriver {
	if sizes == nil {
		sizes = NewSizeAlign()
	}
	return &Deriver{sizes: sizes}
}

// Signature derives the flattened signature of fn
func (d *Deriver) Signature(fn *wit.Function, variant Variant) Signature {
	return FuncSignature(ParamTypes(fn), ResultTypes(fn), variant)
}

// CoreFn derives the splicer-facing description of fn
func (d *Deriver) CoreFn(fn *wit.Function, variant Variant) CoreFn {
	sig := d.Signature(fn, variant)

	core := CoreFn{
		Params:   sig.Params,
		RetPtr:   sig.RetPtr,
		ParamPtr: sig.IndirectParams,
	}
	if len(sig.Results) > 0 {
		ret := sig.Results[0]
		core.Ret = &ret
	}
	if sig.RetPtr {
		core.RetSize = d.sizes.Record(ResultTypes(fn)).Size
	}
	return core
}

// ParamsLayout returns the record layout used for indirect parameters
func (d *Deriver) ParamsLayout(fn *wit.Function) (Info, []uint32) {
	types := ParamTypes(fn)
	return d.sizes.Record(types), d.sizes.FieldOffsets(types)
}

// Sizes returns the shared layout calculator
func (d *Deriver) Sizes() *SizeAlign {
	return d.sizes
}

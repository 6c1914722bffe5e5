// Package abi derives Canonical ABI core signatures for WIT functions.
//
// A WIT function is lowered to a core wasm function whose parameters and
// results are scalar slots (i32, i64, f32, f64). Each parameter type is
// flattened recursively; when the total exceeds MaxFlatParams the whole
// parameter list is passed through one pointer into linear memory, and when
// the flattened result exceeds MaxFlatResults the result is written to a
// return area.
//
// # Calling Directions
//
// The same function has two shapes depending on who allocates the return area:
//
//	GuestImport  caller passes the return pointer as a trailing parameter
//	GuestExport  callee returns the return pointer as its single result
//
// # Layout
//
// SizeAlign computes linear-memory size and alignment with per-TypeDef caching:
//
//	sa := abi.NewSizeAlign()
//	info := sa.Of(recordType)
//	offsets := sa.FieldOffsets(fieldTypes)
//
// Derivation is pure and total: it never fails, it only yields a different
// shape. Types that cannot appear in a signature are reported by the emitter.
package abi

// Package intrinsics holds the JS runtime helpers generated bindings call.
// Only helpers referenced by emitted code are rendered, together with the
// helpers they depend on.
package intrinsics

import (
	"slices"
	"strings"
)

// Intrinsic identifies one runtime helper. Declaration order is render
// order, so dependencies are declared before their dependents.
type Intrinsic int

const (
	HasOwnProperty Intrinsic = iota
	ComponentError
	GetErrorPayload
	SymbolResourceHandle
	SymbolDispose
	DataView
	Utf8Encoder
	Utf8Decoder
	Utf8EncodedLen
	Utf8Encode
	ThrowInvalidBool
	ValidateGuestChar
	ValidateHostChar
	ToUint8
	ToInt8
	ToUint16
	ToInt16
	ToUint32
	ToInt32
	ToUint64
	ToInt64
	I32ToF32
	F32ToI32
	I64ToF64
	F64ToI64
	count
)

type def struct {
	name    string
	globals []string
	deps    []Intrinsic
	code    string
}

var defs = [count]def{
	HasOwnProperty: {
		name: "hasOwnProperty",
		code: "const hasOwnProperty = Object.prototype.hasOwnProperty;\n",
	},
	ComponentError: {
		name: "ComponentError",
		code: `class ComponentError extends Error {
			constructor (value) {
				const enumerable = typeof value !== 'string';
				super(enumerable ? ` + "`${String(value)} (see error.payload)`" + ` : value);
				Object.defineProperty(this, 'payload', { value, enumerable });
			}
		}
		`,
	},
	GetErrorPayload: {
		name: "getErrorPayload",
		deps: []Intrinsic{HasOwnProperty},
		code: `function getErrorPayload(e) {
			if (e && hasOwnProperty.call(e, 'payload')) return e.payload;
			if (e instanceof Error) throw e;
			return e;
		}
		`,
	},
	SymbolResourceHandle: {
		name: "symbolResourceHandle",
		code: "const symbolResourceHandle = Symbol('resource');\n",
	},
	SymbolDispose: {
		name: "symbolDispose",
		code: "const symbolDispose = Symbol.dispose || Symbol.for('dispose');\n",
	},
	DataView: {
		name:    "dataView",
		globals: []string{"dv"},
		code: `let dv = new DataView(new ArrayBuffer());
		const dataView = mem => dv.buffer === mem.buffer ? dv : dv = new DataView(mem.buffer);
		`,
	},
	Utf8Encoder: {
		name: "utf8Encoder",
		code: "const utf8Encoder = new TextEncoder();\n",
	},
	Utf8Decoder: {
		name: "utf8Decoder",
		code: "const utf8Decoder = new TextDecoder();\n",
	},
	Utf8EncodedLen: {
		name: "utf8EncodedLen",
		code: "let utf8EncodedLen = 0;\n",
	},
	Utf8Encode: {
		name: "utf8Encode",
		deps: []Intrinsic{Utf8Encoder, Utf8EncodedLen},
		code: `function utf8Encode(s, realloc, memory) {
			if (typeof s !== 'string') throw new TypeError('expected a string');
			if (s.length === 0) {
				utf8EncodedLen = 0;
				return 1;
			}
			const buf = utf8Encoder.encode(s);
			const ptr = realloc(0, 0, 1, buf.length);
			new Uint8Array(memory.buffer).set(buf, ptr);
			utf8EncodedLen = buf.length;
			return ptr;
		}
		`,
	},
	ThrowInvalidBool: {
		name: "throwInvalidBool",
		code: `function throwInvalidBool() {
			throw new TypeError('invalid variant discriminant for bool');
		}
		`,
	},
	ValidateGuestChar: {
		name: "validateGuestChar",
		code: `function validateGuestChar(i) {
			if ((i > 0x10ffff) || (i >= 0xd800 && i <= 0xdfff))
			throw new TypeError(` + "`not a valid char`" + `);
			return String.fromCodePoint(i);
		}
		`,
	},
	ValidateHostChar: {
		name: "validateHostChar",
		code: `function validateHostChar(s) {
			if (typeof s !== 'string' || s.length === 0)
			throw new TypeError(` + "`must be a string`" + `);
			return s.codePointAt(0);
		}
		`,
	},
	ToUint8: {
		name: "toUint8",
		code: `function toUint8(val) {
			val >>>= 0;
			val %= 256;
			return val;
		}
		`,
	},
	ToInt8: {
		name: "toInt8",
		code: `function toInt8(val) {
			val >>>= 0;
			val %= 256;
			return val >= 128 ? val - 256 : val;
		}
		`,
	},
	ToUint16: {
		name: "toUint16",
		code: `function toUint16(val) {
			val >>>= 0;
			val %= 65536;
			return val;
		}
		`,
	},
	ToInt16: {
		name: "toInt16",
		code: `function toInt16(val) {
			val >>>= 0;
			val %= 65536;
			return val >= 32768 ? val - 65536 : val;
		}
		`,
	},
	ToUint32: {
		name: "toUint32",
		code: "function toUint32(val) {\nreturn val >>> 0;\n}\n",
	},
	ToInt32: {
		name: "toInt32",
		code: "function toInt32(val) {\nreturn val >> 0;\n}\n",
	},
	ToUint64: {
		name: "toUint64",
		code: "function toUint64(val) {\nreturn BigInt.asUintN(64, BigInt(val));\n}\n",
	},
	ToInt64: {
		name: "toInt64",
		code: "function toInt64(val) {\nreturn BigInt.asIntN(64, BigInt(val));\n}\n",
	},
	I32ToF32: {
		name:    "i32ToF32",
		globals: []string{"i32ToF32I", "i32ToF32F"},
		code: `const i32ToF32I = new Int32Array(1);
		const i32ToF32F = new Float32Array(i32ToF32I.buffer);
		const i32ToF32 = i => (i32ToF32I[0] = i, i32ToF32F[0]);
		`,
	},
	F32ToI32: {
		name: "f32ToI32",
		deps: []Intrinsic{I32ToF32},
		code: "const f32ToI32 = f => (i32ToF32F[0] = f, i32ToF32I[0]);\n",
	},
	I64ToF64: {
		name:    "i64ToF64",
		globals: []string{"i64ToF64I", "i64ToF64F"},
		code: `const i64ToF64I = new BigInt64Array(1);
		const i64ToF64F = new Float64Array(i64ToF64I.buffer);
		const i64ToF64 = i => (i64ToF64I[0] = i, i64ToF64F[0]);
		`,
	},
	F64ToI64: {
		name: "f64ToI64",
		deps: []Intrinsic{I64ToF64},
		code: "const f64ToI64 = f => (i64ToF64F[0] = f, i64ToF64I[0]);\n",
	},
}

// Name returns the JS identifier of the helper
func (i Intrinsic) Name() string { return defs[i].name }

func (i Intrinsic) String() string { return defs[i].name }

// GlobalNames lists every identifier any helper may declare. Allocators
// exclude these so generated locals never shadow a helper.
func GlobalNames() []string {
	var out []string
	for _, d := range defs {
		out = append(out, d.name)
		out = append(out, d.globals...)
	}
	return out
}

// Set records the helpers referenced by emitted code
type Set struct {
	used map[Intrinsic]bool
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{used: make(map[Intrinsic]bool)}
}

// Use marks i as referenced and returns its identifier
func (s *Set) Use(i Intrinsic) string {
	s.used[i] = true
	return i.Name()
}

// Has reports whether i was referenced directly
func (s *Set) Has(i Intrinsic) bool { return s.used[i] }

// Closure returns the referenced helpers and their dependencies in render order
func (s *Set) Closure() []Intrinsic {
	all := make(map[Intrinsic]bool)
	var visit func(Intrinsic)
	visit = func(i Intrinsic) {
		if all[i] {
			return
		}
		all[i] = true
		for _, d := range defs[i].deps {
			visit(d)
		}
	}
	for i := range s.used {
		visit(i)
	}

	out := make([]Intrinsic, 0, len(all))
	for i := range all {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Render returns the JS declarations of the closure
func (s *Set) Render() string {
	var b strings.Builder
	for _, i := range s.Closure() {
		b.WriteString(defs[i].code)
	}
	return b.String()
}

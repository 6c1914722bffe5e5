// Package bindgen generates the JS module that bridges a component's core
// wasm ABI and the JS values of a host implementation.
//
// Generate takes a resolved WIT world and returns a Componentization: the
// module text plus the core imports, exports and resource operations the
// splicer must wire to it.
//
// # Module Layout
//
// The text is assembled in a fixed order:
//
//  1. Preamble: TextEncoder/TextDecoder from contentGlobal, the export rep
//     table and the destructuring of $bindings
//  2. One FinalizationRegistry per wired resource
//  3. Runtime helpers referenced by the bindings
//  4. Function bindings in discovery order
//  5. defineBuiltinModule calls exposing imports, one per specifier
//  6. bindExports, which resolves and verifies the host exports
//
// # Slots
//
// $bindings is positional. The engine fills it as
//
//	[$memory, $realloc, $import_<id>..., $resource_<op>...]
//
// with imports in Componentization.Imports order and resource operations in
// Componentization.ResourceImports order.
//
// # Calling Convention
//
// Import bindings are called from JS: arguments are lowered into core values
// (or stored behind one pointer when they do not fit), the core import is
// called and its result lifted. A result whose err case is returned throws a
// ComponentError carrying the payload.
//
// Export bindings are called by the engine with core values and a trailing
// return pointer when the result does not fit a single value. They await the
// host implementation, so every export binding is async.
//
// # Values
//
//	record       object with lowerCamel fields
//	tuple        array
//	variant      { tag, val }
//	option<T>    T, or undefined/null for none
//	result<T,E>  { tag: 'ok' | 'err', val }
//	enum         case name string
//	flags        object of booleans
//	u64, s64     BigInt
//	resource     class instance
package bindgen

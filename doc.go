// Package jsbindgen generates the JavaScript bindings module that lets a JS
// implementation run as a WebAssembly component.
//
// Given a resolved WIT world, the generator emits one JS module bridging the
// flat core wasm calling convention and JS values, together with the list of
// core imports, exports and resource operations the splicer has to wire into
// the final component binary.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	jsbindgen/
//	├── bindgen/         Entry point: Generate, options, emission and wiring
//	├── abi/             Canonical ABI flattening, layout and core signatures
//	├── names/           JS identifier allocation and case conversion
//	├── resources/       Resource direction and handle-table wiring
//	├── errors/          Structured error types for debugging
//	└── internal/
//	    ├── intrinsics/  JS runtime helpers referenced by bindings
//	    ├── source/      Indenting JS text buffer
//	    └── fixture/     WIT world builders for tests
//
// # Quick Start
//
//	c, err := bindgen.Generate(resolve, world, bindgen.Options{
//	    Features: []bindgen.Feature{bindgen.FeatureStdio},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// hand both to the splicer
//	js := c.JSBindings
//	manifest, err := json.Marshal(c)
//
// # Data Flow
//
//  1. resources.Table classifies every resource as import or export
//  2. every imported and exported function is named, its core signature
//     derived and its binding body emitted
//  3. imports are grouped into defineBuiltinModule wrappers and exports into
//     the bindExports resolver
//  4. the module text is assembled in a fixed order
//
// Generation is single-threaded and holds all state in one run; the only
// package-level state is the bindgen logger.
package jsbindgen

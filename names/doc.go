// Package names derives the JS identifiers used by generated bindings.
//
// Every identifier that appears in the generated module is resolved through an
// Allocator owned by a single generation run, so a function's definition and
// every reference to it agree on spelling:
//
//	world root function      add                    -> add
//	interface function       local:demo/ops.add     -> ops$add
//	resource method          counter.get            -> counter$method$get
//	versioned interface      wasi:io/streams@0.2.0  -> streams_0_2_0
//
// Canonical WIT names ([constructor]r, [method]r.f, [static]r.f) are
// produced by Role.CanonName and are the memoization keys of the allocator.
package names

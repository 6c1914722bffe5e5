// Package resources classifies WIT resource types by direction and derives
// the handle-table wiring the generated module needs.
//
// A resource declared by an imported interface (or directly in the world) is
// an import resource: the host owns instances and the generated module drops
// the handles it receives. A resource declared by an exported interface is an
// export resource: the generated module keeps a rep table and calls the
// new/rep/drop operations of the component's own resource table.
//
// Direction is fixed once per type definition for the whole run.
//
//	export  counter in local:demo/ops  ->  ops$new$counter
//	                                       ops$rep$counter
//	                                       export$ops$drop$counter
//	import  pollable in wasi:io/poll   ->  import$poll$drop$pollable
package resources

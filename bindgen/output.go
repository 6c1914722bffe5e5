package bindgen

import (
	"strings"

	"github.com/wippyai/jsbindgen/internal/source"
)

// assemble concatenates the module in its fixed order: preamble, finalization
// registries, intrinsics, function bodies, import wrappers and export
// bindings.
func (g *generator) assemble() (string, error) {
	var out source.Source

	slots := []string{memory, realloc}
	for _, imp := range g.imports {
		slots = append(slots, "$import_"+imp.Item.BindingName)
	}
	for _, op := range g.table.Ops() {
		slots = append(slots, op.Slot())
	}

	out.Line("let { TextEncoder, TextDecoder } = contentGlobal;")
	out.Line("")
	out.Line("let repCnt = 1;")
	out.Line("let repTable = new Map();")
	out.Line("")
	out.Line("contentGlobal.Symbol.dispose = Symbol.dispose = Symbol.for('dispose');")
	out.Line("")
	out.Linef("let [%s] = $bindings;", strings.Join(slots, ", "))
	out.Line("delete globalThis.$bindings;")
	out.Line("")

	for _, r := range g.table.Wired() {
		out.Linef("const %s = new FinalizationRegistry((handle) => {", r.Registry())
		out.Linef("%s(handle);", r.DropOp())
		out.Line("});")
	}

	if js := g.intrinsics.Render(); js != "" {
		out.Line("")
		out.Push(js)
	}

	out.Append(&g.src)

	var tail strings.Builder
	tail.WriteString(g.renderImportWrappers())
	tail.WriteString("\n\n")

	var esm source.Source
	if err := g.esm.render(&esm); err != nil {
		return "", err
	}

	return out.String() + tail.String() + esm.String(), nil
}

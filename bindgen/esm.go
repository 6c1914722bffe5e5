package bindgen

import (
	"maps"
	"slices"
	"strings"

	"github.com/wippyai/jsbindgen/errors"
	"github.com/wippyai/jsbindgen/internal/source"
	"github.com/wippyai/jsbindgen/names"
)

type bindingKind int

const (
	bindLocal bindingKind = iota
	bindResource
	bindInterface
)

// binding is one node of the host-facing export tree
type binding struct {
	kind    bindingKind
	local   string
	members map[string]*binding
}

// esmTree collects the host-side exports the module binds to
type esmTree struct {
	root    map[string]*binding
	aliases map[string]string
}

func newESMTree() *esmTree {
	return &esmTree{root: make(map[string]*binding)}
}

// treeKey converts an export key into its tree key: qualified interface
// ids stay as-is, plain names become lowerCamel.
func treeKey(key string) string {
	if strings.Contains(key, ":") {
		return key
	}
	return names.LowerCamel(key)
}

// addFunc binds a function export under iface, or at the root when iface is
// empty.
func (t *esmTree) addFunc(iface, local, name string) error {
	path := []string{name}
	if iface != "" {
		path = []string{treeKey(iface), name}
	}
	return t.insert(path, &binding{kind: bindLocal, local: local})
}

// ensureResource binds an exported resource class under iface once.
func (t *esmTree) ensureResource(iface, local, name string) error {
	path := []string{name}
	if iface != "" {
		path = []string{treeKey(iface), name}
	}
	return t.insert(path, &binding{kind: bindResource, local: local})
}

func (t *esmTree) insert(path []string, b *binding) error {
	if len(path) > 2 {
		return errors.NestedInterface(path...)
	}
	level := t.root
	for _, seg := range path[:len(path)-1] {
		node, ok := level[seg]
		if !ok {
			node = &binding{kind: bindInterface, members: make(map[string]*binding)}
			level[seg] = node
		}
		if node.kind != bindInterface {
			return errors.NameCollision(seg, "export cannot be both a function and an interface or resource")
		}
		level = node.members
	}

	name := path[len(path)-1]
	if existing, ok := level[name]; ok {
		if existing.kind == bindResource && b.kind == bindResource && existing.local == b.local {
			return nil
		}
		return errors.NameCollision(strings.Join(path, "."), "export name is already bound")
	}
	level[name] = b
	return nil
}

// assignAliases computes interface aliases once all exports are known
func (t *esmTree) assignAliases() {
	t.aliases = names.AssignAliases(slices.Collect(maps.Keys(t.root)))
}

const exportHelpers = `
class BindingsError extends Error {
	constructor (path, type, helpContext, help) {
		super(~"${__sourceName}" does not export a "${path}" ${type} as expected by the world.${help ? ~\n  Try defining it${helpContext}:\n${help.split('\n').map(ln => ~  ${ln}~).join('\n')}~ : ''}~);
	}
}
function getInterfaceExport (mod, exportNameOrAlias, exportId) {
	if (typeof mod[exportId] === 'object')
	return mod[exportId];
	if (exportNameOrAlias && typeof mod[exportNameOrAlias] === 'object')
	return mod[exportNameOrAlias];
	if (!exportNameOrAlias)
	throw new BindingsError(exportId, 'interface', ' by its qualified interface name', ~const obj = {};\n\nexport { obj as '${exportId}' }\n~);
	else
	throw new BindingsError(exportNameOrAlias, 'interface', exportId && exportNameOrAlias ? ' by its alias' : ' by name', ~export const ${exportNameOrAlias} = {};~);
}
function verifyInterfaceFn (fn, exportName, ifaceProp, interfaceExportAlias) {
	if (typeof fn !== 'function') {
		if (!interfaceExportAlias)
		throw new BindingsError(exportName, ~${ifaceProp} function~, ' on the exported interface object', ~const obj = {\n\t${ifaceProp} () {\n\n}\n};\n\nexport { obj as '${exportName}' }\n~);
		else
		throw new BindingsError(exportName, ~${ifaceProp} function~, ~ on the interface alias "${interfaceExportAlias}"~, ~export const ${interfaceExportAlias} = {\n\t${ifaceProp} () {\n\n}\n};~);
	}
}
function verifyInterfaceResource (fn, exportName, ifaceProp, interfaceExportAlias) {
	if (typeof fn !== 'function') {
		if (!interfaceExportAlias)
		throw new BindingsError(exportName, ~${ifaceProp} resource~, ' on the exported interface object', ~const obj = {\n\t${ifaceProp} () {\n\n}\n};\n\nexport { obj as '${exportName}' }\n~);
		else
		throw new BindingsError(exportName, ~${ifaceProp} resource~, ~ on the interface alias "${interfaceExportAlias}"~, ~export const ${interfaceExportAlias} = {\n\t${ifaceProp} () {\n\n}\n};~);
	}
}
`

// render emits the local declarations and the bindExports function that
// resolves and verifies every host export.
func (t *esmTree) render(out *source.Source) error {
	if len(t.root) > 0 {
		out.Push(strings.ReplaceAll(exportHelpers, "~", "`"))
	}

	var bind source.Source
	bind.Line("let __sourceName;")
	bind.Line("function bindExports(sourceName) {")
	bind.Line("__sourceName = sourceName;")
	bind.Line("let __iface;")

	for _, key := range slices.Sorted(maps.Keys(t.root)) {
		node := t.root[key]
		switch node.kind {
		case bindInterface:
			alias, aliased := t.aliases[key]
			switch {
			case aliased:
				bind.Linef("__iface = getInterfaceExport(%s, '%s', '%s');", sourceModule, alias, key)
			case strings.Contains(key, ":"):
				bind.Linef("__iface = getInterfaceExport(%s, null, '%s');", sourceModule, key)
			default:
				bind.Linef("__iface = getInterfaceExport(%s, '%s', null);", sourceModule, key)
			}

			members := slices.Sorted(maps.Keys(node.members))
			locals := make([]string, 0, len(members))
			for _, name := range members {
				m := node.members[name]
				if m.kind == bindInterface {
					return errors.NestedInterface(key, name)
				}
				locals = append(locals, m.local)
				bind.Linef("%s = __iface.%s;", m.local, name)
			}
			out.Linef("let %s;", strings.Join(locals, ", "))

			aliasArg := "null"
			if aliased {
				aliasArg = "'" + alias + "'"
			}
			for _, name := range members {
				m := node.members[name]
				verify := "verifyInterfaceFn"
				if m.kind == bindResource {
					verify = "verifyInterfaceResource"
				}
				bind.Linef("%s(%s, '%s', '%s', %s);", verify, m.local, key, name, aliasArg)
			}
		default:
			out.Linef("let %s;", node.local)
			bind.Linef("%s = %s.%s;", node.local, sourceModule, key)
			bind.Linef("if (typeof %s !== 'function')", node.local)
			bind.Linef("throw new BindingsError('%s', 'function', '', `export function %s () {};\\n`);", key, key)
		}
	}
	bind.Line("}")
	out.Append(&bind)
	return nil
}

package bindgen

import (
	"slices"
	"strings"

	"github.com/wippyai/jsbindgen/names"
	"github.com/wippyai/jsbindgen/resources"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// importsBindgen emits bindings for every imported function, grouping
// resource functions into wrapper classes.
func (g *generator) importsBindgen() error {
	for key, item := range g.world.Imports.All() {
		switch item := item.(type) {
		case *wit.Function:
			if _, ok := item.Kind.(*wit.Freestanding); !ok {
				if _, _, err := funcRole(item); err != nil {
					return err
				}
				// resource functions are emitted with their class
				continue
			}
			if err := g.importFunction(importSite{specifier: key}, item); err != nil {
				return err
			}
		case *wit.InterfaceRef:
			if err := g.importInterface(key, item.Interface); err != nil {
				return err
			}
		case *wit.TypeDef:
			if _, ok := item.Kind.(*wit.Resource); !ok {
				continue
			}
			if err := g.importRootResource(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *generator) importInterface(key string, iface *wit.Interface) error {
	site := importSite{specifier: key, iface: true, ifaceName: g.interfaceName(iface)}

	var free []*wit.Function
	byResource := make(map[*wit.TypeDef][]*wit.Function)
	for _, fn := range iface.Functions.All() {
		_, def, err := funcRole(fn)
		if err != nil {
			return err
		}
		if def == nil {
			free = append(free, fn)
			continue
		}
		byResource[def] = append(byResource[def], fn)
	}

	for _, fn := range free {
		if err := g.importFunction(site, fn); err != nil {
			return err
		}
	}
	for _, td := range iface.TypeDefs.All() {
		fns, ok := byResource[td]
		if !ok {
			continue
		}
		r, err := g.table.Lookup(td)
		if err != nil {
			return err
		}
		if err := g.importClass(site, r, fns); err != nil {
			return err
		}
	}
	return nil
}

// importRootResource emits the wrapper of a resource imported directly by
// the world, collecting its functions from the world's function imports.
func (g *generator) importRootResource(td *wit.TypeDef) error {
	r, err := g.table.Lookup(td)
	if err != nil {
		return err
	}
	var fns []*wit.Function
	for _, item := range g.world.Imports.All() {
		fn, ok := item.(*wit.Function)
		if !ok {
			continue
		}
		if _, def, err := funcRole(fn); err == nil && def == r.Def {
			fns = append(fns, fn)
		}
	}
	return g.importClass(importSite{specifier: resources.RootModule}, r, fns)
}

// renderImportWrappers emits one defineBuiltinModule call per specifier.
// Specifiers are sorted; within one, plain functions come first in
// discovery order, then resource classes sorted by resource name.
func (g *generator) renderImportWrappers() string {
	type group struct {
		functions []BindingItem
		resources map[string]BindingItem
	}
	groups := make(map[string]*group)
	var specifiers []string
	for _, imp := range g.imports {
		grp, ok := groups[imp.Specifier]
		if !ok {
			grp = &group{resources: make(map[string]BindingItem)}
			groups[imp.Specifier] = grp
			specifiers = append(specifiers, imp.Specifier)
		}
		if imp.Item.Resource.Kind == names.RoleNone {
			grp.functions = append(grp.functions, imp.Item)
			continue
		}
		if _, seen := grp.resources[imp.Item.Resource.Resource]; !seen {
			grp.resources[imp.Item.Resource.Resource] = imp.Item
		}
	}
	slices.Sort(specifiers)

	var b strings.Builder
	for _, specifier := range specifiers {
		grp := groups[specifier]
		var entries []string
		for _, item := range grp.functions {
			entries = append(entries, wrapperKey(item, names.LowerCamel(item.Name))+": import_"+item.BindingName)
		}
		resNames := make([]string, 0, len(grp.resources))
		for name := range grp.resources {
			resNames = append(resNames, name)
		}
		slices.Sort(resNames)
		for _, name := range resNames {
			class := g.classes[classKey{specifier, name}]
			entries = append(entries, names.UpperCamel(name)+": "+class)
		}

		b.WriteString("\n\n")
		b.WriteString(defineBuiltin + "('" + specifier + "', {\n\t")
		b.WriteString(strings.Join(entries, ",\n\t"))
		b.WriteString("\n});")

		g.log.Debug("import wrapper", zap.String("specifier", specifier), zap.Int("entries", len(entries)))
	}
	return b.String()
}

// wrapperKey is the name a function is exposed under in its wrapper module.
// World-level functions are the module's default export.
func wrapperKey(item BindingItem, name string) string {
	if item.Iface {
		return name
	}
	return "default"
}

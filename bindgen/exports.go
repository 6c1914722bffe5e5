package bindgen

import (
	"strings"

	"github.com/wippyai/jsbindgen/names"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// exportsBindgen emits bindings for every exported function and records
// the host-side export tree.
func (g *generator) exportsBindgen() error {
	for key, item := range g.world.Exports.All() {
		if g.opts.Has(FeatureFetchEvent) && strings.HasPrefix(key, fetchEventExport) {
			g.log.Debug("export served by the engine", zap.String("key", key))
			continue
		}

		switch item := item.(type) {
		case *wit.Function:
			if err := g.exportRootFunction(key, item); err != nil {
				return err
			}
		case *wit.InterfaceRef:
			if err := g.exportInterface(key, item.Interface); err != nil {
				return err
			}
		}
	}
	g.esm.assignAliases()
	return nil
}

func (g *generator) exportRootFunction(key string, fn *wit.Function) error {
	local := g.names.Local(fn.Name)
	site := exportSite{key: key, local: local}
	if err := g.exportFunction(site, fn); err != nil {
		return err
	}
	return g.esm.addFunc("", local, names.LowerCamel(fn.Name))
}

func (g *generator) exportInterface(key string, iface *wit.Interface) error {
	ifaceName := g.interfaceName(iface)
	for name, fn := range iface.Functions.All() {
		role, def, err := funcRole(fn)
		if err != nil {
			return err
		}

		site := exportSite{key: key, iface: true, ifaceName: ifaceName}
		if role.Kind == names.RoleNone {
			site.local = g.names.Local(key + "-" + name)
			if err := g.exportFunction(site, fn); err != nil {
				return err
			}
			if err := g.esm.addFunc(key, site.local, names.LowerCamel(fn.Name)); err != nil {
				return err
			}
			continue
		}

		class := names.UpperCamel(defName(def))
		site.local, _ = g.names.LocalOnce("resource:"+key+"/"+defName(def), class)
		if err := g.exportFunction(site, fn); err != nil {
			return err
		}
		if err := g.esm.ensureResource(key, site.local, class); err != nil {
			return err
		}
	}
	return nil
}

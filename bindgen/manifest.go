package bindgen

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/jsbindgen/abi"
	"github.com/wippyai/jsbindgen/errors"
)

// Manifest is the serializable view of a Componentization the splicer
// consumes alongside the JS text.
type Manifest struct {
	Exports         []ManifestBinding  `json:"exports" jsonschema:"description=Core exports the splicer must synthesize"`
	Imports         []ManifestBinding  `json:"imports" jsonschema:"description=Core imports in $bindings slot order"`
	ResourceImports []ManifestResource `json:"resourceImports" jsonschema:"description=Canonical resource operations in $bindings slot order"`
}

// ManifestBinding is one function binding with its core signature
type ManifestBinding struct {
	Key      string   `json:"key" jsonschema:"description=World export name or import specifier"`
	Binding  string   `json:"binding" jsonschema:"description=JS identifier of the binding"`
	Name     string   `json:"name" jsonschema:"description=Function item name"`
	Iface    string   `json:"iface,omitempty"`
	Role     string   `json:"role" jsonschema:"enum=none,enum=constructor,enum=static,enum=method"`
	Resource string   `json:"resource,omitempty"`
	Params   []string `json:"params" jsonschema:"description=Core parameter types"`
	Result   string   `json:"result,omitempty" jsonschema:"enum=i32,enum=i64,enum=f32,enum=f64"`
	RetPtr   bool     `json:"retptr"`
	RetSize  uint32   `json:"retsize"`
	ParamPtr bool     `json:"paramptr"`
}

// ManifestResource is one canonical resource import
type ManifestResource struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Arity  uint32 `json:"arity" jsonschema:"minimum=0,maximum=1"`
}

// Manifest returns the serializable binding manifest.
func (c *Componentization) Manifest() *Manifest {
	m := &Manifest{
		Exports:         make([]ManifestBinding, 0, len(c.Exports)),
		Imports:         make([]ManifestBinding, 0, len(c.Imports)),
		ResourceImports: make([]ManifestResource, 0, len(c.ResourceImports)),
	}
	for _, e := range c.Exports {
		m.Exports = append(m.Exports, manifestBinding(e.Name, e.Item))
	}
	for _, i := range c.Imports {
		m.Imports = append(m.Imports, manifestBinding(i.Specifier, i.Item))
	}
	for _, r := range c.ResourceImports {
		m.ResourceImports = append(m.ResourceImports, ManifestResource{Module: r.Module, Name: r.Name, Arity: r.Arity})
	}
	return m
}

func manifestBinding(key string, item BindingItem) ManifestBinding {
	b := ManifestBinding{
		Key:      key,
		Binding:  item.BindingName,
		Name:     item.Name,
		Iface:    item.IfaceName,
		Role:     item.Resource.Kind.String(),
		Resource: item.Resource.Resource,
		Params:   coreTypeNames(item.Func.Params),
		RetPtr:   item.Func.RetPtr,
		RetSize:  item.Func.RetSize,
		ParamPtr: item.Func.ParamPtr,
	}
	if item.Func.Ret != nil {
		b.Result = api.ValueTypeName(*item.Func.Ret)
	}
	return b
}

func coreTypeNames(types []abi.CoreTy) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, api.ValueTypeName(t))
	}
	return out
}

// MarshalJSON encodes the manifest of c.
func (c *Componentization) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Manifest())
}

// ManifestSchema returns the JSON schema of the binding manifest.
func ManifestSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Manifest{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "marshal manifest schema")
	}
	return data, nil
}

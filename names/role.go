package names

import "strings"

// RoleKind is the relationship of a function to a resource
type RoleKind int

const (
	RoleNone RoleKind = iota
	RoleConstructor
	RoleStatic
	RoleMethod
)

func (k RoleKind) String() string {
	switch k {
	case RoleConstructor:
		return "constructor"
	case RoleStatic:
		return "static"
	case RoleMethod:
		return "method"
	default:
		return "none"
	}
}

// Role tags a binding with its resource role. Resource is the declared
// resource name and is empty for RoleNone.
type Role struct {
	Kind     RoleKind
	Resource string
}

// Constructor returns the constructor role for resource
func Constructor(resource string) Role { return Role{Kind: RoleConstructor, Resource: resource} }

// Static returns the static-function role for resource
func Static(resource string) Role { return Role{Kind: RoleStatic, Resource: resource} }

// Method returns the method role for resource
func Method(resource string) Role { return Role{Kind: RoleMethod, Resource: resource} }

// FuncName returns the identifier fragment for fn under this role.
//
//	none         getValue
//	constructor  counter$counter
//	method       counter$method$get
//	static       counter$static$open
func (r Role) FuncName(fn string) string {
	switch r.Kind {
	case RoleConstructor:
		return LowerCamel(r.Resource) + "$" + LowerCamel(fn)
	case RoleMethod:
		return LowerCamel(r.Resource) + "$method$" + LowerCamel(fn)
	case RoleStatic:
		return LowerCamel(r.Resource) + "$static$" + LowerCamel(fn)
	default:
		return LowerCamel(fn)
	}
}

// CanonName returns the WIT canonical function name for fn under this role.
func (r Role) CanonName(fn string) string {
	switch r.Kind {
	case RoleConstructor:
		return "[constructor]" + r.Resource
	case RoleMethod:
		return "[method]" + r.Resource + "." + fn
	case RoleStatic:
		return "[static]" + r.Resource + "." + fn
	default:
		return fn
	}
}

// ItemName strips the canonical role prefix from a WIT function name.
// For constructors the item name is the resource name.
//
//	"[method]counter.get"  -> "get"
//	"[constructor]counter" -> "counter"
//	"add"                  -> "add"
func ItemName(canon string) string {
	if rest, ok := strings.CutPrefix(canon, "[constructor]"); ok {
		return rest
	}
	for _, prefix := range []string{"[method]", "[static]"} {
		if rest, ok := strings.CutPrefix(canon, prefix); ok {
			if idx := strings.IndexByte(rest, '.'); idx >= 0 {
				return rest[idx+1:]
			}
			return rest
		}
	}
	return canon
}

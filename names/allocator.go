package names

import (
	"strconv"
	"strings"
)

var reserved = map[string]struct{}{
	"arguments": {}, "await": {}, "break": {}, "case": {}, "catch": {}, "class": {},
	"const": {}, "continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "enum": {}, "eval": {}, "export": {}, "extends": {}, "false": {},
	"finally": {}, "for": {}, "function": {}, "if": {}, "implements": {}, "import": {},
	"in": {}, "instanceof": {}, "interface": {}, "let": {}, "new": {}, "null": {},
	"package": {}, "private": {}, "protected": {}, "public": {}, "return": {},
	"static": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "undefined": {}, "var": {}, "void": {}, "while": {},
	"with": {}, "yield": {}, "NaN": {}, "Infinity": {},
}

// Allocator hands out collision-free JS identifiers for one generation run.
// Lookups are memoized by key: equal keys always return the same identifier
// and distinct keys never share one.
//
// Binding ids live in their own namespace: they only ever appear behind a
// fixed prefix such as "import_" or "$resource_", so they cannot clash with
// locals.
type Allocator struct {
	taken    map[string]struct{}
	numbered map[string]struct{}
	bindings map[string]struct{}
	byKey    map[string]string
	ifaces   map[string]string
}

// NewAllocator creates an allocator that will never return any of exclude.
func NewAllocator(exclude ...string) *Allocator {
	a := &Allocator{
		taken:    make(map[string]struct{}),
		numbered: make(map[string]struct{}),
		bindings: make(map[string]struct{}),
		byKey:    make(map[string]string),
		ifaces:   make(map[string]string),
	}
	a.Exclude(exclude...)
	return a
}

// Exclude reserves global names so that no allocation returns them.
func (a *Allocator) Exclude(globals ...string) {
	for _, g := range globals {
		a.taken[g] = struct{}{}
	}
}

// ExcludeNumbered reserves every identifier made of one of prefixes
// followed by decimal digits, such as "ret0" or "arg12".
func (a *Allocator) ExcludeNumbered(prefixes ...string) {
	for _, p := range prefixes {
		a.numbered[p] = struct{}{}
	}
}

// Taken reports whether name has been allocated or excluded.
func (a *Allocator) Taken(name string) bool {
	if _, ok := a.taken[name]; ok {
		return true
	}
	end := len(name)
	for end > 0 && name[end-1] >= '0' && name[end-1] <= '9' {
		end--
	}
	if end == 0 || end == len(name) {
		return false
	}
	_, ok := a.numbered[name[:end]]
	return ok
}

// Local allocates a fresh identifier derived from goal. A taken candidate
// gets the smallest free "$N" suffix.
func (a *Allocator) Local(goal string) string {
	return claim(a.taken, a.Taken, Identifier(goal))
}

func claim(into map[string]struct{}, taken func(string) bool, id string) string {
	if taken(id) {
		for n := 1; ; n++ {
			candidate := id + "$" + strconv.Itoa(n)
			if !taken(candidate) {
				id = candidate
				break
			}
		}
	}
	into[id] = struct{}{}
	return id
}

// LocalOnce returns the identifier memoized under key, allocating it from
// goal on first use. The boolean reports whether it already existed.
func (a *Allocator) LocalOnce(key, goal string) (string, bool) {
	if id, ok := a.byKey[key]; ok {
		return id, true
	}
	id := a.Local(goal)
	a.byKey[key] = id
	return id, false
}

// Interface returns the namespace key for an interface id. Two ids that
// derive the same name (same last segment in different packages) receive
// distinct keys.
func (a *Allocator) Interface(id string) (string, bool) {
	if name, ok := a.ifaces[id]; ok {
		return name, true
	}
	goal, ok := InterfaceName(id)
	if !ok {
		return "", false
	}
	name := goal
	for n := 1; a.interfaceTaken(name); n++ {
		name = goal + "$" + strconv.Itoa(n)
	}
	a.ifaces[id] = name
	return name, true
}

func (a *Allocator) interfaceTaken(name string) bool {
	for _, v := range a.ifaces {
		if v == name {
			return true
		}
	}
	return false
}

// Binding returns the identifier of the function fn under role, scoped to
// the interface namespace iface (empty for the world root).
func (a *Allocator) Binding(iface string, role Role, fn string) string {
	key := "binding:" + iface + "#" + role.CanonName(fn)
	if id, ok := a.byKey[key]; ok {
		return id
	}
	id := claim(a.bindings, a.bindingTaken, Identifier(BindingName(role.FuncName(fn), iface)))
	a.byKey[key] = id
	return id
}

func (a *Allocator) bindingTaken(id string) bool {
	_, ok := a.bindings[id]
	return ok
}

// Identifier converts goal into a valid JS identifier. Anything up to the
// last '/' is dropped.
func Identifier(goal string) string {
	if idx := strings.LastIndexByte(goal, '/'); idx >= 0 {
		goal = goal[idx+1:]
	}
	if !isIdentifier(goal) {
		goal = LowerCamel(goal)
	}
	if goal == "" {
		goal = "_"
	}
	if goal[0] >= '0' && goal[0] <= '9' {
		goal = "_" + goal
	}
	if _, ok := reserved[goal]; ok {
		goal = "_" + goal
	}
	return goal
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

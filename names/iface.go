package names

import (
	"strings"

	"github.com/coreos/go-semver/semver"
	"go.bytecodealliance.org/wit"
)

// InterfaceID returns the fully qualified id of iface, for example
// "wasi:io/streams@0.2.0". Unnamed interfaces have no id.
func InterfaceID(iface *wit.Interface) (string, bool) {
	if iface == nil || iface.Name == nil {
		return "", false
	}
	if iface.Package == nil {
		return *iface.Name, true
	}
	pkg := iface.Package.Name
	id := pkg.Namespace + ":" + pkg.Package + "/" + *iface.Name
	if pkg.Version != nil {
		id += "@" + pkg.Version.String()
	}
	return id, true
}

// splitVersion splits "name@version" at the last '@'.
func splitVersion(s string) (string, string, bool) {
	idx := strings.LastIndexByte(s, '@')
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

// InterfaceName derives the namespace key of an interface id: the last path
// segment in lowerCamelCase, suffixed with the sanitized version when present.
//
//	"wasi:io/streams@0.2.0" -> "streams_0_2_0"
//	"local:demo/ops"        -> "ops"
//
// Ids without a path separator have no interface name.
func InterfaceName(id string) (string, bool) {
	idx := strings.LastIndexByte(id, '/')
	if idx < 0 {
		return "", false
	}
	name, version, versioned := splitVersion(id[idx+1:])
	alias := LowerCamel(name)
	if !versioned {
		return alias, true
	}
	if v, err := semver.NewVersion(version); err == nil {
		version = v.String()
	}
	return alias + "_" + strings.NewReplacer(".", "_", "-", "_").Replace(version), true
}

// StripVersion removes a trailing "@version" from an export key.
func StripVersion(key string) string {
	if idx := strings.IndexByte(key, '@'); idx >= 0 {
		return key[:idx]
	}
	return key
}

// BindingName namespaces fn under iface when an interface name is present.
func BindingName(fn, iface string) string {
	if iface == "" {
		return fn
	}
	return iface + "$" + fn
}

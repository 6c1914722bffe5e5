package names

import (
	"testing"

	"github.com/coreos/go-semver/semver"
	"go.bytecodealliance.org/wit"
)

func TestCase(t *testing.T) {
	tests := []struct {
		input string
		lower string
		upper string
		kebab string
	}{
		{"get-value", "getValue", "GetValue", "get-value"},
		{"counter", "counter", "Counter", "counter"},
		{"incoming-handler", "incomingHandler", "IncomingHandler", "incoming-handler"},
		{"utf8-encode", "utf8Encode", "Utf8Encode", "utf8-encode"},
		{"fooBar", "fooBar", "FooBar", "foo-bar"},
		{"HTTPServer", "httpServer", "HttpServer", "http-server"},
		{"snake_case_name", "snakeCaseName", "SnakeCaseName", "snake-case-name"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LowerCamel(tt.input); got != tt.lower {
				t.Errorf("LowerCamel(%q) = %q, want %q", tt.input, got, tt.lower)
			}
			if got := UpperCamel(tt.input); got != tt.upper {
				t.Errorf("UpperCamel(%q) = %q, want %q", tt.input, got, tt.upper)
			}
			if got := Kebab(tt.input); got != tt.kebab {
				t.Errorf("Kebab(%q) = %q, want %q", tt.input, got, tt.kebab)
			}
		})
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		role  Role
		fn    string
		name  string
		canon string
	}{
		{Role{}, "get-value", "getValue", "get-value"},
		{Constructor("fancy-counter"), "fancy-counter", "fancyCounter$fancyCounter", "[constructor]fancy-counter"},
		{Method("counter"), "get", "counter$method$get", "[method]counter.get"},
		{Static("counter"), "open-at", "counter$static$openAt", "[static]counter.open-at"},
	}

	for _, tt := range tests {
		t.Run(tt.canon, func(t *testing.T) {
			if got := tt.role.FuncName(tt.fn); got != tt.name {
				t.Errorf("FuncName = %q, want %q", got, tt.name)
			}
			if got := tt.role.CanonName(tt.fn); got != tt.canon {
				t.Errorf("CanonName = %q, want %q", got, tt.canon)
			}
			if got := ItemName(tt.canon); got != tt.fn {
				t.Errorf("ItemName(%q) = %q, want %q", tt.canon, got, tt.fn)
			}
		})
	}
}

func TestInterfaceName(t *testing.T) {
	tests := []struct {
		id   string
		want string
		ok   bool
	}{
		{"local:demo/ops", "ops", true},
		{"wasi:io/streams@0.2.0", "streams_0_2_0", true},
		{"wasi:http/incoming-handler@0.2.3", "incomingHandler_0_2_3", true},
		{"wasi:cli/run@0.3.0-rc-2025-01-01", "run_0_3_0_rc_2025_01_01", true},
		{"ns:pkg/x@not.a.version", "x_not_a_version", true},
		{"ops", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := InterfaceName(tt.id)
			if ok != tt.ok || got != tt.want {
				t.Errorf("InterfaceName(%q) = %q, %v; want %q, %v", tt.id, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInterfaceID(t *testing.T) {
	name := "streams"
	iface := &wit.Interface{
		Name: &name,
		Package: &wit.Package{Name: wit.Ident{
			Namespace: "wasi",
			Package:   "io",
			Version:   semver.New("0.2.0"),
		}},
	}
	id, ok := InterfaceID(iface)
	if !ok || id != "wasi:io/streams@0.2.0" {
		t.Errorf("InterfaceID = %q, %v", id, ok)
	}

	if _, ok := InterfaceID(&wit.Interface{}); ok {
		t.Error("unnamed interface should have no id")
	}
}

func TestBindingName(t *testing.T) {
	if got := BindingName("add", ""); got != "add" {
		t.Errorf("got %q", got)
	}
	if got := BindingName("add", "ops"); got != "ops$add" {
		t.Errorf("got %q", got)
	}
}

func TestAllocator_Stable(t *testing.T) {
	a := NewAllocator()

	first := a.Binding("ops", Role{}, "add")
	again := a.Binding("ops", Role{}, "add")
	if first != again {
		t.Fatalf("repeated lookup changed identifier: %q vs %q", first, again)
	}
	if first != "ops$add" {
		t.Errorf("Binding = %q, want ops$add", first)
	}

	seen := map[string]string{}
	keys := []struct {
		iface string
		role  Role
		fn    string
	}{
		{"ops", Role{}, "add"},
		{"", Role{}, "add"},
		{"ops", Method("counter"), "get"},
		{"ops", Static("counter"), "get"},
		{"ops", Constructor("counter"), "counter"},
		{"other", Role{}, "add"},
	}
	for _, k := range keys {
		id := a.Binding(k.iface, k.role, k.fn)
		canon := k.iface + "#" + k.role.CanonName(k.fn)
		if prev, dup := seen[id]; dup {
			t.Errorf("identifier %q shared by %q and %q", id, prev, canon)
		}
		seen[id] = canon
	}
}

func TestAllocator_Collisions(t *testing.T) {
	a := NewAllocator("utf8Encode", "dataView")

	if got := a.Local("utf8-encode"); got != "utf8Encode$1" {
		t.Errorf("excluded global not avoided: %q", got)
	}
	if got := a.Local("dataView"); got != "dataView$1" {
		t.Errorf("got %q", got)
	}
	if got := a.Local("dataView"); got != "dataView$2" {
		t.Errorf("got %q", got)
	}

	id, existed := a.LocalOnce("resource:counter", "Counter")
	if existed || id != "Counter" {
		t.Errorf("LocalOnce first = %q, %v", id, existed)
	}
	id, existed = a.LocalOnce("resource:counter", "Counter")
	if !existed || id != "Counter" {
		t.Errorf("LocalOnce second = %q, %v", id, existed)
	}
	id, _ = a.LocalOnce("resource:other/counter", "Counter")
	if id != "Counter$1" {
		t.Errorf("distinct key should get suffix, got %q", id)
	}
}

func TestAllocator_ExcludeNumbered(t *testing.T) {
	a := NewAllocator()
	a.ExcludeNumbered("arg", "ret")

	tests := []struct {
		goal string
		want string
	}{
		{"arg0", "arg0$1"},
		{"ret12", "ret12$1"},
		{"arg", "arg"},
		{"args0", "args0"},
		{"ret-value", "retValue"},
		{"ptr0", "ptr0"},
	}
	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			if got := a.Local(tt.goal); got != tt.want {
				t.Errorf("Local(%q) = %q, want %q", tt.goal, got, tt.want)
			}
		})
	}

	if !a.Taken("arg7") || a.Taken("arg7$1") {
		t.Error("numbered names should be taken, suffixed ones free")
	}
	if id := a.Binding("", Role{}, "arg0"); id != "arg0" {
		t.Errorf("binding ids are not affected, got %q", id)
	}
}

func TestAllocator_Interface(t *testing.T) {
	a := NewAllocator()

	v1, _ := a.Interface("a:x/store@1.0.0")
	v2, _ := a.Interface("a:x/store@2.0.0")
	if v1 == v2 {
		t.Fatalf("versioned interfaces share key %q", v1)
	}

	plain, _ := a.Interface("a:x/ops")
	other, _ := a.Interface("b:y/ops")
	if plain != "ops" || other != "ops$1" {
		t.Errorf("got %q and %q", plain, other)
	}
	if again, _ := a.Interface("b:y/ops"); again != other {
		t.Errorf("interface key not memoized: %q", again)
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		goal string
		want string
	}{
		{"add", "add"},
		{"local:demo/ops-add", "opsAdd"},
		{"counter$method$get", "counter$method$get"},
		{"default", "_default"},
		{"9lives", "_9lives"},
		{"", "_"},
	}
	for _, tt := range tests {
		if got := Identifier(tt.goal); got != tt.want {
			t.Errorf("Identifier(%q) = %q, want %q", tt.goal, got, tt.want)
		}
	}
}

func TestAssignAliases(t *testing.T) {
	keys := []string{
		"wasi:cli/run@0.2.0",
		"local:a/store@1.0.0",
		"local:b/store@2.0.0",
		"run",
		"local:demo/ops",
	}

	got := AssignAliases(keys)
	want := map[string]string{
		"local:a/store@1.0.0": "store",
		"local:demo/ops":      "ops",
	}
	if len(got) != len(want) {
		t.Fatalf("aliases = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("alias[%q] = %q, want %q", k, got[k], v)
		}
	}

	reversed := make([]string, len(keys))
	for i, k := range keys {
		reversed[len(keys)-1-i] = k
	}
	again := AssignAliases(reversed)
	for k, v := range got {
		if again[k] != v {
			t.Errorf("order-dependent alias for %q: %q vs %q", k, again[k], v)
		}
	}
}

func TestAllocator_BindingNamespace(t *testing.T) {
	a := NewAllocator()
	if got := a.Local("add"); got != "add" {
		t.Fatalf("Local = %q", got)
	}
	if got := a.Binding("", Role{}, "add"); got != "add" {
		t.Errorf("binding id should not see locals, got %q", got)
	}
	if got := a.Local("add"); got != "add$1" {
		t.Errorf("locals should not see binding ids, got %q", got)
	}
}

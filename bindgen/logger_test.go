package bindgen

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Default(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	generate(t, storeWorld(), Options{})

	if logs.FilterMessage("import binding").Len() != 4 {
		t.Errorf("import binding events = %d, want 4", logs.FilterMessage("import binding").Len())
	}
	var withResources int
	for _, e := range logs.FilterMessage("import binding").All() {
		if n, _ := e.ContextMap()["resources"].(int64); n > 0 {
			withResources++
		}
	}
	if withResources != 3 {
		t.Errorf("import bindings touching a resource = %d, want 3", withResources)
	}

	done := logs.FilterMessage("bindings generated").All()
	if len(done) != 1 {
		t.Fatalf("summary events = %d, want 1", len(done))
	}
	if got := done[0].ContextMap()["world"]; got != "demo" {
		t.Errorf("world field = %v", got)
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Error("SetLogger(nil) should restore a no-op logger")
	}
}

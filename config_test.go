package orrery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

const testCatalogTOML = `
[bodies.earth]
radius = 6378.1363
color = "#2e86ab"
content = "panel-earth"
a = 1.00000261
adot = 0.00000562
e = 0.01671123
edot = -0.00004392
i = -0.00001531
idot = -0.01294668
node = 0.0
nodedot = 0.0
peri = 102.93768193
peridot = 0.32327364
l = 100.46457166
ldot = 35999.37244981

[bodies.vulcan]
radius = 1000.0
distance = 0.24
color = "#aa3311"
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeTestFile(t, "catalog.toml", testCatalogTOML)
	catalog, err := LoadCatalog(path, kitlog.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	if catalog.Len() != 2 {
		t.Fatalf("expected 2 bodies, got %d", catalog.Len())
	}
	earth, found := catalog.Lookup("earth")
	if !found || !earth.HasElements() {
		t.Fatal("earth missing or without elements")
	}
	a, e, _, _, _, _ := earth.Elements.AtEpoch(J2000)
	if a != 1.00000261 || e != 0.01671123 {
		t.Fatalf("earth elements mangled: a=%f e=%f", a, e)
	}
	// A record with a malformed element set degrades to the static fallback
	// instead of failing the load.
	vulcan, found := catalog.Lookup("vulcan")
	if !found {
		t.Fatal("vulcan dropped from the catalog")
	}
	if vulcan.HasElements() {
		t.Fatal("vulcan must not have elements")
	}
	if vulcan.RefDistance != 0.24*AU {
		t.Fatalf("unexpected reference distance %f", vulcan.RefDistance)
	}
}

func TestLoadCatalogMissing(t *testing.T) {
	if _, err := LoadCatalog("/nonexistent/catalog.toml", kitlog.NewNopLogger()); err == nil {
		t.Fatal("expected an error for a missing catalog file")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr == "" || cfg.FrameInterval <= 0 || cfg.TimeRate <= 0 || cfg.TracePoints <= 0 {
		t.Fatalf("incomplete defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeTestFile(t, "orreryd.toml", `
[server]
listen = ":9090"
frame_interval = "16ms"

[simulation]
time_rate = 3600.0

[scene]
scale = 2.0e6
trace_points = 240
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("listen address not applied: %s", cfg.ListenAddr)
	}
	if cfg.FrameInterval != 16*time.Millisecond {
		t.Fatalf("frame interval not applied: %s", cfg.FrameInterval)
	}
	if cfg.TimeRate != 3600 || cfg.SceneScale != 2e6 || cfg.TracePoints != 240 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

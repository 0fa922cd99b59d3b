package targets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "targets.yaml", `
targets:
  - id: sf-downtown
    name: SF Downtown
    kind: time
    start_latitude: "37.7752315"
    start_longitude: -122.418075
    customer_uuid: ""
    product_id: a1111c8c-c720-46c3-8534-2fcdd730040d
  - id: sfo-trip
    kind: price
    start_latitude: 37.7752315
    start_longitude: -122.418075
    end_latitude: 37.6213129
    end_longitude: "-122.3789554"
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(all))
	}

	sf, ok := reg.ByID("sf-downtown")
	if !ok {
		t.Fatalf("sf-downtown not loaded")
	}
	if sf.StartLatitude.Float64() != 37.7752315 {
		t.Fatalf("StartLatitude = %v", sf.StartLatitude)
	}
	if sf.CustomerUUID == nil || *sf.CustomerUUID != "" {
		t.Fatalf("empty customer_uuid should be kept as present, got %v", sf.CustomerUUID)
	}
	if sf.ProductID == nil || *sf.ProductID != "a1111c8c-c720-46c3-8534-2fcdd730040d" {
		t.Fatalf("ProductID = %v", sf.ProductID)
	}

	trip, _ := reg.ByID("sfo-trip")
	if trip.Name != "sfo-trip" {
		t.Fatalf("Name should default to id, got %q", trip.Name)
	}
	if trip.EndLongitude == nil || trip.EndLongitude.Float64() != -122.3789554 {
		t.Fatalf("EndLongitude = %v", trip.EndLongitude)
	}
	if trip.CustomerUUID != nil {
		t.Fatalf("absent customer_uuid should stay nil")
	}
}

func TestLoadRegistryJSONDefaultsKind(t *testing.T) {
	path := writeFile(t, "targets.json", `{"targets":[{"id":"x","start_latitude":"1.5","start_longitude":2}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	x, _ := reg.ByID("x")
	if x.Kind != KindTime {
		t.Fatalf("Kind = %q", x.Kind)
	}
	if x.StartLatitude != 1.5 || x.StartLongitude != 2 {
		t.Fatalf("coordinates = %v,%v", x.StartLatitude, x.StartLongitude)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
targets:
  - {id: a, start_latitude: 1, start_longitude: 1}
  - {id: a, start_latitude: 2, start_longitude: 2}
`,
		"price without end": `
targets:
  - {id: a, kind: price, start_latitude: 1, start_longitude: 1}
`,
		"unknown kind": `
targets:
  - {id: a, kind: surge, start_latitude: 1, start_longitude: 1}
`,
		"bad coordinate": `
targets:
  - {id: a, start_latitude: north, start_longitude: 1}
`,
		"latitude out of range": `
targets:
  - {id: a, start_latitude: 91, start_longitude: 1}
`,
		"empty": `targets: []`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "targets.yaml", content)
			if _, err := LoadRegistry(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "open targets file") {
		t.Fatalf("expected open error, got %v", err)
	}
	if _, err := LoadRegistry("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestValidationErrorsUseFileKeys(t *testing.T) {
	path := writeFile(t, "targets.yaml", `
targets:
  - id: trip
    kind: price
    start_latitude: 91
    start_longitude: 1
    end_latitude: 1
    end_longitude: "-181"
`)
	_, err := LoadRegistry(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{`target "trip"`, "start_latitude 91 is above 90", "end_longitude -181 is below -180"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

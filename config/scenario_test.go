package config

import "testing"

func TestParseManifest_ValidYAML(t *testing.T) {
	raw := []byte(`
scenarios:
  - name: corpus-text
    path: testdata/**/*.txt
    framing: gzip
    max_block_size: 65536
    min_ratio: 0.1
  - name: corpus-binary
    path: testdata/bin
    framing: zlib
`)
	m, err := ParseManifest(raw)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(m.Scenarios) != 2 {
		t.Fatalf("got %d scenarios, want 2", len(m.Scenarios))
	}
	if m.Scenarios[0].Framing != "gzip" || m.Scenarios[0].MaxBlockSize != 65536 {
		t.Fatalf("unexpected scenario 0: %+v", m.Scenarios[0])
	}
	if m.Scenarios[1].MinRatio != 0 {
		t.Fatalf("expected default min_ratio 0, got %f", m.Scenarios[1].MinRatio)
	}
}

func TestParseManifest_MissingNameIsError(t *testing.T) {
	raw := []byte(`
scenarios:
  - path: testdata/a.txt
`)
	if _, err := ParseManifest(raw); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestParseManifest_MissingPathIsError(t *testing.T) {
	raw := []byte(`
scenarios:
  - name: only-a-name
`)
	if _, err := ParseManifest(raw); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestParseManifest_MalformedYAMLIsError(t *testing.T) {
	raw := []byte("scenarios: [this is not a list of mappings")
	if _, err := ParseManifest(raw); err == nil {
		t.Fatal("expected yaml parse error")
	}
}

func TestQuickManifest_HasAllThreeFramings(t *testing.T) {
	m := QuickManifest()
	if len(m.Scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(m.Scenarios))
	}
	want := map[string]bool{"deflate": false, "zlib": false, "gzip": false}
	for _, s := range m.Scenarios {
		want[s.Framing] = true
	}
	for framing, seen := range want {
		if !seen {
			t.Fatalf("missing %s scenario", framing)
		}
	}
}

package httpx

import (
	"os"
	"strings"
	"testing"
)

func TestOpenAPIExists(t *testing.T) {
	data, err := os.ReadFile("../../docs/openapi.yaml")
	if err != nil {
		t.Fatalf("openapi missing: %v", err)
	}
	doc := string(data)
	if !strings.Contains(doc, "openapi:") {
		t.Fatalf("openapi document invalid")
	}
	for _, path := range []string{"/health:", "/sources:", "/search:", "/entry:", "/entry.html:", "/analyze:", "/debug/vars:"} {
		if !strings.Contains(doc, "\n  "+path) {
			t.Fatalf("openapi does not document %s", strings.TrimSuffix(path, ":"))
		}
	}
}

package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Swagger string                     `json:"swagger"`
		Host    string                     `json:"host"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}
	if doc.Swagger != "2.0" || doc.Host != "localhost:8080" {
		t.Fatalf("unexpected doc header: %+v", doc)
	}
	for _, p := range []string{"/api/v1/sessions/roll", "/api/v1/sessions/chunks", "/api/v1/calendars", "/healthz", "/readyz"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("path %s missing from swagger doc", p)
		}
	}
}

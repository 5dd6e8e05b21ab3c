package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/firnco-tech/holacupid/backend/spec"
)

// TestOpenAPI_documentsEveryRoute guards against the embedded document
// drifting from the router in handler.Server.Routes.
func TestOpenAPI_documentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	want := map[string][]string{
		"/healthz":                  {"get"},
		"/openapi.yaml":             {"get"},
		"/profiles":                 {"get", "post"},
		"/profiles/{id}":            {"get"},
		"/profiles/{id}/alternates": {"get"},
		"/{lang}/profiles/{slug}":   {"get"},
		"/slugs/parse":              {"get"},
	}
	assert.Len(t, doc.Paths, len(want))
	for path, methods := range want {
		item, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, item, m, "missing %s %s", m, path)
		}
	}
}

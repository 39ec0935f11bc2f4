package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"stockcount/docs"
)

func TestSwaggerDocCoversRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	routes := []struct {
		path    string
		methods []string
	}{
		{"/auth/register", []string{"post"}},
		{"/auth/register-admin", []string{"post"}},
		{"/auth/login", []string{"post"}},
		{"/inventory-counts", []string{"get", "post"}},
		{"/inventory-counts/{id}", []string{"get"}},
		{"/inventory-counts/{id}/close", []string{"put"}},
		{"/inventory-counts/{id}/items", []string{"get", "post"}},
		{"/inventory", []string{"get", "post"}},
		{"/inventory/{id}", []string{"put", "delete"}},
		{"/inventory/warehouse/{warehouseID}", []string{"get"}},
		{"/inventory/warehouse/{warehouseID}/product/{productID}", []string{"get"}},
		{"/warehouses", []string{"get", "post"}},
		{"/warehouses/{id}", []string{"get", "put", "delete"}},
		{"/products", []string{"get", "post"}},
		{"/products/{id}", []string{"get", "put", "delete"}},
		{"/users", []string{"get", "post"}},
		{"/users/me", []string{"get"}},
		{"/users/me/warehouses", []string{"get"}},
		{"/users/{id}", []string{"get", "put", "delete"}},
		{"/users/{id}/assign-warehouses", []string{"post"}},
		{"/users/{id}/warehouses", []string{"get"}},
	}
	for _, r := range routes {
		ops, ok := doc.Paths[r.path]
		if !assert.True(t, ok, "rota ausente: %s", r.path) {
			continue
		}
		for _, m := range r.methods {
			assert.Contains(t, ops, m, "%s %s", m, r.path)
		}
	}
	assert.Len(t, doc.Paths, len(routes))
}

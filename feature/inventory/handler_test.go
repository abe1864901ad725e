package inventory

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"variant-manager/feature/catalog/catalogtest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	db := catalogtest.Open(t)
	seedStock(t, db, "v1", 100, 80)

	app := fiber.New()
	feature := NewFeature(db, nil, Config{})
	require.NoError(t, feature.Load(app))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (int, map[string]any) {
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleReconcileInventory(t *testing.T) {
	app := setupTestApp(t)

	status, body := doRequest(t, app, "POST", "/inventory/reconcile")
	assert.Equal(t, 200, status)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, "inventory_stock", summary["adapter"])
	assert.EqualValues(t, 1, summary["applied"])
	assert.Nil(t, body["report"])
}

func TestHandleReconcileInventory_ExportWithoutStorage(t *testing.T) {
	app := setupTestApp(t)

	status, body := doRequest(t, app, "POST", "/inventory/reconcile?export=true")
	assert.Equal(t, 503, status)
	assert.Contains(t, body["error"], "not configured")
	assert.NotNil(t, body["summary"])
}

func TestHandleReconcileConfigHash_DryRun(t *testing.T) {
	app := setupTestApp(t)

	status, body := doRequest(t, app, "POST", "/inventory/reconcile/config-hash?dry_run=true")
	assert.Equal(t, 200, status)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, true, summary["dry_run"])
	assert.Equal(t, "repair", summary["policy"])
}

func TestHandleListDrifts(t *testing.T) {
	app := setupTestApp(t)
	doRequest(t, app, "POST", "/inventory/reconcile")

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/drifts", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var drifts []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&drifts))
	require.Len(t, drifts, 1)
	assert.Equal(t, "MEDIUM", drifts[0]["severity"])
}

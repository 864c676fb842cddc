package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxpisal/flower-shop/internal/models"
)

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signup("Alice", "alice@example.com", "password")
	flower := env.seedFlower("Rose", 9.99)

	rec := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": flower.ID,
		"quantity":  3,
	}, ck)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, flower.ID, order.FlowerID)
	require.EqualValues(t, 3, order.Quantity)
	require.InDelta(t, 3*9.99, order.TotalPrice, 1e-9)
	require.NotZero(t, order.ID)
}

// The captured price must not change when the flower's price does.
func TestOrderPriceCapturedAtCreation(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signup("Alice", "alice@example.com", "password")
	flower := env.seedFlower("Rose", 10.00)

	rec := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": flower.ID,
		"quantity":  2,
	}, ck)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, env.DB.Model(&models.Flower{}).Where("id = ?", flower.ID).Update("price", 99.0).Error)

	recList := env.doJSONRequest(http.MethodGet, "/api/orders", nil, ck)
	require.Equal(t, http.StatusOK, recList.Code)

	var orders []models.OrderWithFlower
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.InDelta(t, 20.00, orders[0].TotalPrice, 1e-9)
}

func TestCreateOrderUnknownFlower(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signup("Alice", "alice@example.com", "password")

	rec := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": 9999,
		"quantity":  1,
	}, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "flower not found", decodeJSON(t, rec)["error"])

	// no order row was created
	recList := env.doJSONRequest(http.MethodGet, "/api/orders", nil, ck)
	require.Equal(t, http.StatusOK, recList.Code)

	var orders []models.OrderWithFlower
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &orders))
	require.Empty(t, orders)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signup("Alice", "alice@example.com", "password")
	flower := env.seedFlower("Rose", 9.99)

	recNoFlower := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"quantity": 1,
	}, ck)
	require.Equal(t, http.StatusBadRequest, recNoFlower.Code)

	recNoQuantity := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": flower.ID,
	}, ck)
	require.Equal(t, http.StatusBadRequest, recNoQuantity.Code)
}

func TestOrdersRequireSession(t *testing.T) {
	env := newTestEnv(t)
	flower := env.seedFlower("Rose", 9.99)

	recCreate := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": flower.ID,
		"quantity":  1,
	})
	require.Equal(t, http.StatusUnauthorized, recCreate.Code)
	require.Equal(t, "Please log in", decodeJSON(t, recCreate)["error"])

	recList := env.doJSONRequest(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusUnauthorized, recList.Code)
}

func TestListOrdersOwnershipAndOrdering(t *testing.T) {
	env := newTestEnv(t)
	rose := env.seedFlower("Rose", 9.99)
	tulip := env.seedFlower("Tulip", 4.50)

	ckAlice := env.signup("Alice", "alice@example.com", "password")
	ckBob := env.signup("Bob", "bob@example.com", "password")

	recFirst := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": rose.ID,
		"quantity":  1,
	}, ckAlice)
	require.Equal(t, http.StatusCreated, recFirst.Code)

	var first models.Order
	require.NoError(t, json.Unmarshal(recFirst.Body.Bytes(), &first))

	// backdate the first order so the ordering assertion is deterministic
	require.NoError(t, env.DB.Model(&models.Order{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	recSecond := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": tulip.ID,
		"quantity":  2,
	}, ckAlice)
	require.Equal(t, http.StatusCreated, recSecond.Code)

	recBob := env.doJSONRequest(http.MethodPost, "/api/orders", map[string]interface{}{
		"flower_id": rose.ID,
		"quantity":  5,
	}, ckBob)
	require.Equal(t, http.StatusCreated, recBob.Code)

	recList := env.doJSONRequest(http.MethodGet, "/api/orders", nil, ckAlice)
	require.Equal(t, http.StatusOK, recList.Code)

	var orders []models.OrderWithFlower
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &orders))
	require.Len(t, orders, 2)

	// most recent first, joined with the flower's display fields
	require.Equal(t, "Tulip", orders[0].FlowerName)
	require.Equal(t, "Rose", orders[1].FlowerName)
	require.NotEmpty(t, orders[0].ImageURL)
	require.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))

	// Bob's order never shows up in Alice's list
	for _, o := range orders {
		require.NotEqual(t, 5, int(o.Quantity))
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON(t, rec)
	require.Equal(t, "healthy", resp["status"])
	require.Equal(t, "connected", resp["database"])
}

func TestHealthDatabaseDown(t *testing.T) {
	env := newTestEnv(t)

	sqlDB, err := env.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := env.doJSONRequest(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := decodeJSON(t, rec)
	require.Equal(t, "unhealthy", resp["status"])
	require.Equal(t, "disconnected", resp["database"])
}

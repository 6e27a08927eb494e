package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/pzf-studio/MAshop-sub000/internal/application/cart"
	catalogapp "github.com/pzf-studio/MAshop-sub000/internal/application/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/application/checkout"
	"github.com/pzf-studio/MAshop-sub000/internal/application/storefront"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/notify"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/persistence"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// harness runs the admin and storefront engines over one shared store,
// with the notification endpoint stubbed by an httptest server.
type harness struct {
	admin      *gin.Engine
	storefront *gin.Engine
}

func newHarness(t *testing.T, telegramOK bool) *harness {
	t.Helper()
	st := store.NewMemStore(0)
	bus := signal.NewBus(zap.NewNop())
	log := zap.NewNop()

	catalogRepo := persistence.NewCatalogRepository(st, bus, log)
	cartRepo := persistence.NewCartRepository(st, bus, log)

	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": telegramOK, "description": "stub"})
	}))
	t.Cleanup(endpoint.Close)

	projector := storefront.NewProjector(catalogRepo, bus, log)
	require.NoError(t, projector.Refresh(context.Background()))

	cartSvc := cartapp.NewService(cartRepo, catalogRepo, log)
	notifier := notify.NewTelegramNotifier(notify.Config{
		BotName:    "test_bot",
		APIBaseURL: endpoint.URL,
	}, log)
	pipeline := checkout.NewPipeline(cartSvc, notifier, log)

	admin := NewEngine(log, nil)
	SetupAdmin(admin, AdminHandlers{
		System:   handler.NewSystemHandler("admin"),
		Items:    handler.NewItemHandler(catalogapp.NewItemService(catalogRepo, log)),
		Sections: handler.NewSectionHandler(catalogapp.NewSectionService(catalogRepo, log)),
	})

	shop := NewEngine(log, nil)
	SetupStorefront(shop, StorefrontHandlers{
		System:     handler.NewSystemHandler("storefront"),
		Storefront: handler.NewStorefrontHandler(projector),
		Cart:       handler.NewCartHandler(cartSvc),
		Checkout:   handler.NewCheckoutHandler(pipeline),
	})

	return &harness{admin: admin, storefront: shop}
}

func (h *harness) do(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func createItemBody(name, section string) map[string]any {
	return map[string]any{
		"name":        name,
		"price":       125000,
		"sectionCode": section,
		"stockCount":  10,
	}
}

func TestAdmin_ItemCRUD(t *testing.T) {
	h := newHarness(t, true)

	rec, env := h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env["success"].(bool))
	created := env["data"].(map[string]any)
	id := int(created["id"].(float64))
	assert.Equal(t, 1, id)
	assert.Equal(t, "MF-1", created["sku"])

	rec, env = h.do(t, h.admin, http.MethodGet, "/api/v1/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Пантограф", env["data"].(map[string]any)["name"])

	rec, env = h.do(t, h.admin, http.MethodPut, "/api/v1/items/1", createItemBody("Пантограф 600", "pantograph"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Пантограф 600", env["data"].(map[string]any)["name"])

	rec, _ = h.do(t, h.admin, http.MethodDelete, "/api/v1/items/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = h.do(t, h.admin, http.MethodGet, "/api/v1/items/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env["error"].(map[string]any)["code"])
}

func TestAdmin_RejectsInvalidItemPayload(t *testing.T) {
	h := newHarness(t, true)

	rec, env := h.do(t, h.admin, http.MethodPost, "/api/v1/items", map[string]any{"price": 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env["success"].(bool))
}

func TestAdmin_SectionDeleteGuard(t *testing.T) {
	h := newHarness(t, true)

	rec, _ := h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := h.do(t, h.admin, http.MethodDelete, "/api/v1/sections/pantograph", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "REFERENCE_IN_USE", env["error"].(map[string]any)["code"])
}

func TestStorefront_SeesAdminWrites(t *testing.T) {
	h := newHarness(t, true)

	rec, env := h.do(t, h.storefront, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := env["data"].(map[string]any)
	assert.Len(t, view["sections"].([]any), 6)
	assert.Empty(t, view["items"])

	rec, _ = h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = h.do(t, h.storefront, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = env["data"].(map[string]any)
	items := view["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Пантограф", items[0].(map[string]any)["name"])
}

func TestStorefront_CartFlow(t *testing.T) {
	h := newHarness(t, true)

	rec, _ := h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := h.do(t, h.storefront, http.MethodPost, "/api/v1/cart/items", map[string]any{"itemId": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	data := env["data"].(map[string]any)
	assert.Equal(t, float64(250000), data["total"])
	assert.Equal(t, float64(2), data["count"])

	rec, env = h.do(t, h.storefront, http.MethodPut, "/api/v1/cart/items/1", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), env["data"].(map[string]any)["count"])

	rec, env = h.do(t, h.storefront, http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), env["data"].(map[string]any)["count"])
}

func TestStorefront_AddUnknownItemToCart(t *testing.T) {
	h := newHarness(t, true)

	rec, env := h.do(t, h.storefront, http.MethodPost, "/api/v1/cart/items", map[string]any{"itemId": 404})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env["error"].(map[string]any)["code"])
}

func TestStorefront_CheckoutDelivered(t *testing.T) {
	h := newHarness(t, true)

	rec, _ := h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = h.do(t, h.storefront, http.MethodPost, "/api/v1/cart/items", map[string]any{"itemId": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := h.do(t, h.storefront, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customerName":  "Иван",
		"customerPhone": "+79000000000",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := env["data"].(map[string]any)
	assert.Equal(t, "delivered", data["state"])

	rec, env = h.do(t, h.storefront, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), env["data"].(map[string]any)["count"])
}

func TestStorefront_CheckoutFallbackFlow(t *testing.T) {
	h := newHarness(t, false)

	rec, _ := h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = h.do(t, h.storefront, http.MethodPost, "/api/v1/cart/items", map[string]any{"itemId": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := h.do(t, h.storefront, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customerName":  "Иван",
		"customerPhone": "+79000000000",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := env["data"].(map[string]any)
	require.Equal(t, "fallback_offered", data["state"])
	assert.Contains(t, data["fallbackUrl"], "https://t.me/test_bot?text=")

	// The cart survives until the user confirms the hand-off.
	rec, env = h.do(t, h.storefront, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), env["data"].(map[string]any)["count"])

	rec, _ = h.do(t, h.storefront, http.MethodPost, "/api/v1/checkout/fallback", data["payload"])
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = h.do(t, h.storefront, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), env["data"].(map[string]any)["count"])
}

func TestStorefront_CheckoutValidationRejected(t *testing.T) {
	h := newHarness(t, true)

	rec, _ := h.do(t, h.admin, http.MethodPost, "/api/v1/items", createItemBody("Пантограф", "pantograph"))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = h.do(t, h.storefront, http.MethodPost, "/api/v1/cart/items", map[string]any{"itemId": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := h.do(t, h.storefront, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customerName": "Иван",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env["error"].(map[string]any)["code"])
}

func TestHealthEndpoints(t *testing.T) {
	h := newHarness(t, true)

	rec, env := h.do(t, h.admin, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", env["data"].(map[string]any)["app"])

	rec, env = h.do(t, h.storefront, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "storefront", env["data"].(map[string]any)["app"])
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	h := newHarness(t, true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.admin.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

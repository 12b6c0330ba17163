package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
)

func newOrderFixture(t *testing.T) (*gin.Engine, *store.Feed[*models.Order]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feed := store.NewFeed[*models.Order]("orders", zap.NewNop())
	h := NewOrderHandler(feed, zap.NewNop())

	router := gin.New()
	router.GET("/orders", h.List)
	router.GET("/orders/detail/:id", h.Detail)
	return router, feed
}

func TestOrderListShowsPayerNameWhenCustomerAbsent(t *testing.T) {
	router, feed := newOrderFixture(t)
	feed.Push([]*models.Order{
		{
			ID:        primitive.NewObjectID(),
			Payer:     &models.Person{Name: "Jane"},
			Status:    "approved",
			Amount:    150000,
			CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "Jane", row["name"])
	assert.Equal(t, "APPROVED", row["status_label"])
}

func TestOrderDetailFallsBackPerField(t *testing.T) {
	router, feed := newOrderFixture(t)
	id := primitive.NewObjectID()
	feed.Push([]*models.Order{
		{
			ID:       id,
			Customer: &models.Person{Name: "Carlos"},
			Payer:    &models.Person{Phone: "300123"},
			Items:    []models.OrderItem{{Title: "Whey Gold", Quantity: 2, UnitPrice: 120000}},
			MPID:     float64(987654),
			Status:   "in_process",
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/detail/"+id.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	detail := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Carlos", detail["name"])
	assert.Equal(t, "300123", detail["phone"])
	assert.Equal(t, "987654", detail["payment_ref"])
	assert.Equal(t, "IN PROCESS", detail["status_label"])
	assert.Len(t, detail["items"].([]any), 1)
}

func TestOrderDetailUnknownIDIs404(t *testing.T) {
	router, feed := newOrderFixture(t)
	feed.Push([]*models.Order{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/detail/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderListAfterStreamFailureAnswers503(t *testing.T) {
	router, feed := newOrderFixture(t)
	feed.Fail(assert.AnError)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOrderDetailAfterStreamFailureAnswers503(t *testing.T) {
	router, feed := newOrderFixture(t)
	feed.Fail(assert.AnError)

	// A broken stream is an error state, not a missing record.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/detail/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

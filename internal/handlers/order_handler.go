package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/models"
	"catalog-admin/internal/orders"
	"catalog-admin/internal/store"
)

// OrderHandler is a pure read path: orders are synced in by the
// payment provider's webhook and never written from here.
type OrderHandler struct {
	feed   *store.Feed[*models.Order]
	logger *zap.Logger
}

func NewOrderHandler(feed *store.Feed[*models.Order], logger *zap.Logger) *OrderHandler {
	return &OrderHandler{feed: feed, logger: logger}
}

func summarize(list []*models.Order) []orders.SummaryRow {
	rows := make([]orders.SummaryRow, 0, len(list))
	for _, o := range list {
		rows = append(rows, orders.Summarize(*o))
	}
	return rows
}

// List serves the order table rows in the collection's createdAt
// order.
func (h *OrderHandler) List(c *gin.Context) {
	if err := h.feed.Err(); err != nil {
		streamDown(c, err)
		return
	}

	list, ready := h.feed.Latest()
	c.JSON(http.StatusOK, gin.H{
		"data":    summarize(list),
		"loading": !ready,
	})
}

// Detail serves the full projection for one order.
func (h *OrderHandler) Detail(c *gin.Context) {
	if err := h.feed.Err(); err != nil {
		streamDown(c, err)
		return
	}

	orderID := c.Param("id")

	list, _ := h.feed.Latest()
	for _, o := range list {
		if o.ID.Hex() == orderID {
			c.JSON(http.StatusOK, orders.Project(*o))
			return
		}
	}
	h.logger.Warn("unknown order requested", zap.String("id", orderID))
	notFound(c, "order")
}

// Stream pushes the summarized order table on every change.
func (h *OrderHandler) Stream(c *gin.Context) {
	if err := h.feed.Err(); err != nil {
		streamDown(c, err)
		return
	}

	ch, cancel := h.feed.Watch()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", summarize(snap))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

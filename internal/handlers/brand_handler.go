package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/editor"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
	"catalog-admin/internal/view"
)

// BrandStore is the slice of the sync adapter the brand screen writes
// through.
type BrandStore interface {
	editor.Writer[*models.Brand]
	editor.Deleter
}

type BrandHandler struct {
	feed    *store.Feed[*models.Brand]
	store   BrandStore
	editors *editor.Registry[*models.Brand]
	deletes *editor.DeleteConfirm
	logger  *zap.Logger
}

func NewBrandHandler(feed *store.Feed[*models.Brand], st BrandStore, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		feed:    feed,
		store:   st,
		editors: editor.NewRegistry[*models.Brand](),
		deletes: editor.NewDeleteConfirm(st),
		logger:  logger,
	}
}

func brandFields(b *models.Brand) []string {
	return []string{b.Name}
}

// List serves the latest snapshot, filtered by the optional q query.
func (h *BrandHandler) List(c *gin.Context) {
	if err := h.feed.Err(); err != nil {
		streamDown(c, err)
		return
	}

	list, ready := h.feed.Latest()
	filtered := view.Filter(list, c.Query("q"), brandFields)

	c.JSON(http.StatusOK, gin.H{
		"data":    filtered,
		"loading": !ready,
	})
}

// Stream pushes the whole brand list as a server-sent event on every
// change. The client replaces its table wholesale per event.
func (h *BrandHandler) Stream(c *gin.Context) {
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
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

type openForm struct {
	ID string `json:"id"`
}

// Open starts an editing session. Without an id the buffer is the
// empty template; with one it is a deep copy of that record from the
// synchronized list.
func (h *BrandHandler) Open(c *gin.Context) {
	var form openForm
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var ed *editor.Editor[*models.Brand]
	if form.ID == "" {
		ed = editor.NewCreate(&models.Brand{}, h.store)
	} else {
		list, _ := h.feed.Latest()
		var seed *models.Brand
		for _, b := range list {
			if b.ID.Hex() == form.ID {
				seed = b
				break
			}
		}
		if seed == nil {
			notFound(c, "brand")
			return
		}
		ed = editor.NewEdit(seed, form.ID, h.store)
	}

	id := h.editors.Open(ed)
	c.JSON(http.StatusOK, gin.H{"editor_id": id, "buffer": ed.Buffer()})
}

type brandForm struct {
	Name   *string `json:"name"`
	Market *string `json:"market"`
	Image  *string `json:"image"`
}

// UpdateBuffer applies form fields to the edit buffer. No validation
// here; that runs on submit only.
func (h *BrandHandler) UpdateBuffer(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}

	var form brandForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var out *models.Brand
	ed.Mutate(func(buf *models.Brand) {
		if form.Name != nil {
			buf.Name = *form.Name
		}
		if form.Market != nil {
			buf.Market = *form.Market
		}
		if form.Image != nil {
			buf.Image = *form.Image
		}
		out = buf.Clone()
	})

	c.JSON(http.StatusOK, gin.H{"buffer": out})
}

// Submit validates, normalizes and writes the buffer, then closes the
// editor. Failures keep the session open for retry.
func (h *BrandHandler) Submit(c *gin.Context) {
	eid := c.Param("eid")
	ed, ok := h.editors.Get(eid)
	if !ok {
		notFound(c, "editor session")
		return
	}

	if err := ed.Submit(c.Request.Context()); err != nil {
		h.logger.Warn("brand submit rejected", zap.String("session", eid), zap.Error(err))
		submitError(c, err)
		return
	}

	h.editors.Release(eid)
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

// Cancel discards the buffer without writing.
func (h *BrandHandler) Cancel(c *gin.Context) {
	eid := c.Param("eid")
	if ed, ok := h.editors.Get(eid); ok {
		ed.Cancel()
		h.editors.Release(eid)
	}
	c.JSON(http.StatusOK, gin.H{"message": "cancelled"})
}

type deleteForm struct {
	ID string `json:"id" binding:"required"`
}

// RequestDelete parks a delete behind a confirmation token. Nothing
// reaches the store until ConfirmDelete.
func (h *BrandHandler) RequestDelete(c *gin.Context) {
	var form deleteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token := h.deletes.Request(form.ID)
	c.JSON(http.StatusOK, gin.H{"confirm_token": token})
}

func (h *BrandHandler) ConfirmDelete(c *gin.Context) {
	if err := h.deletes.Confirm(c.Request.Context(), c.Param("token")); err != nil {
		h.logger.Warn("brand delete failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "brand deleted"})
}

func (h *BrandHandler) CancelDelete(c *gin.Context) {
	h.deletes.Cancel(c.Param("token"))
	c.JSON(http.StatusOK, gin.H{"message": "delete cancelled"})
}

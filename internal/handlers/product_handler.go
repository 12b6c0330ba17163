package handlers

import (
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/editor"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
	"catalog-admin/internal/view"
)

type ProductStore interface {
	editor.Writer[*models.Product]
	editor.Deleter
}

type ProductHandler struct {
	feed    *store.Feed[*models.Product]
	brands  *store.Feed[*models.Brand]
	store   ProductStore
	editors *editor.Registry[*models.Product]
	deletes *editor.DeleteConfirm
	logger  *zap.Logger
}

func NewProductHandler(feed *store.Feed[*models.Product], brands *store.Feed[*models.Brand], st ProductStore, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		feed:    feed,
		brands:  brands,
		store:   st,
		editors: editor.NewRegistry[*models.Product](),
		deletes: editor.NewDeleteConfirm(st),
		logger:  logger,
	}
}

func productFields(p *models.Product) []string {
	return []string{p.Name, p.Market, p.Category}
}

// List serves the latest snapshot filtered by q over name, market and
// category.
func (h *ProductHandler) List(c *gin.Context) {
	if err := h.feed.Err(); err != nil {
		streamDown(c, err)
		return
	}

	list, ready := h.feed.Latest()
	filtered := view.Filter(list, c.Query("q"), productFields)

	c.JSON(http.StatusOK, gin.H{
		"data":    filtered,
		"loading": !ready,
	})
}

// Markets lists the brand market labels for the product form's
// selector. Products keep referencing the label by value; picking
// from this list is a convenience, not a constraint.
func (h *ProductHandler) Markets(c *gin.Context) {
	if err := h.brands.Err(); err != nil {
		streamDown(c, err)
		return
	}

	list, _ := h.brands.Latest()
	seen := make(map[string]struct{}, len(list))
	markets := make([]string, 0, len(list))
	for _, b := range list {
		if b.Market == "" {
			continue
		}
		if _, dup := seen[b.Market]; dup {
			continue
		}
		seen[b.Market] = struct{}{}
		markets = append(markets, b.Market)
	}
	sort.Strings(markets)

	c.JSON(http.StatusOK, gin.H{"data": markets})
}

// Stream pushes the whole product list on every change.
func (h *ProductHandler) Stream(c *gin.Context) {
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

// Open starts an editing session, either on the empty template or on
// a deep copy of the record named in the body.
func (h *ProductHandler) Open(c *gin.Context) {
	var form openForm
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var ed *editor.Editor[*models.Product]
	if form.ID == "" {
		template := &models.Product{Variants: []models.Variant{}, Extra: map[string]string{}}
		ed = editor.NewCreate(template, h.store)
	} else {
		list, _ := h.feed.Latest()
		var seed *models.Product
		for _, p := range list {
			if p.ID.Hex() == form.ID {
				seed = p
				break
			}
		}
		if seed == nil {
			notFound(c, "product")
			return
		}
		ed = editor.NewEdit(seed, form.ID, h.store)
	}

	id := h.editors.Open(ed)
	c.JSON(http.StatusOK, gin.H{"editor_id": id, "buffer": ed.Buffer()})
}

type productForm struct {
	Name        *string `json:"name"`
	Image       *string `json:"image"`
	Table       *string `json:"table"`
	Description *string `json:"description"`
	Market      *string `json:"market"`
	Category    *string `json:"category"`
}

func (h *ProductHandler) UpdateBuffer(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}

	var form productForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var out *models.Product
	ed.Mutate(func(buf *models.Product) {
		if form.Name != nil {
			buf.Name = *form.Name
		}
		if form.Image != nil {
			buf.Image = *form.Image
		}
		if form.Table != nil {
			buf.Table = *form.Table
		}
		if form.Description != nil {
			buf.Description = *form.Description
		}
		if form.Market != nil {
			buf.Market = *form.Market
		}
		if form.Category != nil {
			buf.Category = *form.Category
		}
		out = buf.Clone()
	})

	c.JSON(http.StatusOK, gin.H{"buffer": out})
}

type kvForm struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AddExtra appends a row to the product's extra-attributes table. A
// blank key is silently ignored, like the form's add button.
func (h *ProductHandler) AddExtra(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}

	var form kvForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rows []editor.KVRow
	ed.Mutate(func(buf *models.Product) {
		kv := editor.NewKVEditor(buf.Extra, func(m map[string]string) { buf.Extra = m })
		kv.Add(form.Key, form.Value)
		rows = kv.Rows()
	})

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *ProductHandler) UpdateExtra(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	var form kvForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rows []editor.KVRow
	ed.Mutate(func(buf *models.Product) {
		kv := editor.NewKVEditor(buf.Extra, func(m map[string]string) { buf.Extra = m })
		kv.Update(idx, form.Key, form.Value)
		rows = kv.Rows()
	})

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *ProductHandler) RemoveExtra(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	var rows []editor.KVRow
	ed.Mutate(func(buf *models.Product) {
		kv := editor.NewKVEditor(buf.Extra, func(m map[string]string) { buf.Extra = m })
		kv.Remove(idx)
		rows = kv.Rows()
	})

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// AddVariant duplicates the last variant, or appends an empty
// template when the list is empty.
func (h *ProductHandler) AddVariant(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}

	var variants []models.Variant
	ed.Mutate(func(buf *models.Product) {
		editor.NewVariantsEditor(buf).Add()
		variants = buf.Clone().Variants
	})

	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant index"})
		return
	}

	var patch editor.VariantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var variants []models.Variant
	ed.Mutate(func(buf *models.Product) {
		editor.NewVariantsEditor(buf).Apply(idx, patch)
		variants = buf.Clone().Variants
	})

	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

func (h *ProductHandler) RemoveVariant(c *gin.Context) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant index"})
		return
	}

	var variants []models.Variant
	ed.Mutate(func(buf *models.Product) {
		editor.NewVariantsEditor(buf).Remove(idx)
		variants = buf.Clone().Variants
	})

	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

// mutateVariantExtra resolves one variant's key/value editor and runs
// fn against it under the session lock.
func (h *ProductHandler) mutateVariantExtra(c *gin.Context, fn func(kv *editor.KVEditor)) {
	ed, ok := h.editors.Get(c.Param("eid"))
	if !ok {
		notFound(c, "editor session")
		return
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant index"})
		return
	}

	var rows []editor.KVRow
	missing := false
	ed.Mutate(func(buf *models.Product) {
		kv := editor.NewVariantsEditor(buf).Extra(idx)
		if kv == nil {
			missing = true
			return
		}
		fn(kv)
		rows = kv.Rows()
	})
	if missing {
		notFound(c, "variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// AddVariantExtra edits the per-variant extra map, independent of the
// product-level one and of every other variant's.
func (h *ProductHandler) AddVariantExtra(c *gin.Context) {
	var form kvForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutateVariantExtra(c, func(kv *editor.KVEditor) {
		kv.Add(form.Key, form.Value)
	})
}

func (h *ProductHandler) UpdateVariantExtra(c *gin.Context) {
	ridx, err := strconv.Atoi(c.Param("ridx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}
	var form kvForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mutateVariantExtra(c, func(kv *editor.KVEditor) {
		kv.Update(ridx, form.Key, form.Value)
	})
}

func (h *ProductHandler) RemoveVariantExtra(c *gin.Context) {
	ridx, err := strconv.Atoi(c.Param("ridx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	h.mutateVariantExtra(c, func(kv *editor.KVEditor) {
		kv.Remove(ridx)
	})
}

func (h *ProductHandler) Submit(c *gin.Context) {
	eid := c.Param("eid")
	ed, ok := h.editors.Get(eid)
	if !ok {
		notFound(c, "editor session")
		return
	}

	if err := ed.Submit(c.Request.Context()); err != nil {
		h.logger.Warn("product submit rejected", zap.String("session", eid), zap.Error(err))
		submitError(c, err)
		return
	}

	h.editors.Release(eid)
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

func (h *ProductHandler) Cancel(c *gin.Context) {
	eid := c.Param("eid")
	if ed, ok := h.editors.Get(eid); ok {
		ed.Cancel()
		h.editors.Release(eid)
	}
	c.JSON(http.StatusOK, gin.H{"message": "cancelled"})
}

func (h *ProductHandler) RequestDelete(c *gin.Context) {
	var form deleteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token := h.deletes.Request(form.ID)
	c.JSON(http.StatusOK, gin.H{"confirm_token": token})
}

func (h *ProductHandler) ConfirmDelete(c *gin.Context) {
	if err := h.deletes.Confirm(c.Request.Context(), c.Param("token")); err != nil {
		h.logger.Warn("product delete failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) CancelDelete(c *gin.Context) {
	h.deletes.Cancel(c.Param("token"))
	c.JSON(http.StatusOK, gin.H{"message": "delete cancelled"})
}

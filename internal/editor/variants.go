package editor

import "catalog-admin/internal/models"

// VariantPatch carries the editable variant fields. Pointers separate
// "field not sent" from an explicit value; numeric fields accept
// whatever the form posted and get coerced.
type VariantPatch struct {
	SKU      *string `json:"sku"`
	Flavor   *string `json:"flavor"`
	Servings *any    `json:"servings"`
	Price    *any    `json:"price"`
	Stock    *any    `json:"stock"`
	Weight   *string `json:"weight"`
}

// VariantsEditor mutates a product buffer's variant list in place.
// There is no shadow copy: the buffer owns the list until submit.
type VariantsEditor struct {
	product *models.Product
}

func NewVariantsEditor(p *models.Product) *VariantsEditor {
	return &VariantsEditor{product: p}
}

// Add appends a new variant. When the list is non-empty the last
// variant is duplicated verbatim — new variants usually share most
// fields with the previous one. The copy is deep; editing it never
// touches the original.
func (e *VariantsEditor) Add() {
	vs := e.product.Variants
	if len(vs) > 0 {
		e.product.Variants = append(vs, vs[len(vs)-1].Clone())
		return
	}
	e.product.Variants = append(vs, models.Variant{Extra: map[string]string{}})
}

// Remove deletes the variant at idx. No undo.
func (e *VariantsEditor) Remove(idx int) {
	vs := e.product.Variants
	if idx < 0 || idx >= len(vs) {
		return
	}
	e.product.Variants = append(vs[:idx], vs[idx+1:]...)
}

// Apply patches the variant at idx, coercing numeric input.
func (e *VariantsEditor) Apply(idx int, patch VariantPatch) {
	if idx < 0 || idx >= len(e.product.Variants) {
		return
	}
	v := &e.product.Variants[idx]
	if patch.SKU != nil {
		v.SKU = *patch.SKU
	}
	if patch.Flavor != nil {
		v.Flavor = *patch.Flavor
	}
	if patch.Servings != nil {
		v.Servings = Num(*patch.Servings)
	}
	if patch.Price != nil {
		v.Price = Num(*patch.Price)
	}
	if patch.Stock != nil {
		v.Stock = Int(*patch.Stock)
	}
	if patch.Weight != nil {
		v.Weight = *patch.Weight
	}
}

// Extra returns a key/value editor bound to the variant's own
// extra-attributes map, independent of every other variant's.
func (e *VariantsEditor) Extra(idx int) *KVEditor {
	if idx < 0 || idx >= len(e.product.Variants) {
		return nil
	}
	v := &e.product.Variants[idx]
	return NewKVEditor(v.Extra, func(m map[string]string) {
		v.Extra = m
	})
}

// Len reports how many variants the buffer holds.
func (e *VariantsEditor) Len() int { return len(e.product.Variants) }

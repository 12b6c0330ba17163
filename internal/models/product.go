package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is a purchasable sub-configuration of a product. SKUs are
// not unique; duplicating the previous variant is a supported way to
// add a new one.
type Variant struct {
	SKU      string            `json:"sku" bson:"sku"`
	Flavor   string            `json:"flavor" bson:"flavor"`
	Servings float64           `json:"servings" bson:"servings"`
	Price    float64           `json:"price" bson:"price"`
	Stock    int64             `json:"stock" bson:"stock"`
	Weight   string            `json:"weight" bson:"weight"`
	Extra    map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
}

func (v Variant) Clone() Variant {
	dup := v
	if v.Extra != nil {
		dup.Extra = make(map[string]string, len(v.Extra))
		for k, val := range v.Extra {
			dup.Extra[k] = val
		}
	}
	return dup
}

type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Image       string             `json:"image" bson:"image"`
	Table       string             `json:"table" bson:"table"`
	Description string             `json:"description" bson:"description"`
	Market      string             `json:"market" bson:"market"`
	Category    string             `json:"category" bson:"category"`
	Variants    []Variant          `json:"variants" bson:"variants"`
	Extra       map[string]string  `json:"extra,omitempty" bson:"extra,omitempty"`
}

func (p *Product) EnsureID() primitive.ObjectID {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	return p.ID
}

func (p *Product) SetID(id primitive.ObjectID) { p.ID = id }

// Clone returns a deep, independent copy. The edit buffer must never
// alias the snapshot entry it was seeded from.
func (p *Product) Clone() *Product {
	if p == nil {
		return &Product{}
	}
	dup := *p
	if p.Variants != nil {
		dup.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			dup.Variants[i] = v.Clone()
		}
	}
	if p.Extra != nil {
		dup.Extra = make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			dup.Extra[k] = v
		}
	}
	return &dup
}

func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Image = strings.TrimSpace(p.Image)
	p.Table = strings.TrimSpace(p.Table)
	p.Description = strings.TrimSpace(p.Description)
	p.Market = strings.TrimSpace(p.Market)
	p.Category = strings.TrimSpace(p.Category)
	for i := range p.Variants {
		v := &p.Variants[i]
		v.SKU = strings.TrimSpace(v.SKU)
		v.Flavor = strings.TrimSpace(v.Flavor)
		v.Weight = strings.TrimSpace(v.Weight)
	}
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Msg: "name is required"}
	}
	if p.Image != "" && !IsURL(p.Image) {
		return &ValidationError{Field: "image", Msg: "image must be a valid http(s) URL"}
	}
	if p.Table != "" && !IsURL(p.Table) {
		return &ValidationError{Field: "table", Msg: "nutrition table must be a valid http(s) URL"}
	}
	return nil
}

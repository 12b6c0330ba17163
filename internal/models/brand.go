package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand groups products under a market label. Products reference the
// label by value only; nothing enforces that the label still exists.
type Brand struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name   string             `json:"name" bson:"name"`
	Market string             `json:"market" bson:"market"`
	Image  string             `json:"image" bson:"image"`
}

func (b *Brand) EnsureID() primitive.ObjectID {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	return b.ID
}

func (b *Brand) SetID(id primitive.ObjectID) { b.ID = id }

func (b *Brand) Clone() *Brand {
	if b == nil {
		return &Brand{}
	}
	dup := *b
	return &dup
}

func (b *Brand) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Market = strings.TrimSpace(b.Market)
	b.Image = strings.TrimSpace(b.Image)
}

func (b *Brand) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return &ValidationError{Field: "name", Msg: "name is required"}
	}
	if b.Image != "" && !IsURL(b.Image) {
		return &ValidationError{Field: "image", Msg: "image must be a valid http(s) URL"}
	}
	return nil
}

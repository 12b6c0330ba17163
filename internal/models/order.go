package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person holds customer or payer details on an order. Either role may
// be absent; display code falls back to the other.
type Person struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Document string `json:"document,omitempty" bson:"document,omitempty"`
	Type     string `json:"type,omitempty" bson:"type,omitempty"`
}

type OrderItem struct {
	Title     string  `json:"title" bson:"title"`
	Quantity  int64   `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

// Order is written by the payment webhook, never by this dashboard.
type Order struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Customer  *Person            `json:"customer,omitempty" bson:"customer,omitempty"`
	Payer     *Person            `json:"payer,omitempty" bson:"payer,omitempty"`
	Items     []OrderItem        `json:"items" bson:"items"`
	MPID      any                `json:"mp_id" bson:"mp_id"` // payment provider sends string or number
	Status    string             `json:"status" bson:"status"`
	Amount    float64            `json:"amount" bson:"amount"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

func (o *Order) EnsureID() primitive.ObjectID {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	return o.ID
}

func (o *Order) SetID(id primitive.ObjectID) { o.ID = id }

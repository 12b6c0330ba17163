// Package orders shapes payment-provider order documents for display.
// Orders are read-only from the dashboard's perspective.
package orders

import (
	"fmt"
	"strings"
	"time"

	"catalog-admin/internal/models"
)

// Placeholder renders wherever an order field is absent or its status
// is not one the payment provider documents.
const Placeholder = "—"

var statusLabels = map[string]string{
	"approved":     "APPROVED",
	"authorized":   "AUTHORIZED",
	"in_process":   "IN PROCESS",
	"pending":      "PENDING",
	"rejected":     "REJECTED",
	"cancelled":    "CANCELLED",
	"refunded":     "REFUNDED",
	"charged_back": "CHARGED BACK",
}

// StatusLabel maps a provider status to its fixed display label.
// Unrecognized or absent statuses render the placeholder, never an
// error.
func StatusLabel(status string) string {
	if label, ok := statusLabels[strings.ToLower(status)]; ok {
		return label
	}
	return Placeholder
}

// SummaryRow is one line of the orders table.
type SummaryRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	StatusLabel string    `json:"status_label"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summarize projects an order onto its table row. The summary picks
// one person wholesale: the customer when present, else the payer.
// This intentionally differs from the detail view's per-field
// fallback; both behaviors come from the system this replaces.
func Summarize(o models.Order) SummaryRow {
	person := o.Customer
	if person == nil {
		person = o.Payer
	}
	if person == nil {
		person = &models.Person{}
	}
	return SummaryRow{
		ID:          o.ID.Hex(),
		Name:        orPlaceholder(person.Name),
		Email:       orPlaceholder(person.Email),
		Phone:       orPlaceholder(person.Phone),
		StatusLabel: StatusLabel(o.Status),
		Amount:      o.Amount,
		CreatedAt:   o.CreatedAt,
	}
}

// Detail is the full order view behind "Ver detalle".
type Detail struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	Document    string       `json:"document"`
	Items       []DetailItem `json:"items"`
	PaymentRef  string       `json:"payment_ref"`
	StatusLabel string       `json:"status_label"`
	Amount      float64      `json:"amount"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type DetailItem struct {
	Title     string  `json:"title"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Project builds the detail view. Each person field falls back
// independently: customer's value, else payer's, else the
// placeholder. Name may come from the customer while the phone comes
// from the payer.
func Project(o models.Order) Detail {
	customer := o.Customer
	if customer == nil {
		customer = &models.Person{}
	}
	payer := o.Payer
	if payer == nil {
		payer = &models.Person{}
	}

	items := make([]DetailItem, 0, len(o.Items))
	for _, it := range o.Items {
		title := it.Title
		if title == "" {
			title = Placeholder
		}
		items = append(items, DetailItem{
			Title:     title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	docType := fallback(customer.Type, payer.Type)
	docNumber := firstNonEmpty(customer.Document, payer.Document)
	document := strings.TrimSpace(docType + " " + docNumber)

	return Detail{
		ID:          o.ID.Hex(),
		Name:        fallback(customer.Name, payer.Name),
		Email:       fallback(customer.Email, payer.Email),
		Phone:       fallback(customer.Phone, payer.Phone),
		Address:     fallback(customer.Address, payer.Address),
		Document:    document,
		Items:       items,
		PaymentRef:  paymentRef(o.MPID),
		StatusLabel: StatusLabel(o.Status),
		Amount:      o.Amount,
		CreatedAt:   o.CreatedAt,
	}
}

func fallback(customer, payer string) string {
	return orPlaceholder(firstNonEmpty(customer, payer))
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// paymentRef renders the provider reference id, which arrives as a
// string or a number depending on the webhook payload.
func paymentRef(v any) string {
	switch t := v.(type) {
	case nil:
		return Placeholder
	case string:
		if t == "" {
			return Placeholder
		}
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

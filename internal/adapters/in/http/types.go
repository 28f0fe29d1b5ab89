package http

import (
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/commands"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/queries"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
)

// Webhook event names sent by the payment collaborator.
const (
	WebhookEventCaptureConfirmed = "capture_confirmed"
	WebhookEventIntentExpired    = "intent_expired"
)

// ErrorResponse is the uniform error body. Reason carries the machine
// readable denial code for eligibility rejections.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// PlaceOrderRequest is the body of POST /orders.
type PlaceOrderRequest struct {
	CustomerID  string              `json:"customer_id"`
	Zip         string              `json:"zip"`
	PickupType  string              `json:"pickup_type"`
	ServiceType string              `json:"service_type"`
	IsExpress   bool                `json:"is_express"`
	BagCount    int                 `json:"bag_count"`
	PickupDate  string              `json:"pickup_date"` // YYYY-MM-DD
	Slot        string              `json:"slot"`
	Preferences []PreferenceRequest `json:"preferences,omitempty"`
	AddOns      AddOnsRequest       `json:"add_ons"`
	PromoCode   string              `json:"promo_code,omitempty"`
}

// PreferenceRequest is one priced customer preference.
type PreferenceRequest struct {
	Name  string `json:"name"`
	Cents int64  `json:"cents"`
}

// AddOnsRequest holds the flat-fee extras.
type AddOnsRequest struct {
	FragranceFree   bool `json:"fragrance_free"`
	ShirtsOnHangers bool `json:"shirts_on_hangers"`
	ExtraRinse      bool `json:"extra_rinse"`
}

// LineItemResponse is one row of the price breakdown.
type LineItemResponse struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

// PlaceOrderResponse is the body returned by a successful placement.
type PlaceOrderResponse struct {
	OrderID       string             `json:"order_id"`
	Status        string             `json:"status"`
	TotalCents    int64              `json:"total_cents"`
	LineItems     []LineItemResponse `json:"line_items"`
	PickupStart   time.Time          `json:"pickup_start"`
	PickupEnd     time.Time          `json:"pickup_end"`
	DeliveryStart time.Time          `json:"delivery_start"`
	DeliveryEnd   time.Time          `json:"delivery_end"`
	ClientSecret  string             `json:"client_secret"`
}

func placeOrderResponseFrom(result commands.PlaceOrderResult) PlaceOrderResponse {
	o := result.Order

	items := make([]LineItemResponse, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		items = append(items, LineItemResponse{
			Label:       item.Label,
			AmountCents: item.AmountCents,
		})
	}

	return PlaceOrderResponse{
		OrderID:       o.ID().String(),
		Status:        o.Status().String(),
		TotalCents:    o.TotalCents(),
		LineItems:     items,
		PickupStart:   o.PickupWindow().Start(),
		PickupEnd:     o.PickupWindow().End(),
		DeliveryStart: o.DeliveryWindow().Start(),
		DeliveryEnd:   o.DeliveryWindow().End(),
		ClientSecret:  result.ClientSecret,
	}
}

// ClaimOrderRequest is the body of POST /orders/:orderId/claim.
type ClaimOrderRequest struct {
	OperatorID string `json:"operator_id"`
}

// ClaimOrderResponse confirms a won claim.
type ClaimOrderResponse struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OperatorID string    `json:"operator_id"`
	ClaimedAt  time.Time `json:"claimed_at"`
}

func claimResponseFrom(o *order.Order) ClaimOrderResponse {
	resp := ClaimOrderResponse{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
	}
	if operatorID := o.Operator(); operatorID != nil {
		resp.OperatorID = operatorID.String()
	}
	if at := o.ClaimedAt(); at != nil {
		resp.ClaimedAt = *at
	}
	return resp
}

// AdvanceOrderRequest is the body of POST /orders/:orderId/advance.
type AdvanceOrderRequest struct {
	OperatorID  string `json:"operator_id"`
	Target      string `json:"target"`
	EvidenceURI string `json:"evidence_uri,omitempty"`
}

// PaymentWebhookRequest is the body of POST /webhooks/payment.
type PaymentWebhookRequest struct {
	OrderID string `json:"order_id"`
	Event   string `json:"event"`
}

// OrderView is the customer tracking view of one order.
type OrderView struct {
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	CurrentStep   *int       `json:"current_step,omitempty"`
	TotalCents    int64      `json:"total_cents"`
	IsExpress     bool       `json:"is_express"`
	Zip           string     `json:"zip"`
	PickupStart   time.Time  `json:"pickup_start"`
	PickupEnd     time.Time  `json:"pickup_end"`
	DeliveryStart time.Time  `json:"delivery_start"`
	DeliveryEnd   time.Time  `json:"delivery_end"`
	OperatorID    *string    `json:"operator_id,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func orderViewFrom(resp queries.GetOrderQueryResponse) OrderView {
	view := OrderView{
		OrderID:       resp.ID.String(),
		Status:        resp.Status,
		CurrentStep:   resp.CurrentStep,
		TotalCents:    resp.TotalCents,
		IsExpress:     resp.IsExpress,
		Zip:           resp.Zip,
		PickupStart:   resp.PickupStart,
		PickupEnd:     resp.PickupEnd,
		DeliveryStart: resp.DeliveryStart,
		DeliveryEnd:   resp.DeliveryEnd,
		CompletedAt:   resp.CompletedAt,
	}
	if resp.OperatorID != nil {
		id := resp.OperatorID.String()
		view.OperatorID = &id
	}
	return view
}

// UnclaimedOrder is one row of the unclaimed pool.
type UnclaimedOrder struct {
	OrderID     string    `json:"order_id"`
	Zip         string    `json:"zip"`
	PickupType  string    `json:"pickup_type"`
	ServiceType string    `json:"service_type"`
	IsExpress   bool      `json:"is_express"`
	BagCount    int       `json:"bag_count"`
	TotalCents  int64     `json:"total_cents"`
	PickupStart time.Time `json:"pickup_start"`
	PickupEnd   time.Time `json:"pickup_end"`
	CreatedAt   time.Time `json:"created_at"`
}

func unclaimedOrderFrom(resp queries.GetUnclaimedOrdersQueryResponse) UnclaimedOrder {
	return UnclaimedOrder{
		OrderID:     resp.ID.String(),
		Zip:         resp.Zip,
		PickupType:  resp.PickupType,
		ServiceType: resp.ServiceType,
		IsExpress:   resp.IsExpress,
		BagCount:    resp.BagCount,
		TotalCents:  resp.TotalCents,
		PickupStart: resp.PickupStart,
		PickupEnd:   resp.PickupEnd,
		CreatedAt:   resp.CreatedAt,
	}
}

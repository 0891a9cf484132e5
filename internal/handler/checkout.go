package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dillkhus/order-api/internal/order"
	"github.com/dillkhus/order-api/internal/session"
	"github.com/dillkhus/order-api/internal/sheets"
	"github.com/dillkhus/order-api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CheckoutHandler handles the place-order endpoint.
type CheckoutHandler struct {
	sessions   *session.Store
	submitter  order.Submitter
	hub        Broadcaster
	resetDelay time.Duration
}

// NewCheckoutHandler creates a new CheckoutHandler. resetDelay is how long
// the confirmation stays visible before the cart goes back to empty.
func NewCheckoutHandler(sessions *session.Store, submitter order.Submitter, hub Broadcaster, resetDelay time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:   sessions,
		submitter:  submitter,
		hub:        hub,
		resetDelay: resetDelay,
	}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
// Expected to be mounted at /carts
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{sid}/checkout", h.Checkout)
}

// --- Request / Response types ---

type checkoutRequest struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	PaymentType string `json:"payment_type"`
	BizumNumber string `json:"bizum_number"`
}

type confirmationResponse struct {
	OrderID       string             `json:"order_id"`
	PaymentID     string             `json:"payment_id"`
	Customer      order.CustomerInfo `json:"customer"`
	Total         string             `json:"total"`
	BonusEligible bool               `json:"bonus_eligible"`
	PlacedAt      time.Time          `json:"placed_at"`
}

// errorResponse carries the failure taxonomy kind so the front end can pick
// between a blocking warning and a dismissable one.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// --- Handlers ---

// Checkout stores the customer block, validates the full order, and submits
// it to the spreadsheet endpoint. On success the cart resets after the
// configured delay; on any failure the cart is left untouched so the
// customer retries without re-entering data.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, cart, ok := lookupCart(w, r, h.sessions)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cart.SetCustomerInfo(order.CustomerInfo{
		Name:        req.Name,
		Mobile:      req.Mobile,
		PaymentType: req.PaymentType,
		BizumHandle: req.BizumNumber,
	})

	if result := cart.Validate(); !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	confirmation, err := cart.Submit(r.Context(), h.submitter)
	if err != nil {
		h.writeSubmitError(w, cart, err)
		return
	}

	h.scheduleReset(sid, cart)
	writeJSON(w, http.StatusCreated, confirmationResponse{
		OrderID:       confirmation.OrderID,
		PaymentID:     confirmation.PaymentID,
		Customer:      confirmation.Customer,
		Total:         confirmation.Total.StringFixed(2),
		BonusEligible: confirmation.BonusEligible,
		PlacedAt:      confirmation.PlacedAt,
	})
}

func (h *CheckoutHandler) writeSubmitError(w http.ResponseWriter, cart *order.Cart, err error) {
	var rejection *sheets.ServerRejection
	var transport *sheets.TransportError

	switch {
	case errors.Is(err, order.ErrSubmitInFlight):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: "an order submission is already in progress",
			Kind:  "in_flight",
		})
	case errors.Is(err, order.ErrNotValid):
		writeJSON(w, http.StatusUnprocessableEntity, cart.Validate())
	case errors.Is(err, sheets.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "ordering is not available right now, please contact support",
			Kind:  "configuration",
		})
	case errors.As(err, &rejection):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: rejection.Message,
			Kind:  "server_rejection",
		})
	case errors.As(err, &transport):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: "there was an error processing your order, please try again",
			Kind:  "transport",
		})
	default:
		log.Printf("ERROR: checkout: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "internal server error",
			Kind:  "internal",
		})
	}
}

// scheduleReset empties the cart once the confirmation has had time to
// display, then pushes the empty summary to the session feed.
func (h *CheckoutHandler) scheduleReset(sid uuid.UUID, cart *order.Cart) {
	time.AfterFunc(h.resetDelay, func() {
		cart.Reset()
		if h.hub == nil {
			return
		}
		payload, err := json.Marshal(buildSummary(cart))
		if err != nil {
			return
		}
		h.hub.BroadcastToSession(sid, ws.Event{Type: "cart.reset", Payload: payload})
	})
}

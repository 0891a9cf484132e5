package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/dillkhus/order-api/internal/enum"
	"github.com/dillkhus/order-api/internal/menu"
	"github.com/dillkhus/order-api/internal/order"
	"github.com/dillkhus/order-api/internal/session"
	"github.com/dillkhus/order-api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Mutation kinds accepted by the cart mutation endpoint.
const (
	MutationSetItem          = "set_item"
	MutationSetCombo         = "set_combo"
	MutationSetPlatterOption = "set_platter_option"
	MutationSetBulkOption    = "set_bulk_platter_option"
)

// Broadcaster pushes summary updates to everyone watching a session feed.
// Satisfied by *ws.Hub; narrow interface for testability.
type Broadcaster interface {
	BroadcastToSession(sessionID uuid.UUID, event ws.Event)
}

// CartHandler handles session and cart-mutation endpoints.
type CartHandler struct {
	sessions *session.Store
	catalog  *menu.Catalog
	hub      Broadcaster
}

// NewCartHandler creates a new CartHandler. hub may be nil when no live
// feed is wired (tests, the sample CLI).
func NewCartHandler(sessions *session.Store, catalog *menu.Catalog, hub Broadcaster) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: catalog, hub: hub}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
// Expected to be mounted at /carts
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{sid}", h.Get)
	r.Post("/{sid}/mutations", h.Mutate)
	r.Get("/{sid}/summary", h.Summary)
	r.Get("/{sid}/validation", h.Validation)
	r.Post("/{sid}/reset", h.Reset)
}

// --- Request / Response types ---

// mutationRequest is the typed, discriminated form of a control change:
// the adapter validates it fully before anything reaches the engine.
type mutationRequest struct {
	Kind         string `json:"kind"`
	ItemKey      string `json:"item_key,omitempty"`
	Combo        string `json:"combo,omitempty"`
	Quantity     *int   `json:"quantity,omitempty"`
	PlatterIndex *int   `json:"platter_index,omitempty"`
	Slot         string `json:"slot,omitempty"`
	Value        string `json:"value,omitempty"`
}

type createCartResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type summaryLine struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type platterSummary struct {
	Number int      `json:"number"`
	Items  []string `json:"items"`
}

type comboSummary struct {
	Variant   string           `json:"variant"`
	Name      string           `json:"name"`
	Quantity  int              `json:"quantity"`
	LineTotal string           `json:"line_total"`
	Platters  []platterSummary `json:"platters"`
}

type summaryResponse struct {
	Items    []summaryLine  `json:"items"`
	Combos   []comboSummary `json:"combos"`
	Subtotal string         `json:"subtotal"`
	Discount string         `json:"discount"`
	Total    string         `json:"total"`
}

// --- Handlers ---

// Create starts a new session with an empty cart.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	sid, _ := h.sessions.Create()
	writeJSON(w, http.StatusCreated, createCartResponse{SessionID: sid})
}

// Get returns the raw cart aggregate.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, cart, ok := lookupCart(w, r, h.sessions)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cart.Snapshot())
}

// Mutate applies one typed mutation to the cart and returns the fresh
// summary, so the form re-renders straight from the response.
func (h *CartHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	sid, cart, ok := lookupCart(w, r, h.sessions)
	if !ok {
		return
	}

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg, ok := h.applyMutation(cart, req); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	summary := buildSummary(cart)
	h.broadcastSummary(sid, summary)
	writeJSON(w, http.StatusOK, summary)
}

// applyMutation validates one mutation request and applies it to the cart.
// Returns a client-facing message when the request is rejected.
func (h *CartHandler) applyMutation(cart *order.Cart, req mutationRequest) (string, bool) {
	switch req.Kind {
	case MutationSetItem:
		if req.Quantity == nil {
			return "quantity is required", false
		}
		price, ok := h.catalog.ItemPrice(req.ItemKey, true)
		if !ok {
			return "unknown item", false
		}
		if err := cart.SetItemQuantity(req.ItemKey, *req.Quantity, price); err != nil {
			return err.Error(), false
		}

	case MutationSetCombo:
		if req.Quantity == nil {
			return "quantity is required", false
		}
		if !enum.IsComboVariant(req.Combo) {
			return "unknown combo variant", false
		}
		if err := cart.SetComboQuantity(req.Combo, *req.Quantity, h.catalog.ComboPrice(true)); err != nil {
			return err.Error(), false
		}

	case MutationSetPlatterOption:
		if !enum.IsComboVariant(req.Combo) {
			return "unknown combo variant", false
		}
		if req.PlatterIndex == nil {
			return "platter_index is required", false
		}
		if !order.ValidOption(req.Combo, req.Slot, req.Value) {
			return "value is not selectable for this slot", false
		}
		// Stale indexes are tolerated: the engine no-ops on them.
		cart.SetPlatterOption(req.Combo, *req.PlatterIndex, req.Slot, req.Value)

	case MutationSetBulkOption:
		if !enum.IsComboVariant(req.Combo) {
			return "unknown combo variant", false
		}
		if !order.ValidOption(req.Combo, req.Slot, req.Value) {
			return "value is not selectable for this slot", false
		}
		cart.SetBulkPlatterOption(req.Combo, req.Slot, req.Value)

	default:
		return "unknown mutation kind", false
	}
	return "", true
}

// Summary returns the rendered order summary for the current cart state.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	_, cart, ok := lookupCart(w, r, h.sessions)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildSummary(cart))
}

// Validation returns the current form validation state.
func (h *CartHandler) Validation(w http.ResponseWriter, r *http.Request) {
	_, cart, ok := lookupCart(w, r, h.sessions)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cart.Validate())
}

// Reset restores the cart to its empty initial state.
func (h *CartHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sid, cart, ok := lookupCart(w, r, h.sessions)
	if !ok {
		return
	}
	cart.Reset()
	summary := buildSummary(cart)
	h.broadcastSummary(sid, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (h *CartHandler) broadcastSummary(sid uuid.UUID, summary summaryResponse) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	h.hub.BroadcastToSession(sid, ws.Event{Type: "cart.summary", Payload: payload})
}

// buildSummary projects the cart into its display form: stable ordering,
// display names, per-platter choice lines, veg platters always showing the
// fixed cauliflower row.
func buildSummary(cart *order.Cart) summaryResponse {
	snapshot := cart.Snapshot()

	itemKeys := make([]string, 0, len(snapshot.Items))
	for k := range snapshot.Items {
		itemKeys = append(itemKeys, k)
	}
	sort.Strings(itemKeys)

	items := make([]summaryLine, 0, len(itemKeys))
	for _, k := range itemKeys {
		line := snapshot.Items[k]
		items = append(items, summaryLine{
			Key:       k,
			Name:      menu.DisplayName(k),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal.StringFixed(2),
		})
	}

	comboKeys := make([]string, 0, len(snapshot.Combos))
	for k := range snapshot.Combos {
		comboKeys = append(comboKeys, k)
	}
	sort.Strings(comboKeys)

	combos := make([]comboSummary, 0, len(comboKeys))
	for _, variant := range comboKeys {
		combo := snapshot.Combos[variant]
		platters := make([]platterSummary, 0, len(combo.Customizations))
		for i, pc := range combo.Customizations {
			platters = append(platters, platterSummary{
				Number: i + 1,
				Items: []string{
					menu.DisplayName(pc.Option1),
					menu.DisplayName(pc.Option2),
					menu.DisplayName(pc.Option3),
				},
			})
		}
		combos = append(combos, comboSummary{
			Variant:   variant,
			Name:      menu.DisplayName(variant),
			Quantity:  combo.Quantity,
			LineTotal: combo.LineTotal.StringFixed(2),
			Platters:  platters,
		})
	}

	return summaryResponse{
		Items:    items,
		Combos:   combos,
		Subtotal: snapshot.Subtotal.StringFixed(2),
		Discount: snapshot.Discount.StringFixed(2),
		Total:    snapshot.Total.StringFixed(2),
	}
}

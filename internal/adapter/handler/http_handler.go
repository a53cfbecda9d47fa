package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rl1809/cart-store/internal/adapter/notifier"
	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/core/service"
)

// HTTPHandler exposes the cart API to the UI. Mutation endpoints always
// report success at the transport level; validation and upstream failures
// surface through the notifications endpoint instead.
type HTTPHandler struct {
	carts         *service.CartService
	notifications *notifier.Buffer
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type updateItemRequest struct {
	Amount int `json:"amount"`
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewHTTPHandler(carts *service.CartService, notifications *notifier.Buffer) *HTTPHandler {
	return &HTTPHandler{carts: carts, notifications: notifications}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("GET /api/notifications", h.Notifications)
	mux.HandleFunc("GET /health", h.HealthCheck)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	items := h.carts.Cart()
	if items == nil {
		items = []domain.CartItem{}
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: items})
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	h.carts.AddProduct(r.Context(), req.ProductID)
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (h *HTTPHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Success: false,
			Message: "invalid product id",
		})
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	h.carts.UpdateProductAmount(r.Context(), productID, req.Amount)
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{
			Success: false,
			Message: "invalid product id",
		})
		return
	}

	h.carts.RemoveProduct(r.Context(), productID)
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

func (h *HTTPHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	pending := h.notifications.Drain()
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

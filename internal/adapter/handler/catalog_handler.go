package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rl1809/cart-store/internal/adapter/storage"
	"github.com/rl1809/cart-store/internal/port"
)

// CatalogHandler serves the product and stock lookup endpoints consumed by
// the cart server. It is the HTTP surface of catalogd.
type CatalogHandler struct {
	catalog port.CatalogRepository
}

func NewCatalogHandler(catalog port.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	mux.HandleFunc("GET /stock/{id}", h.GetStock)
	mux.HandleFunc("GET /health", h.HealthCheck)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	stock, err := h.catalog.GetStock(r.Context(), productID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "stock not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stock)
}

func (h *CatalogHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

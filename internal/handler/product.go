package handler

import (
	"net/http"
	"strconv"

	"github.com/priyankjain/shopform/internal/product"
	"github.com/priyankjain/shopform/internal/store"
)

// ProductHandler implements HTTP handlers for the catalog, cart, and
// wishlist.
type ProductHandler struct {
	svc *product.Service
}

func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type createProductRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       int     `json:"rating"`
	Image        *string `json:"image,omitempty"`
	AvailableQty int     `json:"available_qty"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	id, err := h.svc.Add(r.Context(), store.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Rating:       req.Rating,
		Image:        req.Image,
		AvailableQty: req.AvailableQty,
	})
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// List supports search, price range, and rating filters alongside
// pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	pg := parsePagination(r)
	q := r.URL.Query()

	filter := store.ProductFilter{Search: q.Get("search")}
	if v := q.Get("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = f
		}
	}
	if v := q.Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = f
		}
	}
	if v := q.Get("min_rating"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinRating = n
		}
	}

	page, err := h.svc.List(r.Context(), filter, pg.Page, pg.Limit)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		faultToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cartToggleRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Enabled   bool  `json:"enabled"`
}

func (h *ProductHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	var req cartToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := h.svc.ToggleCart(r.Context(), req.UserID, req.ProductID, req.Enabled); err != nil {
		faultToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req cartToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := h.svc.ToggleWishlist(r.Context(), req.UserID, req.ProductID, req.Enabled); err != nil {
		faultToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) CartItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID")
	if !ok {
		return
	}
	items, err := h.svc.CartItems(r.Context(), userID)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProductHandler) WishlistItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID")
	if !ok {
		return
	}
	items, err := h.svc.WishlistItems(r.Context(), userID)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type quantityRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
}

func (h *ProductHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := h.svc.AdjustQuantity(r.Context(), req.UserID, req.ProductID, req.Delta); err != nil {
		faultToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userID")
	if !ok {
		return
	}
	if err := h.svc.Checkout(r.Context(), userID); err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "checked_out"})
}

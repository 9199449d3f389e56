package http

import (
	"net/http"
	"time"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/usecase/catalog"
)

type CreateProductRequest struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

type UpdateProductRequest struct {
	Name   *string `json:"name"`
	Price  *int64  `json:"price"`
	Active *bool   `json:"active"`
}

type RestockRequest struct {
	Quantity int64 `json:"quantity"`
}

type ProductResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int64     `json:"stock"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func productResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID().String(),
		SKU:       p.SKU(),
		Name:      p.Name(),
		Price:     p.Price(),
		Stock:     p.Stock(),
		Active:    p.Active(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.catalogUC.Create(r.Context(), catalog.CreateRequest{
		SKU:   req.SKU,
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, productResponse(p))
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.catalogUC.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productResponse(p))
}

func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req UpdateProductRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.catalogUC.Update(r.Context(), id, catalog.UpdateRequest{
		Name:   req.Name,
		Price:  req.Price,
		Active: req.Active,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productResponse(p))
}

func (h *Handler) HandleRestock(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req RestockRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.catalogUC.Restock(r.Context(), id, req.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productResponse(p))
}

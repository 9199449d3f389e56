package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/usecase/checkout"
)

type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type DiscountRequest struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

type CheckoutRequest struct {
	SaleID   string            `json:"sale_id,omitempty"`
	DrawerID string            `json:"drawer_id"`
	Lines    []SaleLineRequest `json:"lines"`
	Discount *DiscountRequest  `json:"discount,omitempty"`
	Method   string            `json:"payment_method"`
	Tendered int64             `json:"tendered"`
}

type SaleLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	DrawerID      string             `json:"drawer_id"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      int64              `json:"subtotal"`
	Discount      int64              `json:"discount"`
	Total         int64              `json:"total"`
	Tendered      int64              `json:"tendered"`
	Change        int64              `json:"change"`
	Lines         []SaleLineResponse `json:"lines"`
	CreatedAt     time.Time          `json:"created_at"`
	VoidedAt      *time.Time         `json:"voided_at,omitempty"`
}

func saleResponse(res *checkout.Result) SaleResponse {
	s := res.Sale
	lines := make([]SaleLineResponse, 0, len(res.Lines))
	for _, l := range res.Lines {
		lines = append(lines, SaleLineResponse{
			ProductID: l.ProductID().String(),
			Name:      l.Name(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Total:     l.Total(),
		})
	}
	return SaleResponse{
		ID:            s.ID().String(),
		DrawerID:      s.DrawerID().String(),
		Status:        string(s.Status()),
		PaymentMethod: string(s.Method()),
		Subtotal:      s.Subtotal(),
		Discount:      s.Discount(),
		Total:         s.Total(),
		Tendered:      s.Tendered(),
		Change:        s.Change(),
		Lines:         lines,
		CreatedAt:     s.CreatedAt(),
		VoidedAt:      s.VoidedAt(),
	}
}

func (req CheckoutRequest) toUseCase() (checkout.Request, error) {
	var out checkout.Request
	var err error

	if req.SaleID != "" {
		if out.SaleID, err = uuid.Parse(req.SaleID); err != nil {
			return out, fmt.Errorf("%w: invalid sale_id", errBadRequest)
		}
	}
	if out.DrawerID, err = uuid.Parse(req.DrawerID); err != nil {
		return out, fmt.Errorf("%w: invalid drawer_id", errBadRequest)
	}
	for _, l := range req.Lines {
		id, err := uuid.Parse(l.ProductID)
		if err != nil {
			return out, fmt.Errorf("%w: invalid product_id", errBadRequest)
		}
		out.Lines = append(out.Lines, checkout.Line{ProductID: id, Quantity: l.Quantity})
	}
	if req.Discount != nil {
		out.Discount = entity.Discount{Type: entity.DiscountType(req.Discount.Type), Value: req.Discount.Value}
	}
	out.Method = entity.PaymentMethod(req.Method)
	out.Tendered = req.Tendered
	return out, nil
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	in, err := req.toUseCase()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.checkoutUC.Execute(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, saleResponse(res))
}

func (h *Handler) HandleGetSale(w http.ResponseWriter, r *http.Request) {
	h.handleSale(w, r, h.checkoutUC.Get)
}

func (h *Handler) HandleVoid(w http.ResponseWriter, r *http.Request) {
	h.handleSale(w, r, h.checkoutUC.Void)
}

func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	png, err := h.receiptUC.Execute(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(png)
}

func (h *Handler) handleSale(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, uuid.UUID) (*checkout.Result, error),
) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := fn(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saleResponse(res))
}

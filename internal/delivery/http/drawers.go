package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
)

type OpenDrawerRequest struct {
	Cashier        string `json:"cashier"`
	OpeningBalance int64  `json:"opening_balance"`
}

type CashRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

type CloseDrawerRequest struct {
	Counted int64 `json:"counted"`
}

type DrawerResponse struct {
	ID             string     `json:"id"`
	Cashier        string     `json:"cashier"`
	OpeningBalance int64      `json:"opening_balance"`
	Balance        int64      `json:"balance"`
	Status         string     `json:"status"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

type MovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CloseReportResponse struct {
	DrawerID   string `json:"drawer_id"`
	Expected   int64  `json:"expected"`
	Counted    int64  `json:"counted"`
	Difference int64  `json:"difference"`
}

func drawerResponse(d *entity.Drawer) DrawerResponse {
	return DrawerResponse{
		ID:             d.ID().String(),
		Cashier:        d.Cashier(),
		OpeningBalance: d.OpeningBalance(),
		Balance:        d.Balance(),
		Status:         string(d.Status()),
		OpenedAt:       d.OpenedAt(),
		ClosedAt:       d.ClosedAt(),
	}
}

func (h *Handler) HandleOpenDrawer(w http.ResponseWriter, r *http.Request) {
	var req OpenDrawerRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.drawerUC.Open(r.Context(), req.Cashier, req.OpeningBalance)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, drawerResponse(d))
}

func (h *Handler) HandleGetDrawer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.drawerUC.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drawerResponse(d))
}

func (h *Handler) HandleMovements(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.drawerUC.Movements(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, MovementResponse{
			ID:        m.ID().String(),
			Type:      string(m.Type()),
			Amount:    m.Amount(),
			Note:      m.Note(),
			CreatedAt: m.CreatedAt(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleCashIn(w http.ResponseWriter, r *http.Request) {
	h.handleCash(w, r, h.drawerUC.CashIn)
}

func (h *Handler) HandleCashOut(w http.ResponseWriter, r *http.Request) {
	h.handleCash(w, r, h.drawerUC.CashOut)
}

func (h *Handler) HandleCloseDrawer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req CloseDrawerRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	report, err := h.drawerUC.Close(r.Context(), id, req.Counted)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CloseReportResponse{
		DrawerID:   report.DrawerID.String(),
		Expected:   report.Expected,
		Counted:    report.Counted,
		Difference: report.Difference,
	})
}

func (h *Handler) handleCash(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, uuid.UUID, int64, string) (*entity.Drawer, error),
) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req CashRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := fn(r.Context(), id, req.Amount, req.Note)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drawerResponse(d))
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
	"github.com/Xausdorf/offline-pos/internal/usecase/catalog"
	"github.com/Xausdorf/offline-pos/internal/usecase/checkout"
	"github.com/Xausdorf/offline-pos/internal/usecase/drawer"
	"github.com/Xausdorf/offline-pos/internal/usecase/receipt"
)

var errBadRequest = errors.New("bad request")

type Handler struct {
	catalogUC  *catalog.UseCase
	drawerUC   *drawer.UseCase
	checkoutUC *checkout.UseCase
	receiptUC  *receipt.UseCase
	logger     *slog.Logger
}

func NewHandler(
	catalogUC *catalog.UseCase,
	drawerUC *drawer.UseCase,
	checkoutUC *checkout.UseCase,
	receiptUC *receipt.UseCase,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalogUC:  catalogUC,
		drawerUC:   drawerUC,
		checkoutUC: checkoutUC,
		receiptUC:  receiptUC,
		logger:     logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidPrice),
		errors.Is(err, entity.ErrSKURequired),
		errors.Is(err, entity.ErrNameRequired),
		errors.Is(err, entity.ErrNegativeQuantity),
		errors.Is(err, entity.ErrNegativeAmount),
		errors.Is(err, entity.ErrCashierRequired),
		errors.Is(err, entity.ErrEmptySale),
		errors.Is(err, entity.ErrInvalidDiscount),
		errors.Is(err, entity.ErrUnknownPayment),
		errors.Is(err, entity.ErrInsufficientTender),
		errors.Is(err, entity.ErrAmountTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrDuplicateSKU),
		errors.Is(err, drawer.ErrAlreadyOpen),
		errors.Is(err, entity.ErrOutOfStock),
		errors.Is(err, entity.ErrInactiveProduct),
		errors.Is(err, entity.ErrInsufficientCash),
		errors.Is(err, entity.ErrDrawerClosed),
		errors.Is(err, entity.ErrSaleVoided),
		errors.Is(err, entity.ErrSaleNotCompleted),
		errors.Is(err, entity.ErrSaleNotPending),
		errors.Is(err, repository.ErrStale),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	return nil
}

func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", errBadRequest)
	}
	return id, nil
}

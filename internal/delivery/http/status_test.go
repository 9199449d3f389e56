package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xausdorf/offline-pos/internal/domain/entity"
	"github.com/Xausdorf/offline-pos/internal/domain/repository"
	"github.com/Xausdorf/offline-pos/internal/usecase/drawer"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrapped not found", fmt.Errorf("drawer x: %w", repository.ErrNotFound), http.StatusNotFound},
		{"invalid id", fmt.Errorf("%w: invalid id", errBadRequest), http.StatusBadRequest},
		{"wrapped out of stock", fmt.Errorf("product COF: %w", entity.ErrOutOfStock), http.StatusConflict},
		{"second open drawer", drawer.ErrAlreadyOpen, http.StatusConflict},
		{"stale write", repository.ErrStale, http.StatusConflict},
		{"unique violation", fmt.Errorf("save changes: %w", repository.ErrConflict), http.StatusConflict},
		{"amount overflow", entity.ErrAmountTooLarge, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

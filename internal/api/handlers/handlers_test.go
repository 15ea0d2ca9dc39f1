package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

func TestRespondDomainError(t *testing.T) {
	cell := domain.Cell{Date: types.MustDate(2025, 6, 10), Time: "10:00", Box: "Box 1"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"validation", domain.NewValidationError("box", "unknown box"), http.StatusBadRequest, "field"},
		{"not found", &domain.NotFoundError{Entity: "appointment", ID: 7}, http.StatusNotFound, "entity"},
		{"conflict", &domain.ConflictError{Cell: cell, ExistingID: 3}, http.StatusConflict, "existingId"},
		{"not available", &domain.NotAvailableError{Cell: cell, OfferingID: 2}, http.StatusUnprocessableEntity, "offeringId"},
		{"unbalanced", &domain.UnbalancedSettlementError{CartTotal: 5000, PaymentsTotal: 4999}, http.StatusUnprocessableEntity, "paymentsTotal"},
		{"wrapped", fmt.Errorf("usecase: %w", &domain.NotFoundError{Entity: "sale", ID: 1}), http.StatusNotFound, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, RespondDomainError(rec, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			details, ok := body["details"].(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, details, tt.wantDetail)
		})
	}
}

func TestRespondDomainError_NonDomain(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.False(t, RespondDomainError(rec, errors.New("connection refused")))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestParseIDVar(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = mux.SetURLVars(r, map[string]string{"appointmentId": tt.raw})
			got, err := ParseIDVar(r, "appointmentId")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

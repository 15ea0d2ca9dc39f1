package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	createAppointment "github.com/m04kA/SMC-BoxScheduler/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BoxScheduler/pkg/logger"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

type stubUseCase struct {
	got *createAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Appointment{
		ID:        11,
		Date:      req.Date,
		Time:      req.Time,
		Box:       req.Box,
		Status:    domain.StatusReserved,
		Deposit:   req.Deposit,
		CreatedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}, nil
}

func serve(t *testing.T, uc *stubUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(t, uc, `{"date":"2025-06-10","time":"10:00","box":"Box 1","deposit":1500}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, types.MustDate(2025, 6, 10), uc.got.Date)
	assert.Equal(t, types.TimeString("10:00"), uc.got.Time)
	assert.Equal(t, domain.Money(1500), uc.got.Deposit)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 11, resp["id"])
	assert.Equal(t, "reserved", resp["status"])
}

func TestHandle_Conflict(t *testing.T) {
	cell := domain.Cell{Date: types.MustDate(2025, 6, 10), Time: "10:00", Box: "Box 1"}
	uc := &stubUseCase{err: &domain.ConflictError{Cell: cell, ExistingID: 5}}

	rec := serve(t, uc, `{"date":"2025-06-10","time":"10:00","box":"Box 1","deposit":0}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"date":`},
		{"unknown field", `{"date":"2025-06-10","time":"10:00","box":"Box 1","color":"red"}`},
		{"bad date", `{"date":"10.06.2025","time":"10:00","box":"Box 1"}`},
		{"bad time", `{"date":"2025-06-10","time":"25:00","box":"Box 1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := serve(t, uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	uc := &stubUseCase{err: errors.New("db is down")}
	rec := serve(t, uc, `{"date":"2025-06-10","time":"10:00","box":"Box 1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

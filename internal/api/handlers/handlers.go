// Package handlers содержит общие помощники HTTP-обработчиков
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgValidation    = "некорректные данные"
	msgConflict      = "ячейка уже занята"
	msgNotAvailable  = "услуга недоступна в выбранной ячейке"
	msgUnbalanced    = "сумма оплат не совпадает с суммой корзины"
	msgNotFound      = "объект не найден"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusNotFound, msg)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondNoContent 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondDomainError отвечает на ошибку из доменной таксономии
// Возвращает false, если ошибка не доменная и ее нужно обработать самостоятельно
//
//	ValidationError -> 400, NotFoundError -> 404, ConflictError -> 409,
//	NotAvailableError и UnbalancedSettlementError -> 422
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		notAvailErr   *domain.NotAvailableError
		unbalancedErr *domain.UnbalancedSettlementError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgValidation, Details: map[string]string{
			"field":  validationErr.Field,
			"reason": validationErr.Reason,
		}})
	case errors.As(err, &notFoundErr):
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound, Details: map[string]interface{}{
			"entity": notFoundErr.Entity,
			"id":     notFoundErr.ID,
		}})
	case errors.As(err, &conflictErr):
		details := cellDetails(conflictErr.Cell)
		if conflictErr.ExistingID != 0 {
			details["existingId"] = conflictErr.ExistingID
		}
		RespondJSON(w, http.StatusConflict, ErrorResponse{Error: msgConflict, Details: details})
	case errors.As(err, &notAvailErr):
		details := cellDetails(notAvailErr.Cell)
		details["offeringId"] = notAvailErr.OfferingID
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: msgNotAvailable, Details: details})
	case errors.As(err, &unbalancedErr):
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: msgUnbalanced, Details: map[string]interface{}{
			"cartTotal":     int64(unbalancedErr.CartTotal),
			"paymentsTotal": int64(unbalancedErr.PaymentsTotal),
		}})
	default:
		return false
	}
	return true
}

func cellDetails(c domain.Cell) map[string]interface{} {
	return map[string]interface{}{
		"date": c.Date.String(),
		"time": c.Time.String(),
		"box":  c.Box,
	}
}

// ParseIDVar читает положительный int64 из переменной пути mux
func ParseIDVar(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rings-s/booking/internal/availability"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorWithCode отправляет ответ с ошибкой и машинно-читаемым кодом
func RespondErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message, code string) {
	RespondErrorWithCode(w, http.StatusConflict, message, code)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// RespondRejection отвечает на отказ проверки брони; false, если err не отказ
func RespondRejection(w http.ResponseWriter, err error) bool {
	var rejection *availability.Rejection
	if !errors.As(err, &rejection) {
		return false
	}
	RespondErrorWithCode(w, RejectionStatus(rejection.Reason), rejection.Message(), rejection.Reason)
	return true
}

// RejectionStatus HTTP-статус для кода отказа
func RejectionStatus(reason string) int {
	switch reason {
	case "invalid_reference":
		return http.StatusNotFound
	case "time_conflict", "slot_fully_booked", "slot_taken":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

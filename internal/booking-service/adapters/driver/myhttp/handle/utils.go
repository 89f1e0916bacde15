package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"rickshaw-booking/internal/booking-service/core/myerrors"
)

const WaitTime = 10 * time.Second

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// jsonResponse writes a success envelope with the given status code
func jsonResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// JsonError writes a failure envelope with an explicit status code
func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(response{
		Success: false,
		Message: err.Error(),
	})
}

// domainError maps a domain error to its status class and writes it
func domainError(w http.ResponseWriter, err error) {
	JsonError(w, myerrors.StatusCode(err), err)
}

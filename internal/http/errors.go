package httpx

import (
	"errors"
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/data"
	"github.com/apodaca-kapital/investor-portal/internal/ports"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// writeDomainError maps service and repository errors onto HTTP responses.
// Unrecognized errors become a 500 with a generic body; internals never leak
// to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, data.ErrInvalidInput),
		errors.Is(err, data.ErrSlotOutOfRange), errors.Is(err, service.ErrEmptyCSV):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
	case errors.Is(err, data.ErrNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case errors.Is(err, data.ErrDuplicate), errors.Is(err, ports.ErrUserExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	case errors.Is(err, service.ErrClientHasNoEmail):
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "client_has_no_email", Err: err})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     errors.New("internal error"),
		})
	}
}

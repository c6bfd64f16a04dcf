package httpx

import (
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// RequestHandlers provides the backoffice endpoints for funds requests.
type RequestHandlers struct {
	Svc *service.RequestService
}

// List handles GET /api/admin/solicitudes across all clients.
func (h *RequestHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := h.Svc.List(r.Context(), queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}

// Get handles GET /api/admin/solicitudes/{id}.
func (h *RequestHandlers) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, request)
}

// Update handles PATCH /api/admin/solicitudes/{id} for status transitions,
// admin notes and receipt attachment.
func (h *RequestHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateRequestRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	request, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, request)
}

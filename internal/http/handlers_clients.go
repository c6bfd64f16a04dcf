package httpx

import (
	"net/http"
	"strconv"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// ClientHandlers provides the backoffice endpoints for client records.
type ClientHandlers struct {
	Svc *service.ClientService
}

// Create handles POST /api/admin/clientes.
func (h *ClientHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateClientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	client, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, client)
}

// List handles GET /api/admin/clientes with q/status/limit/offset filters.
func (h *ClientHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.ClientsListOptions{
		Limit:  queryInt(q.Get("limit")),
		Offset: queryInt(q.Get("offset")),
	}
	if s := q.Get("q"); s != "" {
		opts.Q = &s
	}
	if s := q.Get("status"); s != "" {
		status, ok := model.ParseOnboardingStatus(s)
		if !ok {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: service.ErrInvalidRequest})
			return
		}
		opts.Status = &status
	}

	clients, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, clients)
}

// Get handles GET /api/admin/clientes/{id}.
func (h *ClientHandlers) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, client)
}

// Update handles PATCH /api/admin/clientes/{id}.
func (h *ClientHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateClientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	client, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, client)
}

// SetOnboarding handles PUT /api/admin/clientes/{id}/onboarding.
func (h *ClientHandlers) SetOnboarding(w http.ResponseWriter, r *http.Request) {
	var req model.SetOnboardingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	client, err := h.Svc.SetOnboarding(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, client)
}

// ProvisionAccess handles POST /api/admin/clientes/{id}/acceso. The response
// carries the generated temporary password exactly once.
func (h *ClientHandlers) ProvisionAccess(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.ProvisionAccess(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

// queryInt parses a query integer, tolerating absence and garbage as zero.
func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

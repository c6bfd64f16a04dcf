package httpx

import (
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// AccountHandlers provides the backoffice endpoints for investment accounts.
type AccountHandlers struct {
	Svc *service.AccountService
}

// Upsert handles PUT /api/admin/clientes/{id}/cuenta. Balances and the
// investment plan are replaced wholesale; sending a zero-month plan clears
// the projection.
func (h *AccountHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	var req *model.UpsertAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.ClientID = r.PathValue("id")

	account, err := h.Svc.Upsert(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

// Get handles GET /api/admin/clientes/{id}/cuenta.
func (h *AccountHandlers) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.Svc.GetByClientID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

package httpx

import (
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// BeneficiaryHandlers provides the backoffice endpoints for beneficiary slots.
type BeneficiaryHandlers struct {
	Svc *service.BeneficiaryService
}

// Save handles PUT /api/admin/clientes/{id}/beneficiarios. Each submitted
// slot is upserted or cleared; omitted slots are left untouched.
func (h *BeneficiaryHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var req *model.SaveBeneficiariesRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.ClientID = r.PathValue("id")

	if err := h.Svc.Save(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := h.Svc.ListByClient(r.Context(), req.ClientID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

// List handles GET /api/admin/clientes/{id}/beneficiarios.
func (h *BeneficiaryHandlers) List(w http.ResponseWriter, r *http.Request) {
	beneficiaries, err := h.Svc.ListByClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, beneficiaries)
}

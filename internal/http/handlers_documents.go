package httpx

import (
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// DocumentHandlers provides the backoffice endpoints for client documents.
type DocumentHandlers struct {
	Svc *service.DocumentService
}

// Create handles POST /api/admin/clientes/{id}/documentos.
func (h *DocumentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateDocumentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.ClientID = r.PathValue("id")

	doc, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, doc)
}

// List handles GET /api/admin/clientes/{id}/documentos.
func (h *DocumentHandlers) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Svc.ListByClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

package httpx

import (
	"errors"
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/data"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// MeHandlers serves the client-facing endpoints. Every route resolves the
// caller's own client record from the session; the client ID is never taken
// from the request.
type MeHandlers struct {
	Profiles      core.ProfileRepository
	Accounts      *service.AccountService
	Movements     *service.MovementService
	Beneficiaries *service.BeneficiaryService
	Documents     *service.DocumentService
	Requests      *service.RequestService
}

// ownProfile resolves the signed-in user's profile, writing the error
// response itself when resolution fails.
func (h *MeHandlers) ownProfile(w http.ResponseWriter, r *http.Request) (*model.Profile, bool) {
	principal, ok := GetPrincipal(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return nil, false
	}

	profile, err := h.Profiles.GetByUserID(r.Context(), principal.Session.UserID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			WriteError(w, ErrorParams{
				Code:    http.StatusForbidden,
				ErrCode: "no_client_profile",
				Err:     errors.New("no client record linked to this account"),
			})
			return nil, false
		}
		writeDomainError(w, err)
		return nil, false
	}
	return profile, true
}

// Profile handles GET /api/me.
func (h *MeHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// Account handles GET /api/me/cuenta.
func (h *MeHandlers) Account(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}
	account, err := h.Accounts.GetByClientID(r.Context(), profile.ClientID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

// ListMovements handles GET /api/me/movimientos.
func (h *MeHandlers) ListMovements(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}
	opts, ok := movementListOptions(w, r)
	if !ok {
		return
	}
	opts.ClientID = profile.ClientID

	movements, err := h.Movements.List(r.Context(), opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, movements)
}

// ListBeneficiaries handles GET /api/me/beneficiarios.
func (h *MeHandlers) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}
	beneficiaries, err := h.Beneficiaries.ListByClient(r.Context(), profile.ClientID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, beneficiaries)
}

// ListDocuments handles GET /api/me/documentos.
func (h *MeHandlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}
	docs, err := h.Documents.ListByClient(r.Context(), profile.ClientID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// ListRequests handles GET /api/me/solicitudes.
func (h *MeHandlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	requests, err := h.Requests.ListByClient(r.Context(), profile.ClientID, queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}

// CreateRequest handles POST /api/me/solicitudes.
func (h *MeHandlers) CreateRequest(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.ownProfile(w, r)
	if !ok {
		return
	}

	var req *model.CreateRequestRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.ClientID = profile.ClientID

	request, err := h.Requests.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, request)
}

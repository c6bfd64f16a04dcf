package httpx

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// 5MB is generous for statement CSVs; typical imports are a few KB.
const maxCSVUploadBytes = 5 << 20

// MovementHandlers provides the backoffice endpoints for account movements.
type MovementHandlers struct {
	Svc *service.MovementService
}

// Create handles POST /api/admin/clientes/{id}/movimientos.
func (h *MovementHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateMovementRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.ClientID = r.PathValue("id")

	movement, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, movement)
}

// List handles GET /api/admin/clientes/{id}/movimientos with optional
// kind/from/to/limit/offset filters.
func (h *MovementHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, ok := movementListOptions(w, r)
	if !ok {
		return
	}
	opts.ClientID = r.PathValue("id")

	movements, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, movements)
}

// ImportCSV handles POST /api/admin/clientes/{id}/movimientos/csv. The file
// arrives either as a multipart "file" part or as the raw request body.
func (h *MovementHandlers) ImportCSV(w http.ResponseWriter, r *http.Request) {
	body, err := csvUploadBody(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_upload", Err: err})
		return
	}
	defer body.Close()

	inserted, err := h.Svc.ImportCSV(r.Context(), r.PathValue("id"), io.LimitReader(body, maxCSVUploadBytes))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"insertados": inserted})
}

func csvUploadBody(r *http.Request) (io.ReadCloser, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return r.Body, nil
	}
	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	return file, nil
}

func movementListOptions(w http.ResponseWriter, r *http.Request) (model.MovementsListOptions, bool) {
	q := r.URL.Query()
	opts := model.MovementsListOptions{
		Limit:  queryInt(q.Get("limit")),
		Offset: queryInt(q.Get("offset")),
	}
	if s := q.Get("tipo"); s != "" {
		opts.Kind = &s
	}
	for name, dst := range map[string]**time.Time{"from": &opts.From, "to": &opts.To} {
		s := q.Get(name)
		if s == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_date", Err: err})
			return opts, false
		}
		*dst = &t
	}
	return opts, true
}

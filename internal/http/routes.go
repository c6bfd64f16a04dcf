package httpx

import (
	"log/slog"
	"net/http"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth          *service.AuthService
	Clients       *service.ClientService
	Accounts      *service.AccountService
	Movements     *service.MovementService
	Beneficiaries *service.BeneficiaryService
	Documents     *service.DocumentService
	Requests      *service.RequestService
	Profiles      core.ProfileRepository

	// PublicPaths are served without any session read; everything else goes
	// through the gateway. The credential-issuance endpoints must be listed
	// here or login becomes impossible.
	PublicPaths   []string
	LoginPath     string
	SecureCookies bool
	Logger        *slog.Logger
}

// NewRouter wires the API routes behind the access gateway.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	codec := SessionCookieCodec{Secure: services.SecureCookies}

	mux := http.NewServeMux()

	authHandlers := NewAuthHandler(services.Auth, codec, services.LoginPath)
	registerAuthRoutes(mux, authHandlers)

	registerAdminRoutes(mux, adminHandlers{
		clients:       &ClientHandlers{Svc: services.Clients},
		accounts:      &AccountHandlers{Svc: services.Accounts},
		movements:     &MovementHandlers{Svc: services.Movements},
		beneficiaries: &BeneficiaryHandlers{Svc: services.Beneficiaries},
		documents:     &DocumentHandlers{Svc: services.Documents},
		requests:      &RequestHandlers{Svc: services.Requests},
	})

	registerMeRoutes(mux, &MeHandlers{
		Profiles:      services.Profiles,
		Accounts:      services.Accounts,
		Movements:     services.Movements,
		Beneficiaries: services.Beneficiaries,
		Documents:     services.Documents,
		Requests:      services.Requests,
	})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	gateway := NewGateway(GatewayConfig{
		Auth:           services.Auth,
		Codec:          codec,
		PublicPrefixes: services.PublicPaths,
		LoginPath:      services.LoginPath,
		Logger:         logger,
	})

	var handler http.Handler = gateway.Middleware(mux)
	handler = CSRFProtection()(handler)
	handler = Compression(CompressionConfig{Logger: logger})(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandler) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/magic-link", h.MagicLink)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
}

type adminHandlers struct {
	clients       *ClientHandlers
	accounts      *AccountHandlers
	movements     *MovementHandlers
	beneficiaries *BeneficiaryHandlers
	documents     *DocumentHandlers
	requests      *RequestHandlers
}

// registerAdminRoutes mounts the backoffice API. Every path sits under
// /api/admin, which the auth policy lists as an admin area, so the gateway
// rejects non-admin sessions before these handlers run.
func registerAdminRoutes(mux *http.ServeMux, h adminHandlers) {
	mux.HandleFunc("POST /api/admin/clientes", h.clients.Create)
	mux.HandleFunc("GET /api/admin/clientes", h.clients.List)
	mux.HandleFunc("GET /api/admin/clientes/{id}", h.clients.Get)
	mux.HandleFunc("PATCH /api/admin/clientes/{id}", h.clients.Update)
	mux.HandleFunc("PUT /api/admin/clientes/{id}/onboarding", h.clients.SetOnboarding)
	mux.HandleFunc("POST /api/admin/clientes/{id}/acceso", h.clients.ProvisionAccess)

	mux.HandleFunc("PUT /api/admin/clientes/{id}/cuenta", h.accounts.Upsert)
	mux.HandleFunc("GET /api/admin/clientes/{id}/cuenta", h.accounts.Get)

	mux.HandleFunc("POST /api/admin/clientes/{id}/movimientos", h.movements.Create)
	mux.HandleFunc("GET /api/admin/clientes/{id}/movimientos", h.movements.List)
	mux.HandleFunc("POST /api/admin/clientes/{id}/movimientos/csv", h.movements.ImportCSV)

	mux.HandleFunc("PUT /api/admin/clientes/{id}/beneficiarios", h.beneficiaries.Save)
	mux.HandleFunc("GET /api/admin/clientes/{id}/beneficiarios", h.beneficiaries.List)

	mux.HandleFunc("POST /api/admin/clientes/{id}/documentos", h.documents.Create)
	mux.HandleFunc("GET /api/admin/clientes/{id}/documentos", h.documents.List)

	mux.HandleFunc("GET /api/admin/solicitudes", h.requests.List)
	mux.HandleFunc("GET /api/admin/solicitudes/{id}", h.requests.Get)
	mux.HandleFunc("PATCH /api/admin/solicitudes/{id}", h.requests.Update)
}

// registerMeRoutes mounts the client self-service API. The gateway has
// already authenticated the caller; each handler scopes data to the caller's
// own client record.
func registerMeRoutes(mux *http.ServeMux, h *MeHandlers) {
	mux.HandleFunc("GET /api/me", h.Profile)
	mux.HandleFunc("GET /api/me/cuenta", h.Account)
	mux.HandleFunc("GET /api/me/movimientos", h.ListMovements)
	mux.HandleFunc("GET /api/me/beneficiarios", h.ListBeneficiaries)
	mux.HandleFunc("GET /api/me/documentos", h.ListDocuments)
	mux.HandleFunc("GET /api/me/solicitudes", h.ListRequests)
	mux.HandleFunc("POST /api/me/solicitudes", h.CreateRequest)
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/obs"
	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/pkg/httpx"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TenantService    *service.TenantService
	AuthService      *service.AuthService
	AccountService   *service.AccountService
	ResetService     *service.PasswordResetService
	ProponentService *service.ProponentService
	ProjectService   *service.ProjectService
	MFAService       *service.MFAService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		obs.HTTPMiddleware,
	}

	return r
}

func (rt *Router) ApplyRoutes() {
	rt.registerAuth()
	rt.registerAccount()
	rt.registerPasswordReset()
	rt.registerMFA()
	rt.registerProponents()
	rt.registerProjects()
	rt.registerAdmin()
	rt.registerReview()
	rt.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

func (rt *Router) registerAuth() {
	h := &LoginHandler{
		TenantService: rt.TenantService,
		AuthService:   rt.AuthService,
	}

	// Credential attempts are limited by IP plus the email being tried so
	// one address cannot grind a single account.
	rt.Mux.Handle("POST /v1/t/{slug}/{role}/login",
		httpx.Chain(h,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
}

func (rt *Router) registerAccount() {
	h := &RegisterHandler{
		TenantService:  rt.TenantService,
		AccountService: rt.AccountService,
	}

	rt.Mux.Handle("POST /v1/t/{slug}/proponents/register",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	me := &MeHandler{TenantService: rt.TenantService}
	rt.Mux.Handle("GET /v1/me", rt.secured(me))
}

func (rt *Router) registerPasswordReset() {
	h := &PasswordResetHandler{
		TenantService: rt.TenantService,
		ResetService:  rt.ResetService,
	}

	rt.Mux.Handle("POST /v1/t/{slug}/{role}/password-reset",
		httpx.Chain(http.HandlerFunc(h.HandleRequest),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	rt.Mux.Handle("POST /v1/t/{slug}/{role}/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (rt *Router) registerMFA() {
	h := &MFAHandler{MFAService: rt.MFAService}

	rt.Mux.Handle("POST /v1/mfa/enroll",
		rt.secured(http.HandlerFunc(h.HandleEnroll), roleStaff))
	rt.Mux.Handle("POST /v1/mfa/activate",
		rt.secured(http.HandlerFunc(h.HandleActivate), roleStaff))
}

func (rt *Router) registerProponents() {
	h := &ProponentsHandler{ProponentService: rt.ProponentService}

	rt.Mux.Handle("POST /v1/proponents",
		rt.secured(http.HandlerFunc(h.HandleCreate), roleProponent))
	rt.Mux.Handle("GET /v1/proponents",
		rt.secured(http.HandlerFunc(h.HandleList), roleProponent))
}

func (rt *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: rt.ProjectService}

	rt.Mux.Handle("POST /v1/projects",
		rt.secured(http.HandlerFunc(h.HandleCreate), roleProponent))
	rt.Mux.Handle("GET /v1/projects",
		rt.secured(http.HandlerFunc(h.HandleList), roleProponent))
	rt.Mux.Handle("PUT /v1/projects/{id}",
		rt.secured(http.HandlerFunc(h.HandleUpdate), roleProponent))
	rt.Mux.Handle("POST /v1/projects/{id}/submit",
		rt.secured(http.HandlerFunc(h.HandleSubmit), roleProponent))
}

func (rt *Router) registerAdmin() {
	h := &AdminHandler{
		TenantService:  rt.TenantService,
		AccountService: rt.AccountService,
		ProjectService: rt.ProjectService,
	}

	rt.Mux.Handle("GET /v1/admin/projects",
		rt.secured(http.HandlerFunc(h.HandleListProjects), roleStaff))
	rt.Mux.Handle("GET /v1/admin/principals",
		rt.secured(http.HandlerFunc(h.HandleListPrincipals), roleStaff))
	rt.Mux.Handle("POST /v1/admin/reviewers",
		rt.secured(http.HandlerFunc(h.HandleCreateReviewer), roleStaff))
	rt.Mux.Handle("POST /v1/admin/principals/{id}/deactivate",
		rt.secured(http.HandlerFunc(h.HandleDeactivate), roleStaff))
}

func (rt *Router) registerReview() {
	h := &ReviewHandler{ProjectService: rt.ProjectService}

	rt.Mux.Handle("GET /v1/review/projects",
		rt.secured(http.HandlerFunc(h.HandleListProjects), roleReviewer))
}

func (rt *Router) registerSystem() {
	rt.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(rt.startTime, rt.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	rt.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(rt.startTime, rt.buildVersion, rt.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	rt.Mux.Handle("GET /metrics", obs.Handler())
}

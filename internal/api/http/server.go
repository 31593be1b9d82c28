// Package http is the server-rendered web front end: routing, sessions,
// access control and the page handlers.
package http

import (
	"net/http"

	"investiga-web/internal/cache"
	"investiga-web/internal/config"
	"investiga-web/internal/enrollment"
	"investiga-web/internal/metrics"
	"investiga-web/internal/security"
	"investiga-web/internal/service"

	"github.com/gorilla/mux"
	"golang.org/x/text/language"
)

// Deps are the collaborators the web layer is built from
type Deps struct {
	Config     *config.Config
	Sessions   service.SessionService
	Auth       service.AuthService
	Projects   service.ProjectService
	Catalog    *service.Catalog
	Users      service.UserService
	Reports    service.ReportService
	Dispatcher *enrollment.Dispatcher
	Cache      *cache.QueryCache
	Tokens     security.TokenManager
	Metrics    *metrics.Metrics
}

type Server struct {
	deps      Deps
	views     *views
	fallback  language.Tag
	reference map[string]*referenceAdmin
}

func NewServer(deps Deps) (*Server, error) {
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	fallback, err := language.Parse(deps.Config.Server.DefaultLanguage)
	if err != nil {
		fallback = language.Spanish
	}
	s := &Server{deps: deps, views: v, fallback: fallback}
	s.reference = newReferenceAdmins(deps.Catalog)
	return s, nil
}

// Router builds the route table. Health, metrics and static assets bypass
// the session middleware.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.notFound)
	router.Use(s.requestID, s.recoverer, s.instrument)

	router.HandleFunc("/healthz", s.health).Methods("GET").Name("health")
	if s.deps.Config.Metrics.Enabled && s.deps.Metrics != nil {
		router.Handle(s.deps.Config.Metrics.Path, s.deps.Metrics.Handler()).Methods("GET").Name("metrics")
	}
	RegisterStaticRoutes(router)

	app := router.PathPrefix("/").Subrouter()
	app.Use(s.withSession, s.authorize)

	s.registerAuthRoutes(app)
	s.registerProjectRoutes(app)
	s.registerEnrollmentRoutes(app)
	s.registerReferenceRoutes(app)
	s.registerMiscRoutes(app)

	return router
}

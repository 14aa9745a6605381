package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/api"
	"github.com/linesmerrill/dl-generator-api/api/scheduler"
	"github.com/linesmerrill/dl-generator-api/catalog"
	"github.com/linesmerrill/dl-generator-api/config"
	"github.com/linesmerrill/dl-generator-api/export"
	"github.com/linesmerrill/dl-generator-api/gateway"
	"github.com/linesmerrill/dl-generator-api/metrics"
	"github.com/linesmerrill/dl-generator-api/registry"
	"github.com/linesmerrill/dl-generator-api/sessions"
)

// App stores the router and the services behind it, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Gateway   gateway.Gateway
	Sessions  *sessions.Store
	Exporter  *export.Exporter
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareOperator{Username: a.Config.Operator.Username, PasswordHash: a.Config.Operator.PasswordHash}
	m.SetupGoGuardian()

	r := api.New(a.Registry)
	r.Use(api.MetricsMiddleware(a.Metrics))

	j := Jurisdiction{Catalog: catalog.Default(), Registry: registry.Default()}
	req := Request{
		Sessions:       a.Sessions,
		Gateway:        a.Gateway,
		Exporter:       a.Exporter,
		Metrics:        a.Metrics,
		GatewayTimeout: a.Config.GatewayTimeout,
	}
	g := GatewayStatus{Gateway: a.Gateway}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/jurisdictions/us-states", api.Middleware(http.HandlerFunc(j.USStatesHandler))).Methods("GET")
	apiCreate.Handle("/jurisdictions/countries", api.Middleware(http.HandlerFunc(j.CountriesHandler))).Methods("GET")
	apiCreate.Handle("/jurisdictions/countries/{country}/sub-jurisdictions", api.Middleware(http.HandlerFunc(j.SubJurisdictionsHandler))).Methods("GET")
	apiCreate.Handle("/jurisdictions/field-requirements/{code}", api.Middleware(http.HandlerFunc(j.FieldRequirementsHandler))).Methods("GET")
	apiCreate.Handle("/jurisdictions/color-codes", api.Middleware(http.HandlerFunc(j.ColorCodesHandler))).Methods("GET")
	apiCreate.Handle("/jurisdictions/license-categories", api.Middleware(http.HandlerFunc(j.LicenseCategoriesHandler))).Methods("GET")
	apiCreate.Handle("/jurisdictions/validate-format", api.Middleware(http.HandlerFunc(j.ValidateFormatHandler))).Methods("POST")

	apiCreate.Handle("/requests", api.Middleware(http.HandlerFunc(req.CreateRequestHandler))).Methods("POST")
	apiCreate.Handle("/requests/{request_id}", api.Middleware(http.HandlerFunc(req.RequestHandler))).Methods("GET")
	apiCreate.Handle("/requests/{request_id}", api.Middleware(http.HandlerFunc(req.UpdateRequestFieldsHandler))).Methods("PATCH")
	apiCreate.Handle("/requests/{request_id}", api.Middleware(http.HandlerFunc(req.DeleteRequestHandler))).Methods("DELETE")
	apiCreate.Handle("/requests/{request_id}/mode", api.Middleware(http.HandlerFunc(req.ModeHandler))).Methods("PUT")
	apiCreate.Handle("/requests/{request_id}/jurisdiction", api.Middleware(http.HandlerFunc(req.JurisdictionHandler))).Methods("PUT")
	apiCreate.Handle("/requests/{request_id}/country", api.Middleware(http.HandlerFunc(req.CountryHandler))).Methods("PUT")
	apiCreate.Handle("/requests/{request_id}/sub-jurisdiction", api.Middleware(http.HandlerFunc(req.SubJurisdictionHandler))).Methods("PUT")
	apiCreate.Handle("/requests/{request_id}/categories/{category}", api.Middleware(http.HandlerFunc(req.ToggleCategoryHandler))).Methods("POST")
	apiCreate.Handle("/requests/{request_id}/special-fields/{field_id}", api.Middleware(http.HandlerFunc(req.SpecialFieldHandler))).Methods("PUT")
	apiCreate.Handle("/requests/{request_id}/photo", api.Middleware(http.HandlerFunc(req.AttachPhotoHandler))).Methods("PUT")
	apiCreate.Handle("/requests/{request_id}/photo", api.Middleware(http.HandlerFunc(req.ClearPhotoHandler))).Methods("DELETE")
	apiCreate.Handle("/requests/{request_id}/validation", api.Middleware(http.HandlerFunc(req.ValidationHandler))).Methods("GET")
	apiCreate.Handle("/requests/{request_id}/reset", api.Middleware(http.HandlerFunc(req.ResetHandler))).Methods("POST")
	apiCreate.Handle("/requests/{request_id}/submit", api.Middleware(http.HandlerFunc(req.SubmitHandler))).Methods("POST")

	apiCreate.Handle("/gateway/status", api.Middleware(http.HandlerFunc(g.GatewayStatusHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to build the services and create a router
func (a *App) Initialize() error {
	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
	}
	if a.Metrics == nil {
		a.Metrics = metrics.New(a.Registry)
	}
	if a.Gateway == nil {
		a.Gateway = gateway.NewHTTPClient(a.Config.GatewayUrl, a.Config.GatewayTimeout)
	}
	if a.Sessions == nil {
		a.Sessions = sessions.NewStore(a.Config.SessionTTL)
	}
	if a.Exporter == nil {
		sink, err := newSink(a.Config)
		if err != nil {
			zap.S().With(zap.Error(err)).Error("failed to configure artifact export")
			return err
		}
		a.Exporter = export.New(sink, a.Config.ExportBackDelay)
	}

	a.Scheduler = scheduler.NewScheduler(a.Gateway, a.Sessions, a.Metrics, a.Config.ProbeSchedule)
	if err := a.Scheduler.Start(); err != nil {
		return err
	}
	zap.S().Infow("dl-generator-api initialized", "gateway", a.Config.GatewayUrl)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func newSink(conf config.Config) (export.Sink, error) {
	if conf.CloudinaryUrl != "" {
		return export.NewCloudinarySink(conf.CloudinaryUrl, conf.CloudinaryFolder)
	}
	return export.FileSink{Dir: conf.ExportDir}, nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, string(b))
}

// decodeBody decodes a JSON request body into v, writing a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return false
	}
	return true
}

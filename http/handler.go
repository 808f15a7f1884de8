package http

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dataiesb/pnaes"
)

// Service is the read surface the handlers need from the dashboard core.
type Service interface {
	Overview(ctx context.Context) (pnaes.Overview, error)
	Ambulatory(ctx context.Context) ([]pnaes.AmbulatoryRecord, error)
	Population(ctx context.Context) ([]pnaes.PopulationRecord, error)
	Economic(ctx context.Context) ([]pnaes.EconomicRecord, error)
	Municipalities(ctx context.Context) ([]pnaes.Municipality, error)
	RegionSummaries(ctx context.Context) ([]pnaes.RegionSummary, error)
	RegionDistribution(ctx context.Context) ([]pnaes.RegionCount, error)
	StateSummaries(ctx context.Context, top int) ([]pnaes.StateSummary, error)
	YearSummaries(ctx context.Context) ([]pnaes.YearSummary, error)
	Diagnostics(ctx context.Context) (map[string]pnaes.TableProbe, error)
	ExportAmbulatoryCSV(ctx context.Context, w io.Writer) error
}

// Pinger reports database liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
}

// Handler provides the HTTP surface of the dashboard: the four raw dataset
// tables, the three aggregate tables, schema diagnostics, and the CSV
// export.
type Handler struct {
	config  HandlerConfig
	service Service
	pinger  Pinger
}

// NewHandler creates a new Handler. The pinger is optional; without one,
// /healthz only reports process liveness.
func NewHandler(config *HandlerConfig, service Service, pinger Pinger) *Handler {
	return &Handler{
		config:  *config,
		service: service,
		pinger:  pinger,
	}
}

// Router returns an http.Handler with all API routes configured.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/overview", h.handleOverview)

		r.Route("/datasets", func(r chi.Router) {
			r.Get("/ambulatory", h.handleAmbulatory)
			r.Get("/population", h.handlePopulation)
			r.Get("/economic", h.handleEconomic)
			r.Get("/municipalities", h.handleMunicipalities)
		})

		r.Route("/summary", func(r chi.Router) {
			r.Get("/regions", h.handleRegions)
			r.Get("/regions/distribution", h.handleRegionDistribution)
			r.Get("/states", h.handleStates)
			r.Get("/years", h.handleYears)
		})

		r.Get("/schema", h.handleSchema)
		r.Get("/export/ambulatory.csv", h.handleExportCSV)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unreachable")
			return
		}
	}
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleAmbulatory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Ambulatory(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handlePopulation(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Population(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleEconomic(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Economic(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleMunicipalities(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Municipalities(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.RegionSummaries(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleRegionDistribution(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.RegionDistribution(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) handleStates(w http.ResponseWriter, r *http.Request) {
	top := 0
	if topStr := r.URL.Query().Get("top"); topStr != "" {
		parsed, err := strconv.Atoi(topStr)
		if err != nil || parsed < 1 {
			WriteError(w, http.StatusBadRequest, "invalid_top", "top must be a positive integer")
			return
		}
		top = parsed
	}

	summaries, err := h.service.StateSummaries(r.Context(), top)
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleYears(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.YearSummaries(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	probes, err := h.service.Diagnostics(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, probes)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pnaes.ExportFileName+`"`)

	if err := h.service.ExportAmbulatoryCSV(r.Context(), w); err != nil {
		// Headers may already be on the wire; log and give up on this
		// response rather than writing a JSON body into the CSV.
		HandleStreamError(r.Context(), err)
	}
}

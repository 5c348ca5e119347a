package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jalnangage/marketing-agent/internal/database"
	"github.com/jalnangage/marketing-agent/internal/gcal"
	"github.com/jalnangage/marketing-agent/internal/llm"
	"github.com/jalnangage/marketing-agent/internal/notify"
	"github.com/jalnangage/marketing-agent/internal/strategy"
	"github.com/jalnangage/marketing-agent/internal/timeutil"
)

// calendarClient is the slice of gcal.Client the handlers use.
type calendarClient interface {
	IsAuthenticated() bool
	GetAuthURL() string
	ExchangeCode(ctx context.Context, code string) error
	Disconnect() error
	ListCalendars() ([]gcal.CalendarInfo, error)
	ListMonthEvents(calendarID string, year int, month time.Month, loc *time.Location) ([]gcal.EventDetails, error)
	UpdateEvent(calendarID, eventID string, patch gcal.EventPatch) (*gcal.EventDetails, error)
	DeleteEvent(calendarID, eventID string) error
}

// submitQueue is the worker seam the register and listing handlers push into.
type submitQueue interface {
	Enqueue(actions []gcal.PendingAction) error
	EnqueueRetag(items []gcal.RetagItem)
}

type Server struct {
	db            *database.DB
	gcalClient    calendarClient
	worker        submitQueue
	generator     llm.Generator
	recognizer    *gcal.Recognizer
	notifyService *notify.Service
	resolver      strategy.DateResolver
	httpSrv       *http.Server
	port          int
	baseURL       string
	calendarID    string
	timezone      string
	location      *time.Location
}

// ServerConfig holds everything the HTTP layer needs at construction.
type ServerConfig struct {
	DB            *database.DB
	GCalClient    calendarClient
	Worker        submitQueue
	Generator     llm.Generator
	NotifyService *notify.Service
	Port          int
	BaseURL       string
	CalendarID    string
	Timezone      string
}

func New(cfg ServerConfig) *Server {
	loc, _ := timeutil.ResolveLocation(cfg.Timezone)

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	s := &Server{
		db:            cfg.DB,
		gcalClient:    cfg.GCalClient,
		worker:        cfg.Worker,
		generator:     cfg.Generator,
		recognizer:    gcal.NewRecognizer(),
		notifyService: cfg.NotifyService,
		resolver:      strategy.NewDateResolver(loc),
		port:          cfg.Port,
		baseURL:       cfg.BaseURL,
		calendarID:    calendarID,
		timezone:      cfg.Timezone,
		location:      loc,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)

	// Consultation + strategy API
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/strategy/generate", s.handleGenerateStrategies)
	mux.HandleFunc("POST /api/schedule/register", s.handleRegisterSchedule)
	mux.HandleFunc("GET /api/schedule/actions", s.handleListScheduledActions)

	// Google Calendar API
	mux.HandleFunc("GET /api/gcal/auth", s.handleGCalAuth)
	mux.HandleFunc("GET /api/gcal/callback", s.handleGCalCallback)
	mux.HandleFunc("GET /api/gcal/status", s.handleGCalStatus)
	mux.HandleFunc("POST /api/gcal/disconnect", s.handleGCalDisconnect)
	mux.HandleFunc("GET /api/gcal/calendars", s.handleGCalListCalendars)
	mux.HandleFunc("GET /api/gcal/events", s.handleListCalendarEvents)
	mux.HandleFunc("PUT /api/gcal/events", s.handleUpdateCalendarEvent)
	mux.HandleFunc("DELETE /api/gcal/events", s.handleDeleteCalendarEvent)
}

func (s *Server) Start() error {
	fmt.Printf("Starting HTTP server on http://localhost:%d\n", s.port)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// corsMiddleware adds CORS headers to allow browser frontend requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

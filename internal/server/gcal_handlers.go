package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jalnangage/marketing-agent/internal/gcal"
	"github.com/jalnangage/marketing-agent/internal/timeutil"
)

const codeAuthExpired = "AUTH_EXPIRED"

// calendarEvent is the decorated form of a remote event returned to the
// frontend: tags stripped, ownership and strategy metadata attached,
// and the ID carrying the synthetic prefix the frontend expects.
type calendarEvent struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Location      string     `json:"location,omitempty"`
	Start         time.Time  `json:"start"`
	End           *time.Time `json:"end,omitempty"`
	AllDay        bool       `json:"allDay"`
	IsStrategy    bool       `json:"isStrategy"`
	StrategyCode  string     `json:"strategyCode,omitempty"`
	StrategyTitle string     `json:"strategyTitle,omitempty"`
}

// decorateEvent runs one remote event through recognition and tag
// stripping. The second return value reports whether the event is ours
// but still missing the explicit tags.
func decorateEvent(rec *gcal.Recognizer, ev gcal.EventDetails) (calendarEvent, bool) {
	isStrategy := rec.IsStrategyEvent(ev.Summary, ev.Description)
	needsRetag := isStrategy && !rec.IsTagged(ev.Summary, ev.Description)

	title, description := gcal.StripTags(ev.Summary, ev.Description)

	out := calendarEvent{
		ID:          gcal.EventIDPrefix + ev.ID,
		Title:       title,
		Description: description,
		Location:    ev.Location,
		Start:       ev.StartTime,
		End:         ev.EndTime,
		AllDay:      ev.AllDay,
		IsStrategy:  isStrategy,
	}

	if isStrategy {
		out.StrategyCode = rec.ExtractStrategyCode(ev.Summary, ev.Description)
		out.StrategyTitle = rec.ExtractStrategyTitle(ev.Description)
	}

	return out, needsRetag
}

// handleAuthExpired clears the cached credentials and tells the
// frontend to restart the OAuth flow.
func (s *Server) handleAuthExpired(w http.ResponseWriter) {
	if s.gcalClient != nil {
		if err := s.gcalClient.Disconnect(); err != nil {
			fmt.Printf("Failed to clear expired Google credentials: %v\n", err)
		}
	}
	respondErrorCode(w, http.StatusUnauthorized, "Google authentication expired. Please reconnect.", codeAuthExpired)
}

func (s *Server) handleGCalAuth(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not configured. Check credentials.json.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"authUrl": s.gcalClient.GetAuthURL(),
		"message": "Open this URL to authorize Google Calendar access",
	})
}

func (s *Server) handleGCalCallback(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "No authorization code received")
		return
	}

	if err := s.gcalClient.ExchangeCode(r.Context(), code); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to exchange code: %v", err))
		return
	}

	fmt.Println("Google Calendar connected successfully!")
	http.Redirect(w, r, s.baseURL+"/?gcal=connected", http.StatusFound)
}

func (s *Server) handleGCalStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"connected": false,
		"message":   "Not configured",
	}

	if s.gcalClient == nil {
		status["message"] = "Google Calendar client not initialized. Check credentials.json."
		respondJSON(w, http.StatusOK, status)
		return
	}

	if s.gcalClient.IsAuthenticated() {
		status["connected"] = true
		status["message"] = "Connected"
	} else {
		status["message"] = "Not authenticated. Click Connect to authorize."
	}

	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleGCalDisconnect(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not configured")
		return
	}

	if err := s.gcalClient.Disconnect(); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (s *Server) handleGCalListCalendars(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not connected")
		return
	}

	calendars, err := s.gcalClient.ListCalendars()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, calendars)
}

func (s *Server) handleListCalendarEvents(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondErrorCode(w, http.StatusUnauthorized, "Google Calendar not connected", codeAuthExpired)
		return
	}

	now := time.Now().In(s.location)
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			respondError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(m)
	}

	events, err := s.gcalClient.ListMonthEvents(s.calendarID, year, month, s.location)
	if err != nil {
		if gcal.IsAuthExpired(err) {
			s.handleAuthExpired(w)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	decorated := make([]calendarEvent, 0, len(events))
	var retags []gcal.RetagItem

	for _, ev := range events {
		out, needsRetag := decorateEvent(s.recognizer, ev)
		decorated = append(decorated, out)

		if needsRetag {
			retags = append(retags, gcal.RetagItem{
				EventID:     ev.ID,
				Title:       out.Title,
				Description: out.Description,
			})
		}
	}

	if len(retags) > 0 && s.worker != nil {
		s.worker.EnqueueRetag(retags)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"year":   year,
		"month":  int(month),
		"events": decorated,
	})
}

func (s *Server) handleUpdateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondErrorCode(w, http.StatusUnauthorized, "Google Calendar not connected", codeAuthExpired)
		return
	}

	var req struct {
		EventID     string  `json:"eventId"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Start       *string `json:"start"`
		End         *string `json:"end"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.EventID == "" {
		respondError(w, http.StatusBadRequest, "eventId is required")
		return
	}

	eventID := gcal.NormalizeEventID(req.EventID)

	var patch gcal.EventPatch
	patch.Summary = req.Title
	patch.Description = req.Description

	if req.Start != nil && *req.Start != "" {
		start, _, err := timeutil.ParseDateTime(*req.Start, s.timezone)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid start: %v", err))
			return
		}
		patch.StartTime = &start
	}
	if req.End != nil && *req.End != "" {
		end, _, err := timeutil.ParseDateTime(*req.End, s.timezone)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid end: %v", err))
			return
		}
		patch.EndTime = &end
	}

	updated, err := s.gcalClient.UpdateEvent(s.calendarID, eventID, patch)
	if err != nil {
		switch {
		case gcal.IsAuthExpired(err):
			s.handleAuthExpired(w)
		case gcal.IsEventNotFound(err):
			respondError(w, http.StatusNotFound, "event not found")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	out, _ := decorateEvent(s.recognizer, *updated)
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteCalendarEvent(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondErrorCode(w, http.StatusUnauthorized, "Google Calendar not connected", codeAuthExpired)
		return
	}

	var req struct {
		EventID string `json:"eventId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.EventID == "" {
		respondError(w, http.StatusBadRequest, "eventId is required")
		return
	}

	eventID := gcal.NormalizeEventID(req.EventID)

	if err := s.gcalClient.DeleteEvent(s.calendarID, eventID); err != nil {
		switch {
		case gcal.IsAuthExpired(err):
			s.handleAuthExpired(w)
		case gcal.IsEventNotFound(err):
			respondError(w, http.StatusNotFound, "event not found")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if err := s.db.DeleteActionByGoogleEventID(eventID); err != nil {
		fmt.Printf("Failed to delete local action for event %s: %v\n", eventID, err)
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

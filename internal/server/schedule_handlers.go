package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jalnangage/marketing-agent/internal/database"
	"github.com/jalnangage/marketing-agent/internal/gcal"
	"github.com/jalnangage/marketing-agent/internal/strategy"
	"github.com/jalnangage/marketing-agent/internal/timeutil"
)

// strategySelection mirrors the frontend's per-strategy scheduling state.
// A strategy absent from the payload keeps the defaults: every action
// selected, direct mode, default start date.
type strategySelection struct {
	StrategyID      int               `json:"strategyId"`
	SelectedIndices *[]int            `json:"selectedIndices"`
	ActionModes     map[string]string `json:"actionModes"`
	StartDate       string            `json:"startDate"`
}

func (s *Server) handleRegisterSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Strategies []strategy.Strategy `json:"strategies"`
		Selections []strategySelection `json:"selections"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if len(req.Strategies) == 0 {
		respondError(w, http.StatusBadRequest, "strategies are required")
		return
	}

	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondErrorCode(w, http.StatusUnauthorized, "Google Calendar not connected", codeAuthExpired)
		return
	}

	sel := strategy.NewSelection(req.Strategies, s.resolver)

	for _, ss := range req.Selections {
		if ss.SelectedIndices != nil {
			sel.SetSelected(ss.StrategyID, *ss.SelectedIndices)
		}
		for key, mode := range ss.ActionModes {
			idx, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			sel.SetActionMode(ss.StrategyID, idx, strategy.Mode(mode))
		}
		if ss.StartDate != "" {
			date, _, err := timeutil.ParseDate(ss.StartDate, s.timezone)
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid startDate for strategy %d: %v", ss.StrategyID, err))
				return
			}
			sel.SetStartDate(ss.StrategyID, date)
		}
	}

	actions := sel.Materialize()
	if len(actions) == 0 {
		respondError(w, http.StatusBadRequest, "no actions selected")
		return
	}

	pending := make([]gcal.PendingAction, 0, len(actions))
	for _, action := range actions {
		rec, err := s.db.CreateScheduledAction(&database.ScheduledActionRecord{
			StrategyCode:      action.StrategyCode,
			StrategyTitle:     action.StrategyTitle,
			ActionIndex:       action.ActionIndex,
			ActionTitle:       action.ActionTitle,
			ActionIcon:        action.ActionIcon,
			ActionDescription: action.ActionDescription,
			Section:           string(action.Section),
			Mode:              string(action.Mode),
			ScheduledDate:     action.Date,
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to persist action: %v", err))
			return
		}

		pending = append(pending, gcal.PendingAction{
			RecordID: rec.ID,
			Input:    gcal.BuildActionEvent(action, s.timezone),
		})
	}

	if err := s.worker.Enqueue(pending); err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"registered": len(pending),
		"status":     "queued",
	})
}

func (s *Server) handleListScheduledActions(w http.ResponseWriter, r *http.Request) {
	status := database.ActionStatus(r.URL.Query().Get("status"))

	actions, err := s.db.ListScheduledActions(status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, actions)
}

package gcal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

var (
	ErrEventNotFound = errors.New("google calendar event not found")

	// ErrAuthExpired means the stored Google credential is stale and the
	// user has to reconnect. There is no automatic retry behind it.
	ErrAuthExpired = errors.New("google calendar authorization expired")
)

// IsEventNotFound returns true when a Google Calendar event no longer exists.
func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// IsAuthExpired returns true when an error means the saved credential is stale.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// wrapAPIError maps provider errors onto the package sentinels.
func wrapAPIError(op string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", op, ErrAuthExpired)
		case http.StatusNotFound, http.StatusGone:
			return fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
	}
	if strings.Contains(err.Error(), "invalid_grant") {
		return fmt.Errorf("%s: %w", op, ErrAuthExpired)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	Attendees   []string // Email addresses of attendees
	Timezone    string   // IANA name sent for timed events, e.g. "Asia/Seoul"
}

// EventPatch carries partial updates; nil fields keep the remote value.
type EventPatch struct {
	Summary     *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// EventDetails represents a single Google Calendar event.
type EventDetails struct {
	ID          string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     *time.Time
	AllDay      bool
	CalendarID  string
}

func parseGoogleEventTimes(item *calendar.Event, loc *time.Location) (time.Time, time.Time, bool, error) {
	if item == nil || item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		startDate, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		endDate, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return startDate, endDate, true, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event datetime is missing")
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return startTime, endTime, false, nil
}

func buildEventTimes(input EventInput) (*calendar.EventDateTime, *calendar.EventDateTime) {
	if input.AllDay {
		// Google all-day end dates are exclusive.
		end := input.EndTime.AddDate(0, 0, -1)
		return &calendar.EventDateTime{Date: input.StartTime.Format("2006-01-02")},
			&calendar.EventDateTime{Date: end.Format("2006-01-02")}
	}
	return &calendar.EventDateTime{DateTime: input.StartTime.Format(time.RFC3339), TimeZone: input.Timezone},
		&calendar.EventDateTime{DateTime: input.EndTime.Format(time.RFC3339), TimeZone: input.Timezone}
}

// CreateEvent creates a new event and returns its ID and browser link.
// Reminders are pinned to a 10 minute popup and a 24 hour email, matching
// what the scheduling flow promises the user.
func (c *Client) CreateEvent(calendarID string, input EventInput) (string, string, error) {
	if c.service == nil {
		return "", "", fmt.Errorf("calendar service not initialized")
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	start, end := buildEventTimes(input)
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start:       start,
		End:         end,
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 10},
				{Method: "email", Minutes: 1440},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if len(input.Attendees) > 0 {
		attendees := make([]*calendar.EventAttendee, len(input.Attendees))
		for i, email := range input.Attendees {
			attendees[i] = &calendar.EventAttendee{Email: email}
		}
		event.Attendees = attendees
	}

	created, err := c.service.Events.Insert(calendarID, event).Do()
	if err != nil {
		return "", "", wrapAPIError("failed to create event", err)
	}

	return created.Id, created.HtmlLink, nil
}

// UpdateEvent applies a partial update on top of the current remote event.
func (c *Client) UpdateEvent(calendarID, eventID string, patch EventPatch) (*EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	existing, err := c.service.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, wrapAPIError("failed to get event", err)
	}

	if patch.Summary != nil {
		existing.Summary = *patch.Summary
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.StartTime != nil {
		existing.Start = &calendar.EventDateTime{DateTime: patch.StartTime.Format(time.RFC3339)}
	}
	if patch.EndTime != nil {
		existing.End = &calendar.EventDateTime{DateTime: patch.EndTime.Format(time.RFC3339)}
	}

	updated, err := c.service.Events.Update(calendarID, eventID, existing).Do()
	if err != nil {
		return nil, wrapAPIError("failed to update event", err)
	}

	startTime, endTime, allDay, err := parseGoogleEventTimes(updated, time.Now().Location())
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated event times: %w", err)
	}

	endCopy := endTime
	return &EventDetails{
		ID:          updated.Id,
		Summary:     updated.Summary,
		Description: updated.Description,
		Location:    updated.Location,
		StartTime:   startTime,
		EndTime:     &endCopy,
		AllDay:      allDay,
		CalendarID:  calendarID,
	}, nil
}

// DeleteEvent deletes an event from Google Calendar
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if c.service == nil {
		return fmt.Errorf("calendar service not initialized")
	}
	if eventID == "" {
		return fmt.Errorf("event id is required")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	if err := c.service.Events.Delete(calendarID, eventID).Do(); err != nil {
		return wrapAPIError("failed to delete event", err)
	}
	return nil
}

// ListMonthEvents returns all events of one calendar month, paged through
// to completion. month is 1-12.
func (c *Client) ListMonthEvents(calendarID string, year int, month time.Month, loc *time.Location) ([]EventDetails, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}

	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	var result []EventDetails
	pageToken := ""

	for {
		call := c.service.Events.List(calendarID).
			TimeMin(startOfMonth.Format(time.RFC3339)).
			TimeMax(endOfMonth.Format(time.RFC3339)).
			SingleEvents(true).
			ShowDeleted(false).
			OrderBy("startTime")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, wrapAPIError("failed to list month events", err)
		}

		for _, item := range events.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}

			startTime, endTime, allDay, parseErr := parseGoogleEventTimes(item, loc)
			if parseErr != nil {
				// Skip malformed events rather than failing the whole request.
				continue
			}

			endCopy := endTime
			result = append(result, EventDetails{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				Location:    item.Location,
				StartTime:   startTime,
				EndTime:     &endCopy,
				AllDay:      allDay,
				CalendarID:  calendarID,
			})
		}

		if events.NextPageToken == "" {
			break
		}
		pageToken = events.NextPageToken
	}

	return result, nil
}

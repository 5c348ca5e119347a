package gcal

import (
	"fmt"
)

// CalendarInfo is one entry of the user's calendar list, enough for the
// frontend to offer a submit target other than primary.
type CalendarInfo struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Primary     bool   `json:"primary"`
	AccessRole  string `json:"access_role"`
}

// ListCalendars returns every calendar the connected account can see,
// paged through to completion.
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	var calendars []CalendarInfo
	pageToken := ""

	for {
		call := c.service.CalendarList.List()
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, wrapAPIError("failed to list calendars", err)
		}

		for _, item := range list.Items {
			calendars = append(calendars, CalendarInfo{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				Primary:     item.Primary,
				AccessRole:  item.AccessRole,
			})
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			return calendars, nil
		}
	}
}

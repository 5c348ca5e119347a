package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ActionStatus tracks a scheduled action through calendar submission.
type ActionStatus string

const (
	ActionStatusPending ActionStatus = "pending"
	ActionStatusSynced  ActionStatus = "synced"
	ActionStatusFailed  ActionStatus = "failed"
)

// ScheduledActionRecord is the durable form of a scheduled action,
// created at register time and updated as the submit worker reports back.
type ScheduledActionRecord struct {
	ID                int64        `json:"id"`
	StrategyCode      string       `json:"strategy_code"`
	StrategyTitle     string       `json:"strategy_title"`
	ActionIndex       int          `json:"action_index"`
	ActionTitle       string       `json:"action_title"`
	ActionIcon        string       `json:"action_icon"`
	ActionDescription string       `json:"action_description"`
	Section           string       `json:"section"`
	Mode              string       `json:"mode"`
	ScheduledDate     time.Time    `json:"scheduled_date"`
	Status            ActionStatus `json:"status"`
	GoogleEventID     *string      `json:"google_event_id,omitempty"`
	EventLink         *string      `json:"event_link,omitempty"`
	FailureReason     *string      `json:"failure_reason,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// CreateScheduledAction inserts a new pending action and returns it with ID set.
func (d *DB) CreateScheduledAction(rec *ScheduledActionRecord) (*ScheduledActionRecord, error) {
	if rec.Status == "" {
		rec.Status = ActionStatusPending
	}
	if rec.Mode == "" {
		rec.Mode = "direct"
	}

	result, err := d.Exec(`
		INSERT INTO scheduled_actions
			(strategy_code, strategy_title, action_index, action_title, action_icon,
			 action_description, section, mode, scheduled_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.StrategyCode, rec.StrategyTitle, rec.ActionIndex, rec.ActionTitle, rec.ActionIcon,
		rec.ActionDescription, rec.Section, rec.Mode, rec.ScheduledDate, rec.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to insert scheduled action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled action ID: %w", err)
	}

	return d.GetScheduledAction(id)
}

// GetScheduledAction returns one action by ID, or nil when absent.
func (d *DB) GetScheduledAction(id int64) (*ScheduledActionRecord, error) {
	row := d.QueryRow(`
		SELECT id, strategy_code, strategy_title, action_index, action_title, action_icon,
		       action_description, section, mode, scheduled_date, status,
		       google_event_id, event_link, failure_reason, created_at, updated_at
		FROM scheduled_actions WHERE id = ?
	`, id)

	rec, err := scanScheduledAction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled action: %w", err)
	}
	return rec, nil
}

// ListScheduledActions returns all actions, newest first. A non-empty
// status narrows the result.
func (d *DB) ListScheduledActions(status ActionStatus) ([]ScheduledActionRecord, error) {
	query := `
		SELECT id, strategy_code, strategy_title, action_index, action_title, action_icon,
		       action_description, section, mode, scheduled_date, status,
		       google_event_id, event_link, failure_reason, created_at, updated_at
		FROM scheduled_actions`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled actions: %w", err)
	}
	defer rows.Close()

	var records []ScheduledActionRecord
	for rows.Next() {
		rec, err := scanScheduledAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled action: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// MarkActionSynced records a successful calendar creation.
func (d *DB) MarkActionSynced(id int64, googleEventID, eventLink string) error {
	_, err := d.Exec(`
		UPDATE scheduled_actions
		SET status = ?, google_event_id = ?, event_link = ?, failure_reason = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, ActionStatusSynced, googleEventID, eventLink, id)
	if err != nil {
		return fmt.Errorf("failed to mark action %d synced: %w", id, err)
	}
	return nil
}

// MarkActionFailed records a calendar creation failure.
func (d *DB) MarkActionFailed(id int64, reason string) error {
	_, err := d.Exec(`
		UPDATE scheduled_actions
		SET status = ?, failure_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, ActionStatusFailed, reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark action %d failed: %w", id, err)
	}
	return nil
}

// DeleteActionByGoogleEventID removes the record tied to a remote event,
// called when the user deletes that event from the calendar view.
func (d *DB) DeleteActionByGoogleEventID(googleEventID string) error {
	_, err := d.Exec(`DELETE FROM scheduled_actions WHERE google_event_id = ?`, googleEventID)
	if err != nil {
		return fmt.Errorf("failed to delete action for event %s: %w", googleEventID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScheduledAction(row rowScanner) (*ScheduledActionRecord, error) {
	var rec ScheduledActionRecord
	err := row.Scan(
		&rec.ID, &rec.StrategyCode, &rec.StrategyTitle, &rec.ActionIndex, &rec.ActionTitle,
		&rec.ActionIcon, &rec.ActionDescription, &rec.Section, &rec.Mode, &rec.ScheduledDate,
		&rec.Status, &rec.GoogleEventID, &rec.EventLink, &rec.FailureReason,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

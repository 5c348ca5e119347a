package migrations

import (
	"database/sql"
)

func init() {
	Register(Migration{
		Version: 1,
		Name:    "initial_schema",
		Up:      initialSchema,
	})
}

func initialSchema(db *sql.DB) error {
	statements := []string{
		// Raw model responses kept for auditing what the parser saw
		`CREATE TABLE IF NOT EXISTS strategy_generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			raw_content TEXT NOT NULL,
			strategy_count INTEGER NOT NULL DEFAULT 0,
			used_fallback BOOLEAN NOT NULL DEFAULT 0,
			processing_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Scheduled actions table
		`CREATE TABLE IF NOT EXISTS scheduled_actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			strategy_code TEXT NOT NULL,
			strategy_title TEXT NOT NULL,
			action_index INTEGER NOT NULL,
			action_title TEXT NOT NULL,
			action_icon TEXT,
			action_description TEXT,
			section TEXT NOT NULL CHECK(section IN ('preparation', 'content', 'event', 'promotion')),
			mode TEXT NOT NULL DEFAULT 'direct' CHECK(mode IN ('direct', 'expert')),
			scheduled_date DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'synced', 'failed')),
			google_event_id TEXT,
			event_link TEXT,
			failure_reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_actions_status ON scheduled_actions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_actions_strategy ON scheduled_actions(strategy_code)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_actions_google_id ON scheduled_actions(google_event_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

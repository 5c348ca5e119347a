package database

import (
	"fmt"
	"time"
)

// GenerationRecord keeps the raw model response behind each strategy
// batch, so parser behavior on real traffic can be audited later.
type GenerationRecord struct {
	ID            int64     `json:"id"`
	RawContent    string    `json:"raw_content"`
	StrategyCount int       `json:"strategy_count"`
	UsedFallback  bool      `json:"used_fallback"`
	ProcessingMs  int64     `json:"processing_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecordGeneration stores one model response and what the parser made of it.
func (d *DB) RecordGeneration(rawContent string, strategyCount int, usedFallback bool, processing time.Duration) (int64, error) {
	result, err := d.Exec(`
		INSERT INTO strategy_generations (raw_content, strategy_count, used_fallback, processing_ms)
		VALUES (?, ?, ?, ?)
	`, rawContent, strategyCount, usedFallback, processing.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to record generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get generation ID: %w", err)
	}
	return id, nil
}

// ListRecentGenerations returns the latest generations, newest first.
func (d *DB) ListRecentGenerations(limit int) ([]GenerationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.Query(`
		SELECT id, raw_content, strategy_count, used_fallback, processing_ms, created_at
		FROM strategy_generations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.RawContent, &rec.StrategyCount, &rec.UsedFallback, &rec.ProcessingMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

package postgres

import (
	"database/sql"

	"finire/internal/domain"
)

// DayRepo implements repository.DayRepository
type DayRepo struct {
	db *sql.DB
}

// NewDayRepo creates a new day repository
func NewDayRepo(db *sql.DB) *DayRepo {
	return &DayRepo{db: db}
}

// GetDays returns all persisted day records for the user, ordered by day
// number. Days never written yet have no row.
func (r *DayRepo) GetDays(userID string) ([]domain.DayRecord, error) {
	query := `
		SELECT id, user_id, day_number, content, word_count, sealed, updated_at
		FROM days
		WHERE user_id = $1
		ORDER BY day_number ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DayRecord
	for rows.Next() {
		var rec domain.DayRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.DayNumber, &rec.Content, &rec.WordCount, &rec.Sealed, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpsertDay writes the current entry text and word count for a day,
// creating the record on first save. A sealed row is never overwritten:
// the conflict update is guarded on sealed = FALSE, so a stale save after
// sealing is a silent no-op at the store level.
func (r *DayRepo) UpsertDay(userID string, dayNumber int, content string, wordCount int) error {
	query := `
		INSERT INTO days (user_id, day_number, content, word_count, sealed, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		ON CONFLICT (user_id, day_number)
		DO UPDATE SET content = $3, word_count = $4, updated_at = NOW()
		WHERE days.sealed = FALSE
	`
	_, err := r.db.Exec(query, userID, dayNumber, content, wordCount)
	return err
}

// SealDay marks a day sealed. Sealing is monotonic: an already sealed row
// is left untouched, and nothing here ever sets sealed back to FALSE.
func (r *DayRepo) SealDay(userID string, dayNumber int) error {
	query := `
		UPDATE days
		SET sealed = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND day_number = $2 AND sealed = FALSE
	`
	_, err := r.db.Exec(query, userID, dayNumber)
	return err
}

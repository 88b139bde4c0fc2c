package postgres

import (
	"database/sql"

	"finire/internal/domain"
)

// ReminderRepo implements repository.ReminderRepository
type ReminderRepo struct {
	db *sql.DB
}

// NewReminderRepo creates a new reminder repository
func NewReminderRepo(db *sql.DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// Get returns the user's reminder preference, or nil if none is set.
func (r *ReminderRepo) Get(userID string) (*domain.ReminderPreference, error) {
	var pref domain.ReminderPreference
	var channel string
	var chatID sql.NullInt64
	query := `
		SELECT user_id, time_local, timezone, channel, chat_id, enabled, updated_at
		FROM reminders
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&pref.UserID, &pref.TimeLocal, &pref.Timezone, &channel, &chatID, &pref.Enabled, &pref.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pref.Channel = domain.ReminderChannel(channel)
	if chatID.Valid {
		pref.ChatID = chatID.Int64
	}

	return &pref, nil
}

// Upsert creates or replaces the user's single reminder preference.
// Uniqueness per user is enforced by the primary key on user_id.
func (r *ReminderRepo) Upsert(pref domain.ReminderPreference) error {
	query := `
		INSERT INTO reminders (user_id, time_local, timezone, channel, chat_id, enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET time_local = $2, timezone = $3, channel = $4, chat_id = $5, enabled = $6, updated_at = NOW()
	`
	var chatID sql.NullInt64
	if pref.ChatID != 0 {
		chatID = sql.NullInt64{Int64: pref.ChatID, Valid: true}
	}
	_, err := r.db.Exec(query, pref.UserID, pref.TimeLocal, pref.Timezone, string(pref.Channel), chatID, pref.Enabled)
	return err
}

// SetEnabled toggles the reminder without deleting the row.
func (r *ReminderRepo) SetEnabled(userID string, enabled bool) error {
	query := `
		UPDATE reminders
		SET enabled = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID, enabled)
	return err
}

// ListEnabled returns every enabled reminder preference across all users.
func (r *ReminderRepo) ListEnabled() ([]domain.ReminderPreference, error) {
	query := `
		SELECT user_id, time_local, timezone, channel, chat_id, enabled, updated_at
		FROM reminders
		WHERE enabled = TRUE
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []domain.ReminderPreference
	for rows.Next() {
		var pref domain.ReminderPreference
		var channel string
		var chatID sql.NullInt64
		if err := rows.Scan(&pref.UserID, &pref.TimeLocal, &pref.Timezone, &channel, &chatID, &pref.Enabled, &pref.UpdatedAt); err != nil {
			return nil, err
		}
		pref.Channel = domain.ReminderChannel(channel)
		if chatID.Valid {
			pref.ChatID = chatID.Int64
		}
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}

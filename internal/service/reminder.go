package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"finire/internal/domain"
	"finire/internal/notify"
	"finire/internal/repository"

	"go.uber.org/zap"
)

// ErrNoTransport means dispatch was invoked without a configured delivery
// transport, so no recipient can be served.
var ErrNoTransport = errors.New("no reminder transport configured")

const (
	reminderSubject = "Time to write"

	reminderEmailHTML = `<div style="font-family: Georgia, serif; max-width: 480px; margin: 0 auto; padding: 40px 20px;">
  <h1 style="font-size: 24px; font-weight: normal; font-style: italic; margin-bottom: 24px;">Finire</h1>
  <p style="font-size: 16px; line-height: 1.6; color: #333;">This is your daily reminder to write.</p>
  <p style="font-size: 16px; line-height: 1.6; color: #333;">300 words. That's all it takes to keep moving forward.</p>
  <a href="%s" style="display: inline-block; margin-top: 24px; padding: 12px 24px; background: #1a1a1a; color: #fff; text-decoration: none; font-size: 14px;">Start writing</a>
  <p style="margin-top: 40px; font-size: 12px; color: #999;">You're receiving this because you set a daily reminder on Finire.</p>
</div>`

	reminderTelegramBody = `This is your daily reminder to write.

300 words. That's all it takes to keep moving forward.

%s`
)

// RecipientStatus is the outcome of one reminder delivery attempt.
type RecipientStatus string

const (
	StatusSent   RecipientStatus = "sent"   // transport accepted
	StatusFailed RecipientStatus = "failed" // transport reached, reported non-success
	StatusError  RecipientStatus = "error"  // transport call itself failed
)

// RecipientResult records the delivery outcome for one due user.
type RecipientResult struct {
	UserID  string          `json:"userId"`
	Address string          `json:"address"`
	Status  RecipientStatus `json:"status"`
	Detail  string          `json:"detail,omitempty"`
}

// DispatchSummary reports one dispatch invocation.
type DispatchSummary struct {
	Notified int               `json:"notifiedCount"`
	Results  []RecipientResult `json:"perRecipientResults"`
}

// ReminderService manages reminder preferences and the periodic dispatch
// that delivers them.
type ReminderService struct {
	reminderRepo repository.ReminderRepository
	userRepo     repository.UserRepository
	email        notify.Notifier
	telegram     notify.Notifier
	appURL       string
	logger       *zap.Logger
}

// NewReminderService creates a new reminder service. Either notifier may
// be nil when that channel is not configured.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	userRepo repository.UserRepository,
	email notify.Notifier,
	telegram notify.Notifier,
	appURL string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		email:        email,
		telegram:     telegram,
		appURL:       appURL,
		logger:       logger,
	}
}

// SetReminder stores the user's daily reminder from its 12-hour UI form.
// The timezone is whatever the client captured when the form was submitted;
// it must be a valid IANA zone name. Setting a reminder enables it.
func (s *ReminderService) SetReminder(userID string, hour12, minute int, meridiem domain.Meridiem, timezone string, channel domain.ReminderChannel, chatID int64) error {
	timeLocal, err := domain.FormatLocalTime(hour12, minute, meridiem)
	if err != nil {
		return err
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	if channel == "" {
		channel = domain.ChannelEmail
	}
	if !channel.Valid() {
		return fmt.Errorf("invalid reminder channel %q", channel)
	}
	if channel == domain.ChannelTelegram && chatID == 0 {
		return fmt.Errorf("telegram channel requires a chat id")
	}

	return s.reminderRepo.Upsert(domain.ReminderPreference{
		UserID:    userID,
		TimeLocal: timeLocal,
		Timezone:  timezone,
		Channel:   channel,
		ChatID:    chatID,
		Enabled:   true,
	})
}

// GetReminder returns the stored preference, or nil when none is set.
func (s *ReminderService) GetReminder(userID string) (*domain.ReminderPreference, error) {
	return s.reminderRepo.Get(userID)
}

// SetEnabled toggles the stored reminder without losing its settings.
func (s *ReminderService) SetEnabled(userID string, enabled bool) error {
	return s.reminderRepo.SetEnabled(userID, enabled)
}

// Dispatch runs one reminder pass: every enabled preference whose local
// wall-clock time matches now at minute granularity gets one notification.
// Matching is exact string equality on "HH:MM"; there is no grace window
// and no cross-invocation dedup, so the trigger contract is once per
// minute. Delivery failures are isolated per recipient.
func (s *ReminderService) Dispatch(ctx context.Context, now time.Time) (*DispatchSummary, error) {
	if s.email == nil {
		return nil, ErrNoTransport
	}

	prefs, err := s.reminderRepo.ListEnabled()
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	if len(prefs) == 0 {
		return &DispatchSummary{}, nil
	}

	due := make([]domain.ReminderPreference, 0, len(prefs))
	seen := make(map[string]bool, len(prefs))
	for _, pref := range prefs {
		localNow, err := domain.LocalClock(now, pref.Timezone)
		if err != nil {
			s.logger.Warn("Skipping reminder with bad timezone",
				zap.String("user_id", pref.UserID),
				zap.String("timezone", pref.Timezone),
				zap.Error(err),
			)
			continue
		}
		if localNow != pref.TimeLocal || seen[pref.UserID] {
			continue
		}
		seen[pref.UserID] = true
		due = append(due, pref)
	}

	if len(due) == 0 {
		return &DispatchSummary{}, nil
	}

	emails, err := s.emailsByUser()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	summary := &DispatchSummary{}
	for _, pref := range due {
		result, ok := s.deliver(ctx, pref, emails)
		if !ok {
			// No resolvable address for this user.
			continue
		}
		summary.Results = append(summary.Results, result)
		if result.Status == StatusSent {
			summary.Notified++
		}
	}

	s.logger.Info("Reminder dispatch completed",
		zap.Int("due", len(due)),
		zap.Int("notified", summary.Notified),
	)
	return summary, nil
}

func (s *ReminderService) emailsByUser() (map[string]string, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return nil, err
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails[u.ID] = u.Email
		}
	}
	return emails, nil
}

func (s *ReminderService) deliver(ctx context.Context, pref domain.ReminderPreference, emails map[string]string) (RecipientResult, bool) {
	var notifier notify.Notifier
	var address, body string

	switch pref.Channel {
	case domain.ChannelTelegram:
		notifier = s.telegram
		address = strconv.FormatInt(pref.ChatID, 10)
		body = fmt.Sprintf(reminderTelegramBody, s.appURL)
		if notifier == nil {
			return RecipientResult{
				UserID:  pref.UserID,
				Address: address,
				Status:  StatusError,
				Detail:  "telegram channel not configured",
			}, true
		}
	default:
		notifier = s.email
		address = emails[pref.UserID]
		body = fmt.Sprintf(reminderEmailHTML, s.appURL)
		if address == "" {
			return RecipientResult{}, false
		}
	}

	result := RecipientResult{UserID: pref.UserID, Address: address, Status: StatusSent}

	if err := notifier.Send(ctx, address, reminderSubject, body); err != nil {
		var deliveryErr *notify.DeliveryError
		if errors.As(err, &deliveryErr) {
			result.Status = StatusFailed
		} else {
			result.Status = StatusError
		}
		result.Detail = err.Error()
		s.logger.Error("Reminder delivery failed",
			zap.String("user_id", pref.UserID),
			zap.String("channel", string(pref.Channel)),
			zap.Error(err),
		)
	}

	return result, true
}

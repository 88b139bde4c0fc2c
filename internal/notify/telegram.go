package notify

import (
	"context"
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// TelegramNotifier delivers reminders as Telegram messages. The recipient
// address is the chat ID the user linked when setting up the reminder.
type TelegramNotifier struct {
	bot *tele.Bot
}

// NewTelegramNotifier wraps an initialized bot as a reminder channel.
func NewTelegramNotifier(bot *tele.Bot) *TelegramNotifier {
	return &TelegramNotifier{bot: bot}
}

// Send delivers one message. The subject is folded into the message text;
// body is expected to be Telegram-safe HTML.
func (n *TelegramNotifier) Send(ctx context.Context, to, subject, body string) error {
	chatID, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", to, err)
	}

	text := fmt.Sprintf("<b>%s</b>\n\n%s", subject, body)
	_, err = n.bot.Send(&tele.Chat{ID: chatID}, text, &tele.SendOptions{ParseMode: tele.ModeHTML})
	return err
}

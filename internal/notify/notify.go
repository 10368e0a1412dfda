package notify

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Lead is what the sales chat is told about a new callback request.
type Lead struct {
	Name    string
	Phone   string
	Email   string
	Message string
	Company bool
}

// Notifier announces new leads. Implementations must be safe for concurrent use.
type Notifier interface {
	LeadReceived(lead Lead) error
}

// Nop is used when no notification channel is configured.
type Nop struct{}

func (Nop) LeadReceived(Lead) error { return nil }

// Telegram posts lead announcements to one chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram authorises the bot against apiEndpoint (tgbotapi.APIEndpoint in
// production) and returns a notifier for chatID.
func NewTelegram(token, chatID, apiEndpoint string) (*Telegram, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = false

	return &Telegram{bot: bot, chatID: id}, nil
}

func (t *Telegram) LeadReceived(lead Lead) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatLead(lead))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatLead renders the HTML message body. User input is escaped.
func FormatLead(lead Lead) string {
	kind := "individual"
	if lead.Company {
		kind = "company"
	}

	message := strings.TrimSpace(lead.Message)
	if message == "" {
		message = "(no message)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>New callback request</b> (%s)\n", kind)
	fmt.Fprintf(&b, "Name: %s\n", html.EscapeString(lead.Name))
	fmt.Fprintf(&b, "Phone: %s\n", html.EscapeString(lead.Phone))
	fmt.Fprintf(&b, "Email: %s\n\n", html.EscapeString(lead.Email))
	b.WriteString(html.EscapeString(message))
	return b.String()
}

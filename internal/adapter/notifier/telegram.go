package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Telegram rejects messages over 4096 characters; stay under that with
// headroom for the HTML wrapping some clients add.
const telegramChunkLimit = 3900

// TelegramNotifier sends vendor status messages through the Bot API.
// Messages longer than the API limit are split on line boundaries and
// delivered as consecutive messages.
type TelegramNotifier struct {
	apiBase    string
	botToken   string
	chatID     string
	httpClient *http.Client
}

func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		apiBase:  "https://api.telegram.org",
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *TelegramNotifier) Channel() string {
	return fmt.Sprintf("telegram:%s", t.chatID)
}

func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	for i, chunk := range splitMessage(text, telegramChunkLimit) {
		if err := t.sendChunk(ctx, chunk); err != nil {
			return fmt.Errorf("sending telegram chunk %d: %w", i+1, err)
		}
	}
	return nil
}

type telegramPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func (t *TelegramNotifier) sendChunk(ctx context.Context, text string) error {
	body, err := json.Marshal(telegramPayload{
		ChatID:                t.chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

// splitMessage breaks text into chunks of at most limit characters,
// preferring newline boundaries so a status section is not cut mid-line.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

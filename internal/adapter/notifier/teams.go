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

// TeamsNotifier posts vendor status messages to a Microsoft Teams
// incoming webhook as a MessageCard.
type TeamsNotifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewTeamsNotifier(webhookURL string) *TeamsNotifier {
	return &TeamsNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *TeamsNotifier) Channel() string {
	return "teams"
}

type teamsCard struct {
	Type       string `json:"@type"`
	Context    string `json:"@context"`
	ThemeColor string `json:"themeColor"`
	Summary    string `json:"summary"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

func (t *TeamsNotifier) Send(ctx context.Context, text string) error {
	title := "Vendor Status"
	if i := strings.Index(text, "\n"); i > 0 {
		title = text[:i]
	}

	// Teams renders single newlines as spaces in MessageCard text.
	cardText := strings.ReplaceAll(text, "\n", "\n\n")

	body, err := json.Marshal(teamsCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: "0076D7",
		Summary:    title,
		Title:      title,
		Text:       cardText,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal teams card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("teams webhook returned status %d", resp.StatusCode)
	}
	return nil
}

package notifier

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackNotifier posts vendor status messages to a Slack channel via
// the chat.postMessage API.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

func (s *SlackNotifier) Channel() string {
	return fmt.Sprintf("slack:%s", s.channel)
}

func (s *SlackNotifier) Send(ctx context.Context, text string) error {
	// Status messages are preformatted plain text; a code block keeps
	// the column alignment Slack would otherwise collapse.
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "```"+text+"```", false, false),
			nil, nil,
		),
	}

	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("posting to slack channel %s: %w", s.channel, err)
	}
	return nil
}

// Package slack implements the notify.Notifier for Slack's Web API.
package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// client abstracts the Slack API methods we use, enabling test mocks.
type client interface {
	AuthTest() (*slackapi.AuthTestResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier posts digests to a Slack workspace.
type Notifier struct {
	client client
}

// New creates a Notifier and verifies the token with an auth test.
func New(botToken string) (*Notifier, error) {
	return newWithClient(slackapi.New(botToken))
}

func newWithClient(c client) (*Notifier, error) {
	if _, err := c.AuthTest(); err != nil {
		return nil, fmt.Errorf("slack: auth test: %w", err)
	}
	return &Notifier{client: c}, nil
}

// Post sends a plain-text message to a channel.
func (n *Notifier) Post(ctx context.Context, channelID, text string) error {
	_, _, err := n.client.PostMessageContext(ctx, channelID, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack: post to %s: %w", channelID, err)
	}
	return nil
}

// Close is a no-op; the Slack Web API client holds no connection.
func (n *Notifier) Close() error { return nil }

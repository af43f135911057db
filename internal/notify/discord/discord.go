// Package discord implements the notify.Notifier for Discord.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	Open() error
	Close() error
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts digests to a Discord channel over the gateway.
type Notifier struct {
	sess session
}

// New creates a Notifier and opens the gateway connection.
func New(botToken string) (*Notifier, error) {
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discord: new session: %w", err)
	}
	return newWithSession(s)
}

func newWithSession(s session) (*Notifier, error) {
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("discord: open gateway: %w", err)
	}
	return &Notifier{sess: s}, nil
}

// Post sends a plain-text message to a channel.
func (n *Notifier) Post(ctx context.Context, channelID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.sess.ChannelMessageSend(channelID, text); err != nil {
		return fmt.Errorf("discord: post to %s: %w", channelID, err)
	}
	return nil
}

// Close shuts down the gateway connection.
func (n *Notifier) Close() error {
	return n.sess.Close()
}

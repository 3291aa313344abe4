// Package discord connects the relay to Discord via the Bot API using
// gateway events.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/nextwavelab/lingorelay/internal/relay"
)

// Channel owns the Discord session and feeds inbound messages to the
// relay dispatcher. It also serves as the dispatcher's topic lookup.
type Channel struct {
	session    *discordgo.Session
	dispatcher *relay.Dispatcher
	botUserID  string // populated on start
}

// New creates a Discord channel wired to a dispatcher built around it.
func New(token string, translator relay.Translator, defaults relay.LanguageConfig) (*Channel, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	// Guilds intent keeps the state cache populated with channel
	// metadata, so topic lookups rarely need a REST round trip.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	c := &Channel{session: session}
	c.dispatcher = relay.NewDispatcher(translator, c, defaults)
	return c, nil
}

// Start opens the Discord gateway connection and begins receiving events.
func (c *Channel) Start(_ context.Context) error {
	slog.Info("starting discord bot")

	c.session.AddHandler(c.handleReady)
	c.session.AddHandler(c.handleResumed)
	c.session.AddHandler(c.handleMessage)

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	// Fetch bot identity
	user, err := c.session.User("@me")
	if err != nil {
		c.session.Close()
		return fmt.Errorf("fetch discord bot identity: %w", err)
	}
	c.botUserID = user.ID

	slog.Info("discord bot connected", "username", user.Username, "id", user.ID)
	return nil
}

// Stop closes the Discord gateway connection.
func (c *Channel) Stop(_ context.Context) error {
	slog.Info("stopping discord bot")
	return c.session.Close()
}

// ChannelTopic returns the topic text for a channel, preferring the
// state cache over a REST lookup. ok is false when the channel cannot
// be fetched (network, permissions) — callers fall back to defaults.
func (c *Channel) ChannelTopic(channelID string) (string, bool) {
	if ch, err := c.session.State.Channel(channelID); err == nil {
		return ch.Topic, true
	}

	ch, err := c.session.Channel(channelID)
	if err != nil {
		slog.Debug("discord channel lookup failed", "channel_id", channelID, "error", err)
		return "", false
	}
	return ch.Topic, true
}

func (c *Channel) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord session ready", "username", r.User.Username)
}

func (c *Channel) handleResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	slog.Info("discord session resumed")
}

// handleMessage adapts an inbound gateway event for the dispatcher.
// discordgo runs each handler on its own goroutine, so every message is
// an independent unit of work.
func (c *Channel) handleMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == c.botUserID {
		return
	}

	msg := relay.Message{
		ID:          m.ID,
		ChannelID:   m.ChannelID,
		Content:     m.Content,
		AuthorIsBot: m.Author.Bot,
	}

	c.dispatcher.Handle(context.Background(), msg, func(text string) error {
		_, err := c.session.ChannelMessageSendReply(m.ChannelID, text, m.Reference())
		return err
	})
}

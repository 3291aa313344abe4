package relay

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// failureNotice is the fixed reply when the primary translation call
// fails. Status codes and transport detail stay in the logs.
const failureNotice = "Failed to translate using DeepL"

// Dispatcher routes inbound messages through filtering, language
// resolution, translation, and reply composition. One Handle call is one
// independent unit of work; the Dispatcher itself holds no mutable
// state, so units may run concurrently.
type Dispatcher struct {
	translator Translator
	topics     TopicLookup
	defaults   LanguageConfig
	tracer     trace.Tracer
}

// NewDispatcher creates a Dispatcher. defaults is the process-wide
// language pair used when a channel topic carries no configuration.
func NewDispatcher(translator Translator, topics TopicLookup, defaults LanguageConfig) *Dispatcher {
	return &Dispatcher{
		translator: translator,
		topics:     topics,
		defaults:   defaults.Normalized(),
		tracer:     otel.Tracer("lingorelay/relay"),
	}
}

// Handle processes one inbound message end to end and delivers the
// outcome through reply. Errors are contained here: nothing a single
// message does can affect another message's handling.
func (d *Dispatcher) Handle(ctx context.Context, msg Message, reply func(text string) error) {
	if !d.shouldTranslate(msg) {
		return
	}

	ctx, span := d.tracer.Start(ctx, "relay.message",
		trace.WithAttributes(attribute.String("channel_id", msg.ChannelID)))
	defer span.End()

	logger := slog.With(
		"message_id", msg.ID,
		"channel_id", msg.ChannelID,
		"unit_id", uuid.NewString(),
	)

	cfg := d.defaults
	if topic, ok := d.topics.ChannelTopic(msg.ChannelID); ok {
		cfg = ResolveLanguageConfig(topic, d.defaults)
	} else {
		logger.Debug("channel topic unavailable, using default languages")
	}

	primary, err := d.translator.Translate(ctx, msg.Content, cfg.TargetLang)
	if err != nil {
		logger.Error("translation failed", "error", err)
		if rerr := reply(failureNotice); rerr != nil {
			logger.Error("failed to reply failure notice", "error", rerr)
		}
		return
	}

	text, ok := ComposeReply(ctx, d.translator, primary, cfg, msg.Content)
	if !ok {
		return
	}

	if err := reply(text); err != nil {
		logger.Error("failed to reply translation result", "error", err)
	}
}

// shouldTranslate applies the short-circuit candidate filters: messages
// from automated accounts, empty content (image-only posts), and
// URL-only content are not worth translating.
func (d *Dispatcher) shouldTranslate(msg Message) bool {
	if msg.AuthorIsBot || msg.Content == "" {
		return false
	}
	if u, err := url.ParseRequestURI(msg.Content); err == nil && u.Scheme != "" && u.Host != "" {
		return false
	}
	return true
}

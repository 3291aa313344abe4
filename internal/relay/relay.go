// Package relay implements the translation routing decision engine:
// per-channel language resolution, the reply composition policy, and the
// message dispatch pipeline that ties them to a chat platform.
package relay

import "context"

// Translation is a single translated text with the language the
// translation service detected the input as written in.
type Translation struct {
	Text               string
	DetectedSourceLang string
}

// Translator issues exactly one translation call per invocation.
// A call may return zero, one, or many translations; only the
// single-result case is a supported path for the relay.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) ([]Translation, error)
}

// TranslateFunc adapts a function to the Translator interface.
type TranslateFunc func(ctx context.Context, text, targetLang string) ([]Translation, error)

func (f TranslateFunc) Translate(ctx context.Context, text, targetLang string) ([]Translation, error) {
	return f(ctx, text, targetLang)
}

// Message is one inbound chat message the relay may translate.
type Message struct {
	ID          string
	ChannelID   string
	Content     string
	AuthorIsBot bool
}

// TopicLookup fetches the current topic text for a channel.
// ok is false when the channel or its topic is unavailable.
type TopicLookup interface {
	ChannelTopic(channelID string) (topic string, ok bool)
}

// TopicLookupFunc adapts a function to the TopicLookup interface.
type TopicLookupFunc func(channelID string) (string, bool)

func (f TopicLookupFunc) ChannelTopic(channelID string) (string, bool) {
	return f(channelID)
}

package relay

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// LanguageConfig is the language pair a channel translates between:
// DefaultLang is the channel's home language, TargetLang the language
// foreign messages are translated into. Both are upper-case codes and
// always populated.
type LanguageConfig struct {
	DefaultLang string
	TargetLang  string
}

// Normalized returns the config with both codes upper-cased.
func (c LanguageConfig) Normalized() LanguageConfig {
	return LanguageConfig{
		DefaultLang: strings.ToUpper(c.DefaultLang),
		TargetLang:  strings.ToUpper(c.TargetLang),
	}
}

// topicConfig mirrors the JSON object channel operators embed in the
// channel topic to override the process-wide language pair.
type topicConfig struct {
	DefaultLang string `json:"default_lang"`
	TargetLang  string `json:"target_lang"`
}

// ResolveLanguageConfig derives the channel language pair from the topic
// text. A topic that is empty, not a JSON object, or missing either
// field falls back to defaults — silently, so a malformed topic never
// blocks translation.
func ResolveLanguageConfig(topic string, defaults LanguageConfig) LanguageConfig {
	if strings.TrimSpace(topic) == "" {
		return defaults
	}

	var tc topicConfig
	if err := json.Unmarshal([]byte(topic), &tc); err != nil {
		slog.Debug("channel topic is not a language config, using defaults", "error", err)
		return defaults
	}
	if tc.DefaultLang == "" || tc.TargetLang == "" {
		slog.Debug("channel topic config incomplete, using defaults")
		return defaults
	}

	return LanguageConfig{DefaultLang: tc.DefaultLang, TargetLang: tc.TargetLang}.Normalized()
}

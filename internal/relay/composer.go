package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ComposeReply decides the reply for a primary translation result.
// primary is the result of translating originalText to cfg.TargetLang.
// At most one follow-up ("reverse") call is issued through tr, always to
// cfg.DefaultLang. Returns the reply text and ok=false when no reply
// should be sent.
//
// Three cases, keyed on the detected source language:
//   - equals TargetLang: the message was already in the target language,
//     so render it into the home language instead.
//   - equals neither TargetLang nor DefaultLang: an unexpected third
//     language; surface the target translation and add a home-language
//     rendering.
//   - equals DefaultLang: the normal case, one line with the primary
//     translation.
//
// A reverse-call failure never suppresses the reply: the user still gets
// a notice naming the language that could not be produced.
func ComposeReply(ctx context.Context, tr Translator, primary []Translation, cfg LanguageConfig, originalText string) (string, bool) {
	// The request carried a single text, so anything but one translation
	// is an anomaly we don't know how to attribute.
	if len(primary) != 1 {
		slog.Warn("unexpected translation count for single-text request",
			"count", len(primary))
		return "", false
	}

	t := primary[0]
	detected := strings.ToUpper(t.DetectedSourceLang)

	switch {
	case detected == cfg.TargetLang:
		// Already in the target language; the primary result is identical
		// to the input, so only the reverse rendering is worth showing.
		reverse, err := tr.Translate(ctx, originalText, cfg.DefaultLang)
		if err != nil || len(reverse) == 0 {
			slog.Error("reverse translation failed",
				"target_lang", cfg.DefaultLang, "error", err)
			return fmt.Sprintf("Failed to translate `%s` to `%s`", originalText, cfg.DefaultLang), true
		}
		return fmt.Sprintf("`%s: ` %s", cfg.DefaultLang, reverse[0].Text), true

	case detected != cfg.DefaultLang:
		// Third language: show the target translation, annotated, and add
		// the home-language rendering.
		primaryLine := fmt.Sprintf("`%s: ` %s", cfg.TargetLang, t.Text)

		reverse, err := tr.Translate(ctx, originalText, cfg.DefaultLang)
		if err != nil || len(reverse) == 0 {
			slog.Error("reverse translation failed",
				"target_lang", cfg.DefaultLang, "error", err)
			return fmt.Sprintf("%s \nFailed to translate to `%s`", primaryLine, cfg.DefaultLang), true
		}
		return fmt.Sprintf("%s \n`%s: ` %s \n(translated from `%s`)",
			primaryLine, cfg.DefaultLang, reverse[0].Text, detected), true

	default:
		// Normal case: home language translated to the target language.
		return fmt.Sprintf("`%s: %s`", cfg.TargetLang, t.Text), true
	}
}

package relay

import (
	"context"
	"errors"
	"testing"
)

// fakeTranslator records reverse calls and replays canned results.
type fakeTranslator struct {
	calls   []fakeCall
	results []Translation
	err     error
}

type fakeCall struct {
	text       string
	targetLang string
}

func (f *fakeTranslator) Translate(_ context.Context, text, targetLang string) ([]Translation, error) {
	f.calls = append(f.calls, fakeCall{text: text, targetLang: targetLang})
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

var testConfig = LanguageConfig{DefaultLang: "EN", TargetLang: "JA"}

func TestComposeReply_NormalCase(t *testing.T) {
	tr := &fakeTranslator{}
	primary := []Translation{{Text: "こんにちは", DetectedSourceLang: "EN"}}

	got, ok := ComposeReply(context.Background(), tr, primary, testConfig, "Hello")
	if !ok {
		t.Fatal("expected a reply")
	}
	if want := "`JA: こんにちは`"; got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
	if len(tr.calls) != 0 {
		t.Errorf("expected no reverse call, got %d", len(tr.calls))
	}
}

func TestComposeReply_SourceEqualsTarget(t *testing.T) {
	t.Run("reverse success", func(t *testing.T) {
		tr := &fakeTranslator{results: []Translation{{Text: "Hello", DetectedSourceLang: "JA"}}}
		primary := []Translation{{Text: "こんにちは", DetectedSourceLang: "JA"}}

		got, ok := ComposeReply(context.Background(), tr, primary, testConfig, "こんにちは")
		if !ok {
			t.Fatal("expected a reply")
		}
		if want := "`EN: ` Hello"; got != want {
			t.Errorf("reply = %q, want %q", got, want)
		}
		if len(tr.calls) != 1 {
			t.Fatalf("expected exactly one reverse call, got %d", len(tr.calls))
		}
		if tr.calls[0].targetLang != "EN" || tr.calls[0].text != "こんにちは" {
			t.Errorf("reverse call = %+v, want original text to EN", tr.calls[0])
		}
	})

	t.Run("reverse failure", func(t *testing.T) {
		tr := &fakeTranslator{err: errors.New("boom")}
		primary := []Translation{{Text: "こんにちは", DetectedSourceLang: "JA"}}

		got, ok := ComposeReply(context.Background(), tr, primary, testConfig, "こんにちは")
		if !ok {
			t.Fatal("expected a failure notice, not suppression")
		}
		if want := "Failed to translate `こんにちは` to `EN`"; got != want {
			t.Errorf("reply = %q, want %q", got, want)
		}
		if len(tr.calls) != 1 {
			t.Errorf("expected exactly one reverse attempt, got %d", len(tr.calls))
		}
	})
}

func TestComposeReply_ThirdLanguage(t *testing.T) {
	t.Run("reverse success includes both lines", func(t *testing.T) {
		tr := &fakeTranslator{results: []Translation{{Text: "Hello", DetectedSourceLang: "NL"}}}
		primary := []Translation{{Text: "こんにちは", DetectedSourceLang: "NL"}}

		got, ok := ComposeReply(context.Background(), tr, primary, testConfig, "Hallo")
		if !ok {
			t.Fatal("expected a reply")
		}
		want := "`JA: ` こんにちは \n`EN: ` Hello \n(translated from `NL`)"
		if got != want {
			t.Errorf("reply = %q, want %q", got, want)
		}
		if len(tr.calls) != 1 || tr.calls[0].targetLang != "EN" {
			t.Errorf("expected one reverse call to EN, got %+v", tr.calls)
		}
	})

	t.Run("reverse failure keeps primary", func(t *testing.T) {
		tr := &fakeTranslator{err: errors.New("boom")}
		primary := []Translation{{Text: "こんにちは", DetectedSourceLang: "NL"}}

		got, ok := ComposeReply(context.Background(), tr, primary, testConfig, "Hallo")
		if !ok {
			t.Fatal("expected a reply")
		}
		want := "`JA: ` こんにちは \nFailed to translate to `EN`"
		if got != want {
			t.Errorf("reply = %q, want %q", got, want)
		}
	})
}

func TestComposeReply_AnomalousResults(t *testing.T) {
	tests := []struct {
		name    string
		primary []Translation
	}{
		{"multiple translations", []Translation{
			{Text: "a", DetectedSourceLang: "EN"},
			{Text: "b", DetectedSourceLang: "EN"},
		}},
		{"no translations", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTranslator{}
			got, ok := ComposeReply(context.Background(), tr, tt.primary, testConfig, "Hello")
			if ok {
				t.Errorf("expected suppression, got reply %q", got)
			}
			if len(tr.calls) != 0 {
				t.Errorf("expected no reverse call, got %d", len(tr.calls))
			}
		})
	}
}

func TestComposeReply_CaseInsensitiveDetection(t *testing.T) {
	tr := &fakeTranslator{}
	primary := []Translation{{Text: "こんにちは", DetectedSourceLang: "en"}}

	got, ok := ComposeReply(context.Background(), tr, primary, testConfig, "Hello")
	if !ok {
		t.Fatal("expected a reply")
	}
	if want := "`JA: こんにちは`"; got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

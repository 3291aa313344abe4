package relay

import "testing"

func TestResolveLanguageConfig(t *testing.T) {
	defaults := LanguageConfig{DefaultLang: "JA", TargetLang: "JA"}

	tests := []struct {
		name  string
		topic string
		want  LanguageConfig
	}{
		{
			"valid topic config",
			`{"default_lang": "EN", "target_lang": "JA"}`,
			LanguageConfig{DefaultLang: "EN", TargetLang: "JA"},
		},
		{
			"lower-case codes are normalized",
			`{"default_lang": "en", "target_lang": "de"}`,
			LanguageConfig{DefaultLang: "EN", TargetLang: "DE"},
		},
		{"empty topic", "", defaults},
		{"whitespace topic", "   \n\t", defaults},
		{"plain text topic", "general chat for the team", defaults},
		{"malformed JSON", `{"default_lang": "EN",`, defaults},
		{"missing target_lang", `{"default_lang": "EN"}`, defaults},
		{"missing default_lang", `{"target_lang": "JA"}`, defaults},
		{"empty field values", `{"default_lang": "", "target_lang": "JA"}`, defaults},
		{"JSON but not an object", `["EN", "JA"]`, defaults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLanguageConfig(tt.topic, defaults)
			if got != tt.want {
				t.Errorf("ResolveLanguageConfig(%q) = %+v, want %+v", tt.topic, got, tt.want)
			}
			if got.DefaultLang == "" || got.TargetLang == "" {
				t.Error("resolved config must always be fully populated")
			}
		})
	}
}

func TestLanguageConfigNormalized(t *testing.T) {
	got := LanguageConfig{DefaultLang: "en", TargetLang: "ja"}.Normalized()
	want := LanguageConfig{DefaultLang: "EN", TargetLang: "JA"}
	if got != want {
		t.Errorf("Normalized() = %+v, want %+v", got, want)
	}
}

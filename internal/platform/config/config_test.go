package config

import (
	"testing"
	"time"
)

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", 5 * time.Second},
		{"go_duration", "2m", 2 * time.Minute},
		{"bare_seconds", "30", 30 * time.Second},
		{"garbage", "soon", 5 * time.Second},
		{"negative", "-3s", 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := GetEnvDuration("TEST_DURATION", 5*time.Second); got != tt.want {
				t.Errorf("GetEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	if !GetEnvBool("TEST_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("TEST_BOOL", "nope")
	if GetEnvBool("TEST_BOOL", false) {
		t.Error("invalid value should fall back to false")
	}
}

func TestFromEnv_defaults(t *testing.T) {
	for _, k := range []string{"LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "GROQ_API_KEY", "OPENAI_API_KEY", "REQUEST_TIMEOUT", "ARTIFACT_MODE"} {
		t.Setenv(k, "")
	}
	s := FromEnv()
	if s.LLMProvider != ProviderOpenAI {
		t.Errorf("provider = %q, want %q", s.LLMProvider, ProviderOpenAI)
	}
	if s.LLMModel != defaultOpenAIModel {
		t.Errorf("model = %q", s.LLMModel)
	}
	if s.RequestTimeout != 90*time.Second {
		t.Errorf("request timeout = %v", s.RequestTimeout)
	}
	if s.ArtifactMode != ArtifactModeInline {
		t.Errorf("artifact mode = %q", s.ArtifactMode)
	}
}

func TestFromEnv_gemini_key_fallback(t *testing.T) {
	t.Setenv("LLM_PROVIDER", ProviderGemini)
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	s := FromEnv()
	if s.LLMAPIKey != "g-key" {
		t.Errorf("api key = %q, want g-key", s.LLMAPIKey)
	}
	if s.LLMModel != defaultGeminiModel {
		t.Errorf("model = %q, want %q", s.LLMModel, defaultGeminiModel)
	}
}

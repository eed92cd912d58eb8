package config

import "time"

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Artifact modes accepted in ARTIFACT_MODE.
const (
	ArtifactModeInline = "inline"
	ArtifactModeStore  = "store"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultOpenAIModel = "llama-3.3-70b-versatile"
	defaultGeminiModel = "gemini-1.5-flash"
)

// Settings is the process configuration shared by the server and the CLI.
type Settings struct {
	Port      string
	LogLevel  string
	LogFormat string

	LLMProvider string
	LLMBaseURL  string
	LLMAPIKey   string
	LLMModel    string
	LLMTimeout  time.Duration

	// RequestTimeout bounds one whole pipeline invocation.
	RequestTimeout time.Duration

	CatalogPath string

	ArtifactMode     string
	ArtifactCapacity int

	SkipMediaOnDegraded bool
}

// FromEnv reads Settings from the environment. Call Load first to pick up a .env file.
func FromEnv() Settings {
	provider := GetEnv("LLM_PROVIDER", ProviderOpenAI)

	model := defaultOpenAIModel
	keyFallback := GetEnv("GROQ_API_KEY", GetEnv("OPENAI_API_KEY", ""))
	if provider == ProviderGemini {
		model = defaultGeminiModel
		keyFallback = GetEnv("GEMINI_API_KEY", "")
	}

	return Settings{
		Port:                GetEnv("PORT", "8080"),
		LogLevel:            GetEnv("LOG_LEVEL", "info"),
		LogFormat:           GetEnv("LOG_FORMAT", "json"),
		LLMProvider:         provider,
		LLMBaseURL:          GetEnv("LLM_BASE_URL", defaultBaseURL),
		LLMAPIKey:           GetEnv("LLM_API_KEY", keyFallback),
		LLMModel:            GetEnv("LLM_MODEL", model),
		LLMTimeout:          GetEnvDuration("LLM_TIMEOUT", 40*time.Second),
		RequestTimeout:      GetEnvDuration("REQUEST_TIMEOUT", 90*time.Second),
		CatalogPath:         GetEnv("CATALOG_PATH", ""),
		ArtifactMode:        GetEnv("ARTIFACT_MODE", ArtifactModeInline),
		ArtifactCapacity:    GetEnvInt("ARTIFACT_CAPACITY", 256),
		SkipMediaOnDegraded: GetEnvBool("SKIP_MEDIA_ON_DEGRADED", false),
	}
}

// Package config loads the agent core's typed configuration record from the
// environment. Every recognised option is declared here as a struct field;
// anything the environment sets that the struct does not declare is simply
// never read, which is the typed-record replacement for the free-form
// configuration dicts this project's source language used.
package config

import (
	"strings"

	"github.com/wayfarer-ai/agent-core/internal/core"
	pkgredis "github.com/wayfarer-ai/agent-core/pkg/redis"
)

// AppConfig is the root configuration record, sourced from environment
// variables (optionally loaded from a .env file for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogPretty   bool   `envconfig:"LOG_PRETTY" default:"true"`

	HTTPAddr         string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"agent_core"`

	Redis    pkgredis.Config
	Database DatabaseConfig

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`

	Languages LanguageConfig
	Memory    MemoryConfig
	Router    RouterConfig
	ReasonAct ReasonActConfig
	Places    PlacesConfig
	Limits    ConcurrencyConfig
}

// Env parses the configured environment label using the shared enum.
func (c AppConfig) Env() core.Environment {
	return core.ParseEnvironment(c.Environment)
}

// DatabaseConfig configures the durable-store connection (postgres, via gorm).
type DatabaseConfig struct {
	URL          string `envconfig:"DATABASE_URL" required:"true"`
	MaxOpenConns int    `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
}

// LanguageConfig drives the context validator's language checks.
type LanguageConfig struct {
	Supported []string `envconfig:"SUPPORTED_LANGUAGES" default:"es,en,ca,gl"`
	Default   string   `envconfig:"DEFAULT_LANGUAGE" default:"es"`
	// Cities is the configured named-entity list PlanContextExtractor matches
	// against when extracting the "cities" plan slot.
	Cities []string `envconfig:"PLAN_CITIES" default:"zaragoza,madrid,barcelona,valencia,sevilla,bilbao,granada,malaga"`
}

func (l LanguageConfig) IsSupported(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, s := range l.Supported {
		if strings.ToLower(s) == lang {
			return true
		}
	}
	return false
}

// MemoryConfig sizes the conversation memory buffer (§4.2).
type MemoryConfig struct {
	MaxShortTermTurns    int     `envconfig:"MAX_SHORT_TERM_TURNS" default:"10"`
	MaxLongTermTurns     int     `envconfig:"MAX_LONG_TERM_TURNS" default:"50"`
	MaxTokens            int     `envconfig:"MAX_TOKENS" default:"4000"`
	CompressionThreshold float64 `envconfig:"COMPRESSION_THRESHOLD" default:"0.8"`
	CacheTTLMemorySec    int     `envconfig:"CACHE_TTL_MEMORY" default:"300"`
	CacheTTLIntentSec    int     `envconfig:"CACHE_TTL_INTENT" default:"3600"`
	CacheTTLPlacesSec    int     `envconfig:"CACHE_TTL_PLACES" default:"300"`
}

// RouterConfig carries the budget flag and the configured model-descriptor
// table the router looks labels up in (§4.5). BudgetMode and PreferredModel
// here are process-wide defaults; the orchestrator layers per-user
// preferences (loaded from the durable store) on top of them.
type RouterConfig struct {
	BudgetMode     bool   `envconfig:"BUDGET_MODE" default:"false"`
	PreferredModel string `envconfig:"PREFERRED_MODEL"`

	SmallFastModel   string `envconfig:"MODEL_SMALL_FAST" default:"gemini-2.5-flash-lite"`
	MidTierModel     string `envconfig:"MODEL_MID_TIER" default:"gemini-2.5-flash"`
	TopTierModel     string `envconfig:"MODEL_TOP_TIER" default:"gemini-2.5-pro"`
	ChitchatModel    string `envconfig:"MODEL_CHITCHAT" default:"gemini-2.5-flash-lite"`
	ClassifierModel  string `envconfig:"MODEL_CLASSIFIER" default:"gemini-2.5-flash-lite"`
	DefaultMaxTokens int    `envconfig:"MODEL_DEFAULT_MAX_TOKENS" default:"2000"`
}

// ReasonActConfig bounds the reason-act loop and per-call timeouts (§4.7, §5).
type ReasonActConfig struct {
	MaxIterations        int `envconfig:"MAX_REASONING_ITERATIONS" default:"6"`
	PerRequestDeadlineMs int `envconfig:"PER_REQUEST_DEADLINE_MS" default:"30000"`
	ModelCallTimeoutMs   int `envconfig:"MODEL_CALL_TIMEOUT_MS" default:"15000"`
	ToolCallTimeoutMs    int `envconfig:"TOOL_CALL_TIMEOUT_MS" default:"10000"`
}

// PlacesConfig addresses the outbound Places service collaborator (§6).
type PlacesConfig struct {
	APIBaseURL    string `envconfig:"PLACES_API_BASE_URL" required:"true"`
	APITimeoutMs  int    `envconfig:"PLACES_API_TIMEOUT_MS" default:"10000"`
	DefaultRadius int    `envconfig:"PLACES_DEFAULT_RADIUS_M" default:"3000"`
}

// ConcurrencyConfig sizes the process-wide backpressure semaphores (§5).
type ConcurrencyConfig struct {
	MaxConcurrentModels int `envconfig:"MAX_CONCURRENT_MODELS" default:"32"`
	MaxConcurrentTools  int `envconfig:"MAX_CONCURRENT_TOOLS" default:"64"`
	QueueLimit          int `envconfig:"QUEUE_LIMIT" default:"256"`
}

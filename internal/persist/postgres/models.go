package postgres

import "time"

// conversationTurnModel mirrors the conversation_turns table (§6).
type conversationTurnModel struct {
	ID            string `gorm:"column:id;primaryKey;type:uuid"`
	SessionID     string `gorm:"column:session_id;index:idx_session_created,priority:1"`
	UserID        string `gorm:"column:user_id"`
	Query         string `gorm:"column:query"`
	Response      string `gorm:"column:response"`
	Intent        string `gorm:"column:intent"`
	Model         string `gorm:"column:model"`
	InputTokens   int    `gorm:"column:input_tokens"`
	OutputTokens  int    `gorm:"column:output_tokens"`
	CostUSD       float64 `gorm:"column:cost_usd"`
	DurationMs    int    `gorm:"column:duration_ms"`
	CreatedAt     time.Time `gorm:"column:created_at;index:idx_session_created,priority:2"`
	ExtraMetadata []byte `gorm:"column:extra_metadata;type:jsonb"`
}

func (conversationTurnModel) TableName() string { return "conversation_turns" }

// userPreferencesModel mirrors the user_preferences table (§6).
type userPreferencesModel struct {
	UserID            string `gorm:"column:user_id;primaryKey"`
	PreferredLanguage string `gorm:"column:preferred_language"`
	PreferredModel    string `gorm:"column:preferred_model"`
	BudgetMode        bool   `gorm:"column:budget_mode"`
	Favorites         []byte `gorm:"column:favorites;type:jsonb"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (userPreferencesModel) TableName() string { return "user_preferences" }

// agentMetricsModel mirrors the agent_metrics table (§6), keyed by
// (bucket_hour, model).
type agentMetricsModel struct {
	BucketHour    time.Time `gorm:"column:bucket_hour;primaryKey"`
	Model         string    `gorm:"column:model;primaryKey"`
	Queries       int       `gorm:"column:queries"`
	Success       int       `gorm:"column:success"`
	Failure       int       `gorm:"column:failure"`
	TotalTokens   int64     `gorm:"column:total_tokens"`
	TotalCostUSD  float64   `gorm:"column:total_cost_usd"`
	AvgDurationMs int       `gorm:"column:avg_duration_ms"`
}

func (agentMetricsModel) TableName() string { return "agent_metrics" }

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageConfigIsSupportedCaseAndWhitespaceInsensitive(t *testing.T) {
	cfg := LanguageConfig{Supported: []string{"es", "en", "ca", "gl"}}

	assert.True(t, cfg.IsSupported("es"))
	assert.True(t, cfg.IsSupported("EN"))
	assert.True(t, cfg.IsSupported(" ca "))
	assert.False(t, cfg.IsSupported("fr"))
}

func TestAppConfigEnvParsesEnvironment(t *testing.T) {
	cfg := AppConfig{Environment: "production"}
	assert.True(t, cfg.Env().IsProduction())
}

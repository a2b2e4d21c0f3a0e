package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EVALUATION_TIMEOUT", "")
	t.Setenv("CONTEXT_TIMEOUT", "")
	t.Setenv("ADAPTIVE_ENGINE_URL", "http://localhost:8005/adaptive/evaluate")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Services.EvaluationTimeout)
	assert.Equal(t, 5*time.Second, cfg.Services.ContextTimeout)
	assert.Equal(t, "http://localhost:8005/adaptive/evaluate", cfg.Services.AdaptiveEngineURL)
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "go duration", value: "45s", want: 45 * time.Second},
		{name: "plain seconds", value: "12", want: 12 * time.Second},
		{name: "garbage falls back", value: "soon", want: time.Minute},
		{name: "empty falls back", value: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "17")
	assert.Equal(t, 17, getEnvAsInt("TEST_INT", 3))

	t.Setenv("TEST_INT", "x")
	assert.Equal(t, 3, getEnvAsInt("TEST_INT", 3))
}

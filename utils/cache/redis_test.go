package cache

import "testing"

func TestEnvRedisURLDefault(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	if got := EnvRedisURL(); got != "redis://localhost:6379/0" {
		t.Errorf("EnvRedisURL() = %q, want local default", got)
	}
}

func TestEnvRedisURLFromEnvironment(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache.internal:6379/2")

	if got := EnvRedisURL(); got != "redis://cache.internal:6379/2" {
		t.Errorf("EnvRedisURL() = %q, want value from environment", got)
	}
}

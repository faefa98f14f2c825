package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MAX_STEPS")
	os.Unsetenv("DEFAULT_TOOL_TIMEOUT_MS")
	os.Unsetenv("DEBUG")

	cfg := Load("")
	if cfg.MaxSteps != defaultMaxSteps {
		t.Errorf("MaxSteps = %d, want %d", cfg.MaxSteps, defaultMaxSteps)
	}
	if cfg.DefaultToolTimeoutMS != defaultToolTimeoutMS {
		t.Errorf("DefaultToolTimeoutMS = %d, want %d", cfg.DefaultToolTimeoutMS, defaultToolTimeoutMS)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("MAX_STEPS", "200")
	os.Setenv("DEFAULT_TOOL_TIMEOUT_MS", "9000")
	os.Setenv("DEBUG", "true")
	defer func() {
		os.Unsetenv("MAX_STEPS")
		os.Unsetenv("DEFAULT_TOOL_TIMEOUT_MS")
		os.Unsetenv("DEBUG")
	}()

	cfg := Load("")
	if cfg.MaxSteps != 200 {
		t.Errorf("MaxSteps = %d, want 200", cfg.MaxSteps)
	}
	if cfg.DefaultToolTimeoutMS != 9000 {
		t.Errorf("DefaultToolTimeoutMS = %d, want 9000", cfg.DefaultToolTimeoutMS)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoadInvalidValueFallsBackToDefault(t *testing.T) {
	os.Setenv("MAX_STEPS", "not-a-number")
	defer os.Unsetenv("MAX_STEPS")

	cfg := Load("")
	if cfg.MaxSteps != defaultMaxSteps {
		t.Errorf("MaxSteps = %d, want fallback %d", cfg.MaxSteps, defaultMaxSteps)
	}
}

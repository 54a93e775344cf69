package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfig_LayoutValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Layout.ContentHeight = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero content height should fail")
	}

	cfg = NewDefaultConfig()
	cfg.Layout.BaseCharWidthEm = 0.01
	if err := cfg.Validate(); err == nil {
		t.Fatal("tiny char width should fail")
	}
}

func TestConfig_TypographyValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Typography.FontSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero font size should fail")
	}

	cfg = NewDefaultConfig()
	cfg.Typography.LineHeight = 0.1
	if err := cfg.Validate(); err == nil {
		t.Fatal("line height below 0.5 should fail")
	}
}

func TestConfig_TuningValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Tuning.MinProgress = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero min progress should fail")
	}

	cfg = NewDefaultConfig()
	cfg.Tuning.WasteTolerance = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("waste tolerance above 1 should fail")
	}

	cfg = NewDefaultConfig()
	cfg.Tuning.EarlyStop = 0.2
	if err := cfg.Validate(); err == nil {
		t.Fatal("early stop below 0.5 should fail")
	}
}

func TestConfig_DefaultsConversion(t *testing.T) {
	cfg := NewDefaultConfig()
	d := cfg.Defaults()
	if d.Metrics != cfg.Layout {
		t.Error("metrics not carried into defaults")
	}
	if d.Typography != cfg.Typography {
		t.Error("typography not carried into defaults")
	}
	if d.Tuning != cfg.Tuning {
		t.Error("tuning not carried into defaults")
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	c := HTTPConfig{Port: 9090}
	if got := c.Address(); got != ":9090" {
		t.Errorf("Address() = %q, want :9090", got)
	}
}

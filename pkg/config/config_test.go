package config

import (
	"testing"
	"time"
)

func TestUpstreamValidate(t *testing.T) {
	u := UpstreamConfig{BaseURL: "https://api.example.com", Timeout: 10 * time.Second}
	if err := u.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u = UpstreamConfig{BaseURL: "not-a-url", Timeout: time.Second}
	if err := u.validate(); err == nil {
		t.Fatal("expected error for relative base url")
	}

	u = UpstreamConfig{BaseURL: "https://api.example.com", Timeout: 0}
	if err := u.validate(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestSessionTTL(t *testing.T) {
	s := SessionConfig{TTLMinutes: 60}
	if got := s.TTL(); got != time.Hour {
		t.Fatalf("expected 1h, got %s", got)
	}
	s = SessionConfig{TTLMinutes: 0}
	if got := s.TTL(); got != 0 {
		t.Fatalf("expected zero TTL, got %s", got)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	a := AppConfig{Env: "Development"}
	if !a.IsDev() || a.IsProd() {
		t.Fatal("expected dev env")
	}
	a = AppConfig{Env: "PRODUCTION"}
	if !a.IsProd() || a.IsDev() {
		t.Fatal("expected prod env")
	}
}

func TestStripeEnvironmentNormalization(t *testing.T) {
	s := StripeConfig{Env: " Test "}
	if s.Environment() != "test" {
		t.Fatalf("unexpected env %q", s.Environment())
	}
	s = StripeConfig{}
	if s.Environment() != "test" {
		t.Fatalf("expected test default, got %q", s.Environment())
	}
}

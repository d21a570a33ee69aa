package config

import (
	"testing"
	"time"
)

// The package directory carries no config.yaml, so Load falls back to the
// built-in defaults.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("server address = %q", cfg.Server.Address)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 || cfg.DB.Name != "giochi" {
		t.Errorf("db defaults = %+v", cfg.DB)
	}
	if cfg.Auth.JWTSecret == "" || cfg.Auth.TokenTTLHours != 240 {
		t.Errorf("auth defaults = %+v", cfg.Auth)
	}

	if cfg.Game.SweepInterval != 30*time.Second {
		t.Errorf("sweep interval = %v", cfg.Game.SweepInterval)
	}
	if cfg.Game.LivenessTimeout != time.Minute {
		t.Errorf("liveness timeout = %v", cfg.Game.LivenessTimeout)
	}
	if !cfg.Game.AllowZeroClue {
		t.Error("zero clues should be allowed by default")
	}
	if cfg.Game.ScopaScoring != "simple" {
		t.Errorf("scopa scoring = %q", cfg.Game.ScopaScoring)
	}
	if cfg.Game.RoomCodeLength != 6 {
		t.Errorf("room code length = %d", cfg.Game.RoomCodeLength)
	}
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Shop.Locale != "fr-SN" || cfg.Shop.CurrencySuffix != "F" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Shop.WhatsAppNumber != "221778012731" || cfg.Shop.PageSize != 12 {
		t.Errorf("unexpected shop defaults %+v", cfg.Shop)
	}
	if cfg.Shop.PersistTimeout != 5*time.Second {
		t.Errorf("expected 5s persist timeout, got %s", cfg.Shop.PersistTimeout)
	}
	if cfg.Drivers.Catalog != DriverMemory || cfg.Drivers.Slot != DriverMemory || cfg.Drivers.Identity != ProviderStatic {
		t.Errorf("unexpected drivers %+v", cfg.Drivers)
	}
	if cfg.Images.MaxBytes != 5<<20 {
		t.Errorf("unexpected image limit %d", cfg.Images.MaxBytes)
	}
	if cfg.Redis.DedupTTL != time.Hour || cfg.Redis.Password != "" {
		t.Errorf("unexpected redis defaults %+v", cfg.Redis)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":              "9090",
		"CATALOG_DRIVER":    "mongo",
		"SLOT_DRIVER":       "redis",
		"IDENTITY_PROVIDER": "remote",
		"PAGE_SIZE":         "24",
		"LOG_PRETTY":        "true",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Shop.PageSize != 24 || !cfg.LogPretty {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown catalog driver": {"CATALOG_DRIVER": "postgres"},
		"unknown slot driver":    {"SLOT_DRIVER": "etcd"},
		"remote without mongo":   {"IDENTITY_PROVIDER": "remote"},
		"production no secret":   {"ENV": "production"},
		"zero page size":         {"PAGE_SIZE": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

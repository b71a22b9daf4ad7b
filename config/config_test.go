package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewConfigDefaultsAreValid(t *testing.T) {
	cfg := NewConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "https://www.amazon.com/product-reviews/B0BSHF7WHW", cfg.StartURL())
}

func TestHeadersMap(t *testing.T) {
	h := NewConfig().Headers.Map()
	assert.Equal(t, "1", h["DNT"])
	assert.Equal(t, "keep-alive", h["Connection"])
	assert.Contains(t, h["User-Agent"], "Mozilla/5.0")
	assert.Len(t, h, 7)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	l := zap.NewExample()
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), l)
	assert.NoError(t, err)
	assert.Equal(t, NewConfig().MaxPages, cfg.MaxPages)
}

func TestLoadOverlaysTomlFile(t *testing.T) {
	l := zap.NewExample()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "product_id = \"B0OTHER\"\nmax_pages = 4\ndelay_min = 1.0\ndelay_max = 2.5\n"
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path, l)
	assert.NoError(t, err)
	assert.Equal(t, "B0OTHER", cfg.ProductID)
	assert.Equal(t, 4, cfg.MaxPages)
	assert.Equal(t, 1.0, cfg.DelayMin)
	assert.Equal(t, 2.5, cfg.DelayMax)
	// untouched fields keep their defaults
	assert.Equal(t, NewConfig().Site, cfg.Site)
}

func TestLoadEnvironmentOverlay(t *testing.T) {
	l := zap.NewExample()
	t.Setenv("REVIEWS_MAX_PAGES", "2")
	t.Setenv("REVIEWS_OUT_FILE", "env_reviews.txt")

	cfg, err := Load("", l)
	assert.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.Equal(t, "env_reviews.txt", cfg.OutFile)
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty product id", func(c *Config) { c.ProductID = "" }},
		{"zero max pages", func(c *Config) { c.MaxPages = 0 }},
		{"negative delay min", func(c *Config) { c.DelayMin = -1 }},
		{"max below min", func(c *Config) { c.DelayMin = 5; c.DelayMax = 3 }},
		{"zero timeout", func(c *Config) { c.ReqTimeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAllowsEqualBounds(t *testing.T) {
	cfg := NewConfig()
	cfg.DelayMin = 4
	cfg.DelayMax = 4
	assert.NoError(t, cfg.Validate())
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Headers is the fixed, browser-like fingerprint sent with every request.
// It is static for the lifetime of the process.
type Headers struct {
	UserAgent               string `toml:"user_agent" envconfig:"USER_AGENT"`
	Accept                  string `toml:"accept" envconfig:"ACCEPT"`
	AcceptLanguage          string `toml:"accept_language" envconfig:"ACCEPT_LANGUAGE"`
	Referer                 string `toml:"referer" envconfig:"REFERER"`
	DNT                     string `toml:"dnt" envconfig:"DNT"`
	Connection              string `toml:"connection" envconfig:"CONNECTION"`
	UpgradeInsecureRequests string `toml:"upgrade_insecure_requests" envconfig:"UPGRADE_INSECURE_REQUESTS"`
}

// Map renders the header set in the form the HTTP client consumes.
func (h Headers) Map() map[string]string {
	return map[string]string{
		"User-Agent":                h.UserAgent,
		"Accept":                    h.Accept,
		"Accept-Language":           h.AcceptLanguage,
		"Referer":                   h.Referer,
		"DNT":                       h.DNT,
		"Connection":                h.Connection,
		"Upgrade-Insecure-Requests": h.UpgradeInsecureRequests,
	}
}

type Config struct {
	ProductID  string  `toml:"product_id" envconfig:"PRODUCT_ID"`
	Site       string  `toml:"site" envconfig:"SITE"`
	MaxPages   int     `toml:"max_pages" envconfig:"MAX_PAGES"`
	DelayMin   float64 `toml:"delay_min" envconfig:"DELAY_MIN"`   //in seconds
	DelayMax   float64 `toml:"delay_max" envconfig:"DELAY_MAX"`   //in seconds
	ReqTimeout int     `toml:"req_timeout" envconfig:"REQ_TIMEOUT"` //in seconds
	OutFile    string  `toml:"out_file" envconfig:"OUT_FILE"`
	Headers    Headers `toml:"headers"`
}

func NewConfig() *Config {
	return &Config{
		ProductID:  "B0BSHF7WHW",
		Site:       "https://www.amazon.com",
		MaxPages:   10,
		DelayMin:   3,
		DelayMax:   7,
		ReqTimeout: 30,
		OutFile:    "amazon_reviews.txt",
		Headers: Headers{
			UserAgent:               "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Accept:                  "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			AcceptLanguage:          "en-US,en;q=0.5",
			Referer:                 "https://www.amazon.com/",
			DNT:                     "1",
			Connection:              "keep-alive",
			UpgradeInsecureRequests: "1",
		},
	}
}

// Load overlays the defaults from NewConfig with the toml file at path
// (when it exists) and with REVIEWS_* environment variables, reading a
// .env file first when one is present.
func Load(path string, logger *zap.Logger) (*Config, error) {
	cfg := NewConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("decode config file %s: %w", path, err)
			}
			logger.Debug("can't find configs file. using default values", zap.String("path", path))
		}
	}
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	if err := envconfig.Process("reviews", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// Validate is called after all overlays (file, environment, flags) applied.
func (c *Config) Validate() error {
	if c.ProductID == "" {
		return fmt.Errorf("product id must not be empty")
	}
	if c.Site == "" {
		return fmt.Errorf("site must not be empty")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("max pages must be positive, got %d", c.MaxPages)
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fmt.Errorf("delay bound must satisfy 0 <= min <= max, got [%v, %v]", c.DelayMin, c.DelayMax)
	}
	if c.ReqTimeout < 1 {
		return fmt.Errorf("request timeout must be positive, got %d", c.ReqTimeout)
	}
	return nil
}

// StartURL returns the first page of the product's review listing.
func (c *Config) StartURL() string {
	return fmt.Sprintf("%s/product-reviews/%s", strings.TrimSuffix(c.Site, "/"), c.ProductID)
}

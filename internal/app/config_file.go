package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Keywords        []string `yaml:"keywords" json:"keywords"`
	PriorityDomains []string `yaml:"priorityDomains" json:"priorityDomains"`
	SiteScope       []string `yaml:"siteScope" json:"siteScope"`

	Search struct {
		ResultCap  int     `yaml:"resultCap" json:"resultCap"`
		RatePerSec float64 `yaml:"ratePerSec" json:"ratePerSec"`
		File       string  `yaml:"file" json:"file"`
	} `yaml:"search" json:"search"`

	Digest struct {
		MaxDisplayed int    `yaml:"maxDisplayed" json:"maxDisplayed"`
		MaxLength    int    `yaml:"maxLength" json:"maxLength"`
		Timezone     string `yaml:"timezone" json:"timezone"`
		Schedule     string `yaml:"schedule" json:"schedule"`
		Archive      string `yaml:"archive" json:"archive"`
	} `yaml:"digest" json:"digest"`

	Telegram struct {
		APIURL string `yaml:"apiURL" json:"apiURL"`
		ChatID string `yaml:"chatID" json:"chatID"`
	} `yaml:"telegram" json:"telegram"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays the values set in fc onto cfg. Zero values in the
// file leave cfg untouched, so defaults survive a partial file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(fc.Keywords) > 0 {
		cfg.Keywords = append([]string(nil), fc.Keywords...)
	}
	if len(fc.PriorityDomains) > 0 {
		cfg.PriorityDomains = append([]string(nil), fc.PriorityDomains...)
	}
	if len(fc.SiteScope) > 0 {
		cfg.SiteScope = append([]string(nil), fc.SiteScope...)
	}

	if fc.Search.ResultCap > 0 {
		cfg.ResultCap = fc.Search.ResultCap
	}
	if fc.Search.RatePerSec > 0 {
		cfg.RatePerSec = fc.Search.RatePerSec
	}
	if fc.Search.File != "" {
		cfg.SearchFile = fc.Search.File
	}

	if fc.Digest.MaxDisplayed > 0 {
		cfg.MaxDisplayed = fc.Digest.MaxDisplayed
	}
	if fc.Digest.MaxLength > 0 {
		cfg.MaxLength = fc.Digest.MaxLength
	}
	if fc.Digest.Timezone != "" {
		cfg.Timezone = fc.Digest.Timezone
	}
	if fc.Digest.Schedule != "" {
		cfg.Schedule = fc.Digest.Schedule
	}
	if fc.Digest.Archive != "" {
		cfg.ArchivePath = fc.Digest.Archive
	}

	if fc.Telegram.APIURL != "" {
		cfg.TelegramAPIURL = fc.Telegram.APIURL
	}
	if fc.Telegram.ChatID != "" {
		cfg.TelegramChatID = fc.Telegram.ChatID
	}
}

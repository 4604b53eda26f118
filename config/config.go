package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const (
	OutputTable = "table"
	OutputLog   = "log"
)

type Config struct {
	Files              []string `json:"files"`
	MaxSubsets         int      `json:"maxSubsets"`
	DetectIncorrect    bool     `json:"detectIncorrect"`
	LogLevel           string   `json:"logLevel"`
	LogFile            string   `json:"logFile"`
	MetricsAddress     string   `json:"metricsAddress"`
	Concurrency        int      `json:"concurrency"`
	HTTPTimeoutSeconds int      `json:"httpTimeoutSeconds"`
	Output             string   `json:"output"`
}

func (c *Config) VerifyRequired() error {
	if len(c.Files) == 0 {
		return errors.New("required files missing")
	}
	if c.MaxSubsets <= 0 {
		return errors.New("maxSubsets must be positive")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return errors.New("httpTimeoutSeconds must be positive")
	}
	if c.Output != OutputTable && c.Output != OutputLog {
		return fmt.Errorf("unknown output %q", c.Output)
	}
	return nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func ReadConfigJson(configPath string) (*Config, error) {
	config := GetDefaultConfig()
	log.Debugf("ConfigPath=%s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		log.WithError(err).Error("OpenConfigFile")
		return nil, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(config)
	if err != nil {
		log.WithError(err).Error("DecodeConfig")
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return config, nil
}

func GetDefaultConfig() *Config {
	files := make([]string, len(DefaultFiles))
	copy(files, DefaultFiles)
	return &Config{
		Files:              files,
		MaxSubsets:         DefaultMaxSubsets,
		DetectIncorrect:    true,
		LogLevel:           DefaultLogLevel,
		Concurrency:        DefaultConcurrency,
		HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds,
		Output:             OutputTable,
	}
}

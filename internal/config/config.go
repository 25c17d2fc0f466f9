package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "MISINFO_SCANNER_CONFIG"
	portEnv        = "PORT"
	hfTokenEnv     = "HF_API_TOKEN"
	hfModelEnv     = "HF_MODEL"
	hfAIModelEnv   = "HF_AI_MODEL"
	databaseDSNEnv = "DATABASE_DSN"
	logLevelEnv    = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Inference InferenceConfig `yaml:"inference"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// AnalysisConfig bounds a single analysis request.
type AnalysisConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"`
	MaxTextLength  int `yaml:"maxTextLength"`
}

// Timeout resolves the configured deadline for one analysis.
func (a AnalysisConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// InferenceConfig describes the remote classification capability.
type InferenceConfig struct {
	Endpoint            string `yaml:"endpoint"`
	Token               string `yaml:"token"`
	ClassificationModel string `yaml:"classificationModel"`
	AIDetectionModel    string `yaml:"aiDetectionModel"`
}

// DatabaseConfig describes the optional history store connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		c.Server.Address = ":" + v
	}

	if v := os.Getenv(hfTokenEnv); v != "" {
		c.Inference.Token = v
	}

	if v := os.Getenv(hfModelEnv); v != "" {
		c.Inference.ClassificationModel = v
	}

	if v := os.Getenv(hfAIModelEnv); v != "" {
		c.Inference.AIDetectionModel = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Address != "" {
		base.Server = override.Server
	}

	if override.Analysis.TimeoutSeconds > 0 {
		base.Analysis.TimeoutSeconds = override.Analysis.TimeoutSeconds
	}
	if override.Analysis.MaxTextLength > 0 {
		base.Analysis.MaxTextLength = override.Analysis.MaxTextLength
	}

	if override.Inference.Endpoint != "" {
		base.Inference.Endpoint = override.Inference.Endpoint
	}
	if override.Inference.Token != "" {
		base.Inference.Token = override.Inference.Token
	}
	if override.Inference.ClassificationModel != "" {
		base.Inference.ClassificationModel = override.Inference.ClassificationModel
	}
	if override.Inference.AIDetectionModel != "" {
		base.Inference.AIDetectionModel = override.Inference.AIDetectionModel
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Address: ":3001"},
		Analysis: AnalysisConfig{
			TimeoutSeconds: 10,
			MaxTextLength:  5000,
		},
		Inference: InferenceConfig{
			Endpoint:            "https://api-inference.huggingface.co",
			Token:               "",
			ClassificationModel: "facebook/bart-large-mnli",
			AIDetectionModel:    "roberta-base-openai-detector",
		},
		Database: DatabaseConfig{DSN: ""},
		Logging:  LoggingConfig{Level: "info"},
	}
}

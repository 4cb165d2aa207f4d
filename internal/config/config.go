package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port           int              `json:"port"`
	AllowedOrigins []string         `json:"allowed_origins"`
	LogConfig      logger.LogConfig `json:"log_config"`
	AI             AIConfig         `json:"ai"`
	RAG            RAGConfig        `json:"rag"`
	Session        SessionConfig    `json:"session"`
	Transcript     TranscriptConfig `json:"transcript"`
}

type AIConfig struct {
	Provider      string                 `json:"provider"`
	GenerateModel string                 `json:"generate_model"`
	EmbedModel    string                 `json:"embed_model"`
	Timeout       int                    `json:"timeout"`
	Data          map[string]interface{} `json:"data"`
}

type RAGConfig struct {
	TargetChars  int `json:"target_chars"`
	OverlapChars int `json:"overlap_chars"`
	DefaultK     int `json:"default_k"`
	CandidateK   int `json:"candidate_k"`
}

type SessionConfig struct {
	Capacity int    `json:"capacity"`
	TTLHours int    `json:"ttl_hours"`
	StatSpec string `json:"stat_spec"`
}

type TranscriptConfig struct {
	Timeout int `json:"timeout"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.GenerateModel == "" {
		cfg.AI.GenerateModel = "gemini-2.0-flash"
	}
	if cfg.AI.EmbedModel == "" {
		cfg.AI.EmbedModel = "text-embedding-004"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 30
	}
	if cfg.AI.Data == nil {
		cfg.AI.Data = map[string]interface{}{}
	}
	fillAPIKeyFromEnv(&cfg.AI)
	if cfg.RAG.TargetChars == 0 {
		cfg.RAG.TargetChars = 1000
	}
	if cfg.RAG.OverlapChars == 0 {
		cfg.RAG.OverlapChars = 200
	}
	if cfg.RAG.OverlapChars >= cfg.RAG.TargetChars {
		return nil, fmt.Errorf("rag.overlap_chars must be smaller than rag.target_chars")
	}
	if cfg.RAG.DefaultK == 0 {
		cfg.RAG.DefaultK = 4
	}
	if cfg.RAG.CandidateK == 0 {
		cfg.RAG.CandidateK = 6
	}
	if cfg.Session.Capacity == 0 {
		cfg.Session.Capacity = 512
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 6
	}
	if cfg.Session.StatSpec == "" {
		cfg.Session.StatSpec = "*/10 * * * *"
	}
	if cfg.Transcript.Timeout == 0 {
		cfg.Transcript.Timeout = 10
	}
	return &cfg, nil
}

// fillAPIKeyFromEnv lets deployments pass the provider credential through
// the environment instead of the config file.
func fillAPIKeyFromEnv(ai *AIConfig) {
	if key, _ := ai.Data["api_key"].(string); key != "" {
		return
	}
	envKey := "GOOGLE_API_KEY"
	if ai.Provider == "openai" {
		envKey = "OPENAI_API_KEY"
	}
	if value := os.Getenv(envKey); value != "" {
		ai.Data["api_key"] = value
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

// DefaultAllowedModels lists the Groq models the chat endpoint accepts.
var DefaultAllowedModels = []string{
	"llama-3.3-70b-versatile",
	"deepseek-r1-distill-llama-70b",
}

type Config struct {
	Host   string
	Port   string
	UIPort string

	// Provider credentials. Not validated here: a missing key surfaces as an
	// upstream authentication failure on first use.
	GroqAPIKey   string
	GroqBaseURL  string
	TavilyAPIKey string
	TavilyURL    string

	AllowedModels    []string
	SearchMaxResults int
	AgentMaxSteps    int

	BackendURL string
	LogDir     string
}

// fileConfig is the optional YAML overlay pointed to by CONFIG_PATH.
type fileConfig struct {
	Host             string   `yaml:"host"`
	Port             string   `yaml:"port"`
	UIPort           string   `yaml:"ui_port"`
	AllowedModels    []string `yaml:"allowed_models"`
	SearchMaxResults int      `yaml:"search_max_results"`
	AgentMaxSteps    int      `yaml:"agent_max_steps"`
	BackendURL       string   `yaml:"backend_url"`
	LogDir           string   `yaml:"log_dir"`
}

// Load reads environment variables, optionally from a .env file if present.
// Values from the YAML file named by CONFIG_PATH are applied first; environment
// variables win over them.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Host:             "localhost",
		Port:             "8000",
		UIPort:           "8501",
		AllowedModels:    append([]string(nil), DefaultAllowedModels...),
		SearchMaxResults: 2,
		AgentMaxSteps:    25,
		BackendURL:       "http://localhost:8000/chat",
		LogDir:           "logs",
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.UIPort = getEnv("UI_PORT", cfg.UIPort)
	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	cfg.GroqBaseURL = os.Getenv("GROQ_BASE_URL")
	cfg.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	cfg.TavilyURL = os.Getenv("TAVILY_URL")
	cfg.SearchMaxResults = getEnvInt("SEARCH_MAX_RESULTS", cfg.SearchMaxResults)
	cfg.AgentMaxSteps = getEnvInt("AGENT_MAX_STEPS", cfg.AgentMaxSteps)
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)
	if v := os.Getenv("ALLOWED_MODELS"); v != "" {
		cfg.AllowedModels = splitList(v)
	}
	return cfg, nil
}

// Addr is the host:port the backend listens on.
func (c Config) Addr() string { return c.Host + ":" + c.Port }

// UIAddr is the host:port the client form listens on.
func (c Config) UIAddr() string { return c.Host + ":" + c.UIPort }

// HealthURL derives the liveness endpoint from the backend address.
func (c Config) HealthURL() string { return "http://" + c.Addr() + "/health" }

// IsModelAllowed reports whether name is on the allow-list.
func (c Config) IsModelAllowed(name string) bool {
	for _, m := range c.AllowedModels {
		if m == name {
			return true
		}
	}
	return false
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Host != "" {
		c.Host = fc.Host
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.UIPort != "" {
		c.UIPort = fc.UIPort
	}
	if len(fc.AllowedModels) > 0 {
		c.AllowedModels = fc.AllowedModels
	}
	if fc.SearchMaxResults > 0 {
		c.SearchMaxResults = fc.SearchMaxResults
	}
	if fc.AgentMaxSteps > 0 {
		c.AgentMaxSteps = fc.AgentMaxSteps
	}
	if fc.BackendURL != "" {
		c.BackendURL = fc.BackendURL
	}
	if fc.LogDir != "" {
		c.LogDir = fc.LogDir
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"console"`
	HTTP      HTTP   `yaml:"http"`
	LLM       LLM    `yaml:"llm"`
	Redis     Redis  `yaml:"redis"`
}

type HTTP struct {
	Addr           string        `yaml:"addr" env:"HTTP_ADDR" env-default:":42069"`
	AllowedOrigin  string        `yaml:"allowed-origin" env:"ALLOWED_ORIGIN" env-default:"http://localhost:5173"`
	RequestTimeout time.Duration `yaml:"request-timeout" env:"REQUEST_TIMEOUT" env-default:"60s"`
}

type LLM struct {
	Provider    string  `yaml:"provider" env:"LLM_PROVIDER" env-default:"gemini"`
	Temperature float32 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.4"`
	Gemini      Gemini  `yaml:"gemini"`
	Ollama      Ollama  `yaml:"ollama"`
	Vertex      Vertex  `yaml:"vertex"`
}

type Gemini struct {
	APIKey string `yaml:"api-key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
}

type Ollama struct {
	Model     string `yaml:"model" env:"OLLAMA_MODEL" env-default:"llama3.1"`
	ServerURL string `yaml:"server-url" env:"OLLAMA_SERVER_URL"`
}

type Vertex struct {
	Project  string `yaml:"project" env:"GOOGLE_CLOUD_PROJECT"`
	Location string `yaml:"location" env:"GOOGLE_CLOUD_LOCATION" env-default:"us-central1"`
	Model    string `yaml:"model" env:"VERTEX_MODEL" env-default:"gemini-2.0-flash"`
}

type Redis struct {
	Enabled  bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"10m"`
}

// Load reads the yaml file at path and applies environment overrides on top.
// A missing file is not an error; env and defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return cfg, nil
}

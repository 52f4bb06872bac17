package config

import "github.com/caarlos0/env/v10"

// Config centralizes the service configuration.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8000"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY,required"`
	LLMBaseURL    string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel      string `env:"LLM_MODEL" envDefault:"gpt-4o"`
	GitHubToken   string `env:"GITHUB_TOKEN"`
	GitHubOwner   string `env:"GH_OWNER"`
	GitHubRepo    string `env:"GH_REPO"`
	GitHubPath    string `env:"GH_PATH" envDefault:"logs.csv"`
	GitHubBranch  string `env:"GH_BRANCH" envDefault:"main"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLMin   int    `env:"CACHE_TTL_MINUTES" envDefault:"1440"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoggingEnabled reports whether the GitHub log append feature is
// configured. Any missing identifier disables it without affecting
// classification.
func (c *Config) LoggingEnabled() bool {
	return c.GitHubToken != "" && c.GitHubOwner != "" && c.GitHubRepo != ""
}

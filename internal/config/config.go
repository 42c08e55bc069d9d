package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Cohere struct {
		// Server-wide fallback key; optional, user keys take priority.
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"cohere"`

	Quota struct {
		FreeMonthlyCap  int `yaml:"free_monthly_cap"`
		ProMonthlyPrice int `yaml:"pro_monthly_price"`
	} `yaml:"quota"`

	RateLimit struct {
		GeneratePerHour    int `yaml:"generate_per_hour"`
		AuthPerQuarterHour int `yaml:"auth_per_quarter_hour"`
	} `yaml:"ratelimit"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	ClientURL string `yaml:"client_url"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml (or CONFIG_PATH) and then lets
// environment variables override the sensitive fields. A local .env is
// loaded first so development setups match production env wiring.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	} else if os.Getenv("DATABASE_URL") == "" {
		// Without a file we need at least the env essentials.
		log.Fatalf("Failed to open config file at %s: %v", configPath, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("COHERE_API_KEY"); v != "" {
		cfg.Cohere.APIKey = v
	}
	if v := os.Getenv("CLIENT_URL"); v != "" {
		cfg.ClientURL = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24 * 7
	}
	if cfg.Cohere.Model == "" {
		cfg.Cohere.Model = "c4ai-aya-expanse-32b"
	}
	if cfg.Quota.FreeMonthlyCap == 0 {
		cfg.Quota.FreeMonthlyCap = 10
	}
	if cfg.Quota.ProMonthlyPrice == 0 {
		cfg.Quota.ProMonthlyPrice = 49
	}
	if cfg.RateLimit.GeneratePerHour == 0 {
		cfg.RateLimit.GeneratePerHour = 20
	}
	if cfg.RateLimit.AuthPerQuarterHour == 0 {
		cfg.RateLimit.AuthPerQuarterHour = 10
	}
	if cfg.ClientURL == "" {
		cfg.ClientURL = "http://localhost:8080"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

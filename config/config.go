package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config armazena todas as configurações do serviço.
// Os campos são preenchidos a partir de variáveis de ambiente (e do arquivo .env, se existir).
type Config struct {
	// Geral
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `envconfig:"DATABASE_URL" required:"true"`
	DBTimeout   time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`

	// Cache (Redis)
	RedisAddr string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// Segurança (JWT)
	JWTSecretKey string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	TokenExpiry  time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`

	// Rate Limiting
	RateLimitMaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
	RateLimitPeriod      time.Duration `envconfig:"RATE_LIMIT_PERIOD" default:"1m"`

	// Servidor HTTP
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
}

// Load carrega o .env (opcional) e processa as variáveis de ambiente.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// As variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("erro de configuração: %w", err)
	}
	if cfg.DatabaseURL == "" || cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("erro de configuração: DATABASE_URL e JWT_SECRET_KEY devem ser definidas")
	}
	if cfg.RateLimitMaxRequests <= 0 {
		return nil, fmt.Errorf("erro de configuração: RATE_LIMIT_MAX_REQUESTS deve ser positivo")
	}
	return &cfg, nil
}

// LoadConfig carrega as configurações e encerra o processo se alguma variável obrigatória faltar.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	return cfg
}

// IsProduction informa se o serviço roda em produção.
func (c *Config) IsProduction() bool {
	return c != nil && c.Environment == "production"
}

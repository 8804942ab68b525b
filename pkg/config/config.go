package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTP
	Logger   Logger
	Postgres Postgres
	Auth     Auth
	Mailer   Mailer
	Kafka    Kafka
	Company  Company
	Invoice  Invoice
	Jobs     Jobs
}

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"8080"`
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL" envDefault:"168h"`
}

type Mailer struct {
	Host     string `env:"MAILER_HOST" envDefault:""`
	Port     int    `env:"MAILER_PORT" envDefault:"587"`
	Login    string `env:"MAILER_LOGIN" envDefault:""`
	Password string `env:"MAILER_PASSWORD" envDefault:""`
	From     string `env:"MAILER_FROM" envDefault:""`
	FromName string `env:"MAILER_FROM_NAME" envDefault:""`
}

type Kafka struct {
	Brokers          []string `env:"KAFKA_BROKERS" envDefault:""`
	InvoicePaidTopic string   `env:"KAFKA_INVOICE_PAID_TOPIC" envDefault:"invoice-paid"`
}

// Company is the issuer identity printed on invoice documents and e-mails.
type Company struct {
	Name    string `env:"COMPANY_NAME" envDefault:"Your Company Name"`
	Address string `env:"COMPANY_ADDRESS" envDefault:"Your Company Address"`
	Email   string `env:"COMPANY_EMAIL" envDefault:"contact@yourcompany.com"`
	Phone   string `env:"COMPANY_PHONE" envDefault:"+1 (555) 123-4567"`
}

type Invoice struct {
	NumberPrefix string `env:"INVOICE_PREFIX" envDefault:"INV"`
}

type Jobs struct {
	OverdueEnabled  bool          `env:"JOBS_OVERDUE_ENABLED" envDefault:"true"`
	OverdueInterval time.Duration `env:"JOBS_OVERDUE_INTERVAL" envDefault:"1h"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/cloud-ru/subscription-pricing-go/internal/calculations"
)

// Config содержит конфигурацию сервиса ценообразования
type Config struct {
	Port            int           `env:"PORT" envDefault:"8000"`
	ServiceName     string        `env:"OTEL_SERVICE_NAME" envDefault:"subscription-pricing"`
	OTELEndpoint    string        `env:"OTEL_ENDPOINT"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"INFO"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL        time.Duration `env:"REDIS_TTL" envDefault:"24h"`
	MemoryCache     bool          `env:"MEMORY_CACHE" envDefault:"false"`
	MaxCarPrice     float64       `env:"MAX_CAR_PRICE" envDefault:"1e10"`
	MaxOptionPrice  float64       `env:"MAX_OPTION_PRICE" envDefault:"1e9"`
	MaxSubsidy      float64       `env:"MAX_SUBSIDY" envDefault:"10000"`
	MaxTermMonths   int           `env:"MAX_TERM_MONTHS" envDefault:"84"`
	MaxTerms        int           `env:"MAX_TERMS" envDefault:"12"`
	BatchWorkers    int           `env:"BATCH_WORKERS" envDefault:"8"`
	ScheduleFile    string        `env:"PRICING_SCHEDULE_FILE"`
	SubsidyFile     string        `env:"SUBSIDY_FILE"`
	DefaultCarPrice float64       `env:"DEFAULT_CAR_PRICE" envDefault:"39510000"`
	InterestRate    float64       `env:"INTEREST_RATE" envDefault:"0.11"`
	ReportDate      string        `env:"REPORT_DATE"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = 1
	}
	return &cfg, nil
}

// Варианты кэша результатов
const (
	CacheNone   = ""
	CacheRedis  = "redis"
	CacheMemory = "memory"
)

// CacheBackend Redis при заданном REDIS_ADDR, иначе кэш в памяти при MEMORY_CACHE
func (c *Config) CacheBackend() string {
	switch {
	case c.RedisAddr != "":
		return CacheRedis
	case c.MemoryCache:
		return CacheMemory
	}
	return CacheNone
}

// PricingParams параметры расчета с учетом переопределений из окружения
func (c *Config) PricingParams() calculations.Params {
	params := calculations.DefaultParams()
	params.DefaultCarPrice = c.DefaultCarPrice
	params.InterestRate = c.InterestRate
	return params
}

// Schedule таблица лет: из PRICING_SCHEDULE_FILE или встроенная
func (c *Config) Schedule() (calculations.YearSchedule, error) {
	if c.ScheduleFile == "" {
		return calculations.DefaultSchedule(), nil
	}
	data, err := os.ReadFile(c.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}
	return calculations.ParseSchedule(data)
}

// Engine собирает движок расчета по конфигурации
func (c *Config) Engine() (*calculations.Engine, error) {
	schedule, err := c.Schedule()
	if err != nil {
		return nil, err
	}
	return calculations.NewEngine(c.PricingParams(), schedule)
}

// ReportDay дата отчета для имен файлов выгрузки; по умолчанию сегодня
func (c *Config) ReportDay(now time.Time) (time.Time, error) {
	if c.ReportDate == "" {
		return now, nil
	}
	day, err := time.Parse("2006-01-02", c.ReportDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid REPORT_DATE: %w", err)
	}
	return day, nil
}

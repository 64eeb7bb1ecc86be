package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Bot      Bot
	Sheets   Sheets
	Server   Server
	Store    Store
	Postgres Postgres
	Redis    Redis
	Reminder Reminder
}

// Бэкенд хранилища записей. По умолчанию таблица; Postgres — для установки
// без Google-аккаунта.
type Store struct {
	Backend     string `env:"STORE_BACKEND" envDefault:"sheets"`
	IDAllocator string `env:"ID_ALLOCATOR" envDefault:"read-max"`
}

const (
	StoreBackendSheets   = "sheets"
	StoreBackendPostgres = "postgres"

	IDAllocatorReadMax = "read-max"
	IDAllocatorRedis   = "redis"
)

// Load читает .env, если он есть, затем окружение. Четыре значения поверхности
// вебхука (токен, чат, таблица, ключ) намеренно не required: health-эндпоинт
// обязан отвечать и при пустой конфигурации, отсутствие значения всплывает
// при первом использовании.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}

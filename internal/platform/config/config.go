// Package config carga la configuración del proceso desde variables de entorno.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Loopback por default: la API es la frontera local del catálogo, no un
	// servicio de red.
	Addr string `env:"ADDR" envDefault:"127.0.0.1:8080"`
	// PORT reemplaza solo el puerto de Addr (compat con despliegues previos).
	Port string `env:"PORT"`

	DBPath string `env:"PETS_DB_PATH" envDefault:"shelter.db"`
	// Si viene, usa Postgres en vez del archivo SQLite.
	DBDSN string `env:"DB_DSN"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"pet-catalog"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if p := strings.TrimSpace(cfg.Port); p != "" {
		host, _, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ADDR %q: %w", cfg.Addr, err)
		}
		cfg.Addr = net.JoinHostPort(host, p)
	}

	if strings.TrimSpace(cfg.DBDSN) == "" && strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, fmt.Errorf("PETS_DB_PATH or DB_DSN is required")
	}
	return cfg, nil
}

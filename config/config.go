package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds the process configuration. Everything comes from the
// environment; a local .env file is loaded by main before Load runs.
type Config struct {
	ListenAddr    string `env:"LAVA_LISTEN,default=:8080"`
	DatabasePath  string `env:"LAVA_DB_PATH,default=./lavanderia.db"`
	ShopWhatsApp  string `env:"LAVA_WHATSAPP,default=51999999999"`
	ShopAddress   string `env:"LAVA_DIRECCION,default=Jr. Dos de Mayo 123 - Huánuco"`
	PromoBanner   string `env:"LAVA_PROMO,default=Martes: perfumado GRATIS en lavados por kilo"`
	SessionSecret string `env:"SECRET_KEY,default=dev-only-change-me"`
	Debug         bool   `env:"LAVA_DEBUG,default=false"`
}

// Load decodes the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envdecode.StrictDecode(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode environment: %w", err)
	}
	return c, nil
}

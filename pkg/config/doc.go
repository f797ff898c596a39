// Package config loads environment-based configuration into tagged structs.
//
// It combines godotenv (optional .env bootstrap for local development) with
// caarlos0/env struct parsing, and caches each configuration type so every
// component can call Load for its own config without coordinating with the
// rest of the process.
//
// # Usage
//
//	type Config struct {
//		Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Timeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
//		APIKey  string        `env:"API_KEY,required"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg) // panics if API_KEY is missing
//
// Required fields use the `,required` tag option; defaults use envDefault.
// MustLoad is the fail-fast variant for configuration the process cannot run
// without.
package config

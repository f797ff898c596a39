package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excelglass/contactrelay/pkg/config"
)

// Each test uses its own config type because Load caches per type.

func TestLoad(t *testing.T) {
	t.Run("parses tagged fields", func(t *testing.T) {
		type serverConfig struct {
			Addr    string        `env:"TEST_LOADER_ADDR" envDefault:":8080"`
			Timeout time.Duration `env:"TEST_LOADER_TIMEOUT" envDefault:"30s"`
		}

		t.Setenv("TEST_LOADER_ADDR", ":9090")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("missing required variable", func(t *testing.T) {
		type mailConfig struct {
			Password string `env:"TEST_LOADER_MISSING_PASSWORD,required"`
		}

		var cfg mailConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		type anyConfig struct{}
		var cfg *anyConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_LOADER_CACHED" envDefault:"first"`
		}

		t.Setenv("TEST_LOADER_CACHED", "first")
		var a cachedConfig
		require.NoError(t, config.Load(&a))
		assert.Equal(t, "first", a.Value)

		// A change to the environment is not observed after the first load.
		t.Setenv("TEST_LOADER_CACHED", "second")
		var b cachedConfig
		require.NoError(t, config.Load(&b))
		assert.Equal(t, "first", b.Value)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("returns populated config", func(t *testing.T) {
		type okConfig struct {
			Name string `env:"TEST_MUSTLOAD_NAME" envDefault:"contact-relay"`
		}
		var cfg okConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "contact-relay", cfg.Name)
	})

	t.Run("panics on failure", func(t *testing.T) {
		type badConfig struct {
			Token string `env:"TEST_MUSTLOAD_MISSING_TOKEN,required"`
		}
		var cfg badConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

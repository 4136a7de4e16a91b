package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tokoshop/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load([]string{"--env-file", ""})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, "contact_queue", cfg.ContactQueue)
	assert.Contains(t, cfg.Contact.RegisteredOffice, "Bhojpur")
	assert.Equal(t, "contact@bringsmile.in", cfg.Contact.Email)
	assert.Equal(t, "+91 9891989151", cfg.Contact.Phone)
	assert.Equal(t, "http://localhost:8080/api/v1/products", cfg.CatalogURL)
	assert.Equal(t, 30*time.Minute, cfg.ViewerTTL)
}

func TestLoad_CatalogURLFollowsPort(t *testing.T) {
	cfg, err := config.Load([]string{"--env-file", "", "--port", ":9090"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "http://localhost:9090/api/v1/products", cfg.CatalogURL)

	t.Setenv("APP_PORT", "127.0.0.1:7070")
	cfg, err = config.Load([]string{"--env-file", ""})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:7070/api/v1/products", cfg.CatalogURL)

	t.Setenv("CATALOG_URL", "http://catalog.internal/api/v1/products")
	cfg, err = config.Load([]string{"--env-file", "", "--port", ":9090"})
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.internal/api/v1/products", cfg.CatalogURL)
}

func TestFromViper_CatalogURLForListenAddress(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{":8080", "http://localhost:8080/api/v1/products"},
		{"0.0.0.0:3000", "http://localhost:3000/api/v1/products"},
		{"[::]:3000", "http://localhost:3000/api/v1/products"},
		{"shop.local:80", "http://shop.local:80/api/v1/products"},
		{"8081", "http://localhost:8081/api/v1/products"},
	}
	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			v.Set("APP_PORT", tt.port)
			cfg, err := config.FromViper(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.CatalogURL)
		})
	}
}

func TestLoad_EnvAndFlagPrecedence(t *testing.T) {
	t.Setenv("APP_PORT", ":9000")
	t.Setenv("CATALOG_TIMEOUT", "750ms")
	t.Setenv("DATABASE_DRIVER", "SQLite")

	cfg, err := config.Load([]string{"--env-file", "", "--port", ":9100"})
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.AppPort)
	assert.Equal(t, 750*time.Millisecond, cfg.CatalogTimeout)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
}

func TestLoad_DotenvAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONTACT_EMAIL=hello@toko.example\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CONTACT_EMAIL") })

	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("LOG_LEVEL: debug\nSEED_PRODUCTS: false\n"), 0o600))

	cfg, err := config.Load([]string{"--env-file", envFile, "--config", cfgFile})
	require.NoError(t, err)

	assert.Equal(t, "hello@toko.example", cfg.Contact.Email)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SeedProducts)
}

func TestLoad_MissingDotenvIsIgnored(t *testing.T) {
	_, err := config.Load([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")})
	assert.NoError(t, err)
}

func TestFromViper_Validation(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DRIVER", "mysql")
	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "DATABASE_DRIVER")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("CATALOG_TIMEOUT", "0s")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "CATALOG_TIMEOUT")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("LISTING_VIEWER_TTL", "-1m")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "LISTING_VIEWER_TTL")
}

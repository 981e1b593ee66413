package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/pkg/config"
)

type testConfig struct {
	Name  string `env:"LOGIBOT_TEST_NAME" envDefault:"logibot"`
	Limit int    `env:"LOGIBOT_TEST_LIMIT" envDefault:"10"`
}

type requiredConfig struct {
	Token string `env:"LOGIBOT_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "logibot", cfg.Name)
	assert.Equal(t, 10, cfg.Limit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LOGIBOT_TEST_ENV_VALUE", "42")

	type envConfig struct {
		Value int `env:"LOGIBOT_TEST_ENV_VALUE"`
	}

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 42, cfg.Value)
}

func TestLoad_Cached(t *testing.T) {
	var first testConfig
	require.NoError(t, config.Load(&first))

	// A second load of the same type returns the cached value even if the
	// environment changed in between.
	t.Setenv("LOGIBOT_TEST_NAME", "changed")
	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.Name, second.Name)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

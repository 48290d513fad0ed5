// File: lixenwraith/objconfig/env_test.go
package objconfig_test

import (
	"testing"

	"github.com/lixenwraith/objconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Host  string `toml:"host"`
	Port  int    `toml:"port"`
	Debug bool   `toml:"debug"`
}

func serverNode() *objconfig.Node {
	return &objconfig.Node{
		Name:   "App",
		Schema: objconfig.Struct(serverConfig{Host: "default-host", Port: 8080}),
		Children: map[string]objconfig.Component{
			"db": &objconfig.Node{Schema: objconfig.Struct(serverConfig{Host: "db-host", Port: 5432})},
		},
	}
}

func TestEnvironmentVariables(t *testing.T) {
	t.Run("TransformNames", func(t *testing.T) {
		assert.Equal(t, "ML_MODEL_BATCH_SIZE", objconfig.DefaultEnvTransform("ML", "model-batch_size"))
		assert.Equal(t, "APP_DB_HOST", objconfig.DefaultEnvTransform("app", "db-host"))
	})

	t.Run("ProcessEnvironment", func(t *testing.T) {
		t.Setenv("TEST_HOST", "env-host")
		t.Setenv("TEST_PORT", "9999")
		t.Setenv("TEST_DEBUG", "true")
		t.Setenv("TEST_DB_PORT", "6543")

		inst, err := objconfig.Build(serverNode(), nil, objconfig.WithEnvPrefix("TEST"))
		require.NoError(t, err)

		hp, err := inst.Hyperparameters()
		require.NoError(t, err)

		host, _ := hp.String("host")
		assert.Equal(t, "env-host", host)
		port, _ := hp.Int64("port")
		assert.Equal(t, int64(9999), port)
		debug, _ := hp.Bool("debug")
		assert.True(t, debug)
		dbPort, _ := hp.Int64("db-port")
		assert.Equal(t, int64(6543), dbPort)
		dbHost, _ := hp.String("db-host")
		assert.Equal(t, "db-host", dbHost)

		src, _ := inst.Child("db").Source("port")
		assert.Equal(t, objconfig.SourceEnv, src)
	})

	t.Run("MapEnvironment", func(t *testing.T) {
		env := objconfig.MapEnv{"APP_PORT": "1234"}
		v, ok := env.LookupEnv("APP_PORT")
		assert.True(t, ok)
		assert.Equal(t, "1234", v)

		_, ok = env.LookupEnv("APP_HOST")
		assert.False(t, ok)

		inst, err := objconfig.Build(serverNode(), nil,
			objconfig.WithEnvPrefix("APP"),
			objconfig.WithEnv(env),
		)
		require.NoError(t, err)
		cfg, err := objconfig.ConfigAs[serverConfig](inst)
		require.NoError(t, err)
		assert.Equal(t, 1234, cfg.Port)
		assert.Equal(t, "default-host", cfg.Host)
	})

	t.Run("InvalidEnvValue", func(t *testing.T) {
		_, err := objconfig.Build(serverNode(), nil,
			objconfig.WithEnvPrefix("APP"),
			objconfig.WithEnv(objconfig.MapEnv{"APP_DB_PORT": "not-a-port"}),
		)
		assert.ErrorIs(t, err, objconfig.ErrSchemaValidation)
	})

	t.Run("OSEnv", func(t *testing.T) {
		t.Setenv("OBJCONFIG_TEST_VALUE", "")
		v, ok := objconfig.OSEnv{}.LookupEnv("OBJCONFIG_TEST_VALUE")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})
}

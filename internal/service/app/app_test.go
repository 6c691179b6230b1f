package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/notify"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Driver = driver
	cfg.Storage.Path = filepath.Join(t.TempDir(), "state")
	cfg.APIKey = "from-config"

	require.NoError(t, config.Validate(cfg))

	return cfg
}

// TestNew_WiresCollaborators builds an app for each storage driver and persists through it.
func TestNew_WiresCollaborators(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for _, driver := range []string{config.DriverFile, config.DriverSQLite} {
		a, err := New(ctx, testConfig(t, driver), DeliveryNone)
		require.NoError(t, err, driver)

		deps := a.Dependencies()
		require.Same(t, a.Alarms, deps.Store)
		require.NotNil(t, deps.Source)
		require.NotNil(t, deps.Clock)
		require.Equal(t, notify.Multi{notify.Log{}}, deps.Notifier)
		require.Equal(t, "from-config", a.Alarms.Credential(ctx))

		_, err = a.Alarms.Add(ctx, "Goal", 1, 0)
		require.NoError(t, err, driver)

		loaded, err := a.Repository.Load(ctx)
		require.NoError(t, err, driver)
		require.Len(t, loaded.Alarms, 1, driver)

		require.NoError(t, a.Close(), driver)
		require.NoError(t, a.Close(), driver)
	}
}

// TestNew_UnknownDriver surfaces storage errors.
func TestNew_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Storage.Driver = "redis"

	_, err := New(context.Background(), cfg, DeliveryNone)
	require.Error(t, err)
}

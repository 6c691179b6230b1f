package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/service/app"
	"github.com/oshokin/hackatime-alarm/internal/service/monitor"
)

// TestApplyOverrides checks command line overrides win over the configuration.
func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	applyOverrides(cfg, &Options{ListenAddress: "127.0.0.1:7000", HTTPAddress: "127.0.0.1:7001"})
	require.Equal(t, "127.0.0.1:7000", cfg.ServerAddress)
	require.Equal(t, "127.0.0.1:7001", cfg.HTTPAddress)

	applyOverrides(cfg, &Options{DisableHTTP: true})
	require.Equal(t, "127.0.0.1:7000", cfg.ServerAddress)
	require.Empty(t, cfg.HTTPAddress)
}

// TestRun_InvalidSettings fails before claiming any resources.
func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: redis\n"), 0o600))

	err := Run(context.Background(), &Options{ConfigPath: path})
	require.ErrorContains(t, err, "load settings")
}

// TestStatusFunc reports the alarms and no reading before the first pass.
func TestStatusFunc(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, config.Validate(cfg))

	a, err := app.New(ctx, cfg, app.DeliveryNone)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, a.Close())
	})

	_, err = a.Alarms.Add(ctx, "Goal", 1, 0)
	require.NoError(t, err)

	pass := monitor.NewPass(a.Dependencies())

	st := StatusFunc(a, pass)(ctx)
	require.Nil(t, st.Reading)
	require.Len(t, st.Alarms, 1)
	require.Equal(t, a.Clock.Today(), st.Today)
}

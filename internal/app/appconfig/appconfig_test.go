package appconfig

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emisi.dev/backend/internal/app/appcontext"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("EMISI_POSTGRES_DSN", "postgres://emisi@localhost:5432/emisi")
	t.Setenv("EMISI_ETL_BATCH_SIZE", "250")

	conf, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	require.NoError(t, err)

	assert.Equal(t, "postgres://emisi@localhost:5432/emisi", conf.PostgresDSN)
	assert.Equal(t, 250, conf.EtlBatchSize)
	assert.Equal(t, "first", conf.EtlLocationStrategy)
	assert.Equal(t, 6*time.Hour, conf.WorkerEtlInterval)
	assert.Equal(t, 10*time.Minute, conf.DashboardCacheTTL)
	assert.Equal(t, 5, conf.StatsMinRespondents)
	assert.Equal(t, 3, conf.StatsMinGroupSize)
	assert.Equal(t, appcontext.EnvCLI, conf.AppContext.Env)
}

func TestParseRequiresDSN(t *testing.T) {
	// register restoration, then remove: an empty but set variable satisfies required
	t.Setenv("EMISI_POSTGRES_DSN", "")
	require.NoError(t, os.Unsetenv("EMISI_POSTGRES_DSN"))

	_, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	assert.Error(t, err)
}

package common_test

import (
	"net/http"
	"testing"

	"github.com/JojoFlex1/done/internal/api"
	"github.com/JojoFlex1/done/internal/config"
	"github.com/JojoFlex1/done/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealthy(t *testing.T) {
	cfg := test.DefaultTestConfig(t)
	cfg.Management.ProbeWriteablePathsAbs = []string{t.TempDir()}

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "writeable.")
		assert.Contains(t, res.Body.String(), "Healthy.")
	})
}

func TestGetHealthyDBBroken(t *testing.T) {
	cfg := test.DefaultTestConfig(t)
	cfg.Persistence.Driver = config.PersistencePostgres

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		_ = s.DB.Close()

		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusServiceUnavailable, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "Ping failed")
	})
}

func TestGetVersion(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/version", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, config.GetFormattedBuildArgs(), res.Body.String())
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/version", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), "reloop_http_requests_total")
	})
}

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/santri/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		_, err := app.Test(httptest.NewRequest("GET", "/api/santri/"+id, nil))
		require.NoError(t, err)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/santri/:id", "204"))
	assert.Equal(t, 2.0, got)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "tahfidz_http_requests_total")
}

func TestRecordMutation(t *testing.T) {
	m := New()
	m.RecordMutation("santri", "create")
	m.RecordMutation("santri", "create")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.recordsMutated.WithLabelValues("santri", "create")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordMutation("santri", "delete") })
}

package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestGinMiddlewareSpans(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/customers/:id/statement", func(c *gin.Context) {
		c.Set("export_format", "xlsx")
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/health", "/api/customers/42/statement"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "HTTP GET /api/customers/:id/statement", spans[0].Name())

	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "42", attrs["plantdesk.customer_id"])
	assert.Equal(t, "xlsx", attrs["plantdesk.export_format"])
}

func TestResourceKey(t *testing.T) {
	assert.Equal(t, "plantdesk.order_id", resourceKey("/api/orders/:id/status"))
	assert.Equal(t, "plantdesk.customer_id", resourceKey("/api/customers/:id"))
	assert.Equal(t, "plantdesk.resource_id", resourceKey("/api/things/:id"))
}

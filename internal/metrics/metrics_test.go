package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("Should count fragment loads by label", func(t *testing.T) {
		m := New()
		m.ObserveLoad("http", "failure")
		m.ObserveLoad("embedded", "success")
		m.ObserveLoad("embedded", "success")

		assert.Equal(t, 1.0, testutil.ToFloat64(m.fragmentLoads.WithLabelValues("http", "failure")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.fragmentLoads.WithLabelValues("embedded", "success")))
	})

	t.Run("Should count views and stale results", func(t *testing.T) {
		m := New()
		m.ObserveChapterView("empty")
		m.ObserveStaleResult()

		assert.Equal(t, 1.0, testutil.ToFloat64(m.chapterViews.WithLabelValues("empty")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.staleResults))
	})

	t.Run("Should expose metrics over HTTP", func(t *testing.T) {
		m := New()
		m.ObserveLoad("file", "success")

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), `surah_reader_fragment_loads_total{outcome="success",source="file"} 1`))
	})
}

package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCompilation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCompilation("Murder", nil)
	m.ObserveCompilation("Murder", nil)
	m.ObserveCompilation("Arson", errors.New("unknown"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CompilationsTotal.WithLabelValues("Murder", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompilationsTotal.WithLabelValues("Arson", "error")))
}

func TestObserveValidation(t *testing.T) {
	m := Nop()

	m.ObserveValidation(nil, false)
	m.ObserveValidation(errors.New("bad"), true)
	m.ObserveValidation(errors.New("io"), false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("error")))
}

func TestSummarize(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.DocumentsWritten.WithLabelValues("schema").Add(4)
	m.TriplesPublished.Add(10)
	m.GenerationDuration.Observe(0.5)

	samples, err := Summarize(reg)
	require.NoError(t, err)

	byName := map[string]Sample{}
	for _, s := range samples {
		byName[s.Name] = s
	}
	assert.Equal(t, 4.0, byName["caseschema_documents_written_total"].Value)
	assert.Equal(t, "kind=schema", byName["caseschema_documents_written_total"].Labels)
	assert.Equal(t, 10.0, byName["caseschema_triples_published_total"].Value)
	assert.Equal(t, 1.0, byName["caseschema_generation_duration_seconds"].Value)
}

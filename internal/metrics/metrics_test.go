package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLookup(t *testing.T) {
	m := New()

	m.ObserveLookup(ResultHit)
	m.ObserveLookup(ResultHit)
	m.ObserveLookup(ResultMiss)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ManifestLookups.WithLabelValues(ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ManifestLookups.WithLabelValues(ResultMiss)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ManifestLookups.WithLabelValues(ResultDev)))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ObserveLookup(ResultHit)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ManifestLookups.WithLabelValues(ResultHit)))
}

package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idosoms "github.com/joaopanucci/IdosoMS"
	"github.com/joaopanucci/IdosoMS/metrics"
)

func record(t *testing.T, r *metrics.Recorder, events ...idosoms.ActivityEvent) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, r.Record(context.Background(), e))
	}
}

func TestRecorderCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	record(t, r,
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignInSuccess},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignInSuccess},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignInFailure},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignUp},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignOut},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventAccessDenied, Path: "/usuarios"},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventRouteMounted, Path: "/dashboard"},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventRouteMounted, Path: "/dashboard"},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventRouteNotFound, Path: "/nada"},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventRouteLoadError, Path: "/quebrada"},
	)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}
	assert.True(t, byName["idosoms_signins_total"])
	assert.True(t, byName["idosoms_route_mounts_total"])
}

func TestRecorderCounterValues(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	record(t, r,
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignUp},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignUp},
		idosoms.ActivityEvent{EventType: idosoms.ActivityEventSignUp},
	)

	families, err := reg.Gather()
	require.NoError(t, err)
	var signUps float64
	for _, f := range families {
		if f.GetName() == "idosoms_signups_total" {
			require.Len(t, f.GetMetric(), 1)
			signUps = f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 3.0, signUps)
}

func TestRecorderIgnoresUnknownEvents(t *testing.T) {
	r := metrics.NewRecorder(prometheus.NewRegistry())
	assert.NoError(t, r.Record(context.Background(), idosoms.ActivityEvent{EventType: "something-else"}))
}

func TestRecorderNilRegisterer(t *testing.T) {
	r := metrics.NewRecorder(nil)
	assert.NoError(t, r.Record(context.Background(), idosoms.ActivityEvent{
		EventType: idosoms.ActivityEventSignInSuccess,
	}))
}

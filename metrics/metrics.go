// Package metrics exposes activity events as Prometheus series. The
// Recorder plugs in wherever an ActivitySink is accepted, so the auth
// manager and the router feed the same registry.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	idosoms "github.com/joaopanucci/IdosoMS"
)

// Recorder is an ActivitySink that counts events.
type Recorder struct {
	signIns      *prometheus.CounterVec
	signUps      prometheus.Counter
	signOuts     prometheus.Counter
	passwordOps  *prometheus.CounterVec
	accessDenied *prometheus.CounterVec
	routeMounts  *prometheus.CounterVec
	routeErrors  *prometheus.CounterVec
}

var _ idosoms.ActivitySink = (*Recorder)(nil)

// NewRecorder builds the counters and registers them on reg. Pass
// prometheus.DefaultRegisterer for the default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idosoms_signins_total",
			Help: "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
		signUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "idosoms_signups_total",
			Help: "Completed account registrations.",
		}),
		signOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "idosoms_signouts_total",
			Help: "Explicit sign-outs.",
		}),
		passwordOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idosoms_password_operations_total",
			Help: "Password changes and reset requests.",
		}, []string{"operation"}),
		accessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idosoms_access_denied_total",
			Help: "Navigations rejected by the permission guard.",
		}, []string{"path"}),
		routeMounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idosoms_route_mounts_total",
			Help: "Successful page mounts by path.",
		}, []string{"path"}),
		routeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "idosoms_route_errors_total",
			Help: "Route failures by kind.",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(
			r.signIns,
			r.signUps,
			r.signOuts,
			r.passwordOps,
			r.accessDenied,
			r.routeMounts,
			r.routeErrors,
		)
	}
	return r
}

// Record implements idosoms.ActivitySink.
func (r *Recorder) Record(_ context.Context, event idosoms.ActivityEvent) error {
	switch event.EventType {
	case idosoms.ActivityEventSignInSuccess:
		r.signIns.WithLabelValues("success").Inc()
	case idosoms.ActivityEventSignInFailure:
		r.signIns.WithLabelValues("failure").Inc()
	case idosoms.ActivityEventSignUp:
		r.signUps.Inc()
	case idosoms.ActivityEventSignOut:
		r.signOuts.Inc()
	case idosoms.ActivityEventPasswordChanged:
		r.passwordOps.WithLabelValues("change").Inc()
	case idosoms.ActivityEventPasswordReset:
		r.passwordOps.WithLabelValues("reset").Inc()
	case idosoms.ActivityEventAccessDenied:
		r.accessDenied.WithLabelValues(event.Path).Inc()
	case idosoms.ActivityEventRouteMounted:
		r.routeMounts.WithLabelValues(event.Path).Inc()
	case idosoms.ActivityEventRouteNotFound:
		r.routeErrors.WithLabelValues("notfound").Inc()
	case idosoms.ActivityEventRouteLoadError:
		r.routeErrors.WithLabelValues("load").Inc()
	}
	return nil
}

// ABOUTME: Prometheus counters for question submissions and resolution outcomes
// ABOUTME: Resolution outcomes are counted by wrapping the resolver

package gateway

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/2389/docdesk/internal/conversation"
	"github.com/2389/docdesk/internal/knowledge"
)

// metrics holds the gateway's Prometheus counters.
type metrics struct {
	submitted   prometheus.Counter
	rejected    prometheus.Counter
	resolutions *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		submitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "docdesk_questions_submitted_total",
			Help: "Questions accepted into a conversation.",
		}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "docdesk_questions_rejected_total",
			Help: "Questions dropped as blank or duplicate submissions.",
		}),
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docdesk_resolutions_total",
			Help: "Turn resolutions by outcome.",
		}, []string{"outcome"}),
	}
}

// instrumentedResolver wraps a resolver and counts match outcomes.
// Errors count as fallback: the log resolves those turns with the
// fallback response, so that is what the user saw.
type instrumentedResolver struct {
	next    conversation.Resolver
	metrics *metrics
}

func (r *instrumentedResolver) Resolve(ctx context.Context, question string) (*knowledge.Response, error) {
	resp, err := r.next.Resolve(ctx, question)
	if err != nil || resp == nil {
		r.metrics.resolutions.WithLabelValues("fallback").Inc()
	} else {
		r.metrics.resolutions.WithLabelValues("matched").Inc()
	}
	return resp, err
}

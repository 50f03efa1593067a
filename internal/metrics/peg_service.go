package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/pegforge/internal/rpcerr"
)

var (
	pegCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegforge",
		Subsystem: "peg_service",
		Name:      "calls_total",
		Help:      "Count of peg service calls by outcome.",
	}, []string{"method", "network", "status"})

	pegCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegforge",
		Subsystem: "peg_service",
		Name:      "call_duration_seconds",
		Help:      "Duration of peg service calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "network", "status"})

	pegInChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegforge",
		Subsystem: "peg_service",
		Name:      "pegin_checks_total",
		Help:      "Count of peg-in input checks by resulting status.",
	}, []string{"network", "status"})

	pegInClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegforge",
		Subsystem: "peg_service",
		Name:      "pegin_claims_total",
		Help:      "Count of peg-in claims queued for the journal.",
	}, []string{"network", "status"})
)

// PegService tracks metrics of the peg service calls.
type PegService struct {
	network string
}

func NewPegService(network string) *PegService {
	return &PegService{network: orUnknown(network)}
}

// ObserveCall records the outcome of one call. Failures are labelled with
// their error category.
func (m PegService) ObserveCall(method string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
		if category, ok := rpcerr.CategoryOf(err); ok {
			status = string(category)
		}
	}
	pegCallsTotal.WithLabelValues(method, m.network, status).Inc()
	pegCallDuration.WithLabelValues(method, m.network, status).Observe(time.Since(started).Seconds())
}

// ObservePegInCheck counts one re-validated peg-in input.
func (m PegService) ObservePegInCheck(status string) {
	pegInChecksTotal.WithLabelValues(m.network, status).Inc()
}

// ObserveClaims counts claims handed to the journal.
func (m PegService) ObserveClaims(claims int, err error) {
	pegInClaimsTotal.WithLabelValues(m.network, statusOf(err)).Add(float64(claims))
}

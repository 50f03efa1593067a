package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pegforge",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "node", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pegforge",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "node", "network", "status"})
)

// RPCClient tracks metrics for RPC calls to the parent and sidechain nodes.
type RPCClient struct {
	node    string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls to node
// ("parent" or "sidechain").
func NewRPCClient(node, network string) *RPCClient {
	return &RPCClient{node: orUnknown(node), network: orUnknown(network)}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	rpcRequestsTotal.WithLabelValues(operation, m.node, m.network, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.node, m.network, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

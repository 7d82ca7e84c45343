package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorefrontMetrics records gateway and cart activity.
type StorefrontMetrics struct {
	gatewayFallbacks prometheus.Counter
	cartMutations    *prometheus.CounterVec
	ordersSubmitted  *prometheus.CounterVec
}

// New registers the storefront metrics on the provided registerer.
func New(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_fallback_reads_total",
		Help: "Catalog reads served from the local store because the gateway was unavailable.",
	})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Successful cart mutations by operation.",
	}, []string{"op"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(fallbacks, mutations, orders)
	return &StorefrontMetrics{
		gatewayFallbacks: fallbacks,
		cartMutations:    mutations,
		ordersSubmitted:  orders,
	}
}

// IncFallbackRead counts one catalog read served locally.
func (m *StorefrontMetrics) IncFallbackRead() {
	if m == nil || m.gatewayFallbacks == nil {
		return
	}
	m.gatewayFallbacks.Inc()
}

// IncCartMutation counts one successful cart mutation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

// IncOrderSubmitted counts one order submission outcome.
func (m *StorefrontMetrics) IncOrderSubmitted(outcome string) {
	if m == nil || m.ordersSubmitted == nil {
		return
	}
	m.ordersSubmitted.WithLabelValues(outcome).Inc()
}

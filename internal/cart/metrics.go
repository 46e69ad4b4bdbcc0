package cart

import "github.com/prometheus/client_golang/prometheus"

// Observer is the service-side replacement for the original's cart
// badge: a subscriber that mirrors every cart change into metrics
// instead of a DOM counter.
type Observer struct {
	mutations prometheus.Counter
	size      prometheus.Histogram
}

func NewObserver(reg *prometheus.Registry) *Observer {
	o := &Observer{
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations persisted",
		}),
		size: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cart_items",
			Help:    "Cart size after each mutation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}
	reg.MustRegister(o.mutations, o.size)
	return o
}

// Observe implements Subscriber.
func (o *Observer) Observe(owner string, c Cart) {
	o.mutations.Inc()
	o.size.Observe(float64(c.ItemsCount()))
}

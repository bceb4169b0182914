package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service counters.
type Metrics struct {
	OffersAccepted prometheus.Counter
	OffersRejected *prometheus.CounterVec
	WishesCopied   prometheus.Counter
}

// New registers the collectors on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OffersAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "wishshare_offers_accepted_total",
			Help: "Offers accepted and committed.",
		}),
		OffersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wishshare_offers_rejected_total",
			Help: "Offers rejected by the funding guard, by reason.",
		}, []string{"reason"}),
		WishesCopied: factory.NewCounter(prometheus.CounterOpts{
			Name: "wishshare_wishes_copied_total",
			Help: "Wish duplications performed.",
		}),
	}
}

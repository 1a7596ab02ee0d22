package episode

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics метрики сбросов эпизода
type Metrics struct {
	resets        *prometheus.CounterVec
	resetDuration prometheus.Histogram
	lastSeed      prometheus.Gauge
}

// NewMetrics создаёт метрики эпизода и регистрирует их в reg (если reg не nil)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "episode",
			Name:      "resets_total",
			Help:      "Число сбросов эпизода по результату.",
		}, []string{"result"}),
		resetDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "episode",
			Name:      "reset_duration_seconds",
			Help:      "Длительность генерации уровня при сбросе.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		lastSeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "episode",
			Name:      "last_seed",
			Help:      "Рабочий сид последнего сброса.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.resets, m.resetDuration, m.lastSeed)
	}
	return m
}

// failed учитывает сброс, прерванный до выбора сида
func (m *Metrics) failed() {
	if m == nil {
		return
	}
	m.resets.WithLabelValues("error").Inc()
}

func (m *Metrics) observeReset(seconds float64, seed int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.resets.WithLabelValues(result).Inc()
	m.resetDuration.Observe(seconds)
	m.lastSeed.Set(float64(seed))
}

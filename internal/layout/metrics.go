package layout

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Причины мягкой деградации генерации
const (
	DegradeWallShortfall     = "wall_shortfall"
	DegradeStartPositions    = "start_positions_shortfall"
	DegradeObjectSpawns      = "object_spawn_shortfall"
	DegradeCaveExitFallback  = "cave_exit_fallback"
	DegradeAgentSpawnPadding = "agent_spawn_padding"
)

// Metrics Prometheus-метрики генерации раскладки.
// Нулевой указатель допустим: все методы становятся no-op.
type Metrics struct {
	generations  *prometheus.CounterVec
	degradations *prometheus.CounterVec
	solidVoxels  prometheus.Histogram
	primitives   prometheus.Histogram
	compression  prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в reg (если reg не nil)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "layout",
			Name:      "generations_total",
			Help:      "Число сгенерированных уровней по типу.",
		}, []string{"archetype"}),
		degradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "layout",
			Name:      "degradations_total",
			Help:      "Случаи мягкой деградации генерации (меньше стен, позиций, запасной выход).",
		}, []string{"archetype", "reason"}),
		solidVoxels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "layout",
			Name:      "solid_voxels",
			Help:      "Количество твёрдых вокселей в уровне.",
			Buckets:   prometheus.ExponentialBuckets(64, 2, 10),
		}),
		primitives: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "layout",
			Name:      "primitives",
			Help:      "Количество параллелепипедов после слияния вокселей.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),
		compression: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "layout",
			Name:      "compression_ratio",
			Help:      "Отношение числа твёрдых вокселей к числу примитивов.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.generations, m.degradations, m.solidVoxels, m.primitives, m.compression)
	}
	return m
}

func (m *Metrics) observeGeneration(a Archetype, solid int) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(a.String()).Inc()
	m.solidVoxels.Observe(float64(solid))
}

func (m *Metrics) observePrimitives(stats PrimitiveStats) {
	if m == nil {
		return
	}
	m.primitives.Observe(float64(stats.Boxes))
	m.compression.Observe(stats.Ratio())
}

func (m *Metrics) degraded(a Archetype, reason string) {
	if m == nil {
		return
	}
	m.degradations.WithLabelValues(a.String(), reason).Inc()
}

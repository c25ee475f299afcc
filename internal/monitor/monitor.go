package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	OnlinePlayers  prometheus.Gauge
	ActiveRooms    prometheus.Gauge
	PausedRooms    prometheus.Gauge
	RoundsStarted  prometheus.Counter
	RoundsFinished *prometheus.CounterVec
	CardsPlayed    *prometheus.CounterVec
	PlaysRejected  *prometheus.CounterVec
	ActionLatency  prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of open websocket connections",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of running room engines",
		}),
		PausedRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "paused_rooms",
			Help:      "Number of rooms waiting for a player to rejoin",
		}),
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Rounds dealt",
		}),
		RoundsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_finished_total",
			Help:      "Rounds finished, by winning side",
		}, []string{"side"}),
		CardsPlayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_total",
			Help:      "Accepted plays, by combination category",
		}, []string{"category"}),
		PlaysRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_rejected_total",
			Help:      "Rejected plays and passes, by reason",
		}, []string{"reason"}),
		ActionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_latency_seconds",
			Help:      "Time spent applying one action in the room loop",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}
}

// Monitor wraps Metrics. A nil *Monitor is valid and records nothing.
type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

// NewMonitor registers the metrics with reg (prometheus.DefaultRegisterer in main).
func NewMonitor(namespace string, reg prometheus.Registerer) *Monitor {
	m := NewMetrics(namespace)
	reg.MustRegister(
		m.OnlinePlayers,
		m.ActiveRooms,
		m.PausedRooms,
		m.RoundsStarted,
		m.RoundsFinished,
		m.CardsPlayed,
		m.PlaysRejected,
		m.ActionLatency,
	)
	return &Monitor{metrics: m, startTime: time.Now()}
}

func (m *Monitor) Metrics() *Metrics {
	if m == nil {
		return nil
	}
	return m.metrics
}

func (m *Monitor) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

func (m *Monitor) IncOnlinePlayers() {
	if m == nil {
		return
	}
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	if m == nil {
		return
	}
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) SetActiveRooms(count int) {
	if m == nil {
		return
	}
	m.metrics.ActiveRooms.Set(float64(count))
}

func (m *Monitor) IncPausedRooms() {
	if m == nil {
		return
	}
	m.metrics.PausedRooms.Inc()
}

func (m *Monitor) DecPausedRooms() {
	if m == nil {
		return
	}
	m.metrics.PausedRooms.Dec()
}

func (m *Monitor) IncRoundsStarted() {
	if m == nil {
		return
	}
	m.metrics.RoundsStarted.Inc()
}

func (m *Monitor) IncRoundsFinished(landlordWon bool) {
	if m == nil {
		return
	}
	side := "farmers"
	if landlordWon {
		side = "landlord"
	}
	m.metrics.RoundsFinished.WithLabelValues(side).Inc()
}

func (m *Monitor) IncCardsPlayed(category string) {
	if m == nil {
		return
	}
	m.metrics.CardsPlayed.WithLabelValues(category).Inc()
}

func (m *Monitor) IncPlaysRejected(reason string) {
	if m == nil {
		return
	}
	m.metrics.PlaysRejected.WithLabelValues(reason).Inc()
}

func (m *Monitor) ObserveActionLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.metrics.ActionLatency.Observe(d.Seconds())
}

// Package metrics exports game counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"torus-snake/game"
	"torus-snake/game/manager"
)

// Recorder counts ticks and game events. It owns its registry so several
// recorders can live in one process (and in tests).
type Recorder struct {
	registry *prometheus.Registry

	ticks  prometheus.Counter
	eaten  prometheus.Counter
	deaths prometheus.Counter
	size   prometheus.Gauge
	score  prometheus.Gauge
	fps    prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_ticks_total",
			Help: "Simulation ticks run",
		}),
		eaten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_food_eaten_total",
			Help: "Food items eaten",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_deaths_total",
			Help: "Self-collisions",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_size",
			Help: "Current snake size",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_score",
			Help: "Current score",
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_fps",
			Help: "Frames rendered in the last full second",
		}),
	}
	r.registry.MustRegister(r.ticks, r.eaten, r.deaths, r.size, r.score, r.fps)
	return r
}

func (r *Recorder) Observe(info game.FrameInfo) {
	r.ticks.Inc()
	for _, ev := range info.Events {
		switch ev {
		case manager.EventAte:
			r.eaten.Inc()
		case manager.EventDied:
			r.deaths.Inc()
		}
	}
	r.size.Set(float64(info.Size))
	r.score.Set(float64(info.Score))
	r.fps.Set(float64(info.FPS))
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

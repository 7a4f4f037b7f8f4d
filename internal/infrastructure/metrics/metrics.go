package metrics

import (
	"net/http"

	"organizer/internal/domain/progress"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "organizer"

// Registry - собственный реестр метрик сервера
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests         *prometheus.CounterVec
	CoinsAwarded         *prometheus.CounterVec
	AchievementsUnlocked *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by operation, method and status.",
		}, []string{"operation", "method", "status"}),
		CoinsAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coins_awarded_total",
			Help:      "Coins awarded by action.",
		}, []string{"action"}),
		AchievementsUnlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked by code.",
		}, []string{"code"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequests,
		r.CoinsAwarded,
		r.AchievementsUnlocked,
	)
	return r
}

// Handler отдает метрики в формате Prometheus
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Progress адаптирует реестр к progress.Observer
func (r *Registry) Progress() progress.Observer {
	return progressObserver{r}
}

type progressObserver struct {
	r *Registry
}

func (o progressObserver) CoinsAwarded(action progress.Action, amount int) {
	o.r.CoinsAwarded.WithLabelValues(string(action)).Add(float64(amount))
}

func (o progressObserver) AchievementUnlocked(code string) {
	o.r.AchievementsUnlocked.WithLabelValues(code).Inc()
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom implements Metrics on top of a prometheus registerer.
type Prom struct {
	resolveDuration  *prometheus.HistogramVec
	summaryDuration  *prometheus.HistogramVec
	httpDuration     *prometheus.HistogramVec
	kafkaDuration    *prometheus.HistogramVec
	dispatchDuration *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

func NewProm() *Prom {
	return newPromWithRegisterer(prometheus.DefaultRegisterer)
}

func newPromWithRegisterer(reg prometheus.Registerer) *Prom {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	msBuckets := []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

	return &Prom{
		resolveDuration: registerHistogramVec(reg, prometheus.HistogramOpts{
			Name:    "ordermate_resolve_duration_ms",
			Help:    "Store identity resolution duration in milliseconds",
			Buckets: msBuckets,
		}, []string{"source"}),
		summaryDuration: registerHistogramVec(reg, prometheus.HistogramOpts{
			Name:    "ordermate_summary_duration_ms",
			Help:    "Order summary stage duration in milliseconds",
			Buckets: msBuckets,
		}, []string{"stage"}),
		httpDuration: registerHistogramVec(reg, prometheus.HistogramOpts{
			Name:    "ordermate_http_duration_ms",
			Help:    "HTTP request duration in milliseconds",
			Buckets: msBuckets,
		}, []string{"method", "route", "status"}),
		kafkaDuration: registerHistogramVec(reg, prometheus.HistogramOpts{
			Name:    "ordermate_kafka_process_duration_ms",
			Help:    "Kafka order-event processing duration in milliseconds",
			Buckets: msBuckets,
		}, []string{"ok"}),
		dispatchDuration: registerHistogramVec(reg, prometheus.HistogramOpts{
			Name:    "ordermate_dispatch_duration_ms",
			Help:    "Notification dispatch duration in milliseconds",
			Buckets: msBuckets,
		}, []string{"ok"}),
		cacheHits: registerCounter(reg, prometheus.CounterOpts{
			Name: "ordermate_store_cache_hits_total",
			Help: "Total place-id cache hits",
		}),
		cacheMisses: registerCounter(reg, prometheus.CounterOpts{
			Name: "ordermate_store_cache_misses_total",
			Help: "Total place-id cache misses",
		}),
	}
}

func (p *Prom) ObserveResolve(source string, cacheMs, dbMs float64) {
	p.resolveDuration.WithLabelValues(source).Observe(cacheMs + dbMs)
}

func (p *Prom) ObserveSummary(composeMs, buildMs float64) {
	p.summaryDuration.WithLabelValues("compose").Observe(composeMs)
	p.summaryDuration.WithLabelValues("build").Observe(buildMs)
}

func (p *Prom) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpDuration.WithLabelValues(method, route, statusLabel(status)).Observe(durMs)
}

func (p *Prom) ObserveKafka(processMs float64, ok bool) {
	p.kafkaDuration.WithLabelValues(boolLabel(ok)).Observe(processMs)
}

func (p *Prom) ObserveDispatch(durMs float64, ok bool) {
	p.dispatchDuration.WithLabelValues(boolLabel(ok)).Observe(durMs)
}

func (p *Prom) IncCacheHit()  { p.cacheHits.Inc() }
func (p *Prom) IncCacheMiss() { p.cacheMisses.Inc() }

func statusLabel(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func boolLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}

func registerCounter(reg prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

func registerHistogramVec(reg prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := reg.Register(h); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector.(*prometheus.HistogramVec)
		}
		panic(err)
	}
	return h
}

package observability

type Metrics interface {
	ObserveResolve(source string, cacheMs, dbMs float64)
	ObserveSummary(composeMs, buildMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveKafka(processMs float64, ok bool)
	ObserveDispatch(durMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveResolve(string, float64, float64)  {}
func (Noop) ObserveSummary(float64, float64)          {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveKafka(float64, bool)               {}
func (Noop) ObserveDispatch(float64, bool)            {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}

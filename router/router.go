package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/usersvc/metrics"
)

// MetricsPath is where the Prometheus registry is served.
const MetricsPath = "/metrics"

// Options configures SetupRouter. Metrics may be nil, in which case no
// request metrics are recorded and MetricsPath is not served.
type Options struct {
	Logger         *logharbour.Logger
	Metrics        *metrics.PrometheusMetrics
	RequestTimeout time.Duration
}

// SetupRouter returns a gin engine with the middleware chain of the user
// service. Order matters: LogRequest is outermost so it sees the final
// status, and Recovery sits inside it so recovered panics are logged.
func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()

	r.Use(TraceID())
	if opts.Logger != nil {
		r.Use(LogRequest(NewLogHarbourAdapter(opts.Logger)))
	}
	if opts.Metrics != nil {
		RegisterRequestMetrics(opts.Metrics)
		r.Use(RequestMetrics(opts.Metrics))
	}
	r.Use(Recovery())
	r.Use(RequestDeadline(opts.RequestTimeout))

	if opts.Metrics != nil {
		r.GET(MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, scenarioResponse("NoRoute", "route_not_found"))
	})

	return r
}

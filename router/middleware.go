package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/remiges-tech/usersvc/metrics"
	"github.com/remiges-tech/usersvc/wscutils"
)

// HeaderTraceID carries the trace id of a request in both directions.
const HeaderTraceID = "X-Trace-ID"

// Context keys shared between the middlewares of this package. LogRequest
// reads them to enrich the request log entry.
const (
	CtxKeyTraceID            = "_trace_id"
	CtxKeyTimedOut           = "_request_timed_out"
	CtxKeyClientDisconnected = "_client_disconnected"
	CtxKeyPanicRecovered     = "_panic_recovered"
	CtxKeyPanicValue         = "_panic_value"
)

// MiddlewareErrorScenario names a failure answered by a middleware rather than a handler.
type MiddlewareErrorScenario string

// Scenarios answered by RequestDeadline and Recovery.
const (
	RequestTimeout MiddlewareErrorScenario = "RequestTimeout"
	PanicRecovered MiddlewareErrorScenario = "PanicRecovered"
)

var (
	scenarioMu                  sync.RWMutex
	middlewareScenarioToMsgID   = make(map[MiddlewareErrorScenario]int)
	middlewareScenarioToErrCode = make(map[MiddlewareErrorScenario]string)
)

// RegisterMiddlewareMsgID sets the message id sent for scenario.
func RegisterMiddlewareMsgID(scenario MiddlewareErrorScenario, msgID int) {
	scenarioMu.Lock()
	defer scenarioMu.Unlock()
	middlewareScenarioToMsgID[scenario] = msgID
}

// RegisterMiddlewareErrCode sets the error code sent for scenario.
func RegisterMiddlewareErrCode(scenario MiddlewareErrorScenario, errCode string) {
	scenarioMu.Lock()
	defer scenarioMu.Unlock()
	middlewareScenarioToErrCode[scenario] = errCode
}

func scenarioResponse(scenario MiddlewareErrorScenario, fallbackErrCode string) *wscutils.Response {
	scenarioMu.RLock()
	defer scenarioMu.RUnlock()
	msgID, ok := middlewareScenarioToMsgID[scenario]
	if !ok {
		msgID = wscutils.DefaultMsgID
	}
	errCode, ok := middlewareScenarioToErrCode[scenario]
	if !ok {
		errCode = fallbackErrCode
	}
	return wscutils.NewErrorResponse(msgID, errCode)
}

// TraceID makes sure every request has a trace id. An incoming X-Trace-ID
// header is kept; otherwise a new UUID is generated. The id is echoed in the
// response header.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
			c.Request.Header.Set(HeaderTraceID, traceID)
		}
		c.Set(CtxKeyTraceID, traceID)
		c.Header(HeaderTraceID, traceID)
		c.Next()
	}
}

// RequestDeadline bounds the request context by timeout. Handlers pass the
// request context to the store, so a slow query is cancelled when the
// deadline passes. If the handler gave up without writing a response, a 504
// is sent. A zero timeout disables the middleware.
func RequestDeadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			c.Set(CtxKeyTimedOut, true)
		case errors.Is(ctx.Err(), context.Canceled):
			c.Set(CtxKeyClientDisconnected, true)
		default:
			return
		}
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, scenarioResponse(RequestTimeout, "request_timeout"))
		}
	}
}

// Recovery turns a handler panic into a 500 response with the standard
// error envelope and marks the request so LogRequest reports the panic.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				c.Set(CtxKeyPanicRecovered, true)
				c.Set(CtxKeyPanicValue, fmt.Sprintf("%v", p))
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, scenarioResponse(PanicRecovered, "internal"))
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Request metric names.
const (
	MetricHTTPRequests        = "http_requests_total"
	MetricHTTPRequestDuration = "http_request_duration_seconds"
)

// RegisterRequestMetrics registers the metrics recorded by RequestMetrics.
func RegisterRequestMetrics(m metrics.Metrics) {
	m.RegisterWithLabels(MetricHTTPRequests, "Counter", "HTTP requests by method, route and status", []string{"method", "path", "status"})
	m.RegisterWithLabels(MetricHTTPRequestDuration, "Histogram", "HTTP request duration in seconds by method and route", []string{"method", "path"})
}

// RequestMetrics counts requests and observes their duration. The path label
// is the route template, so /api/users/1 and /api/users/2 share a series.
func RequestMetrics(m metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordWithLabels(MetricHTTPRequests, 1, c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
		m.RecordWithLabels(MetricHTTPRequestDuration, time.Since(start).Seconds(), c.Request.Method, path)
	}
}

// Package router builds the gin engine of the user service and holds its
// middlewares: request logging through logharbour, trace ids, request
// deadlines, panic recovery and request metrics.
//
// LogRequest writes one entry per request through a RequestLogger;
// LogHarbourAdapter is the logharbour-backed implementation:
//
//	r.Use(router.LogRequest(router.NewLogHarbourAdapter(logger)))
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"
)

// RequestInfo is what LogRequest reports about a finished request.
type RequestInfo struct {
	Method             string
	Path               string
	Route              string // route template, empty for unmatched paths
	Query              string
	ClientIP           string
	StatusCode         int
	Duration           time.Duration
	ResponseSize       int
	TraceID            string
	TimedOut           bool
	ClientDisconnected bool
	PanicRecovered     bool
	PanicValue         string
}

// RequestLogger receives one RequestInfo per request.
type RequestLogger interface {
	Log(info RequestInfo)
}

// LogRequest reports each request to logger once the handlers have run, so
// the final status and the flags set by RequestDeadline and Recovery are
// known.
func LogRequest(logger RequestLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		info := RequestInfo{
			Method:             c.Request.Method,
			Path:               c.Request.URL.Path,
			Route:              c.FullPath(),
			Query:              c.Request.URL.RawQuery,
			ClientIP:           c.ClientIP(),
			StatusCode:         c.Writer.Status(),
			Duration:           time.Since(start),
			ResponseSize:       c.Writer.Size(),
			TraceID:            c.GetString(CtxKeyTraceID),
			TimedOut:           c.GetBool(CtxKeyTimedOut),
			ClientDisconnected: c.GetBool(CtxKeyClientDisconnected),
			PanicRecovered:     c.GetBool(CtxKeyPanicRecovered),
			PanicValue:         c.GetString(CtxKeyPanicValue),
		}
		if info.TraceID == "" {
			info.TraceID = c.GetHeader(HeaderTraceID)
		}

		logger.Log(info)
	}
}

// LogHarbourAdapter writes RequestInfo as logharbour activity entries.
type LogHarbourAdapter struct {
	logger *logharbour.Logger
}

// NewLogHarbourAdapter logs requests through logger under module "http".
func NewLogHarbourAdapter(logger *logharbour.Logger) *LogHarbourAdapter {
	return &LogHarbourAdapter{logger: logger.WithModule("http").WithOp("request")}
}

// Log writes info as one activity entry; 5xx responses are logged as warnings.
func (a *LogHarbourAdapter) Log(info RequestInfo) {
	l := a.logger.
		WithRemoteIP(info.ClientIP).
		WithClass(info.Method).
		WithInstanceId(info.Path).
		WithStatus(requestStatus(info.StatusCode))

	data := map[string]any{
		"route":       info.Route,
		"status":      info.StatusCode,
		"duration_ms": info.Duration.Milliseconds(),
		"size":        info.ResponseSize,
	}
	if info.Query != "" {
		data["query"] = info.Query
	}
	if info.TraceID != "" {
		data["trace_id"] = info.TraceID
	}
	if info.TimedOut {
		data["timed_out"] = true
	}
	if info.ClientDisconnected {
		data["client_disconnected"] = true
	}
	if info.PanicRecovered {
		data["panic"] = info.PanicValue
	}

	if info.StatusCode >= 500 {
		l.Warn().LogActivity("HTTP request failed", data)
		return
	}
	l.Info().LogActivity("HTTP request completed", data)
}

func requestStatus(statusCode int) logharbour.Status {
	if statusCode >= 200 && statusCode < 400 {
		return logharbour.Success
	}
	return logharbour.Failure
}

package admin

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/logger"
)

const (
	headerRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"
	ctxSubject      = "subject"
)

// requestID propagates or generates X-Request-Id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// recovery turns a handler panic into a 500.
func recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered", logger.Fields(
					logger.FieldError, fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
					logger.FieldPath, c.Request.URL.Path,
					logger.FieldRequestID, c.GetString(ctxRequestID),
				))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					errors.Internal(fmt.Errorf("%v", r)).ToResponse())
			}
		}()
		c.Next()
	}
}

// requestLogger logs each request and records it in m. Probe routes are
// counted but logged at debug only.
func requestLogger(log *logger.Logger, m *metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		fields := logger.Fields(
			"method", c.Request.Method,
			logger.FieldPath, c.Request.URL.Path,
			logger.FieldStatus, status,
			logger.FieldDuration, elapsed.Milliseconds(),
			logger.FieldRequestID, c.GetString(ctxRequestID),
		)
		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}

// bearerAuth rejects requests without a valid admin token.
func bearerAuth(v *TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			respondError(c, errors.Unauthorized("bearer token required"))
			c.Abort()
			return
		}
		claims, err := v.Validate(token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(ctxSubject, claims.Subject)
		c.Next()
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error is an error with the HTTP status it should be reported as.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code and message, so wrapped
// copies of the sentinels below still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: cause}
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

var (
	ErrBadRequest          = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized        = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden           = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound            = New(http.StatusNotFound, "Not found", nil)
	ErrMethodNotAllowed    = New(http.StatusMethodNotAllowed, "Method not allowed", nil)
	ErrRequestTooLarge     = New(http.StatusRequestEntityTooLarge, "Request entity too large", nil)
	ErrTooManyRequests     = New(http.StatusTooManyRequests, "Too many requests", nil)
	ErrInternalServer      = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable  = New(http.StatusServiceUnavailable, "Service unavailable", nil)
	ErrGatewayTimeout      = New(http.StatusGatewayTimeout, "Request timed out", nil)
	ErrDatabaseConnection  = New(http.StatusServiceUnavailable, "Database connection error", nil)
	ErrInvalidToken        = New(http.StatusUnauthorized, "Invalid token", nil)
	ErrInvalidCredentials  = New(http.StatusUnauthorized, "Invalid username or password", nil)
	ErrUnsupportedFileType = New(http.StatusBadRequest, "Unsupported file type", nil)
)

// From converts any error to an *Error. Unknown errors become a fresh
// internal server error wrapping err; the shared sentinels are never mutated.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.Wrap(err)
}

// Abort stops the chain with err rendered as {"error": message}.
func Abort(c *gin.Context, err error) {
	appErr := From(err)
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// ErrorMiddleware renders the last error attached with c.Error when the
// handler did not write a response itself.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := From(c.Errors.Last().Err)
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("path", c.FullPath()),
				zap.Int("status", appErr.Code),
				zap.Error(appErr),
			)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		c.Abort()
	}
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler(c *gin.Context) {
	c.JSON(ErrNotFound.Code, gin.H{"error": ErrNotFound.Message})
}

// MethodNotAllowedHandler answers a known path with the wrong verb.
func MethodNotAllowedHandler(c *gin.Context) {
	c.JSON(ErrMethodNotAllowed.Code, gin.H{"error": ErrMethodNotAllowed.Message})
}

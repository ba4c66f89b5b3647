package middleware

import (
	"crypto/sha256"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
)

// CSRFFieldName is the hidden form field carrying the forgery-protection token.
const CSRFFieldName = "csrf_token"

// CSRF guards every unsafe request with a gorilla/csrf token.
// secure=false marks requests as plain HTTP so the TLS-only Origin/Referer
// checks are skipped and the cookie is sent without the Secure flag.
func CSRF(secret string, secure bool, logger *logrus.Logger) gin.HandlerFunc {
	key := sha256.Sum256([]byte(secret))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"path":   r.URL.Path,
					"reason": csrf.FailureReason(r),
				}).Warn("csrf check failed")
			}
			http.Error(w, "Forbidden - CSRF token invalid", http.StatusForbidden)
		})),
	)

	return func(c *gin.Context) {
		if !secure {
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}
		passed := false
		protect(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

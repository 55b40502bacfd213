package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
	"github.com/casaviva/casaviva-backend/internal/pkg/ctxutil"
	"github.com/casaviva/casaviva-backend/internal/pkg/logger"
	"github.com/casaviva/casaviva-backend/internal/services"
)

// ReauthHeader carries the step-up credential minted by /api/auth/reauthenticate.
const ReauthHeader = "X-Reauth-Token"

type ReauthMiddleware struct {
	log           *logger.Logger
	reauthService services.ReauthService
	table         *StepUpTable
}

func NewReauthMiddleware(log *logger.Logger, reauthService services.ReauthService, table *StepUpTable) *ReauthMiddleware {
	middlewareLogger := log.With("Middleware", "ReauthMiddleware")
	return &ReauthMiddleware{log: middlewareLogger, reauthService: reauthService, table: table}
}

// Gate enforces step-up on marked operations and is a no-op on everything
// else. It must run after RequireAuth: the check binds the presented reauth
// token to the already-authenticated subject.
func (rm *ReauthMiddleware) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rm.table.Requires(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID == uuid.Nil {
			// A step-up check without a session is a wiring bug upstream,
			// not a reason to prompt for a password.
			rm.abort(c, apperr.New(apperr.KindUnauthenticated, "missing session"))
			return
		}

		if err := rm.reauthService.Verify(c.GetHeader(ReauthHeader), rd.UserID); err != nil {
			rm.log.Warn("Step-up check failed",
				"method", c.Request.Method, "path", c.FullPath(), "user_id", rd.UserID, "error", err)
			rm.abort(c, err)
			return
		}
		c.Next()
	}
}

func (rm *ReauthMiddleware) abort(c *gin.Context, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		abortUnauthorized(c, "step-up verification failed")
		return
	}
	c.AbortWithStatusJSON(kind.Status, gin.H{
		"error": gin.H{
			"message":         err.Error(),
			"code":            kind.Code,
			"requires_reauth": kind.RequiresReauth,
		},
	})
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestIDKey stores the per-request ID in Gin context.
const ContextRequestIDKey = "request_id"

// RequestID tags each request with a UUID, echoed in the response header and
// recorded in audit metadata.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(ContextRequestIDKey, rid)
		ctx.Header("X-Request-ID", rid)
		ctx.Next()
	}
}

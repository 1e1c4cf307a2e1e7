package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotbones1-code/productv/utils"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "session"
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the user's display name inside Gin context.
	ContextUserNameKey = "user_name"
)

// CurrentUser resolves the session cookie into context values when a valid
// token is present. It never aborts; public pages use it to show login state.
func CurrentUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err == nil && token != "" {
			if claims, err := utils.ParseToken(token); err == nil {
				ctx.Set(ContextUserIDKey, claims.UserID)
				ctx.Set(ContextUserNameKey, claims.Name)
			}
		}
		ctx.Next()
	}
}

// AuthRequired redirects to the login page when no session is established.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := SessionUser(ctx); !ok {
			utils.SetFlash(ctx, "error", "Please log in.")
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// SessionUser returns the logged-in identity placed by CurrentUser.
func SessionUser(ctx *gin.Context) (*utils.SessionUser, bool) {
	rawID, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return nil, false
	}
	id, ok := rawID.(uint)
	if !ok {
		return nil, false
	}
	return &utils.SessionUser{ID: id, Name: ctx.GetString(ContextUserNameKey)}, true
}

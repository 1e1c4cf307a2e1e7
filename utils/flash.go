package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// FlashCookieName holds the one-shot notification shown on the next render.
const FlashCookieName = "flash"

// Flash is a transient message consumed exactly once.
type Flash struct {
	Type    string
	Message string
}

// SetFlash queues a flash message for the next rendered page.
func SetFlash(ctx *gin.Context, typ, message string) {
	ctx.SetCookie(FlashCookieName, typ+"|"+message, 300, "/", "", false, true)
}

// TakeFlash reads and clears the pending flash message, if any.
func TakeFlash(ctx *gin.Context) *Flash {
	raw, err := ctx.Cookie(FlashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	ctx.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Type: parts[0], Message: parts[1]}
}

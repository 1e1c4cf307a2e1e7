package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashContext(t *testing.T, cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		ctx.Request.AddCookie(c)
	}
	return ctx, w
}

func TestSetFlashThenTake(t *testing.T) {
	setCtx, w := flashContext(t)
	SetFlash(setCtx, "success", "Check-in recorded.")

	var flashCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == FlashCookieName {
			flashCookie = c
		}
	}
	require.NotNil(t, flashCookie)

	takeCtx, takeW := flashContext(t, flashCookie)
	flash := TakeFlash(takeCtx)
	require.NotNil(t, flash)
	assert.Equal(t, "success", flash.Type)
	assert.Equal(t, "Check-in recorded.", flash.Message)

	// Taking clears the cookie for the next request.
	var cleared *http.Cookie
	for _, c := range takeW.Result().Cookies() {
		if c.Name == FlashCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestTakeFlashWithoutCookie(t *testing.T) {
	ctx, _ := flashContext(t)
	assert.Nil(t, TakeFlash(ctx))
}

func TestTakeFlashMalformedValue(t *testing.T) {
	ctx, _ := flashContext(t, &http.Cookie{Name: FlashCookieName, Value: "no-separator"})
	assert.Nil(t, TakeFlash(ctx))
}

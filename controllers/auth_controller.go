package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lotbones1-code/productv/middleware"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

const sessionDuration = 30 * 24 * time.Hour

// AuthController handles name-based login and logout.
type AuthController struct {
	store  *store.Store
	render *utils.Renderer
}

// NewAuthController creates a new controller instance.
func NewAuthController(st *store.Store, render *utils.Renderer) *AuthController {
	return &AuthController{store: st, render: render}
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	a.render.Render(ctx, http.StatusOK, "login.html", page(ctx, "Login", nil))
}

// Login matches the submitted name against the fixed user set,
// case-insensitively, and establishes the session cookie on success.
func (a *AuthController) Login(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.PostForm("name"))
	user, err := a.store.UserByName(name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Sugar.Errorw("login lookup failed", "error", err)
		}
		utils.SetFlash(ctx, "error", "Unable to log in with that name.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Name, sessionDuration)
	if err != nil {
		utils.Sugar.Errorw("session token issue failed", "error", err)
		ctx.String(http.StatusInternalServerError, "login failed")
		return
	}

	ctx.SetCookie(middleware.SessionCookieName, token, int(sessionDuration.Seconds()), "/", "", false, true)
	utils.SetFlash(ctx, "success", fmt.Sprintf("Welcome back, %s!", user.Name))
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session and returns to the public board.
func (a *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/public")
}

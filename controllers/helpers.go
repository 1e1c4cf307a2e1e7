package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotbones1-code/productv/middleware"
	"github.com/lotbones1-code/productv/utils"
)

// page assembles the per-request view context: identity and the one-shot
// flash, consumed here so it never survives a second render.
func page(ctx *gin.Context, title string, data interface{}) *utils.Page {
	user, _ := middleware.SessionUser(ctx)
	return &utils.Page{
		Title:       title,
		CurrentUser: user,
		Flash:       utils.TakeFlash(ctx),
		Data:        data,
	}
}

// auditMeta tags audit payloads with the request ID.
func auditMeta(ctx *gin.Context, extra map[string]interface{}) map[string]interface{} {
	meta := map[string]interface{}{}
	for k, v := range extra {
		meta[k] = v
	}
	if rid := ctx.GetString(middleware.ContextRequestIDKey); rid != "" {
		meta["request_id"] = rid
	}
	return meta
}

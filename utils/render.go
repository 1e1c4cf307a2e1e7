package utils

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionUser is the logged-in identity threaded through a request.
type SessionUser struct {
	ID   uint
	Name string
}

// Page is the per-request view context. It is built fresh for every render;
// nothing here is shared between requests.
type Page struct {
	Title       string
	CurrentUser *SessionUser
	Flash       *Flash
	Data        interface{}
}

type layoutData struct {
	*Page
	Body template.HTML
}

// Renderer executes views in two explicit stages: the inner view is rendered
// to a buffer first, then the layout wraps it as a named slot.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all templates matching glob and registers view helpers.
func NewRenderer(glob string) (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"formatDayShort": FormatDayShort,
		"linkify":        Linkify,
	}).ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render writes the named view wrapped in the layout.
func (r *Renderer) Render(ctx *gin.Context, status int, view string, page *Page) {
	var body bytes.Buffer
	if err := r.templates.ExecuteTemplate(&body, view, page); err != nil {
		Sugar.Errorf("render %s failed: %v", view, err)
		ctx.String(http.StatusInternalServerError, "template error")
		return
	}

	var out bytes.Buffer
	if err := r.templates.ExecuteTemplate(&out, "layout.html", layoutData{Page: page, Body: template.HTML(body.String())}); err != nil {
		Sugar.Errorf("render layout failed: %v", err)
		ctx.String(http.StatusInternalServerError, "template error")
		return
	}

	ctx.Data(status, "text/html; charset=utf-8", out.Bytes())
}

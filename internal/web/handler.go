package web

import (
	"context"
	"log"
	"net/http"

	"codyplay/internal/api"
	"codyplay/internal/catalog"
	"codyplay/internal/playground"

	"github.com/gin-gonic/gin"
)

// Handler serves the browser view over one shared session.
type Handler struct {
	Session *playground.Session
	Querier playground.Querier
	BaseURL string
}

func NewHandler(session *playground.Session, q playground.Querier, baseURL string) *Handler {
	return &Handler{
		Session: session,
		Querier: q,
		BaseURL: baseURL,
	}
}

type sectionData struct {
	Number   int
	Slug     string
	Title    string
	Path     string
	Selector bool
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	BaseURL    string
	Sections   []sectionData
	Categories []categoryOption
	Error      string
	Status     int
	Output     string
	InFlight   int
}

// Index renders the playground page.
func (h *Handler) Index(c *gin.Context) {
	snap := h.Session.Snapshot()
	data := pageData{
		BaseURL:  h.BaseURL,
		Output:   snap.Output(),
		InFlight: snap.InFlight,
	}
	for i, op := range api.Triggers {
		data.Sections = append(data.Sections, sectionData{
			Number:   i + 1,
			Slug:     op.String(),
			Title:    op.Title(),
			Path:     op.Path(snap.Selected),
			Selector: op.TakesCategory(),
		})
	}
	for _, cat := range catalog.All() {
		data.Categories = append(data.Categories, categoryOption{
			Value:    cat.String(),
			Label:    cat.String() + " (" + cat.DisplayName() + ")",
			Selected: cat == snap.Selected,
		})
	}
	if snap.Failure != nil {
		data.Error = snap.Failure.Err.Error()
	}
	if snap.Last != nil {
		data.Status = snap.Last.Result.StatusCode
	}
	c.HTML(http.StatusOK, pageTemplate, data)
}

// Select changes the selected category. It never issues a request.
func (h *Handler) Select(c *gin.Context) {
	if !h.selectFromForm(c) {
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Run performs the operation named in the path and redirects back to the page.
// Failures are recorded on the session and shown on the page.
func (h *Handler) Run(c *gin.Context) {
	op, ok := triggerBySlug(c.Param("op"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown operation " + c.Param("op")})
		return
	}
	if op.TakesCategory() && c.PostForm("category") != "" {
		if !h.selectFromForm(c) {
			return
		}
	}

	// A started request runs to completion even if the browser goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	outcome, err := h.Session.Run(ctx, h.Querier, op)
	if err != nil {
		log.Printf("[web] %s failed: %v", op, err)
	} else {
		log.Printf("[web] %s %s", op, outcome)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// State reports the session as JSON.
func (h *Handler) State(c *gin.Context) {
	snap := h.Session.Snapshot()
	resp := gin.H{
		"selected": snap.Selected.String(),
		"output":   snap.Output(),
		"error":    nil,
		"seq":      0,
		"inFlight": snap.InFlight,
		"issued":   snap.Issued,
	}
	if snap.Last != nil {
		resp["seq"] = snap.Last.Seq
		resp["status"] = snap.Last.Result.StatusCode
	}
	if snap.Failure != nil {
		resp["error"] = snap.Failure.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// selectFromForm applies the "category" form field, writing a 400 on bad input.
func (h *Handler) selectFromForm(c *gin.Context) bool {
	cat, err := catalog.Parse(c.PostForm("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	h.Session.Select(cat)
	return true
}

func triggerBySlug(slug string) (api.Operation, bool) {
	for _, op := range api.Triggers {
		if op.String() == slug {
			return op, true
		}
	}
	return 0, false
}

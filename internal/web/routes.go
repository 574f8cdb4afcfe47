package web

import (
	"html/template"
	"log"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine for the browser view.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New(pageTemplate).Parse(pageHTML)))

	r.GET("/", h.Index)
	r.POST("/select", h.Select)
	r.POST("/run/:op", h.Run)
	r.GET("/state", h.State)
	r.GET("/health", h.Health)

	log.Printf("[ROUTER] Routes initialized:")
	log.Printf("[ROUTER] GET /")
	log.Printf("[ROUTER] POST /select")
	log.Printf("[ROUTER] POST /run/:op")
	log.Printf("[ROUTER] GET /state")
	log.Printf("[ROUTER] GET /health")
	return r
}

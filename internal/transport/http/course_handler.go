package handlers

import (
	"net/http"
	"strconv"

	"github.com/VoltEdgeBuilds/learn/internal/application/usecase"
	"github.com/VoltEdgeBuilds/learn/internal/domain"
	"github.com/VoltEdgeBuilds/learn/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	catalog *usecase.CatalogUseCase
	player  *usecase.PlayerUseCase
}

func NewCourseHandler(catalog *usecase.CatalogUseCase, player *usecase.PlayerUseCase) *CourseHandler {
	return &CourseHandler{catalog: catalog, player: player}
}

type completionReq struct {
	Completed *bool `json:"completed" binding:"required"`
}

// GET /api/v1/courses?category=&search=&lang=
func (h *CourseHandler) List(c *gin.Context) {
	cards, err := h.catalog.List(c, domain.CatalogFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Language: c.Query("lang"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": cards, "total": len(cards)})
}

// GET /api/v1/courses/facets
func (h *CourseHandler) Facets(c *gin.Context) {
	facets, err := h.catalog.Facets(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facets)
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.player.Open(c, c.GetString(middleware.PhoneKey), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/v1/courses/:id/progress
func (h *CourseHandler) Progress(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.player.Progress(c, c.GetString(middleware.PhoneKey), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/v1/courses/:id/lessons/:lessonId/completion
func (h *CourseHandler) SetCompletion(c *gin.Context) {
	courseID, ok := idParam(c, "id")
	if !ok {
		return
	}
	lessonID, ok := idParam(c, "lessonId")
	if !ok {
		return
	}

	var req completionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.player.SetLessonCompletion(c, c.GetString(middleware.PhoneKey), courseID, lessonID, *req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/v1/me/progress
func (h *CourseHandler) MyProgress(c *gin.Context) {
	list, err := h.player.MyProgress(c, c.GetString(middleware.PhoneKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": list})
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

package artwork

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"museumhub/internal/museum"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)                // GET /artworks
	rg.GET("/:source/:id", h.getByID) // GET /artworks/aic/27992
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Query:   c.Query("q"),
		Type:    c.Query("type"),
		Sort:    c.Query("sort"),
		Page:    parseInt(c.Query("page"), 1),
		PerPage: parseInt(c.Query("per_page"), 0),
	}

	res, err := h.Service.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) getByID(c *gin.Context) {
	a, err := h.Service.Get(c.Request.Context(), c.Param("source"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, museum.ErrUnknownSource):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown museum source"})
	case errors.Is(err, ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of: all, paintings, prints, photographs, sculpture, ceramics, furniture"})
	case errors.Is(err, ErrInvalidSort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of: title, year-asc, year-desc"})
	case errors.Is(err, museum.ErrAllSourcesFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "museum sources unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch failed"})
	}
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

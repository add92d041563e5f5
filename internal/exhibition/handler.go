package exhibition

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"museumhub/pkg/models"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/selected", h.selected)
	rg.POST("/selected/artworks", h.addArtwork)
	rg.DELETE("/artworks/:source/:id", h.removeArtwork)
	rg.GET("/:id", h.getOne)
	rg.DELETE("/:id", h.remove)
	rg.POST("/:id/artworks", h.addArtwork)
}

type createReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// addArtworkReq is a canonical artwork plus an optional curator note.
type addArtworkReq struct {
	models.Artwork
	Note string `json:"note"`
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Store.List()})
}

func (h *Handler) selected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Store.Selected()})
}

func (h *Handler) getOne(c *gin.Context) {
	e := h.Store.Get(c.Param("id"))
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	e, err := h.Store.CreateExhibition(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Store.RemoveExhibition(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// addArtwork serves both /:id/artworks and /selected/artworks; the latter
// has no id parameter.
func (h *Handler) addArtwork(c *gin.Context) {
	var req addArtworkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	added, err := h.Store.AddArtwork(c.Request.Context(), req.Artwork, req.Note, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

func (h *Handler) removeArtwork(c *gin.Context) {
	source, ok := models.ParseMuseumSource(c.Param("source"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown museum source"})
		return
	}

	n, err := h.Store.RemoveArtwork(c.Request.Context(), source, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrInvalidArtwork):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrExhibitionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrDuplicateArtwork):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
	}
}

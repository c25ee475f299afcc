package manager

import (
	"net/http"
	"strconv"

	"DouDizhu/internal/record"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mgr          *GameManager
	defaultLimit int
}

func NewHandler(mgr *GameManager, defaultLimit int) *Handler {
	return &Handler{mgr: mgr, defaultLimit: defaultLimit}
}

// Register mounts the room routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/rooms", h.List)
	r.GET("/rooms/:id", h.Get)
	r.GET("/rooms/:id/rounds", h.Rounds)
}

// GET /rooms
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.mgr.Summaries()})
}

// GET /rooms/:id
func (h *Handler) Get(c *gin.Context) {
	eng, ok := h.mgr.Room(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFound.Error()})
		return
	}
	s, err := eng.Summary()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GET /rooms/:id/rounds?limit=20
func (h *Handler) Rounds(c *gin.Context) {
	repo := h.mgr.Records()
	if repo == nil {
		c.JSON(http.StatusOK, gin.H{"rounds": []record.Round{}})
		return
	}

	limit := h.defaultLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	rounds, err := repo.List(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

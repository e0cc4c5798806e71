package members

import (
	"net/http"
	"strconv"

	"clubreg-backend/subscriptions"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
	subs *subscriptions.Repository
}

func NewHandler(repo *Repository, subs *subscriptions.Repository) *Handler {
	return &Handler{repo: repo, subs: subs}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/members/:id", h.get)
}

// get returns a member together with their most recent subscription.
func (h *Handler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	m, err := h.repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}
	sub, err := h.subs.LatestByMember(m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": m, "subscription": sub})
}

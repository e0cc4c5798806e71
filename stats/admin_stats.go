package stats

import (
	"database/sql"
	"net/http"

	"clubreg-backend/login"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler { return &Handler{db: db} }

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/admin/stats", login.RequireStaff(), h.stats)
}

// stats aggregates the front-desk dashboard counters: member total,
// subscriptions per payment status, currently active subscriptions and paid
// revenue per plan type.
func (h *Handler) stats(c *gin.Context) {
	var memberCount int
	if err := h.db.QueryRow(`SELECT COUNT(1) FROM members`).Scan(&memberCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	byStatus := map[string]int{}
	rows, err := h.db.Query(`SELECT payment_status, COUNT(1) FROM subscriptions GROUP BY payment_status`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		byStatus[status] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var active int
	if err := h.db.QueryRow(`SELECT COUNT(1) FROM subscriptions WHERE payment_status = 'paid' AND end_date >= CURDATE()`).Scan(&active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	revenue := map[string]float64{}
	rows, err = h.db.Query(`SELECT type, IFNULL(SUM(price), 0) FROM subscriptions WHERE payment_status = 'paid' GROUP BY type`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for rows.Next() {
		var planType string
		var sum float64
		if err := rows.Scan(&planType, &sum); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		revenue[planType] = sum
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members":                 memberCount,
		"subscriptions_by_status": byStatus,
		"active_subscriptions":    active,
		"revenue_by_plan_type":    revenue,
	})
}

package subscriptions

import (
	"net/http"
	"strconv"
	"time"

	"clubreg-backend/ages"
	"clubreg-backend/login"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo   *Repository
	stripe *StripeService // nil when payments are not configured
}

func NewHandler(repo *Repository, stripe *StripeService) *Handler {
	return &Handler{repo: repo, stripe: stripe}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/subscription-plans", h.getPlans)
	r.GET("/subscriptions", h.getSubscriptions)

	staff := login.RequireStaff()
	r.POST("/plans", staff, h.createPlan)
	r.PUT("/plans/:id", staff, h.updatePlan)
	r.DELETE("/plans/:id", staff, h.deletePlan)

	r.POST("/checkout", h.checkout)
	r.POST("/payments/webhook", h.webhook)
	r.POST("/payments/confirm", h.confirmPayment)
}

// getPlans lists active plans. With discipline_id and birthdate query params
// the eligibility filter is applied server-side; if either is missing or the
// birthdate does not parse, the filtered result is empty by design.
func (h *Handler) getPlans(c *gin.Context) {
	plans, err := h.repo.ActivePlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	discParam := c.Query("discipline_id")
	birthdate := c.Query("birthdate")
	if discParam == "" && birthdate == "" {
		c.JSON(http.StatusOK, gin.H{"data": plans})
		return
	}
	disciplineID, _ := strconv.Atoi(discParam)
	group, _ := ages.GroupFromBirthdate(birthdate, time.Now())
	c.JSON(http.StatusOK, gin.H{"data": Eligible(plans, disciplineID, group)})
}

func (h *Handler) getSubscriptions(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Query("member_id"))
	if err != nil || memberID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_id required"})
		return
	}
	subs, err := h.repo.ByMember(memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subs})
}

func (h *Handler) createPlan(c *gin.Context) {
	var p Plan
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.repo.CreatePlan(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) updatePlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var p Plan
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.repo.UpdatePlan(id, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) deletePlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.DeletePlan(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// checkout starts a Stripe checkout session for a pending subscription.
// Body: { "subscription_id": number }. Response: { "checkout_url", "session_id" }.
func (h *Handler) checkout(c *gin.Context) {
	if h.stripe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments not configured"})
		return
	}
	var body struct {
		SubscriptionID int `json:"subscription_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SubscriptionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subscription_id required"})
		return
	}
	url, sessionID, err := h.stripe.CreateCheckoutSession(c.Request.Context(), body.SubscriptionID)
	if err != nil {
		status := http.StatusInternalServerError
		if err == ErrStripeInvalidAPIKey {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout_url": url, "session_id": sessionID})
}

func (h *Handler) webhook(c *gin.Context) {
	if h.stripe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments not configured"})
		return
	}
	if err := h.stripe.HandleWebhook(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// confirmPayment polls a checkout session; used by clients that miss the
// webhook. Body: { "session_id": string }.
func (h *Handler) confirmPayment(c *gin.Context) {
	if h.stripe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments not configured"})
		return
	}
	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id required"})
		return
	}
	paid, subscriptionID, err := h.stripe.ConfirmSession(body.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"paid": paid, "subscription_id": subscriptionID})
}

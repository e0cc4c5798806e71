package registration

import (
	"log"
	"net/http"
	"time"

	"clubreg-backend/ages"
	"clubreg-backend/dates"
	"clubreg-backend/email"
	"clubreg-backend/members"
	"clubreg-backend/sse"
	"clubreg-backend/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanSource looks up the plan chosen on the form.
type PlanSource interface {
	GetPlanByID(id int) (*subscriptions.Plan, error)
}

// Store persists a registration atomically and resolves idempotency replays.
type Store interface {
	Register(m *members.Member, sub *subscriptions.Subscription) error
	ByIdempotencyKey(key string) (*subscriptions.Subscription, error)
	MemberByID(id int) (*members.Member, error)
}

type Handler struct {
	plans PlanSource
	store Store
	feed  *Feed
	now   func() time.Time
}

func NewHandler(plans PlanSource, store Store, feed *Feed) *Handler {
	return &Handler{plans: plans, store: store, feed: feed, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/registrations", h.submit)
	r.GET("/registrations/stream", h.stream)
}

// submit runs the whole registration flow: field validation, age-group
// derivation, plan eligibility re-check, then the transactional member +
// subscription write. Submissions carry an idempotency key (client supplied
// or minted here); replaying a key returns the original registration.
func (h *Handler) submit(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if errs := Validate(in); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	now := h.now()
	group, _ := ages.GroupFromBirthdate(in.Birthdate, now)

	if in.IdempotencyKey != "" {
		if existing, err := h.store.ByIdempotencyKey(in.IdempotencyKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		} else if existing != nil {
			h.replay(c, existing, group)
			return
		}
	}

	plan, err := h.plans.GetPlanByID(in.PlanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	if plan == nil || !plan.Active {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown plan"})
		return
	}
	if len(subscriptions.Eligible([]subscriptions.Plan{*plan}, in.DisciplineID, group)) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "plan not eligible for this member"})
		return
	}

	iso, _ := dates.ToISO(in.Birthdate)
	member := &members.Member{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Birthdate:      iso,
		Gender:         StorageGender(in.Gender),
		Phone:          in.Phone,
		EmergencyPhone: in.EmergencyPhone,
		Email:          in.Email,
		DisciplineID:   in.DisciplineID,
	}

	key := in.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	sub := &subscriptions.Subscription{
		PlanID:         plan.ID,
		SeasonLabel:    plan.SeasonLabel,
		Type:           plan.Type,
		Price:          plan.Price,
		PaymentStatus:  subscriptions.PaymentPending,
		StartDate:      now,
		EndDate:        subscriptions.EndDateFor(plan.Type, now),
		IdempotencyKey: key,
	}

	if err := h.store.Register(member, sub); err != nil {
		// A concurrent duplicate submit loses the UNIQUE key race; surface
		// the winner's result instead of an error.
		if existing, lookupErr := h.store.ByIdempotencyKey(key); lookupErr == nil && existing != nil {
			h.replay(c, existing, group)
			return
		}
		log.Printf("[REGISTRATION] persist failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	h.feed.Publish(gin.H{
		"member_id":     member.ID,
		"first_name":    member.FirstName,
		"last_name":     member.LastName,
		"discipline_id": member.DisciplineID,
		"plan_id":       plan.ID,
		"age_group":     group,
	})
	if err := email.SendWelcome(member.Email, member.FirstName, plan.Name, plan.SeasonLabel); err != nil {
		log.Printf("[REGISTRATION] welcome email failed for %s: %v", member.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"member":       member,
		"subscription": sub,
		"age_group":    group,
	})
}

func (h *Handler) replay(c *gin.Context, sub *subscriptions.Subscription, group ages.Group) {
	member, err := h.store.MemberByID(sub.MemberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"member":       member,
		"subscription": sub,
		"age_group":    group,
		"replayed":     true,
	})
}

// stream pushes one SSE event per successful registration until the client
// disconnects.
func (h *Handler) stream(c *gin.Context) {
	ch := h.feed.Subscribe()
	go func() {
		<-c.Request.Context().Done()
		h.feed.Unsubscribe(ch)
	}()
	sse.Stream(c, ch)
}

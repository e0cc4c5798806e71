package registration

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubreg-backend/ages"
	"clubreg-backend/members"
	"clubreg-backend/subscriptions"

	"github.com/gin-gonic/gin"
)

type mockPlans struct {
	plans map[int]*subscriptions.Plan
	err   error
}

func (m *mockPlans) GetPlanByID(id int) (*subscriptions.Plan, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.plans[id], nil
}

type mockStore struct {
	registerErr     error
	byKey           map[string]*subscriptions.Subscription
	members         map[int]*members.Member
	registered      int
	lookups         int
	skipFirstLookup bool // simulates a concurrent insert landing mid-request
}

func (m *mockStore) Register(mem *members.Member, sub *subscriptions.Subscription) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered++
	mem.ID = 1
	sub.MemberID = 1
	sub.ID = 10
	return nil
}

func (m *mockStore) ByIdempotencyKey(key string) (*subscriptions.Subscription, error) {
	m.lookups++
	if m.skipFirstLookup && m.lookups == 1 {
		return nil, nil
	}
	return m.byKey[key], nil
}

func (m *mockStore) MemberByID(id int) (*members.Member, error) {
	return m.members[id], nil
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func childPlan() *subscriptions.Plan {
	return &subscriptions.Plan{
		ID:           3,
		Name:         "Football Kids 2026/2027",
		Type:         subscriptions.TypeYearly,
		SeasonLabel:  "2026/2027",
		Price:        120,
		DisciplineID: 1,
		AgeGroup:     ages.GroupChild,
		Active:       true,
	}
}

// childInput is a valid submission for a 9-year-old at the fixed clock.
func childInput() Input {
	return Input{
		FirstName:      "Ana",
		LastName:       "Silva",
		Birthdate:      "10/01/2017",
		Gender:         "female",
		Phone:          "0612345678",
		EmergencyPhone: "0698765432",
		Email:          "ana.silva@example.com",
		DisciplineID:   1,
		PlanID:         3,
	}
}

func newTestHandler(plans *mockPlans, store *mockStore) (*Handler, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(plans, store, NewFeed())
	h.now = fixedClock
	r := gin.New()
	h.RegisterRoutes(r)
	return h, r
}

func post(r *gin.Engine, in Input) *httptest.ResponseRecorder {
	b, _ := json.Marshal(in)
	req := httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmit_ok(t *testing.T) {
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{3: childPlan()}}
	store := &mockStore{}
	h, r := newTestHandler(plans, store)

	events := h.feed.Subscribe()
	w := post(r, childInput())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Member       members.Member             `json:"member"`
		Subscription subscriptions.Subscription `json:"subscription"`
		AgeGroup     string                     `json:"age_group"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AgeGroup != "child" {
		t.Fatalf("age_group = %s", resp.AgeGroup)
	}
	if resp.Member.Birthdate != "2017-01-10" {
		t.Fatalf("birthdate not converted: %s", resp.Member.Birthdate)
	}
	if resp.Member.Gender != "F" {
		t.Fatalf("gender not mapped: %s", resp.Member.Gender)
	}
	if resp.Subscription.PaymentStatus != subscriptions.PaymentPending {
		t.Fatalf("payment status = %s", resp.Subscription.PaymentStatus)
	}
	if resp.Subscription.SeasonLabel != "2026/2027" || resp.Subscription.Price != 120 {
		t.Fatalf("plan fields not copied: %+v", resp.Subscription)
	}
	wantEnd := fixedClock().AddDate(1, 0, 0)
	if !resp.Subscription.EndDate.Equal(wantEnd) {
		t.Fatalf("end date = %v, want %v", resp.Subscription.EndDate, wantEnd)
	}
	if store.registered != 1 {
		t.Fatalf("registered %d times", store.registered)
	}
	select {
	case ev := <-events:
		var event map[string]any
		if err := json.Unmarshal([]byte(ev), &event); err != nil {
			t.Fatalf("bad feed event: %v", err)
		}
		if event["age_group"] != "child" {
			t.Fatalf("feed event = %v", event)
		}
	default:
		t.Fatal("no feed event published")
	}
}

func TestSubmit_fieldErrors(t *testing.T) {
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{3: childPlan()}}
	store := &mockStore{}
	_, r := newTestHandler(plans, store)

	in := childInput()
	in.Phone = "123"
	in.Email = "nope"
	w := post(r, in)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp.Errors["phone"]; !ok {
		t.Fatalf("missing phone error: %v", resp.Errors)
	}
	if _, ok := resp.Errors["email"]; !ok {
		t.Fatalf("missing email error: %v", resp.Errors)
	}
	if store.registered != 0 {
		t.Fatal("invalid input reached the store")
	}
}

func TestSubmit_unknownPlan(t *testing.T) {
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{}}
	_, r := newTestHandler(plans, &mockStore{})

	w := post(r, childInput())
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmit_planNotEligible(t *testing.T) {
	adult := childPlan()
	adult.AgeGroup = ages.GroupAdult
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{3: adult}}
	store := &mockStore{}
	_, r := newTestHandler(plans, store)

	w := post(r, childInput())
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	// Wrong discipline is equally ineligible.
	other := childPlan()
	other.DisciplineID = 2
	plans.plans[3] = other
	w = post(r, childInput())
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if store.registered != 0 {
		t.Fatal("ineligible submission reached the store")
	}
}

func TestSubmit_idempotentReplay(t *testing.T) {
	existing := &subscriptions.Subscription{ID: 10, MemberID: 1, PlanID: 3, PaymentStatus: subscriptions.PaymentPaid}
	store := &mockStore{
		byKey:   map[string]*subscriptions.Subscription{"key-1": existing},
		members: map[int]*members.Member{1: {ID: 1, FirstName: "Ana"}},
	}
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{3: childPlan()}}
	_, r := newTestHandler(plans, store)

	in := childInput()
	in.IdempotencyKey = "key-1"
	w := post(r, in)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Replayed bool `json:"replayed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Replayed {
		t.Fatalf("expected replayed response: %s", w.Body.String())
	}
	if store.registered != 0 {
		t.Fatal("replay must not insert again")
	}
}

func TestSubmit_storeFailure(t *testing.T) {
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{3: childPlan()}}
	store := &mockStore{registerErr: errors.New("db down")}
	_, r := newTestHandler(plans, store)

	w := post(r, childInput())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestSubmit_duplicateRaceReturnsWinner(t *testing.T) {
	existing := &subscriptions.Subscription{ID: 10, MemberID: 1, PlanID: 3}
	plans := &mockPlans{plans: map[int]*subscriptions.Plan{3: childPlan()}}
	store := &mockStore{
		registerErr:     errors.New("Error 1062: Duplicate entry"),
		byKey:           map[string]*subscriptions.Subscription{"key-1": existing},
		members:         map[int]*members.Member{1: {ID: 1}},
		skipFirstLookup: true,
	}
	_, r := newTestHandler(plans, store)

	in := childInput()
	in.IdempotencyKey = "key-1"
	w := post(r, in)

	// The pre-insert lookup misses, the insert loses the UNIQUE race, and the
	// post-error lookup surfaces the winner as a replay.
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Replayed bool `json:"replayed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Replayed {
		t.Fatalf("expected replayed response: %s", w.Body.String())
	}
}

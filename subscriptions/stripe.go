package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"clubreg-backend/email"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// StripeService drives the payment status of a subscription: a checkout
// session is created for the pending row, and the webhook/confirm paths move
// it to paid, failed or refunded. When STRIPE_SECRET_KEY is not set the
// service is nil and the club collects payment at the front desk.
type StripeService struct {
	repo          *Repository
	secretKey     string
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
	sc            *client.API
	invalidKey    bool // once detected, short-circuit further remote calls
}

var ErrStripeInvalidAPIKey = errors.New("stripe_invalid_api_key")

func maskKey(k string) string {
	if len(k) < 12 {
		return "****"
	}
	return k[:7] + "..." + k[len(k)-4:]
}

// NewStripeFromEnv returns a configured service or nil when the key is absent.
func NewStripeFromEnv(repo *Repository) *StripeService {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil
	}
	success := os.Getenv("STRIPE_SUCCESS_URL")
	if success == "" {
		success = "https://example.com/checkout/success"
	}
	cancel := os.Getenv("STRIPE_CANCEL_URL")
	if cancel == "" {
		cancel = "https://example.com/checkout/cancel"
	}
	currency := os.Getenv("STRIPE_CURRENCY")
	if currency == "" {
		currency = "eur"
	}
	sc := &client.API{}
	sc.Init(key, nil)
	return &StripeService{
		repo:          repo,
		secretKey:     key,
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		successURL:    success,
		cancelURL:     cancel,
		currency:      currency,
		sc:            sc,
	}
}

func (s *StripeService) isInvalidKey(err error) bool {
	var se *stripe.Error
	if errors.As(err, &se) && (se.HTTPStatusCode == 401 || strings.Contains(strings.ToLower(se.Msg), "invalid api key")) {
		log.Printf("[STRIPE] invalid api key (%s): %v", maskKey(s.secretKey), se)
		s.invalidKey = true
		return true
	}
	return false
}

// CreateCheckoutSession creates a one-off Stripe Checkout Session for a
// pending subscription, priced from the amount captured on the row. Free
// plans are marked paid immediately without touching Stripe.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, subscriptionID int) (string, string, error) {
	if s == nil {
		return "", "", errors.New("stripe not configured")
	}
	if s.invalidKey {
		return "", "", ErrStripeInvalidAPIKey
	}
	sub, err := s.repo.GetByID(subscriptionID)
	if err != nil {
		return "", "", err
	}
	if sub == nil {
		return "", "", fmt.Errorf("unknown subscription")
	}
	if sub.PaymentStatus == PaymentPaid {
		return s.successURL, sub.StripeSessionID, nil
	}
	if sub.Price == 0 {
		if err := s.repo.MarkPayment(sub.ID, PaymentPaid, "none"); err != nil {
			return "", "", err
		}
		return s.successURL, "", nil
	}

	meta := map[string]string{"subscription_id": strconv.Itoa(sub.ID)}
	label := fmt.Sprintf("Club subscription %s (%s)", sub.SeasonLabel, sub.Type)
	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.currency),
				UnitAmount: stripe.Int64(int64(sub.Price * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(label),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		Metadata: meta,
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: meta,
		},
	}
	sess, err := s.sc.CheckoutSessions.New(params)
	if err != nil {
		if s.isInvalidKey(err) {
			return "", "", ErrStripeInvalidAPIKey
		}
		log.Printf("[STRIPE][checkout] error: %v", err)
		return "", "", err
	}
	if err := s.repo.SetStripeSession(sub.ID, sess.ID); err != nil {
		return "", "", err
	}
	return sess.URL, sess.ID, nil
}

// HandleWebhook consumes Stripe events and applies the matching payment
// status transition to the subscription named in the event metadata.
func (s *StripeService) HandleWebhook(w http.ResponseWriter, r *http.Request) error {
	if s == nil {
		return errors.New("stripe not configured")
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	sig := r.Header.Get("Stripe-Signature")
	if s.webhookSecret != "" {
		if _, err := webhook.ConstructEvent(payload, sig, s.webhookSecret); err != nil {
			return fmt.Errorf("invalid signature: %w", err)
		}
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				Metadata map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	var status string
	switch event.Type {
	case "checkout.session.completed":
		status = PaymentPaid
	case "checkout.session.async_payment_failed":
		status = PaymentFailed
	case "charge.refunded":
		status = PaymentRefunded
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ignored"))
		return nil
	}

	subID, _ := strconv.Atoi(event.Data.Object.Metadata["subscription_id"])
	if subID == 0 {
		return fmt.Errorf("incomplete metadata")
	}
	if err := s.repo.MarkPayment(subID, status, "card"); err != nil {
		return err
	}
	if status == PaymentPaid {
		s.sendReceipt(subID)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
	return nil
}

// ConfirmSession queries Stripe directly; if the session completed and the
// subscription is still pending it is marked paid (idempotent).
func (s *StripeService) ConfirmSession(sessionID string) (bool, int, error) {
	if s == nil {
		return false, 0, errors.New("stripe not configured")
	}
	if sessionID == "" {
		return false, 0, errors.New("empty session_id")
	}
	sess, err := s.sc.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		if s.isInvalidKey(err) {
			return false, 0, ErrStripeInvalidAPIKey
		}
		return false, 0, err
	}
	subID, _ := strconv.Atoi(sess.Metadata["subscription_id"])
	if subID == 0 {
		return false, 0, errors.New("incomplete metadata")
	}
	if sess.Status != stripe.CheckoutSessionStatusComplete {
		return false, subID, nil
	}
	sub, err := s.repo.GetByID(subID)
	if err != nil {
		return false, subID, err
	}
	if sub == nil {
		return false, subID, errors.New("unknown subscription")
	}
	if sub.PaymentStatus == PaymentPaid {
		return true, subID, nil
	}
	if err := s.repo.MarkPayment(subID, PaymentPaid, "card"); err != nil {
		return false, subID, err
	}
	s.sendReceipt(subID)
	return true, subID, nil
}

func (s *StripeService) sendReceipt(subscriptionID int) {
	to, firstName, err := s.repo.MemberContact(subscriptionID)
	if err != nil || to == "" {
		return
	}
	sub, err := s.repo.GetByID(subscriptionID)
	if err != nil || sub == nil {
		return
	}
	if err := email.SendPaymentReceipt(to, firstName, sub.Price, sub.SeasonLabel); err != nil {
		log.Printf("[STRIPE] receipt email failed for subscription %d: %v", subscriptionID, err)
	}
}

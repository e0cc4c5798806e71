package subscriptions

import "database/sql"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const planColumns = `id, name, type, season_label, price, discipline_id, age_group, active`

func scanPlan(row interface{ Scan(...any) error }) (*Plan, error) {
	var p Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.SeasonLabel, &p.Price, &p.DisciplineID, &p.AgeGroup, &p.Active); err != nil {
		return nil, err
	}
	return &p, nil
}

// ActivePlans returns every active plan in insertion order.
func (r *Repository) ActivePlans() ([]Plan, error) {
	rows, err := r.db.Query(`SELECT ` + planColumns + ` FROM subscription_plans WHERE active = 1 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plans := []Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// GetPlanByID returns a plan by id, nil when not found.
func (r *Repository) GetPlanByID(id int) (*Plan, error) {
	row := r.db.QueryRow(`SELECT `+planColumns+` FROM subscription_plans WHERE id = ? LIMIT 1`, id)
	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *Repository) CreatePlan(p *Plan) error {
	res, err := r.db.Exec(`INSERT INTO subscription_plans (name, type, season_label, price, discipline_id, age_group, active) VALUES (?,?,?,?,?,?,?)`,
		p.Name, p.Type, p.SeasonLabel, p.Price, p.DisciplineID, string(p.AgeGroup), p.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (r *Repository) UpdatePlan(id int, p *Plan) error {
	_, err := r.db.Exec(`UPDATE subscription_plans SET name=?, type=?, season_label=?, price=?, discipline_id=?, age_group=?, active=? WHERE id=?`,
		p.Name, p.Type, p.SeasonLabel, p.Price, p.DisciplineID, string(p.AgeGroup), p.Active, id)
	return err
}

func (r *Repository) DeletePlan(id int) error {
	_, err := r.db.Exec(`DELETE FROM subscription_plans WHERE id=?`, id)
	return err
}

const subColumns = `id, member_id, plan_id, season_label, type, price, payment_status, payment_method, start_date, end_date, IFNULL(idempotency_key,''), stripe_session_id`

func scanSubscription(row interface{ Scan(...any) error }) (*Subscription, error) {
	var s Subscription
	if err := row.Scan(&s.ID, &s.MemberID, &s.PlanID, &s.SeasonLabel, &s.Type, &s.Price,
		&s.PaymentStatus, &s.PaymentMethod, &s.StartDate, &s.EndDate, &s.IdempotencyKey, &s.StripeSessionID); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateTx inserts a subscription inside the caller's transaction so the
// member insert and the subscription insert commit or roll back together.
func (r *Repository) CreateTx(tx *sql.Tx, s *Subscription) error {
	key := sql.NullString{String: s.IdempotencyKey, Valid: s.IdempotencyKey != ""}
	res, err := tx.Exec(`INSERT INTO subscriptions (member_id, plan_id, season_label, type, price, payment_status, payment_method, start_date, end_date, idempotency_key, stripe_session_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		s.MemberID, s.PlanID, s.SeasonLabel, s.Type, s.Price, s.PaymentStatus, s.PaymentMethod, s.StartDate, s.EndDate, key, s.StripeSessionID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = int(id)
	return nil
}

func (r *Repository) GetByID(id int) (*Subscription, error) {
	row := r.db.QueryRow(`SELECT `+subColumns+` FROM subscriptions WHERE id = ? LIMIT 1`, id)
	s, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// ByIdempotencyKey returns the subscription created under a submission key,
// nil when the key was never used.
func (r *Repository) ByIdempotencyKey(key string) (*Subscription, error) {
	if key == "" {
		return nil, nil
	}
	row := r.db.QueryRow(`SELECT `+subColumns+` FROM subscriptions WHERE idempotency_key = ? LIMIT 1`, key)
	s, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// ByMember lists a member's subscriptions, most recent first.
func (r *Repository) ByMember(memberID int) ([]Subscription, error) {
	rows, err := r.db.Query(`SELECT `+subColumns+` FROM subscriptions WHERE member_id = ? ORDER BY id DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := []Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

// LatestByMember returns the member's most recent subscription, nil when none.
func (r *Repository) LatestByMember(memberID int) (*Subscription, error) {
	row := r.db.QueryRow(`SELECT `+subColumns+` FROM subscriptions WHERE member_id = ? ORDER BY id DESC LIMIT 1`, memberID)
	s, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// MarkPayment records a payment status transition.
func (r *Repository) MarkPayment(id int, status, method string) error {
	_, err := r.db.Exec(`UPDATE subscriptions SET payment_status = ?, payment_method = ? WHERE id = ?`, status, method, id)
	return err
}

func (r *Repository) SetStripeSession(id int, sessionID string) error {
	_, err := r.db.Exec(`UPDATE subscriptions SET stripe_session_id = ? WHERE id = ?`, sessionID, id)
	return err
}

// MemberContact returns the email and first name of the member owning a
// subscription, for payment notifications.
func (r *Repository) MemberContact(subscriptionID int) (email, firstName string, err error) {
	row := r.db.QueryRow(`SELECT m.email, m.first_name FROM subscriptions s JOIN members m ON s.member_id = m.id WHERE s.id = ? LIMIT 1`, subscriptionID)
	if err := row.Scan(&email, &firstName); err != nil {
		if err == sql.ErrNoRows {
			return "", "", nil
		}
		return "", "", err
	}
	return email, firstName, nil
}

package registration

import (
	"database/sql"

	"clubreg-backend/members"
	"clubreg-backend/subscriptions"
)

// SQLStore persists a registration. The member insert and the subscription
// insert share one transaction: a failure at either step rolls both back, so
// no orphaned member rows are left behind.
type SQLStore struct {
	db      *sql.DB
	members *members.Repository
	subs    *subscriptions.Repository
}

func NewSQLStore(db *sql.DB, m *members.Repository, s *subscriptions.Repository) *SQLStore {
	return &SQLStore{db: db, members: m, subs: s}
}

func (s *SQLStore) Register(m *members.Member, sub *subscriptions.Subscription) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := s.members.CreateTx(tx, m); err != nil {
		tx.Rollback()
		return err
	}
	sub.MemberID = m.ID
	if err := s.subs.CreateTx(tx, sub); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) ByIdempotencyKey(key string) (*subscriptions.Subscription, error) {
	return s.subs.ByIdempotencyKey(key)
}

func (s *SQLStore) MemberByID(id int) (*members.Member, error) {
	return s.members.GetByID(id)
}

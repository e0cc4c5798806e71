package marketing

import (
	"database/sql"
	"log"
	"time"

	"clubreg-backend/email"
)

// Service emails members whose paid subscription is about to end.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Start launches a daily ticker for renewal reminders.
func (s *Service) Start() {
	ticker := time.NewTicker(24 * time.Hour)
	go func() {
		for range ticker.C {
			if err := s.notifyExpiring(); err != nil {
				log.Printf("[MARKETING] renewal reminders failed: %v", err)
			}
		}
	}()
}

// notifyExpiring reminds members whose subscription ends within two weeks.
func (s *Service) notifyExpiring() error {
	rows, err := s.db.Query(`
		SELECT m.email, m.first_name, DATE_FORMAT(s.end_date, '%Y-%m-%d')
		FROM subscriptions s
		JOIN members m ON s.member_id = m.id
		WHERE s.payment_status = 'paid'
		  AND s.end_date BETWEEN CURDATE() AND DATE_ADD(CURDATE(), INTERVAL 14 DAY)`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var to, firstName, endDate string
		if err := rows.Scan(&to, &firstName, &endDate); err != nil {
			return err
		}
		if err := email.SendRenewalReminder(to, firstName, endDate); err != nil {
			log.Printf("[MARKETING] reminder to %s failed: %v", to, err)
		}
	}
	return rows.Err()
}

package members

import (
	"database/sql"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// CreateTx inserts a member inside the caller's transaction; the
// registration flow commits it together with the subscription insert.
func (r *Repository) CreateTx(tx *sql.Tx, m *Member) error {
	res, err := tx.Exec(
		`INSERT INTO members (first_name, last_name, birthdate, gender, phone, emergency_phone, email, discipline_id)
		 VALUES (?,?,?,?,?,?,?,?)`,
		m.FirstName, m.LastName, m.Birthdate, m.Gender, m.Phone, m.EmergencyPhone, m.Email, m.DisciplineID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = int(id)
	return nil
}

// GetByID returns a member, nil when not found.
func (r *Repository) GetByID(id int) (*Member, error) {
	row := r.db.QueryRow(
		`SELECT id, first_name, last_name, DATE_FORMAT(birthdate, '%Y-%m-%d'), gender, phone, emergency_phone, email, discipline_id, created_at, updated_at
		 FROM members WHERE id = ? LIMIT 1`, id)
	var m Member
	if err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Birthdate, &m.Gender, &m.Phone, &m.EmergencyPhone, &m.Email, &m.DisciplineID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

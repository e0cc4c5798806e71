package disciplines

import "database/sql"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository { return &Repository{db: db} }

// Active returns the active disciplines projected to (id, name).
func (r *Repository) Active() ([]Discipline, error) {
	rows, err := r.db.Query(`SELECT id, name FROM disciplines WHERE active = 1 ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]Discipline, 0)
	for rows.Next() {
		var d Discipline
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		d.Active = true
		list = append(list, d)
	}
	return list, rows.Err()
}

// Get returns a discipline by id, nil when not found.
func (r *Repository) Get(id int) (*Discipline, error) {
	row := r.db.QueryRow(`SELECT id, name, active FROM disciplines WHERE id = ? LIMIT 1`, id)
	var d Discipline
	if err := row.Scan(&d.ID, &d.Name, &d.Active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

package members

import "time"

// Member is a registered club member. Birthdate is stored in the wire format
// YYYY-MM-DD; the DD/MM/YYYY display shape never reaches the database.
type Member struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Birthdate      string    `json:"birthdate"`
	Gender         string    `json:"gender"`
	Phone          string    `json:"phone"`
	EmergencyPhone string    `json:"emergency_phone"`
	Email          string    `json:"email"`
	DisciplineID   int       `json:"discipline_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

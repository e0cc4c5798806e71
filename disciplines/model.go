package disciplines

// Discipline is a sport offered by the club. The registration client only
// ever sees the id/name projection of active rows.
type Discipline struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"-"`
}

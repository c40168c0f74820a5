package types

import "time"

// LGA is a local government area, the administrative subdivision a
// report or officer belongs to. Read-mostly reference data, seeded.
type LGA struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

package entity

import "time"

// City is a place with coordinates that weather can be fetched for.
// Visitors is the inverse side of the user_cities association and is only
// loaded through explicit queries.
type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Country   string    `json:"country,omitempty"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Visitors  []User    `gorm:"many2many:user_cities" json:"-"`
}

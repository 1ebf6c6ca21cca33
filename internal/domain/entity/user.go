package entity

import "time"

// User owns posts and tracks visited cities through the user_cities join
// table. Associations are materialized by explicit preloads, never lazily.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Posts         []Post    `gorm:"foreignKey:OwnerID" json:"posts"`
	VisitedCities []City    `gorm:"many2many:user_cities" json:"visitedCities"`
}

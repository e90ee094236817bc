package models

import "time"

// Tag labels recipes (e.g. "Vegan", "Dessert"). Every tag belongs to exactly
// one user; the owner is set at creation and never reassigned.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Tag) String() string {
	return t.Name
}

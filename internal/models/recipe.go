package models

import "time"

// Recipe is the central entity of the application. Tags and Ingredients are
// many-to-many set associations carried by join tables; membership is
// unordered and duplicate-free. Image holds the stored file path relative to
// the upload directory, empty when no image has been uploaded.
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	TimeMinutes int          `gorm:"not null" json:"time_minutes"`
	Price       float64      `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string       `json:"link"`
	Image       string       `json:"image"`
	UserID      uint         `gorm:"not null;index" json:"-"`
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r Recipe) String() string {
	return r.Title
}

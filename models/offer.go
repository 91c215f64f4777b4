package models

import (
	"time"
)

// Offer is a reusable traffic-source/product configuration. Tests reference
// it through a weak foreign key: deleting an offer leaves referencing tests
// untouched.
type Offer struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"user_id" gorm:"column:user_id;not null;index"`
	Name            string    `json:"name" gorm:"not null"`
	Slug            string    `json:"slug" gorm:"index"`
	LibraryLink     string    `json:"library_link" gorm:"column:library_link"`
	LandingPageLink string    `json:"landing_page_link" gorm:"column:landing_page_link"`
	CheckoutLink    string    `json:"checkout_link" gorm:"column:checkout_link"`
	Niche           string    `json:"niche"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

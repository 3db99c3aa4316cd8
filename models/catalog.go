package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType is a named category of product, e.g. "Laptop". The name is
// case-sensitive and unique.
type ProductType struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type string    `gorm:"uniqueIndex;not null" json:"type"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (pt *ProductType) BeforeCreate(tx *gorm.DB) (err error) {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	return
}

// Shelf is a physical storage slot identified by zone + row, e.g. "A-1".
type Shelf struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Zone string    `gorm:"uniqueIndex:idx_shelf_zone_row;not null" json:"zone"`
	Row  int       `gorm:"uniqueIndex:idx_shelf_zone_row;not null" json:"row"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Shelf) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Label renders the slot the way it is printed on the shelf itself.
func (s *Shelf) Label() string {
	return fmt.Sprintf("%s-%d", s.Zone, s.Row)
}

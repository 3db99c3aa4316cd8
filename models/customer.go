package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer identity is immutable once created; phone is a contact field, not a
// unique key — two customers may share a number and lookup is fuzzy.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Surname string    `gorm:"not null" json:"surname"`
	Phone   string    `gorm:"index;not null" json:"phone"`
	Address string    `json:"address,omitempty"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"createdBy"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updatedBy,omitempty"`

	Tickets []Ticket `gorm:"foreignKey:CustomerID" json:"tickets,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// FullName joins name and surname for display and messaging.
func (c *Customer) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}

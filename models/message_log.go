// models/message_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	TicketID     *uuid.UUID `gorm:"type:uuid;index" json:"ticketId,omitempty"`
	Kind         string     `gorm:"type:varchar(30)" json:"kind"` // ticket_received, ticket_closed, pickup_reminder
	Phone        string     `gorm:"type:varchar(30)" json:"phone"`
	Message      string     `gorm:"type:text" json:"message"`
	Status       string     `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string     `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time  `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "OPEN"
	TicketStatusClosed    TicketStatus = "CLOSED"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

type ProductStatus string

const (
	ProductStatusReceived     ProductStatus = "RECEIVED"
	ProductStatusInRepair     ProductStatus = "IN_REPAIR"
	ProductStatusWaitingParts ProductStatus = "WAITING_PARTS"
	ProductStatusCompleted    ProductStatus = "COMPLETED"
	ProductStatusDelivered    ProductStatus = "DELIVERED"
	ProductStatusCancelled    ProductStatus = "CANCELLED"
)

// AllProductStatuses in pipeline order, used by reporting breakdowns.
var AllProductStatuses = []ProductStatus{
	ProductStatusReceived,
	ProductStatusInRepair,
	ProductStatusWaitingParts,
	ProductStatusCompleted,
	ProductStatusDelivered,
	ProductStatusCancelled,
}

// Ticket is one repair intake episode for a customer. Deletes are hard:
// removing a ticket removes its products, so no gorm soft-delete column here.
type Ticket struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Number           string       `gorm:"uniqueIndex;not null" json:"number"`
	CustomerID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"customerId"`
	IssueDescription string       `json:"issueDescription,omitempty"`
	TotalPrice       *float64     `gorm:"type:decimal(10,2)" json:"totalPrice"`
	Status           TicketStatus `gorm:"type:varchar(20);index;not null;default:'OPEN'" json:"status"`
	ClosedAt         *time.Time   `gorm:"index" json:"closedAt"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"createdBy"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updatedBy,omitempty"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Products []Product `gorm:"foreignKey:TicketID" json:"products"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// EffectiveTotal is the billed amount of the ticket: the explicit TotalPrice
// when set (a frozen snapshot written at close time), otherwise the sum of the
// product prices. Product edits after close never flow back into TotalPrice.
func (t *Ticket) EffectiveTotal() float64 {
	if t.TotalPrice != nil {
		return *t.TotalPrice
	}
	var sum float64
	for _, p := range t.Products {
		if p.Price != nil {
			sum += *p.Price
		}
	}
	return sum
}

// Product is a single physical item under repair. Its status pipeline is
// deliberately permissive — repairs move backward in real shops — except for
// the cancellation cascade driven by the owning ticket.
type Product struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	TicketID      uuid.UUID     `gorm:"type:uuid;index;not null" json:"ticketId"`
	ProductTypeID uuid.UUID     `gorm:"type:uuid;index;not null" json:"productTypeId"`
	ShelfID       uuid.UUID     `gorm:"type:uuid;index;not null" json:"shelfId"`
	Brand         string        `json:"brand,omitempty"`
	Model         string        `gorm:"not null" json:"model"`
	Price         *float64      `gorm:"type:decimal(10,2)" json:"price"`
	Status        ProductStatus `gorm:"type:varchar(20);index;not null;default:'RECEIVED'" json:"status"`
	Description   string        `json:"description,omitempty"`

	ReceivedDate time.Time  `gorm:"not null" json:"receivedDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`

	ProductType *ProductType `gorm:"foreignKey:ProductTypeID" json:"productType,omitempty"`
	Shelf       *Shelf       `gorm:"foreignKey:ShelfID" json:"shelf,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ReceivedDate.IsZero() {
		p.ReceivedDate = time.Now()
	}
	return
}

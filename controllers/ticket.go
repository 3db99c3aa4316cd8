// controllers/ticket.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/services"
	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketProductInput defines one product dropped off with the ticket
type TicketProductInput struct {
	ProductTypeID uuid.UUID `json:"productTypeId" binding:"required"`
	ShelfID       uuid.UUID `json:"shelfId" binding:"required"`
	Model         string    `json:"model" binding:"required"`
	Brand         string    `json:"brand"`
	Price         *float64  `json:"price" binding:"omitempty,min=0"`
	Description   string    `json:"description"`
}

// CreateTicketInput defines the expected JSON structure for creating a ticket
type CreateTicketInput struct {
	CustomerID       uuid.UUID            `json:"customerId" binding:"required"`
	IssueDescription string               `json:"issueDescription"`
	Products         []TicketProductInput `json:"products" binding:"required,min=1,dive"`
}

// UpdateTicketInput defines the expected JSON structure for updating a ticket
type UpdateTicketInput struct {
	IssueDescription *string  `json:"issueDescription"`
	TotalPrice       *float64 `json:"totalPrice" binding:"omitempty,min=0"`
}

// CloseTicketInput defines the expected JSON structure for closing a ticket
type CloseTicketInput struct {
	TotalPrice *float64 `json:"totalPrice" binding:"required,min=0"`
}

// AddProductInput defines the expected JSON structure for appending a product
type AddProductInput struct {
	ProductTypeID uuid.UUID `json:"productTypeId" binding:"required"`
	ShelfID       uuid.UUID `json:"shelfId" binding:"required"`
	Model         string    `json:"model" binding:"required"`
	Brand         string    `json:"brand"`
	Price         *float64  `json:"price" binding:"omitempty,min=0"`
	Description   string    `json:"description"`
}

// CreateTicket opens a new repair ticket with at least one product. Customer,
// product types and shelves must all exist; everything is written in a single
// transaction. A drop-off confirmation is sent best-effort afterwards.
func CreateTicket(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var input CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", input.CustomerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	now := time.Now()
	products := make([]models.Product, 0, len(input.Products))
	for _, item := range input.Products {
		var productType models.ProductType
		if err := config.DB.Where("id = ?", item.ProductTypeID).First(&productType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Product type not found: "+item.ProductTypeID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		var shelf models.Shelf
		if err := config.DB.Where("id = ?", item.ShelfID).First(&shelf).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Shelf not found: "+item.ShelfID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		products = append(products, models.Product{
			ProductTypeID: item.ProductTypeID,
			ShelfID:       item.ShelfID,
			Model:         item.Model,
			Brand:         item.Brand,
			Price:         item.Price,
			Description:   item.Description,
			Status:        models.ProductStatusReceived,
			ReceivedDate:  now,
		})
	}

	ticket := models.Ticket{
		Number:           "TKT-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		CustomerID:       input.CustomerID,
		IssueDescription: input.IssueDescription,
		Status:           models.TicketStatusOpen,
		CreatedBy:        actor,
		Products:         products,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&ticket).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	tx.Commit()

	// A failed message never fails the ticket
	services.NotifyTicketReceived(&ticket, &customer)

	c.JSON(http.StatusCreated, ticket)
}

// GetTickets retrieves tickets, optionally filtered by status and customer
func GetTickets(c *gin.Context) {
	query := config.DB.Preload("Products").Preload("Customer")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customerId format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	var tickets []models.Ticket
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetTicket retrieves a specific ticket with its products
func GetTicket(c *gin.Context) {
	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var ticket models.Ticket
	if err := config.DB.Preload("Products").Preload("Products.ProductType").
		Preload("Products.Shelf").Preload("Customer").
		Where("id = ?", ticketUUID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// UpdateTicket edits description or the explicit total price. Status is never
// touched here; cancelled tickets are frozen entirely.
func UpdateTicket(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("id = ?", ticketUUID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if ticket.Status == models.TicketStatusCancelled {
		utils.RespondWithError(c, http.StatusConflict, "Ticket is cancelled and cannot be edited")
		return
	}

	if input.IssueDescription != nil {
		ticket.IssueDescription = *input.IssueDescription
	}
	if input.TotalPrice != nil {
		ticket.TotalPrice = input.TotalPrice
	}
	ticket.UpdatedBy = &actor

	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// CloseTicket moves an OPEN ticket to CLOSED, stamping closed_at and the final
// total. The total becomes a frozen snapshot: later product edits do not
// change it. A pickup notification goes out best-effort.
func CloseTicket(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CloseTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("id = ?", ticketUUID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if ticket.Status != models.TicketStatusOpen {
		utils.RespondWithError(c, http.StatusConflict, "Only open tickets can be closed")
		return
	}

	now := time.Now()
	ticket.Status = models.TicketStatusClosed
	ticket.ClosedAt = &now
	ticket.TotalPrice = input.TotalPrice
	ticket.UpdatedBy = &actor

	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to close ticket")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", ticket.CustomerID).First(&customer).Error; err == nil {
		services.NotifyTicketClosed(&ticket, &customer)
	}

	c.JSON(http.StatusOK, ticket)
}

// ReopenTicket moves a CLOSED ticket back to OPEN and clears closed_at. The
// total price set at close time stays as it was; delivered or cancelled
// products are not resurrected.
func ReopenTicket(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("id = ?", ticketUUID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if ticket.Status != models.TicketStatusClosed {
		utils.RespondWithError(c, http.StatusConflict, "Only closed tickets can be reopened")
		return
	}

	ticket.Status = models.TicketStatusOpen
	ticket.ClosedAt = nil
	ticket.UpdatedBy = &actor

	// Updates with a map so the nil closed_at actually reaches the store
	if err := config.DB.Model(&ticket).
		Updates(map[string]interface{}{
			"status":     ticket.Status,
			"closed_at":  nil,
			"updated_by": actor,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reopen ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// CancelTicket moves an OPEN ticket to CANCELLED and cascades: every product
// that is not already DELIVERED or CANCELLED becomes CANCELLED, in the same
// transaction as the ticket change. The cascade is all-or-nothing.
func CancelTicket(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var ticket models.Ticket
	if err := tx.Where("id = ?", ticketUUID).First(&ticket).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if ticket.Status != models.TicketStatusOpen {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Only open tickets can be cancelled")
		return
	}

	if err := tx.Model(&ticket).
		Updates(map[string]interface{}{
			"status":     models.TicketStatusCancelled,
			"updated_by": actor,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel ticket")
		return
	}

	if err := tx.Model(&models.Product{}).
		Where("ticket_id = ? AND status NOT IN ?", ticketUUID,
			[]models.ProductStatus{models.ProductStatusDelivered, models.ProductStatusCancelled}).
		Update("status", models.ProductStatusCancelled).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel ticket products")
		return
	}

	tx.Commit()

	var result models.Ticket
	if err := config.DB.Preload("Products").Where("id = ?", ticketUUID).First(&result).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTicket hard-deletes a ticket and all of its products, any status,
// irreversibly.
func DeleteTicket(c *gin.Context) {
	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("ticket_id = ?", ticketUUID).Delete(&models.Product{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket products")
		return
	}

	result := tx.Where("id = ?", ticketUUID).Delete(&models.Ticket{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

// AddProduct appends a product to an existing ticket. Allowed on OPEN and
// CLOSED tickets, never on CANCELLED ones.
func AddProduct(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	ticketUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input AddProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("id = ?", ticketUUID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Ticket not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if ticket.Status == models.TicketStatusCancelled {
		utils.RespondWithError(c, http.StatusConflict, "Cannot add products to a cancelled ticket")
		return
	}

	var productType models.ProductType
	if err := config.DB.Where("id = ?", input.ProductTypeID).First(&productType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Product type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var shelf models.Shelf
	if err := config.DB.Where("id = ?", input.ShelfID).First(&shelf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Shelf not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	product := models.Product{
		TicketID:      ticketUUID,
		ProductTypeID: input.ProductTypeID,
		ShelfID:       input.ShelfID,
		Model:         input.Model,
		Brand:         input.Brand,
		Price:         input.Price,
		Description:   input.Description,
		Status:        models.ProductStatusReceived,
		ReceivedDate:  time.Now(),
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

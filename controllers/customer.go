package controllers

import (
	"errors"
	"net/http"
	"strings"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CreateCustomer registers a new customer. Phone numbers are not unique —
// family members share numbers — so only the format is checked.
func CreateCustomer(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		Name:      input.Name,
		Surname:   input.Surname,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedBy: actor,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves customers, optionally filtered by a fuzzy search over
// name, surname and phone.
func GetCustomers(c *gin.Context) {
	query := config.DB.Model(&models.Customer{})

	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR phone LIKE ?",
			like, like, "%"+search+"%")
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	customerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Surname != nil {
		customer.Surname = *input.Surname
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	customer.UpdatedBy = &actor

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer with no tickets. Customers with ticket
// history are kept for billing and audit.
func DeleteCustomer(c *gin.Context) {
	customerUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var ticketCount int64
	if err := tx.Model(&models.Ticket{}).Where("customer_id = ?", customerUUID).
		Count(&ticketCount).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if ticketCount > 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Customer has tickets and cannot be deleted")
		return
	}

	result := tx.Where("id = ?", customerUUID).Delete(&models.Customer{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

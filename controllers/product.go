// controllers/product.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	Status      *models.ProductStatus `json:"status" binding:"omitempty,oneof=RECEIVED IN_REPAIR WAITING_PARTS COMPLETED DELIVERED CANCELLED"`
	Price       *float64              `json:"price" binding:"omitempty,min=0"`
	ShelfID     *uuid.UUID            `json:"shelfId"`
	Brand       *string               `json:"brand"`
	Model       *string               `json:"model"`
	Description *string               `json:"description"`
}

// MoveProductInput defines the expected JSON structure for relocating a product
type MoveProductInput struct {
	ShelfID uuid.UUID `json:"shelfId" binding:"required"`
}

// UpdateProduct edits a product. Status moves are deliberately unrestricted —
// repairs go backward when a defect resurfaces — but products on a cancelled
// ticket are frozen except for relocation. Entering DELIVERED stamps the
// delivery date; leaving it clears it again.
func UpdateProduct(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	productUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Model != nil && *input.Model == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Model cannot be empty")
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productUUID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("id = ?", product.TicketID).First(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if ticket.Status == models.TicketStatusCancelled {
		frozenEdit := input.Status != nil || input.Price != nil ||
			input.Brand != nil || input.Model != nil || input.Description != nil
		if frozenEdit {
			utils.RespondWithError(c, http.StatusConflict,
				"Products on a cancelled ticket can only be relocated")
			return
		}
	}

	if input.ShelfID != nil {
		var shelf models.Shelf
		if err := config.DB.Where("id = ?", *input.ShelfID).First(&shelf).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Shelf not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		product.ShelfID = *input.ShelfID
	}

	if input.Status != nil && *input.Status != product.Status {
		if *input.Status == models.ProductStatusDelivered {
			now := time.Now()
			product.DeliveryDate = &now
		} else if product.Status == models.ProductStatusDelivered {
			product.DeliveryDate = nil
		}
		product.Status = *input.Status
	}
	if input.Price != nil {
		product.Price = input.Price
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Model != nil {
		product.Model = *input.Model
	}
	if input.Description != nil {
		product.Description = *input.Description
	}

	// Map update so a cleared delivery_date is persisted too
	if err := config.DB.Model(&product).
		Updates(map[string]interface{}{
			"shelf_id":      product.ShelfID,
			"status":        product.Status,
			"price":         product.Price,
			"brand":         product.Brand,
			"model":         product.Model,
			"description":   product.Description,
			"delivery_date": product.DeliveryDate,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// MoveProduct is pure relocation: only the shelf changes, regardless of the
// owning ticket's state.
func MoveProduct(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	productUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input MoveProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productUUID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var shelf models.Shelf
	if err := config.DB.Where("id = ?", input.ShelfID).First(&shelf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shelf not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	product.ShelfID = input.ShelfID
	if err := config.DB.Model(&product).Update("shelf_id", input.ShelfID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to move product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct hard-deletes a single product. The owning ticket keeps its
// status even if this was its last product.
func DeleteProduct(c *gin.Context) {
	productUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("id = ?", productUUID).Delete(&models.Product{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// controllers/shelf.go
package controllers

import (
	"errors"
	"net/http"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateShelfInput defines the expected JSON structure
type CreateShelfInput struct {
	Zone string `json:"zone" binding:"required,alpha"`
	Row  int    `json:"row" binding:"required,min=1"`
}

// UpdateShelfInput defines the expected JSON structure
type UpdateShelfInput struct {
	Zone *string `json:"zone" binding:"omitempty,alpha"`
	Row  *int    `json:"row" binding:"omitempty,min=1"`
}

// CreateShelf creates a storage slot; the (zone, row) pair must be unique.
func CreateShelf(c *gin.Context) {
	var input CreateShelfInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Shelf
	if err := config.DB.Where("zone = ? AND row = ?", input.Zone, input.Row).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Shelf already exists at this zone and row")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	shelf := models.Shelf{Zone: input.Zone, Row: input.Row}
	if err := config.DB.Create(&shelf).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create shelf")
		return
	}

	c.JSON(http.StatusCreated, shelf)
}

// GetShelves retrieves all shelves ordered by zone then row
func GetShelves(c *gin.Context) {
	var shelves []models.Shelf
	if err := config.DB.Order("zone ASC, row ASC").Find(&shelves).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve shelves")
		return
	}

	c.JSON(http.StatusOK, shelves)
}

// UpdateShelf relabels a shelf; the new (zone, row) must not collide with a
// different existing shelf.
func UpdateShelf(c *gin.Context) {
	shelfUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateShelfInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var shelf models.Shelf
	if err := config.DB.Where("id = ?", shelfUUID).First(&shelf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shelf not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Zone != nil {
		shelf.Zone = *input.Zone
	}
	if input.Row != nil {
		shelf.Row = *input.Row
	}

	var existing models.Shelf
	if err := config.DB.Where("zone = ? AND row = ? AND id <> ?", shelf.Zone, shelf.Row, shelfUUID).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Another shelf already exists at this zone and row")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Save(&shelf).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update shelf")
		return
	}

	c.JSON(http.StatusOK, shelf)
}

// DeleteShelf removes a shelf no product occupies. Check and delete run in the
// same transaction.
func DeleteShelf(c *gin.Context) {
	shelfUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var inUse int64
	if err := tx.Model(&models.Product{}).Where("shelf_id = ?", shelfUUID).
		Count(&inUse).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Shelf is occupied and cannot be deleted")
		return
	}

	result := tx.Where("id = ?", shelfUUID).Delete(&models.Shelf{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete shelf")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Shelf not found")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Shelf deleted successfully"})
}

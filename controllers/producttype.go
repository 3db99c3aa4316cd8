// controllers/producttype.go
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

// CreateProductTypeInput defines the expected JSON structure
type CreateProductTypeInput struct {
	Type string `json:"type" binding:"required"`
}

// UpdateProductTypeInput defines the expected JSON structure
type UpdateProductTypeInput struct {
	Type string `json:"type" binding:"required"`
}

// CreateProductType creates a new product category. The name is case-sensitive
// and must be unique.
func CreateProductType(c *gin.Context) {
	var input CreateProductTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.ProductType
	if err := config.DB.Where("type = ?", input.Type).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Product type already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	productType := models.ProductType{Type: input.Type}
	if err := config.DB.Create(&productType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product type")
		return
	}

	c.JSON(http.StatusCreated, productType)
}

// GetProductTypes retrieves all product types
func GetProductTypes(c *gin.Context) {
	var productTypes []models.ProductType
	if err := config.DB.Order("type ASC").Find(&productTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve product types")
		return
	}

	c.JSON(http.StatusOK, productTypes)
}

// UpdateProductType renames a product type; the new name must not collide with
// a different existing record.
func UpdateProductType(c *gin.Context) {
	typeUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateProductTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var productType models.ProductType
	if err := config.DB.Where("id = ?", typeUUID).First(&productType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.ProductType
	if err := config.DB.Where("type = ? AND id <> ?", input.Type, typeUUID).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Another product type with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	productType.Type = input.Type
	if err := config.DB.Save(&productType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product type")
		return
	}

	c.JSON(http.StatusOK, productType)
}

// DeleteProductType removes a product type that no product references. The
// in-use check and the delete run in one transaction so a product cannot slip
// in between them.
func DeleteProductType(c *gin.Context) {
	typeUUID, ok := pathUUID(c, "id")
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
	if err := tx.Model(&models.Product{}).Where("product_type_id = ?", typeUUID).
		Count(&inUse).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Product type is in use and cannot be deleted")
		return
	}

	result := tx.Where("id = ?", typeUUID).Delete(&models.ProductType{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product type")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Product type not found")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Product type deleted successfully"})
}

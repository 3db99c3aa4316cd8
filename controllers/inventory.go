// controllers/inventory.go
package controllers

import (
	"net/http"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// ShelfInventory is one shelf plus the products physically sitting on it
type ShelfInventory struct {
	Shelf    models.Shelf     `json:"shelf"`
	Products []models.Product `json:"products"`
}

// GetShelfInventory groups the live inventory by shelf: every shelf appears
// (zone then row), carrying the products still physically present — delivered
// and cancelled items, and anything on a cancelled ticket, are excluded even
// though their rows persist. Recomputed per request, never cached.
func GetShelfInventory(c *gin.Context) {
	var shelves []models.Shelf
	if err := config.DB.Order("zone ASC, row ASC").Find(&shelves).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve shelves")
		return
	}

	var products []models.Product
	if err := config.DB.Preload("ProductType").
		Joins("JOIN tickets ON tickets.id = products.ticket_id").
		Where("tickets.status <> ?", models.TicketStatusCancelled).
		Where("products.status NOT IN ?",
			[]models.ProductStatus{models.ProductStatusDelivered, models.ProductStatusCancelled}).
		Order("products.received_date ASC").
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	byShelf := make(map[string][]models.Product, len(shelves))
	for _, p := range products {
		key := p.ShelfID.String()
		byShelf[key] = append(byShelf[key], p)
	}

	inventory := make([]ShelfInventory, 0, len(shelves))
	for _, shelf := range shelves {
		occupants := byShelf[shelf.ID.String()]
		if occupants == nil {
			occupants = []models.Product{}
		}
		inventory = append(inventory, ShelfInventory{Shelf: shelf, Products: occupants})
	}

	c.JSON(http.StatusOK, inventory)
}

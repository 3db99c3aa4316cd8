package controllers

import (
	"net/http"
	"testing"
	"time"

	"repairhub-backend/models"
)

func TestShelfInventory(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "+15550000001")
	laptop := seedProductType(t, db, "Laptop")

	shelfB1 := seedShelf(t, db, "B", 1)
	shelfA2 := seedShelf(t, db, "A", 2)
	shelfA1 := seedShelf(t, db, "A", 1)

	open := seedTicket(t, db, customer.ID, models.TicketStatusOpen, time.Now().Add(-48*time.Hour))
	cancelled := seedTicket(t, db, customer.ID, models.TicketStatusCancelled, time.Now())

	older := seedProduct(t, db, open, laptop.ID, shelfA1.ID, models.ProductStatusInRepair, nil)
	// Later arrival on the same shelf
	laterTicket := seedTicket(t, db, customer.ID, models.TicketStatusOpen, time.Now())
	newer := seedProduct(t, db, laterTicket, laptop.ID, shelfA1.ID, models.ProductStatusReceived, nil)

	// Excluded: handed over, struck off, or on a cancelled ticket
	seedProduct(t, db, open, laptop.ID, shelfA1.ID, models.ProductStatusDelivered, nil)
	seedProduct(t, db, open, laptop.ID, shelfA2.ID, models.ProductStatusCancelled, nil)
	seedProduct(t, db, cancelled, laptop.ID, shelfB1.ID, models.ProductStatusInRepair, nil)

	w := perform(t, GetShelfInventory, http.MethodGet, "/api/inventory", nil, nil)
	requireStatus(t, w, http.StatusOK)

	var inventory []ShelfInventory
	decodeJSON(t, w, &inventory)

	if len(inventory) != 3 {
		t.Fatalf("Expected 3 shelves, got %d", len(inventory))
	}

	// Zone then row ordering
	wantOrder := []string{"A-1", "A-2", "B-1"}
	for i, want := range wantOrder {
		if got := inventory[i].Shelf.Label(); got != want {
			t.Errorf("Shelf %d: expected %s, got %s", i, want, got)
		}
	}

	a1 := inventory[0]
	if len(a1.Products) != 2 {
		t.Fatalf("Expected 2 active products on A-1, got %d", len(a1.Products))
	}
	// Oldest arrival first
	if a1.Products[0].ID != older.ID || a1.Products[1].ID != newer.ID {
		t.Error("Expected products ordered by received date ascending")
	}

	if len(inventory[1].Products) != 0 {
		t.Errorf("Expected A-2 empty (cancelled product excluded), got %d", len(inventory[1].Products))
	}
	if len(inventory[2].Products) != 0 {
		t.Errorf("Expected B-1 empty (cancelled ticket excluded), got %d", len(inventory[2].Products))
	}
}

func TestShelfInventoryEmptyStore(t *testing.T) {
	setupTestDB(t)

	w := perform(t, GetShelfInventory, http.MethodGet, "/api/inventory", nil, nil)
	requireStatus(t, w, http.StatusOK)

	var inventory []ShelfInventory
	decodeJSON(t, w, &inventory)
	if len(inventory) != 0 {
		t.Errorf("Expected empty inventory, got %d entries", len(inventory))
	}
}

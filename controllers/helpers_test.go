package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"repairhub-backend/config"
	"repairhub-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testActor = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// setupTestDB wires an in-memory sqlite database into config.DB for the
// duration of one test. Single connection so transactions see the same store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.ProductType{},
		&models.Shelf{},
		&models.Ticket{},
		&models.Product{},
		&models.MessageLog{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	config.DB = db
	return db
}

// perform invokes a handler the way the router would: JSON body, path params,
// query string and the authenticated actor in the context.
func perform(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	c.Set("userId", testActor.String())

	handler(c)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func idParam(id uuid.UUID) gin.Params {
	return gin.Params{{Key: "id", Value: id.String()}}
}

// Fixtures

func seedCustomer(t *testing.T, db *gorm.DB, name, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{
		Name:      name,
		Surname:   "Doe",
		Phone:     phone,
		CreatedBy: testActor,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}

func seedProductType(t *testing.T, db *gorm.DB, name string) models.ProductType {
	t.Helper()
	productType := models.ProductType{Type: name}
	if err := db.Create(&productType).Error; err != nil {
		t.Fatalf("Failed to seed product type: %v", err)
	}
	return productType
}

func seedShelf(t *testing.T, db *gorm.DB, zone string, row int) models.Shelf {
	t.Helper()
	shelf := models.Shelf{Zone: zone, Row: row}
	if err := db.Create(&shelf).Error; err != nil {
		t.Fatalf("Failed to seed shelf: %v", err)
	}
	return shelf
}

func seedTicket(t *testing.T, db *gorm.DB, customerID uuid.UUID, status models.TicketStatus, createdAt time.Time) models.Ticket {
	t.Helper()
	ticket := models.Ticket{
		Number:     "TKT-TEST-" + uuid.NewString()[:8],
		CustomerID: customerID,
		Status:     status,
		CreatedBy:  testActor,
		CreatedAt:  createdAt,
	}
	if status == models.TicketStatusClosed {
		closedAt := createdAt.Add(24 * time.Hour)
		ticket.ClosedAt = &closedAt
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("Failed to seed ticket: %v", err)
	}
	return ticket
}

func seedProduct(t *testing.T, db *gorm.DB, ticket models.Ticket, typeID, shelfID uuid.UUID, status models.ProductStatus, price *float64) models.Product {
	t.Helper()
	product := models.Product{
		TicketID:      ticket.ID,
		ProductTypeID: typeID,
		ShelfID:       shelfID,
		Model:         "TestModel",
		Status:        status,
		Price:         price,
		ReceivedDate:  ticket.CreatedAt,
		CreatedAt:     ticket.CreatedAt,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

func floatPtr(v float64) *float64 { return &v }

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d (body: %s)", want, w.Code, w.Body.String())
	}
}

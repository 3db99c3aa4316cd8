package controllers

import (
	"net/http"
	"testing"
	"time"

	"repairhub-backend/models"
)

func marchWindow() string {
	return "?period=custom&startDate=2026-03-01&endDate=2026-03-31"
}

func TestSummary(t *testing.T) {
	db := setupTestDB(t)
	alice := seedCustomer(t, db, "Alice", "+15550000001")
	bob := seedCustomer(t, db, "Bob", "+15550000002")
	laptop := seedProductType(t, db, "Laptop")
	shelf := seedShelf(t, db, "A", 1)

	reports := ReportController{}

	closed := seedTicket(t, db, alice.ID, models.TicketStatusClosed,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local))
	closed.TotalPrice = floatPtr(500)
	db.Save(&closed)

	open := seedTicket(t, db, bob.ID, models.TicketStatusOpen,
		time.Date(2026, 3, 5, 9, 0, 0, 0, time.Local))
	seedProduct(t, db, open, laptop.ID, shelf.ID, models.ProductStatusReceived, floatPtr(100))
	seedProduct(t, db, open, laptop.ID, shelf.ID, models.ProductStatusInRepair, floatPtr(150))

	seedTicket(t, db, alice.ID, models.TicketStatusCancelled,
		time.Date(2026, 3, 6, 9, 0, 0, 0, time.Local))

	// Outside the window, must not be counted
	seedTicket(t, db, alice.ID, models.TicketStatusClosed,
		time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local))

	w := perform(t, reports.GetSummary, http.MethodGet, "/api/reports/summary"+marchWindow(), nil, nil)
	requireStatus(t, w, http.StatusOK)

	var summary SummaryReport
	decodeJSON(t, w, &summary)

	if summary.Tickets.Total != 3 || summary.Tickets.Open != 1 ||
		summary.Tickets.Closed != 1 || summary.Tickets.Cancelled != 1 {
		t.Errorf("Unexpected ticket counts: %+v", summary.Tickets)
	}
	if summary.Revenue.Total != 500 || summary.Revenue.Average != 500 {
		t.Errorf("Unexpected revenue: %+v", summary.Revenue)
	}
	// round(1/3 * 100)
	if summary.CompletionRate != 33 {
		t.Errorf("Expected completionRate 33, got %d", summary.CompletionRate)
	}
	if summary.Customers.Total != 2 {
		t.Errorf("Expected 2 distinct customers, got %d", summary.Customers.Total)
	}
	if summary.Products.Total != 2 {
		t.Errorf("Expected 2 products in window, got %d", summary.Products.Total)
	}
	if summary.Products.ByStatus["RECEIVED"] != 1 || summary.Products.ByStatus["IN_REPAIR"] != 1 {
		t.Errorf("Unexpected product status breakdown: %v", summary.Products.ByStatus)
	}
	if len(summary.Products.ByStatus) != len(models.AllProductStatuses) {
		t.Errorf("Expected all statuses present in breakdown, got %v", summary.Products.ByStatus)
	}
	// The one closed ticket took 24 hours
	if summary.RepairTime.SampleSize != 1 || summary.RepairTime.AverageHours != 24.0 ||
		summary.RepairTime.MinHours != 24.0 || summary.RepairTime.MaxHours != 24.0 {
		t.Errorf("Unexpected repair time stats: %+v", summary.RepairTime)
	}
}

func TestSummaryEmptyWindow(t *testing.T) {
	setupTestDB(t)
	reports := ReportController{}

	w := perform(t, reports.GetSummary, http.MethodGet, "/api/reports/summary"+marchWindow(), nil, nil)
	requireStatus(t, w, http.StatusOK)

	var summary SummaryReport
	decodeJSON(t, w, &summary)

	// No activity is a valid answer, not an error, and no division blows up
	if summary.Tickets.Total != 0 || summary.CompletionRate != 0 ||
		summary.Revenue.Average != 0 || summary.RepairTime.SampleSize != 0 {
		t.Errorf("Expected zero-valued summary, got %+v", summary)
	}
}

// The scenario from the operations contract: close at 500, then reopen, and
// the closed-only revenue falls back to zero.
func TestSummaryCloseThenReopen(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "+15550000001")
	ticket := seedTicket(t, db, customer.ID, models.TicketStatusOpen, time.Now())
	reports := ReportController{}

	w := perform(t, CloseTicket, http.MethodPost, "/api/tickets/"+ticket.ID.String()+"/close",
		map[string]interface{}{"totalPrice": 500.0}, idParam(ticket.ID))
	requireStatus(t, w, http.StatusOK)

	w = perform(t, reports.GetSummary, http.MethodGet, "/api/reports/summary?period=today", nil, nil)
	requireStatus(t, w, http.StatusOK)

	var summary SummaryReport
	decodeJSON(t, w, &summary)
	if summary.Tickets.Closed != 1 || summary.Revenue.Total != 500 || summary.CompletionRate != 100 {
		t.Errorf("Unexpected summary after close: %+v", summary)
	}

	w = perform(t, ReopenTicket, http.MethodPost, "/api/tickets/"+ticket.ID.String()+"/reopen",
		nil, idParam(ticket.ID))
	requireStatus(t, w, http.StatusOK)

	w = perform(t, reports.GetSummary, http.MethodGet, "/api/reports/summary?period=today", nil, nil)
	requireStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &summary)
	if summary.Tickets.Open != 1 || summary.Tickets.Closed != 0 || summary.Revenue.Total != 0 {
		t.Errorf("Unexpected summary after reopen: %+v", summary)
	}
}

// When no explicit total was set, reporting falls back to the product sum.
func TestSummaryEffectiveTotalFallback(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "+15550000001")
	laptop := seedProductType(t, db, "Laptop")
	shelf := seedShelf(t, db, "A", 1)
	reports := ReportController{}

	ticket := seedTicket(t, db, customer.ID, models.TicketStatusClosed,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local))
	seedProduct(t, db, ticket, laptop.ID, shelf.ID, models.ProductStatusCompleted, floatPtr(100))
	seedProduct(t, db, ticket, laptop.ID, shelf.ID, models.ProductStatusCompleted, floatPtr(150))

	w := perform(t, reports.GetSummary, http.MethodGet, "/api/reports/summary"+marchWindow(), nil, nil)
	requireStatus(t, w, http.StatusOK)

	var summary SummaryReport
	decodeJSON(t, w, &summary)
	if summary.Revenue.Total != 250 {
		t.Errorf("Expected effective total 250, got %v", summary.Revenue.Total)
	}
}

func TestDailyTrendDenseSeries(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "+15550000001")
	reports := ReportController{}

	// Created March 2nd, closed March 3rd at 500
	closed := seedTicket(t, db, customer.ID, models.TicketStatusClosed,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local))
	closed.TotalPrice = floatPtr(500)
	db.Save(&closed)

	seedTicket(t, db, customer.ID, models.TicketStatusOpen,
		time.Date(2026, 3, 2, 15, 0, 0, 0, time.Local))

	w := perform(t, reports.GetDailyTrend, http.MethodGet,
		"/api/reports/daily-trend?period=custom&startDate=2026-03-01&endDate=2026-03-07", nil, nil)
	requireStatus(t, w, http.StatusOK)

	var trend []DailyTrendEntry
	decodeJSON(t, w, &trend)

	if len(trend) != 7 {
		t.Fatalf("Expected 7 entries, got %d", len(trend))
	}
	if trend[0].Date != "2026-03-01" || trend[6].Date != "2026-03-07" {
		t.Errorf("Unexpected date range: %s .. %s", trend[0].Date, trend[6].Date)
	}
	if trend[1].Created != 2 {
		t.Errorf("Expected 2 tickets created on day 2, got %d", trend[1].Created)
	}
	if trend[2].Closed != 1 || trend[2].Revenue != 500 {
		t.Errorf("Expected close and revenue on day 3, got %+v", trend[2])
	}
	// Quiet days still appear, zero-filled
	if trend[4].Created != 0 || trend[4].Closed != 0 || trend[4].Revenue != 0 {
		t.Errorf("Expected zero-filled quiet day, got %+v", trend[4])
	}
}

func TestTopCustomers(t *testing.T) {
	db := setupTestDB(t)
	alice := seedCustomer(t, db, "Alice", "+15550000001")
	bob := seedCustomer(t, db, "Bob", "+15550000002")
	carol := seedCustomer(t, db, "Carol", "+15550000003")
	laptop := seedProductType(t, db, "Laptop")
	shelf := seedShelf(t, db, "A", 1)
	reports := ReportController{}

	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)

	// Alice: two tickets, one closed at 200
	closed := seedTicket(t, db, alice.ID, models.TicketStatusClosed, at)
	closed.TotalPrice = floatPtr(200)
	db.Save(&closed)
	open := seedTicket(t, db, alice.ID, models.TicketStatusOpen, at)
	seedProduct(t, db, open, laptop.ID, shelf.ID, models.ProductStatusReceived, nil)

	// Bob: two tickets too, but less revenue — loses the tiebreak
	bobClosed := seedTicket(t, db, bob.ID, models.TicketStatusClosed, at)
	bobClosed.TotalPrice = floatPtr(50)
	db.Save(&bobClosed)
	seedTicket(t, db, bob.ID, models.TicketStatusOpen, at)

	// Carol: one ticket
	seedTicket(t, db, carol.ID, models.TicketStatusOpen, at)

	w := perform(t, reports.GetTopCustomers, http.MethodGet,
		"/api/reports/top-customers"+marchWindow(), nil, nil)
	requireStatus(t, w, http.StatusOK)

	var ranked []TopCustomerEntry
	decodeJSON(t, w, &ranked)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 customers, got %d", len(ranked))
	}
	if ranked[0].Name != "Alice Doe" || ranked[1].Name != "Bob Doe" || ranked[2].Name != "Carol Doe" {
		t.Errorf("Unexpected ranking: %s, %s, %s", ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}
	if ranked[0].TicketCount != 2 || ranked[0].OpenTickets != 1 || ranked[0].ClosedTickets != 1 {
		t.Errorf("Unexpected Alice counts: %+v", ranked[0])
	}
	if ranked[0].TotalRevenue != 200 || ranked[0].TotalProducts != 1 {
		t.Errorf("Unexpected Alice revenue/products: %+v", ranked[0])
	}

	// Limit trims the tail
	w = perform(t, reports.GetTopCustomers, http.MethodGet,
		"/api/reports/top-customers"+marchWindow()+"&limit=1", nil, nil)
	requireStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &ranked)
	if len(ranked) != 1 || ranked[0].Name != "Alice Doe" {
		t.Errorf("Expected only Alice with limit=1, got %+v", ranked)
	}
}

func TestProductTypeStats(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "+15550000001")
	laptop := seedProductType(t, db, "Laptop")
	tablet := seedProductType(t, db, "Tablet")
	shelf := seedShelf(t, db, "A", 1)
	reports := ReportController{}

	ticket := seedTicket(t, db, customer.ID, models.TicketStatusOpen,
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local))
	seedProduct(t, db, ticket, laptop.ID, shelf.ID, models.ProductStatusInRepair, nil)
	seedProduct(t, db, ticket, laptop.ID, shelf.ID, models.ProductStatusReceived, nil)

	w := perform(t, reports.GetProductTypeStats, http.MethodGet,
		"/api/reports/product-types"+marchWindow(), nil, nil)
	requireStatus(t, w, http.StatusOK)

	var stats []ProductTypeStatsEntry
	decodeJSON(t, w, &stats)

	if len(stats) != 2 {
		t.Fatalf("Expected 2 types, got %d", len(stats))
	}
	if stats[0].Type != "Laptop" || stats[0].Count != 2 {
		t.Errorf("Unexpected leading type: %+v", stats[0])
	}
	if stats[0].StatusBreakdown["IN_REPAIR"] != 1 || stats[0].StatusBreakdown["RECEIVED"] != 1 {
		t.Errorf("Unexpected breakdown: %v", stats[0].StatusBreakdown)
	}
	if stats[1].Type != tablet.Type || stats[1].Count != 0 {
		t.Errorf("Expected zero-filled Tablet entry, got %+v", stats[1])
	}
}

func TestMonthlyComparison(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "+15550000001")
	reports := ReportController{}

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 2, 10, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	seedTicket(t, db, customer.ID, models.TicketStatusOpen, thisMonth)
	closed := seedTicket(t, db, customer.ID, models.TicketStatusClosed, lastMonth)
	closed.TotalPrice = floatPtr(300)
	db.Save(&closed)

	w := perform(t, reports.GetMonthlyComparison, http.MethodGet, "/api/reports/monthly", nil, nil)
	requireStatus(t, w, http.StatusOK)

	var months []MonthlyComparisonEntry
	decodeJSON(t, w, &months)

	if len(months) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(months))
	}
	last := months[11]
	if last.Month != now.Format("2006-01") || last.Created != 1 {
		t.Errorf("Unexpected current month entry: %+v", last)
	}
	prev := months[10]
	if prev.Created != 1 || prev.Closed != 1 || prev.Revenue != 300 {
		t.Errorf("Unexpected previous month entry: %+v", prev)
	}
}

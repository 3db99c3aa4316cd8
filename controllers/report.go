// controllers/report.go
package controllers

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// SummaryReport aggregates one reporting window. Empty windows produce
// zero-valued structures, never errors.
type SummaryReport struct {
	Tickets        TicketCounts    `json:"tickets"`
	Revenue        RevenueStats    `json:"revenue"`
	CompletionRate int             `json:"completionRate"`
	Customers      CustomerCounts  `json:"customers"`
	Products       ProductCounts   `json:"products"`
	RepairTime     RepairTimeStats `json:"repairTime"`
}

type TicketCounts struct {
	Total     int `json:"total"`
	Open      int `json:"open"`
	Closed    int `json:"closed"`
	Cancelled int `json:"cancelled"`
}

type RevenueStats struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

type CustomerCounts struct {
	Total int `json:"total"`
}

type ProductCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

type RepairTimeStats struct {
	AverageHours float64 `json:"averageHours"`
	MinHours     float64 `json:"minHours"`
	MaxHours     float64 `json:"maxHours"`
	SampleSize   int     `json:"sampleSize"`
}

type DailyTrendEntry struct {
	Date    string  `json:"date"`
	Created int     `json:"created"`
	Closed  int     `json:"closed"`
	Revenue float64 `json:"revenue"`
}

type TopCustomerEntry struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	TicketCount   int       `json:"ticketCount"`
	OpenTickets   int       `json:"openTickets"`
	ClosedTickets int       `json:"closedTickets"`
	TotalRevenue  float64   `json:"totalRevenue"`
	TotalProducts int       `json:"totalProducts"`
}

type ProductTypeStatsEntry struct {
	ID              uuid.UUID      `json:"id"`
	Type            string         `json:"type"`
	Count           int            `json:"count"`
	StatusBreakdown map[string]int `json:"statusBreakdown"`
}

type MonthlyComparisonEntry struct {
	Month   string  `json:"month"`
	Created int     `json:"created"`
	Closed  int     `json:"closed"`
	Revenue float64 `json:"revenue"`
}

// reportWindow resolves the period query parameters, writing the error
// response itself on bad input.
func reportWindow(c *gin.Context) (utils.ReportWindow, bool) {
	window, err := utils.WindowForPeriod(
		c.Query("period"), c.Query("startDate"), c.Query("endDate"), time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return utils.ReportWindow{}, false
	}
	return window, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GetSummary computes the headline metrics for the window. Tickets are fetched
// once and every metric derives from that one snapshot, so a ticket can never
// be open in one number and closed in another.
func (rc *ReportController) GetSummary(c *gin.Context) {
	window, ok := reportWindow(c)
	if !ok {
		return
	}

	var tickets []models.Ticket
	if err := config.DB.Preload("Products").
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	var report SummaryReport
	report.Tickets.Total = len(tickets)

	customerSet := make(map[uuid.UUID]bool)
	var repairHours []float64

	for _, t := range tickets {
		customerSet[t.CustomerID] = true

		switch t.Status {
		case models.TicketStatusOpen:
			report.Tickets.Open++
		case models.TicketStatusClosed:
			report.Tickets.Closed++
			report.Revenue.Total += t.EffectiveTotal()
			if t.ClosedAt != nil {
				repairHours = append(repairHours, round1(t.ClosedAt.Sub(t.CreatedAt).Hours()))
			}
		case models.TicketStatusCancelled:
			report.Tickets.Cancelled++
		}
	}

	report.Customers.Total = len(customerSet)

	if report.Tickets.Closed > 0 {
		report.Revenue.Average = report.Revenue.Total / float64(report.Tickets.Closed)
	}
	if report.Tickets.Total > 0 {
		report.CompletionRate = int(math.Round(
			float64(report.Tickets.Closed) / float64(report.Tickets.Total) * 100))
	}

	report.RepairTime.SampleSize = len(repairHours)
	if len(repairHours) > 0 {
		minHours, maxHours, sum := repairHours[0], repairHours[0], 0.0
		for _, h := range repairHours {
			if h < minHours {
				minHours = h
			}
			if h > maxHours {
				maxHours = h
			}
			sum += h
		}
		report.RepairTime.MinHours = minHours
		report.RepairTime.MaxHours = maxHours
		report.RepairTime.AverageHours = round1(sum / float64(len(repairHours)))
	}

	report.Products.ByStatus = make(map[string]int, len(models.AllProductStatuses))
	for _, status := range models.AllProductStatuses {
		report.Products.ByStatus[string(status)] = 0
	}
	var products []models.Product
	if err := config.DB.
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	report.Products.Total = len(products)
	for _, p := range products {
		report.Products.ByStatus[string(p.Status)]++
	}

	c.JSON(http.StatusOK, report)
}

// GetDailyTrend returns one entry per calendar day of the window, zero-filled
// on quiet days so charts stay continuous.
func (rc *ReportController) GetDailyTrend(c *gin.Context) {
	window, ok := reportWindow(c)
	if !ok {
		return
	}

	var tickets []models.Ticket
	if err := config.DB.Preload("Products").
		Where("(created_at >= ? AND created_at < ?) OR (closed_at >= ? AND closed_at < ?)",
			window.Start, window.End, window.Start, window.End).
		Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute daily trend")
		return
	}

	const dayFormat = "2006-01-02"

	entries := make([]DailyTrendEntry, 0, window.Days())
	index := make(map[string]int, window.Days())
	for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		index[key] = len(entries)
		entries = append(entries, DailyTrendEntry{Date: key})
	}

	for _, t := range tickets {
		if window.Contains(t.CreatedAt) {
			entries[index[t.CreatedAt.Format(dayFormat)]].Created++
		}
		if t.Status == models.TicketStatusClosed && t.ClosedAt != nil && window.Contains(*t.ClosedAt) {
			i := index[t.ClosedAt.Format(dayFormat)]
			entries[i].Closed++
			entries[i].Revenue += t.EffectiveTotal()
		}
	}

	c.JSON(http.StatusOK, entries)
}

// GetTopCustomers ranks customers with activity in the window by ticket count,
// revenue as tiebreak.
func (rc *ReportController) GetTopCustomers(c *gin.Context) {
	window, ok := reportWindow(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	var tickets []models.Ticket
	if err := config.DB.Preload("Products").
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute top customers")
		return
	}

	byCustomer := make(map[uuid.UUID]*TopCustomerEntry)
	for _, t := range tickets {
		entry := byCustomer[t.CustomerID]
		if entry == nil {
			entry = &TopCustomerEntry{ID: t.CustomerID}
			byCustomer[t.CustomerID] = entry
		}
		entry.TicketCount++
		entry.TotalProducts += len(t.Products)
		switch t.Status {
		case models.TicketStatusOpen:
			entry.OpenTickets++
		case models.TicketStatusClosed:
			entry.ClosedTickets++
			entry.TotalRevenue += t.EffectiveTotal()
		}
	}

	ids := make([]uuid.UUID, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}

	if len(ids) > 0 {
		var customers []models.Customer
		if err := config.DB.Where("id IN ?", ids).Find(&customers).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute top customers")
			return
		}
		for _, cust := range customers {
			if entry := byCustomer[cust.ID]; entry != nil {
				entry.Name = cust.FullName()
				entry.Phone = cust.Phone
			}
		}
	}

	ranked := make([]TopCustomerEntry, 0, len(byCustomer))
	for _, entry := range byCustomer {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TicketCount != ranked[j].TicketCount {
			return ranked[i].TicketCount > ranked[j].TicketCount
		}
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	c.JSON(http.StatusOK, ranked)
}

// GetProductTypeStats breaks the window's products down per type and status.
// Types with no products in the window still appear zero-filled.
func (rc *ReportController) GetProductTypeStats(c *gin.Context) {
	window, ok := reportWindow(c)
	if !ok {
		return
	}

	var productTypes []models.ProductType
	if err := config.DB.Order("type ASC").Find(&productTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute product type stats")
		return
	}

	var products []models.Product
	if err := config.DB.
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute product type stats")
		return
	}

	stats := make([]ProductTypeStatsEntry, 0, len(productTypes))
	index := make(map[uuid.UUID]int, len(productTypes))
	for _, pt := range productTypes {
		breakdown := make(map[string]int, len(models.AllProductStatuses))
		for _, status := range models.AllProductStatuses {
			breakdown[string(status)] = 0
		}
		index[pt.ID] = len(stats)
		stats = append(stats, ProductTypeStatsEntry{
			ID:              pt.ID,
			Type:            pt.Type,
			StatusBreakdown: breakdown,
		})
	}

	for _, p := range products {
		i, known := index[p.ProductTypeID]
		if !known {
			continue
		}
		stats[i].Count++
		stats[i].StatusBreakdown[string(p.Status)]++
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	c.JSON(http.StatusOK, stats)
}

// GetMonthlyComparison returns the fixed trailing 12 calendar months,
// independent of any period filter.
func (rc *ReportController) GetMonthlyComparison(c *gin.Context) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	var tickets []models.Ticket
	if err := config.DB.Preload("Products").
		Where("created_at >= ? OR closed_at >= ?", start, start).
		Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute monthly comparison")
		return
	}

	const monthFormat = "2006-01"

	entries := make([]MonthlyComparisonEntry, 0, 12)
	index := make(map[string]int, 12)
	for i := 0; i < 12; i++ {
		key := start.AddDate(0, i, 0).Format(monthFormat)
		index[key] = len(entries)
		entries = append(entries, MonthlyComparisonEntry{Month: key})
	}

	for _, t := range tickets {
		if i, inRange := index[t.CreatedAt.Format(monthFormat)]; inRange && !t.CreatedAt.Before(start) {
			entries[i].Created++
		}
		if t.Status == models.TicketStatusClosed && t.ClosedAt != nil {
			if i, inRange := index[t.ClosedAt.Format(monthFormat)]; inRange {
				entries[i].Closed++
				entries[i].Revenue += t.EffectiveTotal()
			}
		}
	}

	c.JSON(http.StatusOK, entries)
}

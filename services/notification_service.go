// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"repairhub-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// MessageSender is the single capability the ticket lifecycle needs from the
// messaging side: deliver one text to one phone number. Delivery failures are
// logged, never propagated into ticket state.
type MessageSender interface {
	Send(toPhone, message string) error
}

// TwilioSender sends over WhatsApp via the Twilio API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender() *TwilioSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

func (s *TwilioSender) Send(toPhone, message string) error {
	to := toPhone
	if strings.HasPrefix(toPhone, "+") {
		to = "whatsapp:" + toPhone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	params.SetFrom("whatsapp:" + s.from)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", toPhone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", toPhone)
	}
	return nil
}

type NotificationService struct {
	db     *gorm.DB
	sender MessageSender
}

func NewNotificationService(db *gorm.DB, sender MessageSender) *NotificationService {
	return &NotificationService{db: db, sender: sender}
}

// Default is wired in main. When nil (tests, or messaging disabled by env) all
// notifications are silently skipped.
var Default *NotificationService

func NotifyTicketReceived(ticket *models.Ticket, customer *models.Customer) {
	if Default != nil {
		Default.TicketReceived(ticket, customer)
	}
}

func NotifyTicketClosed(ticket *models.Ticket, customer *models.Customer) {
	if Default != nil {
		Default.TicketClosed(ticket, customer)
	}
}

// TicketReceived confirms the drop-off to the customer.
func (s *NotificationService) TicketReceived(ticket *models.Ticket, customer *models.Customer) {
	message := fmt.Sprintf(
		"Hi %s, we received your item(s) for repair. Your ticket number is %s. We will let you know when the repair is done.",
		customer.Name, ticket.Number)
	s.deliver("ticket_received", ticket, customer, message)
}

// TicketClosed tells the customer the repair is done and what it costs.
func (s *NotificationService) TicketClosed(ticket *models.Ticket, customer *models.Customer) {
	message := fmt.Sprintf(
		"Hi %s, your repair (ticket %s) is done and ready for pickup. Total: %.2f.",
		customer.Name, ticket.Number, ticket.EffectiveTotal())
	s.deliver("ticket_closed", ticket, customer, message)
}

func (s *NotificationService) deliver(kind string, ticket *models.Ticket, customer *models.Customer, message string) {
	err := s.sender.Send(customer.Phone, message)

	status := "sent"
	errorMsg := ""
	if err != nil {
		log.Printf("Failed to send %s message to %s: %v", kind, customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.MessageLog{
		CustomerID:   customer.ID,
		TicketID:     &ticket.ID,
		Kind:         kind,
		Phone:        customer.Phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log %s message for customer %s: %v", kind, customer.ID, err)
	}
}

// StartScheduler runs the daily pickup-reminder job.
func (s *NotificationService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendPickupReminders()
	})

	c.Start()
	log.Println("Pickup reminder scheduler started")
}

// SendPickupReminders nudges customers whose repair has been done for a while:
// tickets closed more than three days ago that still hold a COMPLETED product.
// A ticket reminded within the last three days is skipped.
func (s *NotificationService) SendPickupReminders() {
	log.Println("Starting pickup reminder processing...")

	cutoff := time.Now().AddDate(0, 0, -3)

	var tickets []models.Ticket
	if err := s.db.Preload("Customer").
		Joins("JOIN products ON products.ticket_id = tickets.id").
		Where("tickets.status = ? AND tickets.closed_at < ?", models.TicketStatusClosed, cutoff).
		Where("products.status = ?", models.ProductStatusCompleted).
		Distinct("tickets.*").
		Find(&tickets).Error; err != nil {
		log.Printf("Failed to fetch tickets awaiting pickup: %v", err)
		return
	}

	for _, ticket := range tickets {
		if ticket.Customer == nil {
			continue
		}

		var recent int64
		s.db.Model(&models.MessageLog{}).
			Where("ticket_id = ? AND kind = ? AND sent_at > ?", ticket.ID, "pickup_reminder", cutoff).
			Count(&recent)
		if recent > 0 {
			continue
		}

		message := fmt.Sprintf(
			"Hi %s, a friendly reminder that your repair (ticket %s) is still waiting for pickup.",
			ticket.Customer.Name, ticket.Number)
		s.deliver("pickup_reminder", &ticket, ticket.Customer, message)
	}

	log.Println("Pickup reminder processing completed")
}

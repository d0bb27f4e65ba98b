package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event identifies an appointment lifecycle event.
type Event string

const (
	BookingCreated   Event = "booking_created"
	BookingCancelled Event = "booking_cancelled"
)

// AppointmentInfo carries the slot details rendered into messages.
type AppointmentInfo struct {
	AppointmentDate string
	TimeSlot        string
}

// Party is a notification recipient.
type Party struct {
	Name  string
	Email string
}

// Record is the persisted outcome of one delivery attempt.
type Record struct {
	ID        string     `json:"id"`
	Event     Event      `json:"event"`
	Recipient string     `json:"recipient"`
	Subject   string     `json:"subject"`
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// sendTimeout bounds each delivery attempt so a slow transport cannot pile
// up goroutines indefinitely.
const sendTimeout = 5 * time.Second

// Dispatcher renders per-audience messages and delivers them asynchronously.
// Every failure is logged and recorded but never propagated: the ledger
// write has already committed by the time Dispatch runs.
type Dispatcher struct {
	sender    EmailSender
	templates *TemplateEngine
	logger    zerolog.Logger

	mu      sync.RWMutex
	records map[string]*Record
	wg      sync.WaitGroup
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(sender EmailSender, templates *TemplateEngine, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		templates: templates,
		logger:    logger,
		records:   make(map[string]*Record),
	}
}

// Dispatch sends the event's patient-facing and doctor-facing messages.
// It returns immediately; delivery happens on background goroutines with a
// bounded per-send timeout.
func (d *Dispatcher) Dispatch(event Event, appt AppointmentInfo, patient, doctor Party) {
	data := map[string]string{
		"patient_name": patient.Name,
		"doctor_name":  doctor.Name,
		"date":         appt.AppointmentDate,
		"time":         appt.TimeSlot,
	}

	patientTpl, doctorTpl := TemplateBookedPatient, TemplateBookedDoctor
	if event == BookingCancelled {
		patientTpl, doctorTpl = TemplateCancelledPatient, TemplateCancelledDoctor
	}

	d.send(event, patientTpl, patient.Email, data, appt)
	d.send(event, doctorTpl, doctor.Email, data, appt)
}

func (d *Dispatcher) send(event Event, templateID, recipient string, data map[string]string, appt AppointmentInfo) {
	if recipient == "" {
		return
	}

	subject, body, err := d.templates.Render(templateID, data)
	if err != nil {
		// Fall back to a minimal inline message rather than dropping the send.
		d.logger.Warn().Err(err).Str("template", templateID).Msg("template render failed, using fallback")
		subject = "Appointment update"
		body = fmt.Sprintf("Your appointment on %s at %s has been updated.", appt.AppointmentDate, appt.TimeSlot)
	}

	rec := &Record{
		ID:        uuid.New().String(),
		Event:     event,
		Recipient: recipient,
		Subject:   subject,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}
	d.mu.Lock()
	d.records[rec.ID] = rec
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		err := d.sender.SendEmail(ctx, recipient, subject, body)

		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			rec.Status = "failed"
			rec.Error = err.Error()
			d.logger.Error().Err(err).
				Str("event", string(event)).
				Str("recipient", recipient).
				Msg("notification delivery failed")
			return
		}
		now := time.Now().UTC()
		rec.Status = "sent"
		rec.SentAt = &now
	}()
}

// Wait blocks until all in-flight deliveries have finished. Used by tests
// and by graceful shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// ListByRecipient returns delivery records for the given recipient.
func (d *Dispatcher) ListByRecipient(recipient string) []*Record {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Record
	for _, r := range d.records {
		if r.Recipient == recipient {
			out = append(out, r)
		}
	}
	return out
}

// Stats returns delivery counts grouped by status.
func (d *Dispatcher) Stats() map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := make(map[string]int)
	for _, r := range d.records {
		stats[r.Status]++
	}
	return stats
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// ReportMailer delivers plain-text reports to the sales team.
type ReportMailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// ReportService summarizes contact submissions for the sales inbox: a
// rolling report every few hours plus a full end-of-day digest.
type ReportService struct {
	contacts   ports.ContactRepository
	mailer     ReportMailer
	recipients []string
}

func NewReportService(contactRepo ports.ContactRepository, mailer ReportMailer, recipients []string) *ReportService {
	return &ReportService{contacts: contactRepo, mailer: mailer, recipients: recipients}
}

// SendIntervalReport mails the contacts received in the window ending
// now. An empty window sends nothing.
func (s *ReportService) SendIntervalReport(ctx context.Context, window time.Duration) error {
	if len(s.recipients) == 0 {
		return nil
	}
	until := time.Now()
	from := until.Add(-window)

	contacts, err := s.contacts.CreatedBetween(ctx, from, until)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Contact report: %d new in the last %s", len(contacts), window)
	return s.mailer.Send(ctx, s.recipients, subject, renderContactReport(contacts, from, until))
}

// SendDailyReport mails everything received on the given calendar day,
// even when the day was quiet.
func (s *ReportService) SendDailyReport(ctx context.Context, day time.Time) error {
	if len(s.recipients) == 0 {
		return nil
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	until := from.AddDate(0, 0, 1)

	contacts, err := s.contacts.CreatedBetween(ctx, from, until)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Daily contact report for %s: %d submissions", from.Format(dateLayout), len(contacts))
	return s.mailer.Send(ctx, s.recipients, subject, renderContactReport(contacts, from, until))
}

func renderContactReport(contacts []domain.Contact, from, until time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact submissions from %s to %s\n\n",
		from.Format(time.RFC3339), until.Format(time.RFC3339))
	if len(contacts) == 0 {
		b.WriteString("No submissions in this period.\n")
		return b.String()
	}
	for i, c := range contacts {
		fmt.Fprintf(&b, "%d. %s <%s>", i+1, c.FirstName, c.Email)
		if c.PhoneNumber != nil {
			fmt.Fprintf(&b, " (%s)", *c.PhoneNumber)
		}
		b.WriteString("\n")
		if c.Subject != nil {
			fmt.Fprintf(&b, "   Subject: %s\n", *c.Subject)
		}
		if c.Message != nil {
			fmt.Fprintf(&b, "   Message: %s\n", *c.Message)
		}
		fmt.Fprintf(&b, "   Received: %s\n\n", c.CreatedAt.Format(time.RFC3339))
	}
	return b.String()
}

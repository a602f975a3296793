package usecase

import (
	"fmt"
	"strings"

	"projectease/internal/domain/entities"
)

const signOff = "Best regards,\nProjectEase Team"

func paymentOptionLabel(o entities.PaymentOption) string {
	if o == entities.PaymentOptionFull {
		return "Full Payment"
	}
	return fmt.Sprintf("%d%% Advance + %d%% on Completion", entities.AdvancePercent, 100-entities.AdvancePercent)
}

func titleStatus(s entities.RequestStatus) string {
	v := string(s)
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

func lines(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

func optional(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

// renderNotification builds the client message for a notifying event. The
// second return is false for events that do not notify.
func renderNotification(ev entities.Event, r entities.Request, name string) (subject, body string, ok bool) {
	project := r.DisplayName()
	greeting := fmt.Sprintf("Hi %s,\n", name)

	switch ev.Type {
	case entities.EventRequestReceived:
		kind := "Custom Project"
		if r.Type == entities.RequestTypeExisting {
			kind = "Catalog Project"
		}
		price := ""
		if r.EstimatedPrice > 0 {
			price = fmt.Sprintf("Estimated Price: %d", r.EstimatedPrice)
		}
		return "Project Request Received - " + project, lines(
			greeting,
			"Thank you for your project request! We've received your submission and our team will review it shortly.\n",
			"Project Details:",
			"Name: "+project,
			"Type: "+kind,
			"Payment Option: "+paymentOptionLabel(r.PaymentOption),
			price,
			"\nWe'll get back to you within 24 hours with more details and pricing information.\n",
			signOff,
		), true

	case entities.EventRequestApproved:
		return "Project Approved - " + project, lines(
			greeting,
			"Great news! Your project request has been approved.\n",
			"Project: "+project,
			fmt.Sprintf("Total Amount: %d", r.TotalAmount),
			"Payment Option: "+paymentOptionLabel(r.PaymentOption),
			fmt.Sprintf("Amount Due Now: %d", r.AdvanceAmount),
			optional("Admin Notes", ev.Notes),
			"\nPlease log in to your dashboard to proceed with the payment and track your project progress.\n",
			signOff,
		), true

	case entities.EventStatusUpdated:
		return "Update - " + project, lines(
			greeting,
			"We have an update on your project:\n",
			"Project: "+project,
			"Status: "+titleStatus(r.Status),
			optional("Current Module", r.CurrentModule),
			optional("Update Details", ev.Notes),
			optional("GitHub Repository", r.GithubLink),
			"\nYou can view detailed progress in your dashboard.\n",
			signOff,
		), true

	case entities.EventNotesUpdated:
		return "Notes Update - " + project, lines(
			greeting,
			"New update on your project:\n",
			"Project: "+project,
			"Update: "+ev.Notes,
			optional("Current Module", r.CurrentModule),
			optional("GitHub Repository", r.GithubLink),
			"",
			signOff,
		), true

	case entities.EventPaymentCompleted:
		return "Payment Received - " + project, lines(
			greeting,
			fmt.Sprintf("We received your payment of %d for %s.\n", ev.Amount, project),
			fmt.Sprintf("Total Paid: %d of %d", r.TotalPaid(), r.TotalAmount),
			fmt.Sprintf("Outstanding: %d", r.Outstanding()),
			"",
			signOff,
		), true
	}
	return "", "", false
}

// Package messaging builds WhatsApp deep links and simulates bulk
// delivery. Single-recipient sends produce a real wa.me link for the
// operator to open; bulk sends are simulated because no provider
// integration exists yet.
package messaging

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/pintando7/escolinha/internal/app/models"
)

// CleanPhone strips every non-digit character from a phone number.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone cleans a phone number and prefixes the Brazilian
// country code when the local form has at most 11 digits.
func NormalizePhone(phone string) string {
	cleaned := CleanPhone(phone)
	if cleaned == "" {
		return ""
	}
	if len(cleaned) <= 11 {
		return "55" + cleaned
	}
	return cleaned
}

// formatDateBR renders an ISO date as DD/MM/YYYY. Unparseable input is
// passed through unchanged.
func formatDateBR(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// BuildEventMessage renders the guardian notification text for an
// agenda event.
func BuildEventMessage(event *models.SchoolEvent, guardianName string) string {
	return fmt.Sprintf(
		"*Escola Berçário Pintando 7*\n\n"+
			"Olá %s, nova atualização na agenda:\n\n"+
			"*%s*\n"+
			"📅 %s às %s\n"+
			"📝 %s\n\n"+
			"Acesse o app para mais detalhes.",
		guardianName, event.Title, formatDateBR(event.Date), event.Time, event.Description)
}

// BuildLink builds a wa.me deep link for a single recipient.
func BuildLink(phone string, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		NormalizePhone(phone), url.QueryEscape(message))
}

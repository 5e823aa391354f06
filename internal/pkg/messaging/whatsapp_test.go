package messaging

import (
	"context"
	"strings"
	"testing"

	"github.com/pintando7/escolinha/internal/app/models"
)

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(11) 98765-4321", "11987654321"},
		{"+55 11 98765-4321", "5511987654321"},
		{"11987654321", "11987654321"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := CleanPhone(tt.in); got != tt.want {
			t.Errorf("CleanPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(11) 98765-4321", "5511987654321"},   // local form gets the country code
		{"+55 11 98765-4321", "5511987654321"}, // already prefixed, 13 digits
		{"987654321", "55987654321"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildEventMessage(t *testing.T) {
	event := &models.SchoolEvent{
		Title:       "Festa Junina",
		Description: "Trazer prato típico",
		Date:        "2024-06-14",
		Time:        "15:00",
	}

	message := BuildEventMessage(event, "Maria")

	for _, want := range []string{
		"*Escola Berçário Pintando 7*",
		"Olá Maria",
		"*Festa Junina*",
		"14/06/2024 às 15:00",
		"Trazer prato típico",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("message missing %q:\n%s", want, message)
		}
	}
}

func TestBuildEventMessagePassesThroughBadDate(t *testing.T) {
	event := &models.SchoolEvent{Title: "Evento", Date: "amanhã", Time: "15:00"}

	if message := BuildEventMessage(event, "Maria"); !strings.Contains(message, "amanhã às 15:00") {
		t.Fatalf("unparseable date not passed through:\n%s", message)
	}
}

func TestBuildLink(t *testing.T) {
	link := BuildLink("(11) 98765-4321", "Olá Maria & família")

	if !strings.HasPrefix(link, "https://wa.me/5511987654321?text=") {
		t.Fatalf("link = %s", link)
	}
	if strings.Contains(link, "&f") || strings.Contains(link, " ") {
		t.Fatalf("message not escaped: %s", link)
	}
	if !strings.Contains(link, "Ol%C3%A1+Maria+%26+fam%C3%ADlia") {
		t.Fatalf("unexpected escaping: %s", link)
	}
}

func TestSimulatedMessengerDeliversAll(t *testing.T) {
	m := &SimulatedMessenger{}

	var calls []int
	success, err := m.SendBatch(context.Background(), 5, func(done, total int) {
		calls = append(calls, done)
	})
	if err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if success != 5 {
		t.Fatalf("success = %d, want 5", success)
	}
	if len(calls) != 5 || calls[4] != 5 {
		t.Fatalf("progress calls = %v", calls)
	}
}

func TestSimulatedMessengerStopsOnCancel(t *testing.T) {
	m := NewSimulatedMessenger()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	success, err := m.SendBatch(ctx, 3, nil)
	if err == nil {
		t.Fatal("cancelled batch reported no error")
	}
	if success != 0 {
		t.Fatalf("success = %d, want 0", success)
	}
}

// Package models defines the domain entities stored as JSONB documents
// plus the relational auth models.
package models

// Collection names, matching the JSONB document tables.
const (
	CollectionStudents     = "students"
	CollectionLogs         = "logs"
	CollectionAppointments = "appointments"
	CollectionGoals        = "goals"
	CollectionExpenses     = "expenses"
	CollectionEvents       = "events"
)

// RoleType defines the user role
type RoleType string

const (
	RoleAdmin        RoleType = "ADMIN"
	RoleNutritionist RoleType = "NUTRITIONIST"
)

// AllergySeverity levels as displayed to guardians (pt-BR labels are part
// of the stored data, not presentation).
type AllergySeverity string

const (
	SeverityMild     AllergySeverity = "Leve"
	SeverityModerate AllergySeverity = "Moderada"
	SeveritySevere   AllergySeverity = "Grave"
)

// MealType identifies which meal a log entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "Café da Manhã"
	MealLunch     MealType = "Almoço"
	MealSnack     MealType = "Lanche"
	MealDinner    MealType = "Jantar"
)

// MealMood captures how the child received the meal.
type MealMood string

const (
	MoodHappy   MealMood = "Happy"
	MoodNeutral MealMood = "Neutral"
	MoodFussy   MealMood = "Fussy"
	MoodRefused MealMood = "Refused"
)

// AppointmentType categorizes agenda appointments.
type AppointmentType string

const (
	AppointmentConsultation AppointmentType = "Consultation"
	AppointmentMeeting      AppointmentType = "Meeting"
	AppointmentReview       AppointmentType = "Review"
)

// Shift is the school shift a student attends.
type Shift string

const (
	ShiftMorning   Shift = "Matutino"
	ShiftAfternoon Shift = "Vespertino"
	ShiftFullTime  Shift = "Integral"
)

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "Pix"
	PaymentCash     PaymentMethod = "Dinheiro"
	PaymentCredit   PaymentMethod = "Cartão Crédito"
	PaymentDebit    PaymentMethod = "Cartão Débito"
	PaymentBoleto   PaymentMethod = "Boleto"
	PaymentTransfer PaymentMethod = "Transferência"
)

// ExpenseCategories is the closed category enumeration; unknown or empty
// categories fall back to the last entry.
var ExpenseCategories = []string{
	"Alimentação",
	"Material Escolar",
	"Salários",
	"Manutenção",
	"Contas (Água/Luz/Net)",
	"Marketing",
	"Impostos",
	"Outros",
}

// DefaultExpenseCategory is used when a document carries no category.
const DefaultExpenseCategory = "Outros"

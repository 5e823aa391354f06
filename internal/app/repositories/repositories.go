// Package repositories is the data access layer. The six domain
// collections are JSONB document tables; the client-assigned id field is
// stripped before every write and re-attached from the row key on read.
package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository     *StudentRepository
	MealLogRepository     *MealLogRepository
	AppointmentRepository *AppointmentRepository
	GoalRepository        *GoalRepository
	ExpenseRepository     *ExpenseRepository
	EventRepository       *EventRepository
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	DeviceRepository      *DeviceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:     NewStudentRepository(db),
		MealLogRepository:     NewMealLogRepository(db),
		AppointmentRepository: NewAppointmentRepository(db),
		GoalRepository:        NewGoalRepository(db),
		ExpenseRepository:     NewExpenseRepository(db),
		EventRepository:       NewEventRepository(db),
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		DeviceRepository:      NewDeviceRepository(db),
	}
}

// docReadErr maps a single-document read failure to the collection's
// not-found sentinel. Anything other than an empty result is a real
// database error and must stay visible to the caller.
func docReadErr(err error, entity string, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("error reading %s: %w", entity, err)
}

// stripID serializes an entity and removes the client-assigned "id" key
// so the store assigns the canonical identifier on insert, and so an
// update never writes the key into the document body.
func stripID(entity any) ([]byte, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	delete(doc, "id")

	return json.Marshal(doc)
}

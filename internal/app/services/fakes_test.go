package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// fakeSyncer records which collections were broadcast.
type fakeSyncer struct {
	changed []string
}

func (f *fakeSyncer) CollectionChanged(_ context.Context, collection string) {
	f.changed = append(f.changed, collection)
}

type fakeStudentStore struct {
	students map[string]*models.Student
	nextID   int
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[string]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) (string, error) {
	f.nextID++
	id := fmt.Sprintf("student-%d", f.nextID)
	student.ID = id
	copied := *student
	f.students[id] = &copied
	return id, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id string) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	copied.Normalize()
	return &copied, nil
}

func (f *fakeStudentStore) List(_ context.Context) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(f.students))
	for _, student := range f.students {
		copied := *student
		copied.Normalize()
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id string) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeMealLogStore struct {
	logs   []*models.MealLog
	nextID int
}

func (f *fakeMealLogStore) Create(_ context.Context, log *models.MealLog) (string, error) {
	f.nextID++
	log.ID = fmt.Sprintf("log-%d", f.nextID)
	copied := *log
	f.logs = append(f.logs, &copied)
	return log.ID, nil
}

func (f *fakeMealLogStore) List(_ context.Context) ([]*models.MealLog, error) {
	out := make([]*models.MealLog, len(f.logs))
	copy(out, f.logs)
	return out, nil
}

type fakeAppointmentStore struct {
	appointments map[string]*models.Appointment
	nextID       int
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentStore) Create(_ context.Context, appointment *models.Appointment) (string, error) {
	f.nextID++
	appointment.ID = fmt.Sprintf("appointment-%d", f.nextID)
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return appointment.ID, nil
}

func (f *fakeAppointmentStore) List(_ context.Context) ([]*models.Appointment, error) {
	out := make([]*models.Appointment, 0, len(f.appointments))
	for _, appointment := range f.appointments {
		copied := *appointment
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeAppointmentStore) Delete(_ context.Context, id string) error {
	if _, ok := f.appointments[id]; !ok {
		return apperrors.ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	return nil
}

type fakeGoalStore struct {
	goals  map[string]*models.WeeklyGoal
	nextID int
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[string]*models.WeeklyGoal)}
}

func (f *fakeGoalStore) Create(_ context.Context, goal *models.WeeklyGoal) (string, error) {
	f.nextID++
	goal.ID = fmt.Sprintf("goal-%d", f.nextID)
	copied := *goal
	f.goals[goal.ID] = &copied
	return goal.ID, nil
}

func (f *fakeGoalStore) List(_ context.Context) ([]*models.WeeklyGoal, error) {
	out := make([]*models.WeeklyGoal, 0, len(f.goals))
	for _, goal := range f.goals {
		copied := *goal
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (f *fakeGoalStore) SetCompleted(_ context.Context, id string, completed bool) error {
	goal, ok := f.goals[id]
	if !ok {
		return apperrors.ErrGoalNotFound
	}
	goal.Completed = completed
	return nil
}

func (f *fakeGoalStore) Delete(_ context.Context, id string) error {
	if _, ok := f.goals[id]; !ok {
		return apperrors.ErrGoalNotFound
	}
	delete(f.goals, id)
	return nil
}

type fakeExpenseStore struct {
	expenses map[string]*models.Expense
	nextID   int
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[string]*models.Expense)}
}

func (f *fakeExpenseStore) Create(_ context.Context, expense *models.Expense) (string, error) {
	f.nextID++
	expense.ID = fmt.Sprintf("expense-%d", f.nextID)
	copied := *expense
	f.expenses[expense.ID] = &copied
	return expense.ID, nil
}

func (f *fakeExpenseStore) List(_ context.Context) ([]*models.Expense, error) {
	out := make([]*models.Expense, 0, len(f.expenses))
	for _, expense := range f.expenses {
		copied := *expense
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeExpenseStore) Update(_ context.Context, expense *models.Expense) error {
	if _, ok := f.expenses[expense.ID]; !ok {
		return apperrors.ErrExpenseNotFound
	}
	copied := *expense
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeExpenseStore) Delete(_ context.Context, id string) error {
	if _, ok := f.expenses[id]; !ok {
		return apperrors.ErrExpenseNotFound
	}
	delete(f.expenses, id)
	return nil
}

type fakeEventStore struct {
	events map[string]*models.SchoolEvent
	nextID int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[string]*models.SchoolEvent)}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.SchoolEvent) (string, error) {
	f.nextID++
	event.ID = fmt.Sprintf("event-%d", f.nextID)
	copied := *event
	f.events[event.ID] = &copied
	return event.ID, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id string) (*models.SchoolEvent, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) List(_ context.Context) ([]*models.SchoolEvent, error) {
	out := make([]*models.SchoolEvent, 0, len(f.events))
	for _, event := range f.events {
		copied := *event
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.SchoolEvent) error {
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeUserStore struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (string, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return "", apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	copied := *user
	f.users[user.ID] = &copied
	return user.ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	if user, ok := f.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

type storedToken struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenStore) Store(_ context.Context, userID, token string, expiresAt time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenStore) Validate(_ context.Context, token string) (string, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return "", apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return "", apperrors.ErrTokenInvalid
	}
	if time.Now().After(stored.expiresAt) {
		return "", apperrors.ErrTokenExpired
	}
	return stored.userID, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID string) error {
	for _, stored := range f.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

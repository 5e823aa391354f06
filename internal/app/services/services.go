// Package services implements the application use cases. Services
// depend on narrow store interfaces rather than concrete repositories so
// the business rules can be exercised without a database.
package services

import (
	"context"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/app/repositories"
	"github.com/pintando7/escolinha/internal/config"
	"github.com/pintando7/escolinha/internal/pkg/auth"
	"github.com/pintando7/escolinha/internal/pkg/messaging"
	"github.com/pintando7/escolinha/internal/pkg/push"
	"github.com/pintando7/escolinha/internal/pkg/realtime"
	"github.com/pintando7/escolinha/internal/pkg/sessionstore"
)

// StudentStore is the persistence surface for students.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (string, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// MealLogStore is the persistence surface for meal logs.
type MealLogStore interface {
	Create(ctx context.Context, log *models.MealLog) (string, error)
	List(ctx context.Context) ([]*models.MealLog, error)
}

// AppointmentStore is the persistence surface for appointments.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) (string, error)
	List(ctx context.Context) ([]*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// GoalStore is the persistence surface for weekly goals.
type GoalStore interface {
	Create(ctx context.Context, goal *models.WeeklyGoal) (string, error)
	List(ctx context.Context) ([]*models.WeeklyGoal, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

// ExpenseStore is the persistence surface for expenses.
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) (string, error)
	List(ctx context.Context) ([]*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id string) error
}

// EventStore is the persistence surface for agenda events.
type EventStore interface {
	Create(ctx context.Context, event *models.SchoolEvent) (string, error)
	GetByID(ctx context.Context, id string) (*models.SchoolEvent, error)
	List(ctx context.Context) ([]*models.SchoolEvent, error)
	Update(ctx context.Context, event *models.SchoolEvent) error
	Delete(ctx context.Context, id string) error
}

// UserStore is the persistence surface for operator accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// TokenStore is the persistence surface for refresh tokens.
type TokenStore interface {
	Store(ctx context.Context, userID, token string, expiresAt time.Time) error
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// Services holds all service instances
type Services struct {
	AuthService        *AuthService
	StudentService     *StudentService
	MealLogService     *MealLogService
	AppointmentService *AppointmentService
	GoalService        *GoalService
	ExpenseService     *ExpenseService
	EventService       *EventService
	DashboardService   *DashboardService
	SyncService        *SyncService
}

// NewServices wires all services against the concrete repositories.
func NewServices(
	cfg *config.Config,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	sessions *sessionstore.Store,
	hub *realtime.Hub,
	pushService *push.Service,
) *Services {
	sync := NewSyncService(hub, repos)

	return &Services{
		AuthService: NewAuthService(cfg, repos.UserRepository, repos.TokenRepository,
			jwtService, sessions),
		StudentService:     NewStudentService(repos.StudentRepository, sync),
		MealLogService:     NewMealLogService(repos.MealLogRepository, repos.StudentRepository, sync),
		AppointmentService: NewAppointmentService(repos.AppointmentRepository, sync),
		GoalService:        NewGoalService(repos.GoalRepository, sync),
		ExpenseService:     NewExpenseService(repos.ExpenseRepository, sync),
		EventService: NewEventService(repos.EventRepository, repos.StudentRepository,
			messaging.NewSimulatedMessenger(), pushService, sync),
		DashboardService: NewDashboardService(repos.StudentRepository, repos.MealLogRepository,
			repos.ExpenseRepository, repos.EventRepository, repos.AppointmentRepository),
		SyncService: sync,
	}
}

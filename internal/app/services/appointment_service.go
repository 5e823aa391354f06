package services

import (
	"context"
	"strings"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// AppointmentService handles scheduled agenda items
type AppointmentService struct {
	appointments AppointmentStore
	sync         Syncer
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(appointments AppointmentStore, sync Syncer) *AppointmentService {
	return &AppointmentService{appointments: appointments, sync: sync}
}

// CreateAppointment stores a new appointment.
func (s *AppointmentService) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if strings.TrimSpace(appointment.Title) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Título é obrigatório")
	}
	if appointment.Date == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Data é obrigatória")
	}
	if appointment.Type == "" {
		appointment.Type = models.AppointmentConsultation
	}

	if _, err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionAppointments)
	return appointment, nil
}

// ListAppointments returns all appointments in chronological order.
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]*models.Appointment, error) {
	return s.appointments.List(ctx)
}

// DeleteAppointment removes an appointment.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}

	s.sync.CollectionChanged(ctx, models.CollectionAppointments)
	return nil
}

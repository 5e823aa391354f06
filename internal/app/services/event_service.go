package services

import (
	"context"
	"strings"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
	"github.com/pintando7/escolinha/internal/pkg/logger"
	"github.com/pintando7/escolinha/internal/pkg/messaging"
)

// Notifier pushes a broadcast notification to registered devices.
type Notifier interface {
	Broadcast(ctx context.Context, title, body string, data map[string]string)
}

// EventService handles agenda events and their guardian broadcasts
type EventService struct {
	events    EventStore
	students  StudentStore
	messenger messaging.Messenger
	push      Notifier
	sync      Syncer
}

// NewEventService creates a new event service
func NewEventService(events EventStore, students StudentStore, messenger messaging.Messenger, push Notifier, sync Syncer) *EventService {
	return &EventService{
		events:    events,
		students:  students,
		messenger: messenger,
		push:      push,
		sync:      sync,
	}
}

// CreateEvent stores a new event as an unsent draft.
func (s *EventService) CreateEvent(ctx context.Context, event *models.SchoolEvent) (*models.SchoolEvent, error) {
	if strings.TrimSpace(event.Title) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Título do evento é obrigatório")
	}
	if event.Date == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Data do evento é obrigatória")
	}
	if event.Audience == "" {
		event.Audience = models.AudienceGlobal
	}

	event.Status = models.EventDraft
	event.DispatchStatus = models.DispatchPending
	event.DeliveryStats = models.DeliveryStats{}
	if event.CreatedAt == "" {
		event.CreatedAt = time.Now().Format(time.RFC3339)
	}

	if _, err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionEvents)
	return event, nil
}

// ListEvents returns all events in chronological order.
func (s *EventService) ListEvents(ctx context.Context) ([]*models.SchoolEvent, error) {
	return s.events.List(ctx)
}

// UpdateEvent replaces an event record.
func (s *EventService) UpdateEvent(ctx context.Context, event *models.SchoolEvent) (*models.SchoolEvent, error) {
	if event.ID == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "ID do evento é obrigatório")
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.sync.CollectionChanged(ctx, models.CollectionEvents)
	return event, nil
}

// DeleteEvent removes an event record.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	s.sync.CollectionChanged(ctx, models.CollectionEvents)
	return nil
}

// recipients resolves the audience of an event against the roster.
func (s *EventService) recipients(ctx context.Context, event *models.SchoolEvent) ([]*models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	switch event.Audience {
	case models.AudienceGlobal:
		return students, nil
	case models.AudienceClass:
		filtered := make([]*models.Student, 0)
		for _, student := range students {
			if student.SchoolClass == event.TargetID {
				filtered = append(filtered, student)
			}
		}
		return filtered, nil
	case models.AudienceStudent:
		for _, student := range students {
			if student.ID == event.TargetID {
				return []*models.Student{student}, nil
			}
		}
		return []*models.Student{}, nil
	}
	return []*models.Student{}, nil
}

// Dispatch publishes an event and runs the guardian broadcast. A
// single-student audience yields a real WhatsApp deep link; class and
// global audiences run the simulated bulk sender. The delivery stats
// are written once, when the run finishes.
func (s *EventService) Dispatch(ctx context.Context, eventID string) (*dto.DispatchResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.DispatchStatus == models.DispatchSending {
		return nil, apperrors.ErrDispatchInProgress
	}

	recipientList, err := s.recipients(ctx, event)
	if err != nil {
		return nil, err
	}

	// Publishing and entering SENDING happens before any delivery work
	event.Status = models.EventPublished
	event.DispatchStatus = models.DispatchSending
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	s.sync.CollectionChanged(ctx, models.CollectionEvents)

	result := &dto.DispatchResult{
		EventID: event.ID,
		Total:   len(recipientList),
	}

	if event.Audience == models.AudienceStudent && len(recipientList) == 1 {
		student := recipientList[0]
		if student.ContactPhone == "" {
			// Leave the event in SENDING resolved as a zero-success run
			s.finishDispatch(ctx, event, len(recipientList), 0)
			return nil, apperrors.ErrNoRecipientPhone
		}

		message := messaging.BuildEventMessage(event, student.GuardianName)
		result.WhatsAppLink = messaging.BuildLink(student.ContactPhone, message)
		result.Success = 1
	} else {
		success, err := s.messenger.SendBatch(ctx, len(recipientList), nil)
		if err != nil {
			logger.Warn().Err(err).Str("eventId", event.ID).Msg("Broadcast interrupted")
		}
		result.Success = success
	}

	result.Failed = result.Total - result.Success
	s.finishDispatch(ctx, event, result.Total, result.Success)

	if s.push != nil {
		s.push.Broadcast(ctx, event.Title, event.Description, map[string]string{"eventId": event.ID})
	}

	logger.Info().
		Str("eventId", event.ID).
		Str("audience", string(event.Audience)).
		Int("total", result.Total).
		Int("success", result.Success).
		Msg("Event dispatched")

	return result, nil
}

func (s *EventService) finishDispatch(ctx context.Context, event *models.SchoolEvent, total, success int) {
	event.DispatchStatus = models.DispatchCompleted
	event.DeliveryStats = models.DeliveryStats{
		Total:   total,
		Success: success,
		Failed:  total - success,
	}
	if err := s.events.Update(ctx, event); err != nil {
		logger.Error().Err(err).Str("eventId", event.ID).Msg("Failed to record delivery stats")
		return
	}
	s.sync.CollectionChanged(ctx, models.CollectionEvents)
}

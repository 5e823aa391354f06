package services

import (
	"context"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/app/repositories"
	"github.com/pintando7/escolinha/internal/pkg/logger"
)

// Broadcaster fans a collection snapshot out to connected clients.
type Broadcaster interface {
	Broadcast(collection string, documents any)
}

// Syncer is the mutation-side hook the domain services call after any
// successful write.
type Syncer interface {
	CollectionChanged(ctx context.Context, collection string)
}

// SyncService rebuilds and broadcasts full collection snapshots. Every
// mutation path calls CollectionChanged; clients receive the whole
// collection and replace their local copy.
type SyncService struct {
	hub   Broadcaster
	repos *repositories.Repositories
}

// NewSyncService creates the snapshot sync service.
func NewSyncService(hub Broadcaster, repos *repositories.Repositories) *SyncService {
	return &SyncService{hub: hub, repos: repos}
}

// CollectionChanged reloads the named collection and broadcasts it.
// Failures are logged, never surfaced: a missed snapshot self-heals on
// the next mutation or reconnect.
func (s *SyncService) CollectionChanged(ctx context.Context, collection string) {
	documents, err := s.load(ctx, collection)
	if err != nil {
		logger.Error().Err(err).Str("collection", collection).Msg("Snapshot rebuild failed")
		return
	}
	s.hub.Broadcast(collection, documents)
}

// PublishAll warms the snapshot cache with every collection. Called
// once at startup so the first client connect replays current state.
func (s *SyncService) PublishAll(ctx context.Context) {
	for _, collection := range []string{
		models.CollectionStudents,
		models.CollectionLogs,
		models.CollectionAppointments,
		models.CollectionGoals,
		models.CollectionExpenses,
		models.CollectionEvents,
	} {
		s.CollectionChanged(ctx, collection)
	}
}

func (s *SyncService) load(ctx context.Context, collection string) (any, error) {
	switch collection {
	case models.CollectionStudents:
		return s.repos.StudentRepository.List(ctx)
	case models.CollectionLogs:
		return s.repos.MealLogRepository.List(ctx)
	case models.CollectionAppointments:
		return s.repos.AppointmentRepository.List(ctx)
	case models.CollectionGoals:
		return s.repos.GoalRepository.List(ctx)
	case models.CollectionExpenses:
		return s.repos.ExpenseRepository.List(ctx)
	case models.CollectionEvents:
		return s.repos.EventRepository.List(ctx)
	}
	return nil, nil
}

package service

import (
	"context"
	"time"

	"github.com/lawrenceli7/spark-bytes/internal/db"
	"github.com/lawrenceli7/spark-bytes/internal/model"
)

type eventStore interface {
	ListActiveEvents(ctx context.Context, now time.Time) ([]model.Event, error)
	ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error)
	GetEventByID(ctx context.Context, eventID int64) (*model.Event, error)
	CreateEvent(ctx context.Context, p db.CreateEventParams) (*model.Event, error)
	UpdateEvent(ctx context.Context, eventID int64, p db.UpdateEventParams) (*model.Event, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
}

type EventService struct {
	store eventStore
}

func NewEventService(store eventStore) *EventService {
	return &EventService{store: store}
}

func (s *EventService) ActiveEvents(ctx context.Context) ([]model.Event, error) {
	return s.store.ListActiveEvents(ctx, time.Now())
}

func (s *EventService) EventsForUser(ctx context.Context, userID string) ([]model.Event, error) {
	return s.store.ListEventsByCreator(ctx, userID)
}

func (s *EventService) EventByID(ctx context.Context, eventID int64) (*model.Event, error) {
	event, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, creatorID string, req model.CreateEventRequest) (*model.Event, error) {
	if req.Description == "" || req.ExpTime.IsZero() {
		return nil, ErrValidation
	}

	return s.store.CreateEvent(ctx, db.CreateEventParams{
		ExpTime:     req.ExpTime,
		Description: req.Description,
		Qty:         req.Qty,
		CreatedByID: creatorID,
		Location:    req.Location,
		TagIDs:      req.Tags,
		Photos:      req.Photos,
	})
}

func (s *EventService) UpdateEvent(ctx context.Context, eventID int64, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.store.UpdateEvent(ctx, eventID, db.UpdateEventParams{
		ExpTime:     req.ExpTime,
		Description: req.Description,
		Qty:         req.Qty,
		Location:    req.Location,
		TagIDs:      req.TagIDs,
		Photo:       req.Photo,
	})
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) Locations(ctx context.Context) ([]model.Location, error) {
	return s.store.ListLocations(ctx)
}

func (s *EventService) Tags(ctx context.Context) ([]model.Tag, error) {
	return s.store.ListTags(ctx)
}

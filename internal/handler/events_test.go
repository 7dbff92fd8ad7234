package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/lawrenceli7/spark-bytes/internal/db"
	"github.com/lawrenceli7/spark-bytes/internal/model"
	"github.com/lawrenceli7/spark-bytes/internal/service"
)

type memoryEvents struct {
	nextID int64
	events map[int64]*model.Event
}

func newMemoryEvents() *memoryEvents {
	return &memoryEvents{nextID: 1, events: make(map[int64]*model.Event)}
}

func (m *memoryEvents) ListActiveEvents(_ context.Context, now time.Time) ([]model.Event, error) {
	var list []model.Event
	for _, e := range m.events {
		if e.ExpTime.After(now) && !e.Done {
			list = append(list, *e)
		}
	}
	if list == nil {
		list = []model.Event{}
	}
	return list, nil
}

func (m *memoryEvents) ListEventsByCreator(_ context.Context, _ string) ([]model.Event, error) {
	return []model.Event{}, nil
}

func (m *memoryEvents) GetEventByID(_ context.Context, eventID int64) (*model.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *e
	return &clone, nil
}

func (m *memoryEvents) CreateEvent(_ context.Context, p db.CreateEventParams) (*model.Event, error) {
	e := &model.Event{
		EventID:     m.nextID,
		PostTime:    time.Now(),
		ExpTime:     p.ExpTime,
		Description: p.Description,
		Qty:         p.Qty,
		Tags:        []model.Tag{},
		Photos:      []model.Photo{},
		Location:    &model.Location{Address: p.Location.Address},
	}
	m.events[m.nextID] = e
	m.nextID++
	clone := *e
	return &clone, nil
}

func (m *memoryEvents) UpdateEvent(_ context.Context, eventID int64, p db.UpdateEventParams) (*model.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	e.Description = p.Description
	e.ExpTime = p.ExpTime
	e.Qty = p.Qty
	clone := *e
	return &clone, nil
}

func (m *memoryEvents) ListLocations(_ context.Context) ([]model.Location, error) {
	return []model.Location{}, nil
}

func (m *memoryEvents) ListTags(_ context.Context) ([]model.Tag, error) {
	return []model.Tag{}, nil
}

func eventRouter(authService *service.AuthService, eventService *service.EventService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEventHandler(eventService)
	events := r.Group("/api/events", AuthMiddleware(authService))
	events.GET("/active", h.GetActiveEvents)
	events.GET("/mine", h.GetUserEvents)
	events.GET("/:eventId", h.GetEventByID)
	events.POST("", h.CreateEvent)
	events.PUT("/:eventId", h.EditEvent)
	return r
}

func TestCreateEventRequiresPostPermission(t *testing.T) {
	authService, store := newTestAuth(t)
	eventService := service.NewEventService(newMemoryEvents())
	r := eventRouter(authService, eventService)

	token := signupToken(t, authService, "Ann", "a@x.com")

	body := `{"exp_time":"2030-01-01T12:00:00Z","description":"Pizza","qty":"10 boxes","tags":[],"photos":[],"location":{"Address":"665 Comm Ave","floor":1,"room":"CDS 101"}}`
	w := doJSON(r, http.MethodPost, "/api/events", token, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	// Grant posting rights and log in again for a token carrying them.
	annID, _, _ := tokenClaimsOf(t, authService, token)
	if err := store.UpdateUserPermissions(context.Background(), annID, false, true); err != nil {
		t.Fatalf("grant: %v", err)
	}
	posterToken, err := authService.Login(context.Background(), "a@x.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	w = doJSON(r, http.MethodPost, "/api/events", posterToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateEventRejectsEmptyPayload(t *testing.T) {
	authService, store := newTestAuth(t)
	eventService := service.NewEventService(newMemoryEvents())
	r := eventRouter(authService, eventService)

	token := signupToken(t, authService, "Ann", "a@x.com")
	annID, _, _ := tokenClaimsOf(t, authService, token)
	if err := store.UpdateUserPermissions(context.Background(), annID, false, true); err != nil {
		t.Fatalf("grant: %v", err)
	}
	posterToken, err := authService.Login(context.Background(), "a@x.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/api/events", posterToken, `{"description":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetEventByIDValidation(t *testing.T) {
	authService, _ := newTestAuth(t)
	eventService := service.NewEventService(newMemoryEvents())
	r := eventRouter(authService, eventService)

	token := signupToken(t, authService, "Ann", "a@x.com")

	w := doJSON(r, http.MethodGet, "/api/events/not-a-number", token, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/events/9999", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestActiveEventsRequiresAuth(t *testing.T) {
	authService, _ := newTestAuth(t)
	eventService := service.NewEventService(newMemoryEvents())
	r := eventRouter(authService, eventService)

	w := doJSON(r, http.MethodGet, "/api/events/active", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

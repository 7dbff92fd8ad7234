package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lawrenceli7/spark-bytes/internal/model"
	"github.com/lawrenceli7/spark-bytes/internal/service"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// GetActiveEvents godoc
// @Summary List active events
// @Description Events whose expiry is in the future and which are not done.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.EventListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/active [get]
func (h *EventHandler) GetActiveEvents(c *gin.Context) {
	events, err := h.svc.ActiveEvents(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.EventListResponse{Events: events})
}

// GetUserEvents godoc
// @Summary List events created by the authenticated user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/mine [get]
func (h *EventHandler) GetUserEvents(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	events, err := h.svc.EventsForUser(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEventByID godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/{eventId} [get]
func (h *EventHandler) GetEventByID(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_id"})
		return
	}

	event, err := h.svc.EventByID(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event ID not found"})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Requires the canPostEvents permission claim.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateEventRequest true "Event payload"
// @Success 201 {object} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil || !user.CanPostEvents {
		c.JSON(http.StatusForbidden, gin.H{"error": "User does not have permission to post events"})
		return
	}

	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// EditEvent godoc
// @Summary Edit an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body model.UpdateEventRequest true "Event payload"
// @Success 200 {object} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/{eventId} [put]
func (h *EventHandler) EditEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_id"})
		return
	}

	var req model.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), eventID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event ID not found"})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// GetLocations godoc
// @Summary List locations
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Location
// @Failure 500 {object} model.ErrorResponse
// @Router /api/locations [get]
func (h *EventHandler) GetLocations(c *gin.Context) {
	locations, err := h.svc.Locations(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetTags godoc
// @Summary List the tag vocabulary
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Tag
// @Failure 500 {object} model.ErrorResponse
// @Router /api/tags [get]
func (h *EventHandler) GetTags(c *gin.Context) {
	tags, err := h.svc.Tags(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

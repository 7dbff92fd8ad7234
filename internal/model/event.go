package model

import "time"

type Location struct {
	ID      int64   `json:"id"`
	Address string  `json:"Address"`
	Floor   int     `json:"floor"`
	Room    string  `json:"room"`
	LocNote *string `json:"loc_note"`
}

type Tag struct {
	TagID int64  `json:"tag_id"`
	Name  string `json:"name"`
}

type Photo struct {
	ID    int64  `json:"id"`
	Photo string `json:"photo"`
}

// EventCreator is the creator projection embedded in event listings; only the
// display name is exposed.
type EventCreator struct {
	Name string `json:"name"`
}

type Event struct {
	EventID     int64        `json:"event_id"`
	PostTime    time.Time    `json:"post_time"`
	ExpTime     time.Time    `json:"exp_time"`
	Description string       `json:"description"`
	Qty         string       `json:"qty"`
	Done        bool         `json:"done"`
	Tags        []Tag        `json:"tags"`
	Location    *Location    `json:"location"`
	Photos      []Photo      `json:"photos"`
	CreatedBy   EventCreator `json:"createdBy"`
}

// LocationInput either connects an existing location by id or creates a new
// one from the remaining fields.
type LocationInput struct {
	ID      *int64  `json:"id"`
	Address string  `json:"Address"`
	Floor   int     `json:"floor"`
	Room    string  `json:"room"`
	LocNote *string `json:"loc_note"`
}

type CreateEventRequest struct {
	ExpTime     time.Time     `json:"exp_time"`
	Description string        `json:"description"`
	Qty         string        `json:"qty"`
	Tags        []int64       `json:"tags"`
	Photos      []string      `json:"photos"`
	Location    LocationInput `json:"location"`
}

type UpdateEventRequest struct {
	ExpTime     time.Time     `json:"exp_time"`
	Description string        `json:"description"`
	Qty         string        `json:"qty"`
	Location    LocationInput `json:"location"`
	Photo       *string       `json:"photo"`
	TagIDs      []int64       `json:"tag_ids"`
}

type EventListResponse struct {
	Events []Event `json:"events"`
}

package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lawrenceli7/spark-bytes/internal/model"
)

const eventColumns = `
	e.event_id, e.post_time, e.exp_time, e.description, e.qty, e.done,
	l.id, l.address, l.floor, l.room, l.loc_note,
	u.name`

const eventFrom = `
	FROM events e
	JOIN locations l ON l.id = e.location_id
	JOIN users u ON u.id = e.created_by_id`

// ListActiveEvents returns events that have not expired and are not marked
// done, with tags, location and photos attached.
func (db *Postgres) ListActiveEvents(ctx context.Context, now time.Time) ([]model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.exp_time > $1 AND e.done = FALSE
		ORDER BY e.post_time DESC`
	return db.queryEvents(ctx, query, now)
}

func (db *Postgres) ListEventsByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.created_by_id = $1
		ORDER BY e.post_time DESC`
	return db.queryEvents(ctx, query, userID)
}

func (db *Postgres) GetEventByID(ctx context.Context, eventID int64) (*model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.event_id = $1`
	events, err := db.queryEvents(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &events[0], nil
}

type CreateEventParams struct {
	ExpTime     time.Time
	Description string
	Qty         string
	CreatedByID string
	Location    model.LocationInput
	TagIDs      []int64
	Photos      []string
}

// CreateEvent inserts the event, its tag links and photos in one transaction,
// creating the location first unless an existing one is referenced.
func (db *Postgres) CreateEvent(ctx context.Context, p CreateEventParams) (*model.Event, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	locationID, err := resolveLocation(ctx, tx, p.Location)
	if err != nil {
		return nil, err
	}

	var eventID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO events (post_time, exp_time, description, qty, done, created_by_id, location_id)
		VALUES (NOW(), $1, $2, $3, FALSE, $4, $5)
		RETURNING event_id
	`, p.ExpTime, p.Description, p.Qty, p.CreatedByID, locationID).Scan(&eventID)
	if err != nil {
		return nil, err
	}

	if err := insertEventTags(ctx, tx, eventID, p.TagIDs); err != nil {
		return nil, err
	}

	for _, photo := range p.Photos {
		if _, err := tx.Exec(ctx,
			`INSERT INTO photos (photo, event_id) VALUES ($1, $2)`, photo, eventID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return db.GetEventByID(ctx, eventID)
}

type UpdateEventParams struct {
	ExpTime     time.Time
	Description string
	Qty         string
	Location    model.LocationInput
	TagIDs      []int64
	Photo       *string
}

// UpdateEvent rewrites the event row, its location and its tag set; a non-nil
// Photo is appended to the existing photos.
func (db *Postgres) UpdateEvent(ctx context.Context, eventID int64, p UpdateEventParams) (*model.Event, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE events
		SET exp_time = $1, description = $2, qty = $3
		WHERE event_id = $4
	`, p.ExpTime, p.Description, p.Qty, eventID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `
		UPDATE locations
		SET address = $1, floor = $2, room = $3, loc_note = $4
		WHERE id = (SELECT location_id FROM events WHERE event_id = $5)
	`, p.Location.Address, p.Location.Floor, p.Location.Room, p.Location.LocNote, eventID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM event_tags WHERE event_id = $1`, eventID); err != nil {
		return nil, err
	}
	if err := insertEventTags(ctx, tx, eventID, p.TagIDs); err != nil {
		return nil, err
	}

	if p.Photo != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO photos (photo, event_id) VALUES ($1, $2)`, *p.Photo, eventID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return db.GetEventByID(ctx, eventID)
}

func (db *Postgres) ListLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, address, floor, room, loc_note FROM locations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Address, &l.Floor, &l.Room, &l.LocNote); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	if locations == nil {
		locations = []model.Location{}
	}
	return locations, rows.Err()
}

func (db *Postgres) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := db.Pool.Query(ctx, `SELECT tag_id, name FROM tags ORDER BY tag_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.TagID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, rows.Err()
}

func resolveLocation(ctx context.Context, tx pgx.Tx, loc model.LocationInput) (int64, error) {
	if loc.ID != nil {
		return *loc.ID, nil
	}
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO locations (address, floor, room, loc_note)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, loc.Address, loc.Floor, loc.Room, loc.LocNote).Scan(&id)
	return id, err
}

func insertEventTags(ctx context.Context, tx pgx.Tx, eventID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2)`, eventID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) queryEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		var l model.Location
		if err := rows.Scan(
			&e.EventID,
			&e.PostTime,
			&e.ExpTime,
			&e.Description,
			&e.Qty,
			&e.Done,
			&l.ID,
			&l.Address,
			&l.Floor,
			&l.Room,
			&l.LocNote,
			&e.CreatedBy.Name,
		); err != nil {
			return nil, err
		}
		e.Location = &l
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}

	if err := db.attachTags(ctx, events); err != nil {
		return nil, err
	}
	if err := db.attachPhotos(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *Postgres) attachTags(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := eventIDs(events)

	rows, err := db.Pool.Query(ctx, `
		SELECT et.event_id, t.tag_id, t.name
		FROM event_tags et
		JOIN tags t ON t.tag_id = et.tag_id
		WHERE et.event_id = ANY($1)
		ORDER BY t.tag_id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byEvent := make(map[int64][]model.Tag)
	for rows.Next() {
		var eventID int64
		var t model.Tag
		if err := rows.Scan(&eventID, &t.TagID, &t.Name); err != nil {
			return err
		}
		byEvent[eventID] = append(byEvent[eventID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range events {
		tags := byEvent[events[i].EventID]
		if tags == nil {
			tags = []model.Tag{}
		}
		events[i].Tags = tags
	}
	return nil
}

func (db *Postgres) attachPhotos(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := eventIDs(events)

	rows, err := db.Pool.Query(ctx, `
		SELECT event_id, id, photo
		FROM photos
		WHERE event_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byEvent := make(map[int64][]model.Photo)
	for rows.Next() {
		var eventID int64
		var p model.Photo
		if err := rows.Scan(&eventID, &p.ID, &p.Photo); err != nil {
			return err
		}
		byEvent[eventID] = append(byEvent[eventID], p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range events {
		photos := byEvent[events[i].EventID]
		if photos == nil {
			photos = []model.Photo{}
		}
		events[i].Photos = photos
	}
	return nil
}

func eventIDs(events []model.Event) []int64 {
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.EventID)
	}
	return ids
}

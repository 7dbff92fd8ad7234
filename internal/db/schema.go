package db

import "context"

// EnsureSchema creates the application tables when they do not exist yet.
// users.email carries the UNIQUE constraint that backs duplicate-signup
// detection; the application never probes for existence first.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			can_post_events BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS locations (
			id BIGSERIAL PRIMARY KEY,
			address TEXT NOT NULL,
			floor INT NOT NULL,
			room TEXT NOT NULL,
			loc_note TEXT
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS tags (
			tag_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS events (
			event_id BIGSERIAL PRIMARY KEY,
			post_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			exp_time TIMESTAMPTZ NOT NULL,
			description TEXT NOT NULL,
			qty TEXT NOT NULL,
			done BOOLEAN NOT NULL DEFAULT FALSE,
			created_by_id TEXT NOT NULL REFERENCES users(id),
			location_id BIGINT NOT NULL REFERENCES locations(id)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS event_tags (
			event_id BIGINT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(tag_id),
			PRIMARY KEY (event_id, tag_id)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS photos (
			id BIGSERIAL PRIMARY KEY,
			photo TEXT NOT NULL,
			event_id BIGINT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE
		)
		`,
		`CREATE INDEX IF NOT EXISTS events_exp_time_idx ON events(exp_time)`,
		`CREATE INDEX IF NOT EXISTS events_created_by_id_idx ON events(created_by_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}

	return db.seedTags(ctx)
}

// seedTags inserts the default tag vocabulary used by the event-creation form.
func (db *Postgres) seedTags(ctx context.Context) error {
	names := []string{"Vegan", "Vegetarian", "Gluten Free", "Halal", "Kosher", "Dairy Free", "Nut Free"}
	for _, name := range names {
		if _, err := db.Pool.Exec(ctx,
			`INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}
	return nil
}

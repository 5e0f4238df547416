package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotent appliqué au démarrage.
// Les invitations sont des lignes propres (pas un tableau embarqué) pour que
// deux mises à jour concurrentes sur des invitations différentes d'une même
// session ne se marchent jamais dessus.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	join_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id),
	token TEXT NOT NULL UNIQUE,
	ip_address TEXT,
	user_agent TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by TEXT,
	deleted_at TIMESTAMPTZ,
	deleted_by TEXT
);

CREATE TABLE IF NOT EXISTS habits (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT 'daily',
	current_streak INT NOT NULL DEFAULT 0,
	longest_streak INT NOT NULL DEFAULT 0,
	tags TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS habit_logs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	habit_id UUID NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	log_date DATE NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (habit_id, log_date)
);

CREATE TABLE IF NOT EXISTS marathon_sessions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	habit_id UUID NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	group_name TEXT NOT NULL DEFAULT '',
	initiated_by UUID NOT NULL REFERENCES users(id),
	habit_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS marathon_invitations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	marathon_id UUID NOT NULL REFERENCES marathon_sessions(id) ON DELETE CASCADE,
	to_user_id UUID NOT NULL REFERENCES users(id),
	status TEXT NOT NULL DEFAULT 'pending',
	start_date DATE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (marathon_id, to_user_id)
);

CREATE INDEX IF NOT EXISTS idx_invitations_user ON marathon_invitations(to_user_id);
`

// InitSchema crée les tables si besoin
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("unable to apply schema: %w", err)
	}
	return nil
}

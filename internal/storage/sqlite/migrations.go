package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database tables.
// These run on startup to ensure tables exist.
//
// group_members.position is the payout rotation order; contributions are
// keyed (group_id, cycle, member) so a cycle advance starts with an
// empty set while older cycles remain as the audit trail. Groups are
// never deleted.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    creator TEXT NOT NULL,
    contribution_amount INTEGER NOT NULL,
    cycle_duration INTEGER NOT NULL,
    max_members INTEGER NOT NULL,
    current_cycle INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    cycle_start_time INTEGER NOT NULL,
    is_complete INTEGER NOT NULL DEFAULT 0,
    state TEXT NOT NULL DEFAULT 'active'
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id INTEGER NOT NULL,
    member TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (group_id, member),
    UNIQUE (group_id, position),
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS contributions (
    group_id INTEGER NOT NULL,
    cycle INTEGER NOT NULL,
    member TEXT NOT NULL,
    transfer_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (group_id, cycle, member),
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS payouts (
    id TEXT PRIMARY KEY,
    group_id INTEGER NOT NULL,
    cycle INTEGER NOT NULL,
    member TEXT NOT NULL,
    amount INTEGER NOT NULL,
    transfer_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS group_metadata (
    group_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    rules TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_group_members_group_id ON group_members(group_id);
CREATE INDEX IF NOT EXISTS idx_contributions_group_cycle ON contributions(group_id, cycle);
CREATE INDEX IF NOT EXISTS idx_payouts_group_id ON payouts(group_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

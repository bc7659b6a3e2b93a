// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/ajoapp/backend/internal/models"
	"github.com/ajoapp/backend/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates
// the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGroup inserts the group row and its seed member list in one
// transaction, populating g.ID from the assigned rowid.
func (s *SQLiteStore) CreateGroup(ctx context.Context, g *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO groups (creator, contribution_amount, cycle_duration, max_members,
			current_cycle, created_at, cycle_start_time, is_complete, state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Creator, g.ContributionAmount, g.CycleDuration, g.MaxMembers,
		g.CurrentCycle, g.CreatedAt, g.CycleStartTime, boolToInt(g.IsComplete), string(g.State),
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get group id: %w", err)
	}
	g.ID = id

	for i, member := range g.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, member, position) VALUES (?, ?, ?)",
			g.ID, member, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including its ordered member list.
func (s *SQLiteStore) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	g := &models.Group{}
	var isComplete int
	var state string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, creator, contribution_amount, cycle_duration, max_members,
			current_cycle, created_at, cycle_start_time, is_complete, state
		 FROM groups WHERE id = ?`, id,
	).Scan(&g.ID, &g.Creator, &g.ContributionAmount, &g.CycleDuration, &g.MaxMembers,
		&g.CurrentCycle, &g.CreatedAt, &g.CycleStartTime, &isComplete, &state)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	g.IsComplete = isComplete != 0
	g.State = models.GroupState(state)

	rows, err := s.db.QueryContext(ctx,
		"SELECT member FROM group_members WHERE group_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		g.Members = append(g.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return g, nil
}

// UpdateGroup updates a group's mutable fields.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, g *models.Group) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE groups SET current_cycle = ?, cycle_start_time = ?, is_complete = ?, state = ?
		 WHERE id = ?`,
		g.CurrentCycle, g.CycleStartTime, boolToInt(g.IsComplete), string(g.State), g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AddMember appends a member at the given rotation position.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID int64, member string, position int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, member, position) VALUES (?, ?, ?)",
		groupID, member, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// RecordContribution inserts one cycle contribution.
func (s *SQLiteStore) RecordContribution(ctx context.Context, c *models.ContributionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contributions (group_id, cycle, member, transfer_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.GroupID, c.Cycle, c.Member, c.TransferID, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contribution: %w", err)
	}
	return nil
}

// CycleContributions returns the contribution set for one cycle.
func (s *SQLiteStore) CycleContributions(ctx context.Context, groupID int64, cycle int) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member FROM contributions WHERE group_id = ? AND cycle = ?",
		groupID, cycle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contributions: %w", err)
	}
	defer rows.Close()

	contributed := make(map[string]bool)
	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributed[member] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions: %w", err)
	}
	return contributed, nil
}

// RecordPayout writes the payout record and the group's advanced state
// in a single transaction so the audit trail and the cycle counter can
// never diverge.
func (s *SQLiteStore) RecordPayout(ctx context.Context, g *models.Group, p *models.PayoutRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payouts (id, group_id, cycle, member, amount, transfer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.GroupID, p.Cycle, p.Member, p.Amount, p.TransferID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payout: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE groups SET current_cycle = ?, cycle_start_time = ?, is_complete = ?, state = ?
		 WHERE id = ?`,
		g.CurrentCycle, g.CycleStartTime, boolToInt(g.IsComplete), string(g.State), g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to advance group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPayouts returns a group's payout records in cycle order.
func (s *SQLiteStore) ListPayouts(ctx context.Context, groupID int64) ([]models.PayoutRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, cycle, member, amount, transfer_id, created_at
		 FROM payouts WHERE group_id = ? ORDER BY cycle`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payouts: %w", err)
	}
	defer rows.Close()

	var payouts []models.PayoutRecord
	for rows.Next() {
		var p models.PayoutRecord
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Cycle, &p.Member, &p.Amount, &p.TransferID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payouts: %w", err)
	}
	return payouts, nil
}

// SetGroupMetadata inserts or replaces a group's metadata.
func (s *SQLiteStore) SetGroupMetadata(ctx context.Context, m *models.GroupMetadata) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO group_metadata (group_id, name, description, rules, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(group_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			rules = excluded.rules,
			updated_at = excluded.updated_at`,
		m.GroupID, m.Name, m.Description, m.Rules, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata: %w", err)
	}
	return nil
}

// GetGroupMetadata returns a group's metadata.
func (s *SQLiteStore) GetGroupMetadata(ctx context.Context, groupID int64) (*models.GroupMetadata, error) {
	m := &models.GroupMetadata{}
	err := s.db.QueryRowContext(ctx,
		`SELECT group_id, name, description, rules, updated_at
		 FROM group_metadata WHERE group_id = ?`, groupID,
	).Scan(&m.GroupID, &m.Name, &m.Description, &m.Rules, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	return m, nil
}

// CreateUser persists a new user account.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail looks a user up by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID looks a user up by id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	u := &models.User{}
	query := fmt.Sprintf(
		"SELECT id, email, name, password_hash, created_at FROM users WHERE %s = ?", column)
	err := s.db.QueryRowContext(ctx, query, value).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

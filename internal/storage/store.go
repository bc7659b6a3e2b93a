// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ajoapp/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the Ajo engine and the HTTP
// surface need. This abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing the engine.
//
// The engine serializes access per group id itself; the store's only
// atomicity obligation is that multi-row mutations (group creation,
// payout advancement) commit or roll back as a unit.
type Store interface {
	// CreateGroup persists a new group and its seed member list.
	// The group's ID field is populated by the store.
	CreateGroup(ctx context.Context, g *models.Group) error

	// GetGroup retrieves a group with its ordered member list.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, id int64) (*models.Group, error)

	// UpdateGroup updates a group's mutable fields (cycle counters,
	// window start, completion state). Members are not touched.
	UpdateGroup(ctx context.Context, g *models.Group) error

	// AddMember appends a member at the given rotation position.
	AddMember(ctx context.Context, groupID int64, member string, position int) error

	// RecordContribution inserts one cycle contribution.
	RecordContribution(ctx context.Context, c *models.ContributionRecord) error

	// CycleContributions returns the set of members who contributed in
	// the given cycle, keyed by member id.
	CycleContributions(ctx context.Context, groupID int64, cycle int) (map[string]bool, error)

	// RecordPayout writes the payout audit record and the group's
	// advanced state in a single transaction.
	RecordPayout(ctx context.Context, g *models.Group, p *models.PayoutRecord) error

	// ListPayouts returns a group's payout records in cycle order.
	ListPayouts(ctx context.Context, groupID int64) ([]models.PayoutRecord, error)

	// SetGroupMetadata inserts or replaces a group's metadata.
	SetGroupMetadata(ctx context.Context, m *models.GroupMetadata) error

	// GetGroupMetadata returns a group's metadata, or ErrNotFound.
	GetGroupMetadata(ctx context.Context, groupID int64) (*models.GroupMetadata, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, u *models.User) error

	// GetUserByEmail looks a user up by email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID looks a user up by id, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

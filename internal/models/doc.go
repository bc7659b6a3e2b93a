// Package models defines the core domain models for the Ajo backend.
//
// # Overview
//
// An Ajo group is a rotating savings circle: every member pays a fixed
// contribution each cycle, and one member per cycle receives the pooled
// amount, rotating through the member list in join order until everyone
// has been paid once.
//
// The models here are plain structs shared between the protocol engine
// (internal/ajo), the storage layer (internal/storage) and the HTTP
// handlers:
//   - Group: configuration and rotation state of one savings circle
//   - ContributionRecord: one member's contribution in one cycle
//   - PayoutRecord: audit entry for a distributed payout
//   - GroupStatus: composite point-in-time snapshot for clients
//   - GroupMetadata: optional display information for a group
//   - User: registered account used by the HTTP surface
//
// # Design Principles
//
//  1. Member identities are opaque strings (user ids issued at
//     registration); the engine never interprets them.
//  2. Timestamps are Unix seconds, matching the storage schema.
//  3. Models carry no behavior beyond trivial derivations; all protocol
//     rules live in internal/ajo.
package models

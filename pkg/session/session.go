// Package session persists server-driven chart sessions.
//
// A [Session] is the durable half of an interactive chart: the chart kind,
// its raw input and its current zoom domain. The live chart object (scales,
// emphasis attributes, idle guard) is rebuilt from it by the server, so a
// session survives a restart as long as its store does.
//
// Three stores implement [Store]:
//   - [MemoryStore]: in-process map, the server default
//   - [FileStore]: one JSON file per session, for single-host deployments
//   - [MongoStore]: a MongoDB collection with a TTL index
//
// Every store reports a missing session as [ErrNotFound] and a session past
// its expiry as [ErrExpired].
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Session is the persisted state of one interactive chart.
type Session struct {
	ID          string `json:"id" bson:"_id"`
	Kind        string `json:"kind" bson:"kind"`
	InputFormat string `json:"input_format" bson:"input_format"`
	Data        string `json:"data" bson:"data"`

	// Genome tracks only.
	Chrom  string      `json:"chrom,omitempty" bson:"chrom,omitempty"`
	Min    float64     `json:"min,omitempty" bson:"min,omitempty"`
	Max    float64     `json:"max,omitempty" bson:"max,omitempty"`
	Domain *[2]float64 `json:"domain,omitempty" bson:"domain,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// New returns a session with a random id expiring after ttl.
func New(kind, inputFormat, data string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.NewString(),
		Kind:        kind,
		InputFormat: inputFormat,
		Data:        data,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// IsExpired reports whether s has passed its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Touch pushes the expiry to now+ttl.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.ExpiresAt = now.Add(ttl)
}

// ValidID reports whether id has the form New generates. Stores use it to
// reject path-like ids before touching the filesystem.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store persists sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
	Close() error
}

// Package memory is a single-writer, in-process implementation of the storage
// interfaces. Records are copied in and out at the boundary, so no caller ever
// holds a pointer into the store.
package memory

import (
	"sync"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// Store implements the Storage interface in memory.
type Store struct {
	mu sync.Mutex

	streams      map[uint64]*models.Stream
	active       map[uint64]struct{}
	nextStreamID uint64

	milestones      map[uint64]*models.Milestone
	nextMilestoneID uint64

	notifications      map[uint64]*models.Notification
	nextNotificationID uint64

	templates      map[uint64]*models.StreamTemplate
	nextTemplateID uint64

	global    models.StreamStats
	userStats map[string]*models.UserStats

	connections map[string]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		streams:       make(map[uint64]*models.Stream),
		active:        make(map[uint64]struct{}),
		milestones:    make(map[uint64]*models.Milestone),
		notifications: make(map[uint64]*models.Notification),
		templates:     make(map[uint64]*models.StreamTemplate),
		userStats:     make(map[string]*models.UserStats),
		connections:   make(map[string]struct{}),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

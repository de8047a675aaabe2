package project

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
)

type memberKey struct {
	projectID string
	userID    string
}

// MemoryStore is an in-memory Store used when no database is configured
// and as a DB-free fixture in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]Project
	members  map[memberKey]Membership
}

// NewMemoryStore creates an empty in-memory project store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]Project),
		members:  make(map[memberKey]Membership),
	}
}

func (s *MemoryStore) Create(_ context.Context, in CreateInput) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Project{
		ID:          ulid.Make().String(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   in.Now,
		UpdatedAt:   in.Now,
	}
	s.projects[p.ID] = p
	s.members[memberKey{p.ID, in.OwnerID}] = Membership{
		ProjectID: p.ID,
		UserID:    in.OwnerID,
		Role:      RoleOwner,
		CreatedAt: in.Now,
	}
	return p, nil
}

func (s *MemoryStore) GetByID(_ context.Context, projectID string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ListForUser(_ context.Context, userID string) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, 0, 8)
	for key, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if p, ok := s.projects[key.projectID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetMember(_ context.Context, projectID, userID string) (Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[memberKey{projectID, userID}]
	if !ok {
		return Membership{}, ErrNotMember
	}
	return m, nil
}

// AddMember inserts a membership row directly. Used by seed data and test
// fixtures; there is no public member-management endpoint.
func (s *MemoryStore) AddMember(projectID, userID string, role MemberRole) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return
	}
	s.members[memberKey{projectID, userID}] = Membership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: p.CreatedAt,
	}
}

func (s *MemoryStore) Update(_ context.Context, projectID string, up Update) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return Project{}, ErrNotFound
	}
	if up.Name != nil {
		p.Name = *up.Name
	}
	if up.DescriptionSet {
		p.Description = up.Description
	}
	p.UpdatedAt = up.Now
	s.projects[projectID] = p
	return p, nil
}

func (s *MemoryStore) Delete(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return ErrNotFound
	}
	delete(s.projects, projectID)
	for key := range s.members {
		if key.projectID == projectID {
			delete(s.members, key)
		}
	}
	return nil
}

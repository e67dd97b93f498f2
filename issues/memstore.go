package issues

import (
	"sort"
	"sync"
)

// MemStore keeps the issue log in memory behind a single writer lock, the
// way the reference deployment runs. Id assignment and the claim transition
// are check-then-act sequences, so every mutation holds the lock.
type MemStore struct {
	mu     sync.Mutex
	byID   map[int64]*Issue
	order  []int64
	nextID int64
}

func NewMemStore(seed []Issue) *MemStore {
	s := &MemStore{
		byID:   make(map[int64]*Issue, len(seed)),
		nextID: BaseID + 1,
	}
	for _, issue := range seed {
		cp := copyIssue(issue)
		s.byID[issue.ID] = &cp
		s.order = append(s.order, issue.ID)
		if issue.ID >= s.nextID {
			s.nextID = issue.ID + 1
		}
	}
	return s
}

func copyIssue(issue Issue) Issue {
	cp := issue
	cp.Categories = append([]string(nil), issue.Categories...)
	return cp
}

func (s *MemStore) Append(issue Issue) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue.ID = s.nextID
	s.nextID++

	cp := copyIssue(issue)
	s.byID[issue.ID] = &cp
	s.order = append(s.order, issue.ID)
	return issue.ID, nil
}

func (s *MemStore) Get(id int64) (Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.byID[id]
	if !ok {
		return Issue{}, ErrNotFound
	}
	return copyIssue(*issue), nil
}

func (s *MemStore) SetStatus(id int64, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	issue.Status = status
	return nil
}

func (s *MemStore) SetClaimant(id int64, claimant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	issue.Claimant = claimant
	return nil
}

func (s *MemStore) MarkUnderReview(id int64, claimant string) (Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.byID[id]
	if !ok {
		return Issue{}, ErrNotFound
	}
	if issue.Status != Unclaimed {
		return Issue{}, ErrInvalidTransition
	}
	issue.Status = UnderReview
	issue.Claimant = claimant
	return copyIssue(*issue), nil
}

func (s *MemStore) ListByStatus(status Status, newestFirst bool) ([]Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Issue
	for _, id := range s.order {
		if s.byID[id].Status == status {
			out = append(out, copyIssue(*s.byID[id]))
		}
	}
	sortByReportedAt(out, newestFirst)
	return out, nil
}

func (s *MemStore) List(newestFirst bool) ([]Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Issue, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyIssue(*s.byID[id]))
	}
	sortByReportedAt(out, newestFirst)
	return out, nil
}

func (s *MemStore) Size() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID), nil
}

func sortByReportedAt(list []Issue, newestFirst bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if newestFirst {
			return list[i].ReportedAt.After(list[j].ReportedAt)
		}
		return list[i].ReportedAt.Before(list[j].ReportedAt)
	})
}

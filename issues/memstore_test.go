package issues

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func testIssue(ts time.Time) Issue {
	return Issue{
		ReportedAt:    ts,
		Segment:       "Haihe (Daguangming Bridge)",
		Categories:    []string{"solid waste", "surface oil"},
		Description:   "Plastic bottles along the bank",
		Status:        Unclaimed,
		ReporterID:    "u001",
		ReportReward:  50,
		ImageURL:      "https://oss.example/uploads/a.png",
		ResolveReward: 100,
	}
}

func TestAppendAssignsIds(t *testing.T) {
	testCases := []struct {
		name      string
		seed      []Issue
		appends   int
		expectIds []int64
	}{
		{
			name:      "Empty store starts from base",
			seed:      nil,
			appends:   3,
			expectIds: []int64{1001, 1002, 1003},
		},
		{
			name:      "Seeded store continues from max",
			seed:      Seed(),
			appends:   2,
			expectIds: []int64{1004, 1005},
		},
		{
			name: "Gap in seed ids is not refilled",
			seed: []Issue{
				{ID: 1001, Status: Unclaimed},
				{ID: 1007, Status: Resolved},
			},
			appends:   1,
			expectIds: []int64{1008},
		},
	}

	for _, testCase := range testCases {
		s := NewMemStore(testCase.seed)
		var got []int64
		for i := 0; i < testCase.appends; i++ {
			id, err := s.Append(testIssue(time.Now()))
			if err != nil {
				t.Errorf("%s, Append: unexpected error %v", testCase.name, err)
			}
			got = append(got, id)
		}
		if !reflect.DeepEqual(got, testCase.expectIds) {
			t.Errorf("%s, Append: expected ids %v, got %v", testCase.name, testCase.expectIds, got)
		}
	}
}

func TestAppendGetRoundTrip(t *testing.T) {
	s := NewMemStore(nil)
	in := testIssue(time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC))

	id, err := s.Append(in)
	if err != nil {
		t.Fatalf("Append: unexpected error %v", err)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: unexpected error %v", err)
	}

	in.ID = id
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Get: expected %v, got %v", in, got)
	}

	// The stored issue must not alias the caller's slice.
	in.Categories[0] = "mutated"
	got2, _ := s.Get(id)
	if got2.Categories[0] == "mutated" {
		t.Error("Get: stored categories alias the caller's slice")
	}
}

func TestGetNotFound(t *testing.T) {
	s := NewMemStore(Seed())
	if _, err := s.Get(9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(9999): expected ErrNotFound, got %v", err)
	}
}

func TestSetStatusAndClaimant(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		expectError error
	}{
		{name: "Existing issue", id: 1001, expectError: nil},
		{name: "Missing issue", id: 4242, expectError: ErrNotFound},
	}

	for _, testCase := range testCases {
		s := NewMemStore(Seed())
		if err := s.SetStatus(testCase.id, Resolved); !errors.Is(err, testCase.expectError) {
			t.Errorf("%s, SetStatus: expected %v, got %v", testCase.name, testCase.expectError, err)
		}
		if err := s.SetClaimant(testCase.id, "u009"); !errors.Is(err, testCase.expectError) {
			t.Errorf("%s, SetClaimant: expected %v, got %v", testCase.name, testCase.expectError, err)
		}
		if testCase.expectError == nil {
			got, _ := s.Get(testCase.id)
			if got.Status != Resolved || got.Claimant != "u009" {
				t.Errorf("%s: mutation not applied, got %v", testCase.name, got)
			}
		}
	}
}

func TestMarkUnderReview(t *testing.T) {
	testCases := []struct {
		name        string
		id          int64
		expectError error
	}{
		{name: "Unclaimed issue is claimed", id: 1001, expectError: nil},
		{name: "Already claimed issue", id: 1002, expectError: ErrInvalidTransition},
		{name: "Resolved issue", id: 1003, expectError: ErrInvalidTransition},
		{name: "Missing issue", id: 4242, expectError: ErrNotFound},
	}

	for _, testCase := range testCases {
		s := NewMemStore(Seed())
		got, err := s.MarkUnderReview(testCase.id, "u042")
		if !errors.Is(err, testCase.expectError) {
			t.Errorf("%s, MarkUnderReview: expected %v, got %v", testCase.name, testCase.expectError, err)
			continue
		}
		if testCase.expectError != nil {
			continue
		}
		if got.Status != UnderReview || got.Claimant != "u042" {
			t.Errorf("%s, MarkUnderReview: expected UnderReview/u042, got %v/%v",
				testCase.name, got.Status, got.Claimant)
		}
	}
}

func TestMarkUnderReviewKeepsLoser(t *testing.T) {
	s := NewMemStore(Seed())
	if _, err := s.MarkUnderReview(1001, "first"); err != nil {
		t.Fatalf("first claim: unexpected error %v", err)
	}
	if _, err := s.MarkUnderReview(1001, "second"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second claim: expected ErrInvalidTransition, got %v", err)
	}
	got, _ := s.Get(1001)
	if got.Claimant != "first" {
		t.Errorf("losing claim overwrote the claimant: %v", got.Claimant)
	}
}

func TestListOrdering(t *testing.T) {
	base := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemStore(nil)
	// Appended out of chronological order on purpose.
	for _, offset := range []int{2, 0, 1} {
		issue := testIssue(base.AddDate(0, 0, offset))
		if _, err := s.Append(issue); err != nil {
			t.Fatalf("Append: unexpected error %v", err)
		}
	}

	oldest, err := s.ListByStatus(Unclaimed, false)
	if err != nil {
		t.Fatalf("ListByStatus: unexpected error %v", err)
	}
	for i := 1; i < len(oldest); i++ {
		if oldest[i].ReportedAt.Before(oldest[i-1].ReportedAt) {
			t.Errorf("work queue not ascending at %d", i)
		}
	}

	newest, err := s.List(true)
	if err != nil {
		t.Fatalf("List: unexpected error %v", err)
	}
	if len(newest) != 3 {
		t.Fatalf("List: expected 3 issues, got %d", len(newest))
	}
	for i := 1; i < len(newest); i++ {
		if newest[i].ReportedAt.After(newest[i-1].ReportedAt) {
			t.Errorf("feed not descending at %d", i)
		}
	}
}

func TestConcurrentAppendUniqueIds(t *testing.T) {
	s := NewMemStore(Seed())
	const workers = 8
	const perWorker = 25

	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id, err := s.Append(testIssue(time.Now()))
				if err != nil {
					t.Errorf("Append: unexpected error %v", err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d assigned under concurrent appends", id)
		}
		seen[id] = true
	}
	if len(seen) != workers*perWorker {
		t.Errorf("expected %d unique ids, got %d", workers*perWorker, len(seen))
	}
}

func TestSize(t *testing.T) {
	s := NewMemStore(Seed())
	if n, _ := s.Size(); n != 3 {
		t.Errorf("Size: expected 3, got %d", n)
	}
	if _, err := s.Append(testIssue(time.Now())); err != nil {
		t.Fatalf("Append: unexpected error %v", err)
	}
	if n, _ := s.Size(); n != 4 {
		t.Errorf("Size after append: expected 4, got %d", n)
	}
}

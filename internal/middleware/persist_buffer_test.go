package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"FinGrade/internal/domain/models"
)

type fakeMetrics struct{}

func (fakeMetrics) RecordCompanyProcessed(string, bool) {}
func (fakeMetrics) RecordCacheLookup(bool)              {}
func (fakeMetrics) RecordQualityScore(string, float64)  {}
func (fakeMetrics) RecordError(string)                  {}
func (fakeMetrics) RecordLatency(string, float64)       {}

type fakeSaver struct {
	mu    sync.Mutex
	saved []string
	fail  bool
}

func (s *fakeSaver) SaveCompany(_ context.Context, r *models.CompanyResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("storage down")
	}
	s.saved = append(s.saved, r.CompanyID)
	return nil
}

func (s *fakeSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func (s *fakeSaver) setFail(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = v
}

func TestPersistBufferSaves(t *testing.T) {
	saver := &fakeSaver{}
	buf := NewPersistBuffer(saver, fakeMetrics{})

	if err := buf.SaveCompany(context.Background(), &models.CompanyResult{CompanyID: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if saver.count() != 1 {
		t.Fatalf("saved = %d, want 1", saver.count())
	}
}

func TestPersistBufferRejectsInvalid(t *testing.T) {
	buf := NewPersistBuffer(&fakeSaver{}, fakeMetrics{})
	if err := buf.SaveCompany(context.Background(), nil); err == nil {
		t.Fatalf("nil result must be rejected")
	}
	if err := buf.SaveCompany(context.Background(), &models.CompanyResult{}); err == nil {
		t.Fatalf("empty company id must be rejected")
	}
}

func TestPersistBufferDropsRapidDuplicates(t *testing.T) {
	saver := &fakeSaver{}
	buf := NewPersistBuffer(saver, fakeMetrics{}, WithMinSaveGap(time.Hour))

	r := &models.CompanyResult{CompanyID: "a"}
	if err := buf.SaveCompany(context.Background(), r); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := buf.SaveCompany(context.Background(), r); err != nil {
		t.Fatalf("duplicate save must be dropped silently, got %v", err)
	}
	if saver.count() != 1 {
		t.Fatalf("saved = %d, want 1", saver.count())
	}
}

func TestPersistBufferFlushesAfterOutage(t *testing.T) {
	saver := &fakeSaver{fail: true}
	buf := NewPersistBuffer(saver, fakeMetrics{}, WithBufferSize(8))
	buf.Start(context.Background())
	defer buf.Stop()

	if err := buf.SaveCompany(context.Background(), &models.CompanyResult{CompanyID: "a"}); err == nil {
		t.Fatalf("expected storage error while down")
	}

	saver.setFail(false)
	deadline := time.Now().Add(5 * time.Second)
	for saver.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("buffered result was not flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

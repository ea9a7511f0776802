package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FinGrade/internal/domain/models"
	domrepo "FinGrade/internal/domain/repository"
)

// Saver is the minimal storage interface the buffer needs.
type Saver interface {
	SaveCompany(ctx context.Context, r *models.CompanyResult) error
}

// PersistBuffer sits between the ingest path and storage. It validates
// results, drops rapid duplicate writes for the same company, and buffers
// results when storage is unavailable so a ClickHouse restart does not
// lose consumed messages.
type PersistBuffer struct {
	saver    Saver
	metrics  domrepo.Metrics
	minGap   time.Duration
	bufSize  int
	bufCh    chan *models.CompanyResult
	stopCh   chan struct{}
	started  bool
	mu       sync.Mutex
	lastSave map[string]time.Time // per-company last accepted write
}

type BufferOption func(*PersistBuffer)

// WithMinSaveGap sets the minimum interval between writes for one company.
func WithMinSaveGap(d time.Duration) BufferOption {
	return func(p *PersistBuffer) {
		if d > 0 {
			p.minGap = d
		}
	}
}

// WithBufferSize sets the temporary buffer size when storage is unavailable.
func WithBufferSize(n int) BufferOption {
	return func(p *PersistBuffer) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewPersistBuffer creates a new buffer in front of the given saver.
func NewPersistBuffer(saver Saver, metrics domrepo.Metrics, opts ...BufferOption) *PersistBuffer {
	p := &PersistBuffer{
		saver:    saver,
		metrics:  metrics,
		minGap:   time.Second,
		bufSize:  1000,
		bufCh:    make(chan *models.CompanyResult, 1000),
		stopCh:   make(chan struct{}),
		lastSave: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *models.CompanyResult, p.bufSize)
	}
	return p
}

// Start launches background flushing of buffered results.
func (p *PersistBuffer) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case r := <-p.bufCh:
				if r == nil {
					continue
				}
				if err := p.saver.SaveCompany(ctx, r); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("persist_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- r:
					default:
						p.metrics.RecordError("persist_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *PersistBuffer) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// SaveCompany validates and forwards the result to storage, buffering on
// errors. Duplicate writes for the same company inside the configured gap
// are dropped silently.
func (p *PersistBuffer) SaveCompany(ctx context.Context, r *models.CompanyResult) error {
	start := time.Now()
	if err := validateResult(r); err != nil {
		p.metrics.RecordError("persist_validate")
		return err
	}
	if !p.allow(r.CompanyID, start) {
		p.metrics.RecordError("persist_duplicate_drop")
		return nil
	}

	if err := p.saver.SaveCompany(ctx, r); err != nil {
		p.metrics.RecordError("persist_store")
		// buffer non-blocking
		select {
		case p.bufCh <- r:
			p.metrics.RecordLatency("persist_buffer_depth", float64(len(p.bufCh)))
		default:
			p.metrics.RecordError("persist_buffer_full")
		}
		return fmt.Errorf("persist storage: %w", err)
	}
	p.metrics.RecordLatency("persist_save", time.Since(start).Seconds())
	return nil
}

func validateResult(r *models.CompanyResult) error {
	if r == nil {
		return fmt.Errorf("result nil")
	}
	if r.CompanyID == "" {
		return fmt.Errorf("company id empty")
	}
	return nil
}

func (p *PersistBuffer) allow(companyID string, now time.Time) bool {
	if p.minGap <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSave[companyID]
	if last.IsZero() || now.Sub(last) >= p.minGap {
		p.lastSave[companyID] = now
		return true
	}
	return false
}

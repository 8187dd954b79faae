package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

type recordCount int

func (n recordCount) Len() int { return int(n) }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(recordCount(5), &mockPinger{}, &mockEmbeddingChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Records != 5 {
		t.Errorf("records = %d, want 5", r.Records)
	}
	for _, name := range []string{CheckRecords, CheckStorage, CheckEmbedding} {
		if r.Checks[name] != CheckOK {
			t.Errorf("%s = %q, want %q", name, r.Checks[name], CheckOK)
		}
	}
}

func TestCheck_StorageError(t *testing.T) {
	svc := New(recordCount(5), &mockPinger{err: errors.New("conn refused")}, &mockEmbeddingChecker{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckStorage] != CheckError {
		t.Errorf("expected storage %q, got %q", CheckError, r.Checks[CheckStorage])
	}
	if r.Checks[CheckEmbedding] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks[CheckEmbedding])
	}
}

func TestCheck_EmbeddingError(t *testing.T) {
	svc := New(recordCount(5), &mockPinger{}, &mockEmbeddingChecker{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckEmbedding] != CheckError {
		t.Errorf("expected embedding %q, got %q", CheckError, r.Checks[CheckEmbedding])
	}
}

func TestCheck_NoRecordsIsUnhealthy(t *testing.T) {
	svc := New(recordCount(0), &mockPinger{err: errors.New("down")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckRecords] != CheckError {
		t.Error("expected records error")
	}
}

func TestCheck_MemoryDriverNoEmbedding(t *testing.T) {
	svc := New(recordCount(1), nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckStorage]; ok {
		t.Error("storage check should be absent for the memory driver")
	}
	if _, ok := r.Checks[CheckEmbedding]; ok {
		t.Error("embedding check should be absent when embedding is nil")
	}
}

package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT: every call bumps the stored
// value by the requested increment and returns the new value.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	lastIncr     int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.lastIncr = increment

	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("TEST")

	year := time.Now().Format("2006")

	num, err := svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-"+year+"-00001" {
		t.Errorf("expected TEST-%s-00001, got %s", year, num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-"+year+"-00002" {
		t.Errorf("expected TEST-%s-00002, got %s", year, num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ORD")

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}

	year := time.Now().Format("2006")

	// First call allocates the range 1..10 and hands out 1.
	num, err := svc.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-"+year+"-00001" {
		t.Errorf("expected ORD-%s-00001, got %s", year, num)
	}

	if q.currentValue != 10 {
		t.Errorf("expected DB value to be 10, got %d", q.currentValue)
	}

	// Next nine calls must not hit the DB.
	for i := 2; i <= 10; i++ {
		if _, err := svc.GetNextNumber(ctx, cfg, opts, time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.currentValue)
	}

	// Eleventh call refills the range.
	num, err = svc.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-"+year+"-00011" {
		t.Errorf("expected ORD-%s-00011, got %s", year, num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value to be 20, got %d", q.currentValue)
	}
}

func TestFormatNumber_NoYear(t *testing.T) {
	svc := New(&mockQuerier{})
	cfg := Config{Prefix: "ADJ", PadWidth: 4}

	got := svc.formatNumber(cfg, time.Now(), 7)
	if got != "ADJ-0007" {
		t.Errorf("expected ADJ-0007, got %s", got)
	}
}

func TestParseNumber(t *testing.T) {
	if n := ParseNumber("INV-2026-00042"); n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
	if n := ParseNumber("ADJ-0007"); n != 7 {
		t.Errorf("expected 7, got %d", n)
	}
	if n := ParseNumber("garbage"); n != -1 {
		t.Errorf("expected -1, got %d", n)
	}
}

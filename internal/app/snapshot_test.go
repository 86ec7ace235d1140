package app

import (
	"context"
	"testing"
	"time"

	"github.com/evanschultz/orderboard/internal/domain"
)

func TestExportBoardEmptyKeepsEveryColumn(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	svc := NewService(newFakeRepo(), nil, func() time.Time { return now })

	snap, err := svc.ExportBoard(context.Background())
	if err != nil {
		t.Fatalf("ExportBoard() error = %v", err)
	}
	if !snap.ExportedAt.Equal(now) || snap.ExportedAt.Location() != time.UTC {
		t.Fatalf("expected UTC export time, got %v", snap.ExportedAt)
	}
	want := domain.Columns()
	if len(snap.Columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(snap.Columns))
	}
	for i, col := range snap.Columns {
		if col.ID != want[i] || col.Title != want[i].Title() {
			t.Fatalf("unexpected column %d: %#v", i, col)
		}
		if col.Orders == nil {
			t.Fatalf("expected non-nil orders for %q so exports render []", col.ID)
		}
	}
}

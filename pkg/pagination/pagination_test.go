package pagination

import (
	"testing"
	"time"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	if p.Page != 1 {
		t.Errorf("page = %d, want 1", p.Page)
	}
	if p.PerPage != 100 {
		t.Errorf("per_page = %d, want clamped to 100", p.PerPage)
	}
	if p.Offset() != 0 {
		t.Errorf("offset = %d, want 0", p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 25)
	if pg.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", pg.TotalPages)
	}
	if !pg.HasNext || !pg.HasPrev {
		t.Error("page 2 of 3 should have both next and prev")
	}
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	token := EncodeCursor("abc-123", createdAt)

	params := &CursorParams{Cursor: token}
	cursor, err := params.DecodeCursor()
	if err != nil {
		t.Fatal(err)
	}
	if cursor.ID != "abc-123" {
		t.Errorf("id = %q, want %q", cursor.ID, "abc-123")
	}
	if !cursor.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at = %v, want %v", cursor.CreatedAt, createdAt)
	}
}

func TestDecodeCursorEmptyAndInvalid(t *testing.T) {
	empty := &CursorParams{}
	if cursor, err := empty.DecodeCursor(); err != nil || cursor != nil {
		t.Errorf("empty cursor should decode to nil, got (%v, %v)", cursor, err)
	}

	bad := &CursorParams{Cursor: "not base64!!"}
	if _, err := bad.DecodeCursor(); err == nil {
		t.Error("expected error for malformed cursor")
	}
}

type row struct {
	id        string
	createdAt time.Time
}

func TestNewCursorPaginationTrimsExtraRow(t *testing.T) {
	now := time.Now()
	rows := []row{
		{"a", now},
		{"b", now.Add(time.Second)},
		{"c", now.Add(2 * time.Second)},
	}

	pg, trimmed := NewCursorPagination(rows, 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.createdAt },
	)

	if len(trimmed) != 2 {
		t.Fatalf("trimmed = %d rows, want 2", len(trimmed))
	}
	if !pg.HasNext {
		t.Error("extra fetched row should signal a next page")
	}
	if pg.NextCursor == nil || pg.PrevCursor == nil {
		t.Fatal("both cursors should be set for a non-empty page")
	}

	next := &CursorParams{Cursor: *pg.NextCursor}
	decoded, err := next.DecodeCursor()
	if err != nil {
		t.Fatal(err)
	}
	if decoded.ID != "b" {
		t.Errorf("next cursor id = %q, want last trimmed row %q", decoded.ID, "b")
	}
}

package standings

import (
	"testing"
	"time"
)

func TestFeed_GetSet(t *testing.T) {
	f := NewFeed()
	if f.Get("a") == nil || f.Get("b") == nil {
		t.Fatal("NewFeed() should create both snapshots")
	}

	snap := NewSnapshot("123")
	snap.Rows = append(snap.Rows, Row{Pos: "1", Team: "Lyn"})
	f.Set("b", snap)

	if f.Get("b").FiksID != "123" {
		t.Errorf("Get(b).FiksID = %q, want 123", f.Get("b").FiksID)
	}
	if f.Get("c") != nil {
		t.Error("Get(c) should be nil")
	}

	f.Set("c", snap)
	if f.Get("a").Len() != 0 {
		t.Error("Set with unknown key must not touch a")
	}
}

func TestSnapshot_EmptyOnNil(t *testing.T) {
	var s *Snapshot
	if !s.Empty() || s.Len() != 0 {
		t.Error("nil snapshot should be empty")
	}
}

func TestFeed_Stamp(t *testing.T) {
	f := NewFeed()
	loc := time.FixedZone("CEST", 2*60*60)
	f.Stamp(time.Date(2026, 10, 15, 14, 5, 9, 0, loc))

	if f.UpdatedAt != "2026-10-15 12:05:09" {
		t.Errorf("UpdatedAt = %q, want 2026-10-15 12:05:09", f.UpdatedAt)
	}
}

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	changes := []Change{
		{SessionID: "s1", ChangedAt: base, Subject: SubjectWindowManager, OldValue: "xfwm4", NewValue: "gala"},
		{SessionID: "s1", ChangedAt: base.Add(time.Minute), Subject: "edge-tiling", OldValue: "false", NewValue: "true"},
		{SessionID: "s2", ChangedAt: base.Add(time.Hour), Subject: SubjectWindowManager, OldValue: "gala", NewValue: "xfwm4", Note: "xfwm4 not found"},
	}
	for _, c := range changes {
		if err := j.Record(ctx, c); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d rows", len(got))
	}
	if got[0].SessionID != "s2" || got[0].Note != "xfwm4 not found" {
		t.Errorf("Recent()[0] = %+v, want the newest change", got[0])
	}
	if got[1].Subject != "edge-tiling" || got[1].NewValue != "true" {
		t.Errorf("Recent()[1] = %+v", got[1])
	}
	if !got[0].ChangedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("ChangedAt = %v, want %v", got[0].ChangedAt, base.Add(time.Hour))
	}
}

func TestJournal_RecordStampsTime(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	if err := j.Record(ctx, Change{SessionID: "s", Subject: "animations", OldValue: "true", NewValue: "false"}); err != nil {
		t.Fatal(err)
	}

	got, err := j.Recent(ctx, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("Recent() = %v, %v", got, err)
	}
	if got[0].ChangedAt.Before(before) {
		t.Errorf("ChangedAt = %v, want a current timestamp", got[0].ChangedAt)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	j, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Record(ctx, Change{SessionID: "s", Subject: "animations", OldValue: "false", NewValue: "true"}); err != nil {
		t.Fatal(err)
	}
	j.Close()

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer j.Close()

	got, err := j.Recent(ctx, 10)
	if err != nil || len(got) != 1 {
		t.Errorf("Recent() after reopen = %v, %v", got, err)
	}
}

package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/calebmartin/inkwell/internal/state"
)

type memStore struct {
	rec    Record
	status state.Status
	saves  int
}

func (m *memStore) Load() (Record, state.Status, error) {
	return m.rec, m.status, nil
}

func (m *memStore) Save(r Record) error {
	m.rec = r
	m.status = state.Found
	m.saves++
	return nil
}

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestCheck_FirstRunAlwaysGranted(t *testing.T) {
	store := &memStore{status: state.Absent}
	gate := &Gate{Store: store, Cooldown: 36 * time.Hour}

	ok, err := gate.Check(baseTime)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("first run should be granted")
	}
	if store.rec.LastRan != baseTime.UnixMilli() {
		t.Fatalf("LastRan = %d, want %d", store.rec.LastRan, baseTime.UnixMilli())
	}
}

func TestCheck_ZeroLastRanGranted(t *testing.T) {
	store := &memStore{rec: Record{LastRan: 0}, status: state.Found}
	gate := &Gate{Store: store, Cooldown: 36 * time.Hour}

	ok, err := gate.Check(baseTime)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("lastRan=0 should be treated as never ran")
	}
}

func TestCheck_CooldownBoundary(t *testing.T) {
	cooldown := 36 * time.Hour

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"justInside", baseTime.Add(cooldown - time.Millisecond), false},
		{"exactlyAtCooldown", baseTime.Add(cooldown), true},
		{"wellPast", baseTime.Add(cooldown + 12*time.Hour), true},
		{"immediate", baseTime, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{rec: Record{LastRan: baseTime.UnixMilli()}, status: state.Found}
			gate := &Gate{Store: store, Cooldown: cooldown}

			ok, err := gate.Check(tc.at)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tc.want {
				t.Fatalf("Check(%v) = %v, want %v", tc.at, ok, tc.want)
			}
			if tc.want {
				if store.rec.LastRan != tc.at.UnixMilli() {
					t.Fatalf("record not advanced to check time")
				}
			} else {
				if store.rec.LastRan != baseTime.UnixMilli() {
					t.Fatalf("denial modified the record")
				}
				if store.saves != 0 {
					t.Fatalf("denial wrote the record (%d saves)", store.saves)
				}
			}
		})
	}
}

func TestCheck_IdempotentDenial(t *testing.T) {
	store := &memStore{rec: Record{LastRan: baseTime.UnixMilli()}, status: state.Found}
	gate := &Gate{Store: store, Cooldown: 36 * time.Hour}

	for i := 0; i < 2; i++ {
		ok, err := gate.Check(baseTime.Add(time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatalf("check %d granted inside cooldown window", i)
		}
	}
	if store.rec.LastRan != baseTime.UnixMilli() {
		t.Fatal("record changed across denied checks")
	}
}

func TestCheck_GrantThenDenyThenGrant(t *testing.T) {
	store := &memStore{status: state.Absent}
	gate := &Gate{Store: store, Cooldown: 36 * time.Hour}

	ok, err := gate.Check(baseTime)
	if err != nil || !ok {
		t.Fatalf("first check: ok=%v err=%v", ok, err)
	}
	ok, err = gate.Check(baseTime.Add(time.Minute))
	if err != nil || ok {
		t.Fatalf("immediate second check: ok=%v err=%v", ok, err)
	}
	ok, err = gate.Check(baseTime.Add(36 * time.Hour))
	if err != nil || !ok {
		t.Fatalf("check after full cooldown: ok=%v err=%v", ok, err)
	}
}

func TestCheck_CorruptRecordGrants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lastrun.json")
	if err := os.WriteFile(path, []byte("definitely not json"), 0644); err != nil {
		t.Fatal(err)
	}

	gate := &Gate{Store: &FileStore{Path: path}, Cooldown: 36 * time.Hour}
	ok, err := gate.Check(baseTime)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("corrupt record should degrade to never-ran")
	}

	// The grant must replace the corrupt record with a valid one.
	var rec Record
	status, err := state.ReadRecord(path, &rec)
	if err != nil {
		t.Fatal(err)
	}
	if status != state.Found {
		t.Fatalf("status = %v after grant, want found", status)
	}
	if rec.LastRan != baseTime.UnixMilli() {
		t.Fatalf("LastRan = %d, want %d", rec.LastRan, baseTime.UnixMilli())
	}
}

func TestCheck_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lastrun.json")

	first := &Gate{Store: &FileStore{Path: path}, Cooldown: 36 * time.Hour}
	if ok, err := first.Check(baseTime); err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}

	second := &Gate{Store: &FileStore{Path: path}, Cooldown: 36 * time.Hour}
	if ok, err := second.Check(baseTime.Add(time.Hour)); err != nil || ok {
		t.Fatalf("fresh gate should still deny: ok=%v err=%v", ok, err)
	}
}

func TestCheck_CronSchedule(t *testing.T) {
	// Daily at 06:00; last ran at 06:00 on March 10.
	expr := cronexpr.MustParse("0 6 * * *")
	lastRan := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	store := &memStore{rec: Record{LastRan: lastRan.UnixMilli()}, status: state.Found}
	gate := &Gate{Store: store, Cron: expr}

	ok, err := gate.Check(time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("granted before next cron fire time")
	}

	ok, err = gate.Check(time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("denied at next cron fire time")
	}
}

func TestDue_DoesNotPersist(t *testing.T) {
	store := &memStore{status: state.Absent}
	gate := &Gate{Store: store, Cooldown: 36 * time.Hour}

	ok, err := gate.Due(baseTime)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("due should report true for never-ran")
	}
	if store.saves != 0 {
		t.Fatal("due wrote the record")
	}
}

func TestWindow(t *testing.T) {
	store := &memStore{rec: Record{LastRan: baseTime.UnixMilli()}, status: state.Found}
	gate := &Gate{Store: store, Cooldown: 36 * time.Hour}

	last, next, err := gate.Window()
	if err != nil {
		t.Fatal(err)
	}
	if !last.Equal(baseTime) {
		t.Fatalf("last = %v, want %v", last, baseTime)
	}
	if !next.Equal(baseTime.Add(36 * time.Hour)) {
		t.Fatalf("next = %v", next)
	}
}

func TestWindow_NeverRan(t *testing.T) {
	gate := &Gate{Store: &memStore{status: state.Absent}, Cooldown: 36 * time.Hour}
	last, next, err := gate.Window()
	if err != nil {
		t.Fatal(err)
	}
	if !last.IsZero() || !next.IsZero() {
		t.Fatalf("last=%v next=%v, want zero times", last, next)
	}
}

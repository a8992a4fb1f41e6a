package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"dungeonforge.gg/internal/game/world"
)

func readJSONLZstd(t *testing.T, dir string) []world.CombatLogEntry {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(ents) != 1 {
		t.Fatalf("want one rotated file, got %d", len(ents))
	}
	f, err := os.Open(filepath.Join(dir, ents[0].Name()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var out []world.CombatLogEntry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e world.CombatLogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("decode line %q: %v", sc.Text(), err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func TestCombatLogger_RoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	l := NewCombatLogger(dataDir)

	want := []world.CombatLogEntry{
		{Tick: 10, AttackerID: "p1", TargetID: "p2", Damage: 15, TargetHealth: 85},
		{Tick: 11, AttackerID: "p1", TargetID: "p2", Damage: 14, TargetHealth: 0, Killed: true},
	}
	for _, e := range want {
		if err := l.WriteCombat(e); err != nil {
			t.Fatalf("WriteCombat: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readJSONLZstd(t, filepath.Join(dataDir, "combat"))
	if len(got) != len(want) {
		t.Fatalf("entries = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSessionLogger_WritesFile(t *testing.T) {
	dataDir := t.TempDir()
	l := NewSessionLogger(dataDir)
	if err := l.WriteSession(world.SessionLogEntry{Tick: 1, PlayerID: "p1", Name: "hero", Event: "join"}); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(dataDir, "sessions"))
	if err != nil || len(ents) != 1 {
		t.Fatalf("expected one session log file, got %v (%v)", ents, err)
	}
}

package devtools

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/game/gameplay"
	"ghostgame/pkg/game/setup"
	"ghostgame/pkg/game/state"
)

func startDefault(t *testing.T) *state.Game {
	t.Helper()
	l, err := setup.DefaultLevel()
	if err != nil {
		t.Fatal(err)
	}
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := gameplay.StartLevel(g, l); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDumpMap_FullLayoutMatchesLevel(t *testing.T) {
	g := startDefault(t)
	var buf bytes.Buffer
	if err := DumpMap(&buf, g); err != nil {
		t.Fatalf("DumpMap() error = %v", err)
	}
	out := buf.String()

	full := []string{
		"##############",
		"#@.C#.h.#.W.G#",
		"#...#T#o#.####",
		"#...O.K.#....#",
		"#######*..H.T#",
		"##############",
	}
	section := out[strings.Index(out, "--- Map (full layout) ---"):]
	for _, line := range full {
		if !strings.Contains(section, line+"\n") {
			t.Errorf("full map missing row %q", line)
		}
	}

	for _, want := range []string{
		`level: "The Overgrown Garden"`,
		"player_cell: 1:1",
		"id: hole:3:4 kind: hazard decision: Closed requires_ability: true",
		`chest cell: 1:3 name: "Old Trunk" item: hula_lei open: false visible: true`,
		"teleporter cell: 2:5 id: fountain destination: 4:12",
		"hole cell: 3:4 respawn: 3:3",
		"(none)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
}

func TestDumpMap_RevealedHidesUnseenCells(t *testing.T) {
	g := startDefault(t)
	var buf bytes.Buffer
	if err := DumpMap(&buf, g); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	start := strings.Index(out, "--- Map (seen cells only) ---")
	end := strings.Index(out, "--- Map (full layout) ---")
	seen := out[start:end]
	if strings.Contains(seen, "T#o") {
		t.Error("cells behind the wall east of the start room should be hidden")
	}
	if !strings.Contains(seen, "#@.C") {
		t.Error("start room should be visible")
	}
}

func TestDumpMap_NoLevel(t *testing.T) {
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := DumpMap(io.Discard, g); err == nil {
		t.Error("DumpMap() error = nil, want error without a level")
	}
}

func TestDumpMapToFile(t *testing.T) {
	g := startDefault(t)
	t.Chdir(t.TempDir())

	path, err := DumpMapToFile(g)
	if err != nil {
		t.Fatalf("DumpMapToFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "=== END MAP DUMP ===\n") {
		t.Error("dump file is incomplete")
	}
}

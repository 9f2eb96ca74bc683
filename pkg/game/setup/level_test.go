package setup

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

const corridorLevel = `
title: Corridor
map: |
  #######
  #S.O.G#
  #######
holes:
  - at: [1, 3]
    respawn: [1, 2]
`

func newTestGame() *state.Game {
	return state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDefaultLevel_ParsesAndIsSolvable(t *testing.T) {
	l, err := DefaultLevel()
	if err != nil {
		t.Fatalf("DefaultLevel() error = %v", err)
	}
	if l.Title() == "" {
		t.Error("default level has no title")
	}
	report, err := CheckSolvable(l)
	if err != nil {
		t.Fatalf("CheckSolvable() error = %v", err)
	}
	if !report.Solvable {
		t.Errorf("default level not solvable, reachable = %d", report.Reachable)
	}
	if len(report.Abilities) != 3 {
		t.Errorf("abilities obtainable = %v, want all three", report.Abilities)
	}
}

func TestParseLevel_PadsShortRows(t *testing.T) {
	l, err := ParseLevel([]byte(`
title: Ragged
map: |
  #####
  #S.G#
  ###
`))
	if err != nil {
		t.Fatalf("ParseLevel() error = %v", err)
	}
	if l.Rows() != 3 || l.Cols() != 5 {
		t.Fatalf("size = %dx%d, want 3x5", l.Rows(), l.Cols())
	}
	if got := l.Glyph(Pos{Row: 2, Col: 4}); got != GlyphWall {
		t.Errorf("padded glyph = %q, want wall", got)
	}
}

func TestParseLevel_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"no title", "map: |\n  #S.G#\n"},
		{"no start", "title: x\nmap: |\n  #..G#\n"},
		{"two goals", "title: x\nmap: |\n  #SGG#\n"},
		{"unknown glyph", "title: x\nmap: |\n  #S?G#\n"},
		{"chest without item", "title: x\nmap: |\n  #SCG#\n"},
		{"chest off map glyph", "title: x\nmap: |\n  #S.G#\nchests:\n  - at: [0, 2]\n    item: hula_lei\n"},
		{"unknown item", "title: x\nmap: |\n  #SCG#\nchests:\n  - at: [0, 2]\n    item: cape\n"},
		{"pickup not described", "title: x\nmap: |\n  #S*G#\n"},
		{"bad position", "title: x\nmap: |\n  #S*G#\npickups:\n  - at: [0]\n    item: hula_lei\n"},
		{"respawn in wall", "title: x\nmap: |\n  #SOG#\nholes:\n  - at: [0, 2]\n    respawn: [0, 0]\n"},
		{"teleporter unknown link", "title: x\nmap: |\n  #STG#\nteleporters:\n  - id: a\n    at: [0, 2]\n    link: b\n"},
		{"teleporter not described", "title: x\nmap: |\n  #STG#\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.doc))
			if err == nil {
				t.Fatal("ParseLevel() error = nil, want error")
			}
			if !errors.Is(err, ErrInvalidLevel) && !strings.Contains(err.Error(), "position") {
				t.Errorf("ParseLevel() error = %v, want ErrInvalidLevel", err)
			}
		})
	}
}

func TestLoadLevel_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.yaml")
	if err := os.WriteFile(path, []byte(corridorLevel), 0o600); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel() error = %v", err)
	}
	if l.Title() != "Corridor" {
		t.Errorf("Title() = %q, want Corridor", l.Title())
	}

	if _, err := LoadLevel(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadLevel(missing) error = nil, want error")
	}
}

func TestBuild_PlacesEntities(t *testing.T) {
	l, err := DefaultLevel()
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame()
	if err := l.Build(g); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.Grid.StartCell() == nil || g.Grid.StartCell().Name != "1:1" {
		t.Errorf("start cell = %v, want 1:1", g.Grid.StartCell())
	}
	if g.Grid.ExitCell() == nil || g.Grid.ExitCell().Name != "1:12" {
		t.Errorf("exit cell = %v, want 1:12", g.Grid.ExitCell())
	}

	// hole, open hole, phantom wall, hidden object, hidden chest
	if g.Board.Len() != 5 {
		t.Errorf("Board.Len() = %d, want 5", g.Board.Len())
	}

	hole := gameworld.Hole(g.Grid.GetCellByName("3:4"))
	if hole == nil {
		t.Fatal("no hole at 3:4")
	}
	if hole.Respawn() != "3:3" {
		t.Errorf("hole respawn = %q, want 3:3", hole.Respawn())
	}
	if !hole.RequiresAbility() {
		t.Error("O hole should require an ability")
	}
	if open := gameworld.Hole(g.Grid.GetCellByName("2:7")); open == nil || open.Decision() != entities.Open {
		t.Error("o hole should start open")
	}

	if !gameworld.HasSolidWall(g.Grid.GetCellByName("1:10")) {
		t.Error("phantom wall at 1:10 should start solid")
	}

	chest := gameworld.GetGameData(g.Grid.GetCellByName("1:3")).Chest
	if chest == nil || chest.Name != "Old Trunk" || chest.Item.ID != "hula_lei" {
		t.Errorf("chest at 1:3 = %+v", chest)
	}
	hidden := gameworld.GetGameData(g.Grid.GetCellByName("4:10")).Chest
	if hidden == nil || hidden.Gate == nil || hidden.Visible() {
		t.Error("chest at 4:10 should start hidden")
	}

	if !gameworld.HasPickup(g.Grid.GetCellByName("4:7")) {
		t.Error("no pickup at 4:7")
	}
	if !gameworld.HasCheckpoint(g.Grid.GetCellByName("3:6")) {
		t.Error("no checkpoint at 3:6")
	}

	pad := g.Teleports.At("2:5")
	if pad == nil || pad.Destination != "4:12" {
		t.Errorf("pad at 2:5 = %+v, want link to 4:12", pad)
	}
	if len(g.Hints) != 3 {
		t.Errorf("len(Hints) = %d, want 3", len(g.Hints))
	}
}

func TestBuild_Twice_CreatesFreshEntities(t *testing.T) {
	l, err := ParseLevel([]byte(corridorLevel))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame()
	if err := l.Build(g); err != nil {
		t.Fatal(err)
	}
	first := gameworld.Hole(g.Grid.GetCellByName("1:3"))

	g.ClearLevel()
	if err := l.Build(g); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	second := gameworld.Hole(g.Grid.GetCellByName("1:3"))
	if first == second {
		t.Error("Build() reused the hole from the previous build")
	}
}

func TestSolvable_BlockedGoal(t *testing.T) {
	l, err := ParseLevel([]byte(corridorLevel))
	if err != nil {
		t.Fatal(err)
	}
	err = Solvable(l)
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Solvable() error = %v, want ErrInvalidLevel (no way across the hole)", err)
	}
}

func TestSolvable_ItemBehindItsOwnGate(t *testing.T) {
	l, err := ParseLevel([]byte(`
title: Locked In
map: |
  ########
  #S.W*.G#
  ########
pickups:
  - at: [1, 4]
    item: party_hat
`))
	if err != nil {
		t.Fatal(err)
	}
	report, err := CheckSolvable(l)
	if err != nil {
		t.Fatal(err)
	}
	if report.Solvable {
		t.Error("level with the only party hat behind a phantom wall reported solvable")
	}
	if len(report.Items) != 0 {
		t.Errorf("items collected = %v, want none", report.Items)
	}
}

func TestSolvable_TeleporterBypass(t *testing.T) {
	l, err := ParseLevel([]byte(`
title: Jump
map: |
  #########
  #ST.O.TG#
  #########
holes:
  - at: [1, 4]
    respawn: [1, 3]
teleporters:
  - id: a
    at: [1, 2]
    link: b
  - id: b
    at: [1, 6]
    link: a
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := Solvable(l); err != nil {
		t.Errorf("Solvable() error = %v, want nil (pads skip the hole)", err)
	}
}

func TestBuild_TeleporterLinks(t *testing.T) {
	l, err := ParseLevel([]byte(`
title: Pads
map: |
  ###########
  #ST.T.T.TG#
  ###########
teleporters:
  - id: a
    at: [1, 2]
    link: b
  - id: b
    at: [1, 4]
    link: a
  - id: c
    at: [1, 6]
    link: d
  - id: d
    at: [1, 8]
`))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame()
	if err := l.Build(g); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		cell, want string
	}{
		{"1:2", "1:4"},
		{"1:4", "1:2"},
		{"1:6", "1:8"},
		{"1:8", ""},
	}
	for _, tt := range tests {
		pad := g.Teleports.At(tt.cell)
		if pad == nil {
			t.Fatalf("no pad at %s", tt.cell)
		}
		if pad.Destination != tt.want {
			t.Errorf("pad at %s leads to %q, want %q", tt.cell, pad.Destination, tt.want)
		}
	}
}

func TestLevel_Encode_ParsesBack(t *testing.T) {
	l, err := DefaultLevel()
	if err != nil {
		t.Fatalf("DefaultLevel() error = %v", err)
	}
	data, err := l.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), "at: [3, 4]") {
		t.Errorf("positions should be written as flow pairs, got:\n%s", data)
	}

	back, err := ParseLevel(data)
	if err != nil {
		t.Fatalf("ParseLevel(Encode()) error = %v", err)
	}
	if back.Name != l.Name || back.Rows() != l.Rows() || back.Cols() != l.Cols() {
		t.Errorf("round trip changed the level: %q %dx%d", back.Name, back.Rows(), back.Cols())
	}
	if len(back.Chests) != len(l.Chests) || len(back.Teleporters) != len(l.Teleporters) {
		t.Errorf("round trip lost entities")
	}
	if back.Holes[0].Respawn != (Pos{Row: 3, Col: 3}) {
		t.Errorf("hole respawn = %v, want [3, 3]", back.Holes[0].Respawn)
	}
}

package world

import "testing"

func TestGrid_BuildAndConnect(t *testing.T) {
	g := NewGrid(3, 4)
	g.BuildAllCellConnections()

	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("dimensions = %dx%d, want 3x4", g.Rows(), g.Cols())
	}

	center := g.GetCell(1, 1)
	if center == nil {
		t.Fatal("GetCell(1,1) = nil")
	}
	if center.North != g.GetCell(0, 1) || center.East != g.GetCell(1, 2) {
		t.Error("neighbors not connected")
	}
	if g.GetCellByName("1:1") != center {
		t.Error("GetCellByName(\"1:1\") did not return the cell")
	}
	if g.GetCell(3, 0) != nil || g.GetCell(0, -1) != nil {
		t.Error("out of bounds GetCell should return nil")
	}
}

func TestGrid_Validate(t *testing.T) {
	g := NewGrid(3, 3)
	if err := g.Validate(); err == nil {
		t.Error("Validate() with no start cell = nil, want error")
	}

	g.MarkAsRoom(1, 1)
	g.MarkAsRoomWithDescription(1, 2, "Garden")
	g.SetStartCellAt(1, 1)
	g.SetExitCellAt(1, 2)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if !g.ExitCell().ExitCell {
		t.Error("exit cell not flagged")
	}
	if g.ExitCell().Description != "Garden" {
		t.Errorf("Description = %q, want Garden", g.ExitCell().Description)
	}
}

func TestCell_GetNeighbors(t *testing.T) {
	g := NewGrid(3, 3)
	g.BuildAllCellConnections()

	center := g.GetCell(1, 1)
	want := []*Cell{g.GetCell(0, 1), g.GetCell(1, 2), g.GetCell(2, 1), g.GetCell(1, 0)}
	got := center.GetNeighbors()
	if len(got) != len(want) {
		t.Fatalf("len(GetNeighbors()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbor %d = %s, want %s", i, got[i].Name, want[i].Name)
		}
	}
	if n := len(g.GetCell(0, 0).GetNeighbors()); n != 2 {
		t.Errorf("corner neighbors = %d, want 2", n)
	}
}

func TestDirection_OppositeAndDelta(t *testing.T) {
	tests := []struct {
		dir      Direction
		opposite Direction
		dr, dc   int
	}{
		{North, South, -1, 0},
		{East, West, 0, 1},
		{South, North, 1, 0},
		{West, East, 0, -1},
	}
	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.opposite {
			t.Errorf("%v.Opposite() = %v, want %v", tt.dir, got, tt.opposite)
		}
		if dr, dc := tt.dir.Delta(); dr != tt.dr || dc != tt.dc {
			t.Errorf("%v.Delta() = %d,%d, want %d,%d", tt.dir, dr, dc, tt.dr, tt.dc)
		}
	}
	bad := Direction(7)
	if bad.IsValid() || bad.String() != "Unknown" || bad.Opposite() != bad {
		t.Errorf("invalid direction handling: %v", bad)
	}
	if dr, dc := bad.Delta(); dr != 0 || dc != 0 {
		t.Errorf("invalid Delta() = %d,%d", dr, dc)
	}
}

func TestRevealFOV_WallsBlockSight(t *testing.T) {
	g := NewGrid(1, 5)
	g.MarkAsRoom(0, 0)
	g.MarkAsRoom(0, 1)
	// (0,2) is a wall
	g.MarkAsRoom(0, 3)
	g.MarkAsRoom(0, 4)

	RevealFOV(g, g.GetCell(0, 0), 4, nil)

	if !g.GetCell(0, 1).Visited {
		t.Error("adjacent floor should be visited")
	}
	if !g.GetCell(0, 2).Discovered {
		t.Error("the wall itself should be seen")
	}
	if g.GetCell(0, 3).Discovered {
		t.Error("cell behind wall should stay hidden")
	}
}

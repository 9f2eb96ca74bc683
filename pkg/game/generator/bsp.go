package generator

import (
	"math/rand/v2"

	"ghostgame/pkg/game/setup"
)

// BSPLayout carves rooms with Binary Space Partitioning and joins sibling
// subtrees with L-shaped corridors, so the rooms form a tree.
type BSPLayout struct{}

// Name returns the name of this layout
func (l *BSPLayout) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	x, y, width, height int
}

func (r *bspRoom) centre() setup.Pos {
	return setup.Pos{Row: r.y + r.height/2, Col: r.x + r.width/2}
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 3 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge
)

// Carve fills p with rooms and corridors and starts the player in a
// random room.
func (l *BSPLayout) Carve(p *plan, rng *rand.Rand) {
	// Leave a 1 cell border for the perimeter walls
	root := &bspNode{
		x:      1,
		y:      1,
		width:  p.cols - 2,
		height: p.rows - 2,
	}

	splitBSP(rng, root, minNodeSize)
	createRooms(rng, root)
	carveRooms(p, root)
	connectRooms(rng, p, root)

	rooms := collectRooms(root)
	if len(rooms) == 0 {
		p.start = setup.Pos{Row: p.rows / 2, Col: p.cols / 2}
		p.carve(p.start, true)
		return
	}
	p.start = rooms[rng.IntN(len(rooms))].centre()
}

// splitBSP recursively splits a BSP node
func splitBSP(rng *rand.Rand, node *bspNode, minSize int) {
	if node.width < minSize*2 && node.height < minSize*2 {
		return // Too small to split
	}

	// Decide split direction
	var splitHorizontal bool
	switch {
	case node.width > node.height && node.width >= minSize*2:
		splitHorizontal = false
	case node.height > node.width && node.height >= minSize*2:
		splitHorizontal = true
	case node.width >= minSize*2 && node.height >= minSize*2:
		splitHorizontal = rng.IntN(2) == 0
	case node.width >= minSize*2:
		splitHorizontal = false
	default:
		splitHorizontal = true
	}

	if splitHorizontal {
		splitPoint := minSize + rng.IntN(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		splitPoint := minSize + rng.IntN(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(rng, node.left, minSize)
	splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}

	// Leaf too thin for a padded room: leave it solid.
	if node.width < minRoomSize+roomPadding || node.height < minRoomSize+roomPadding {
		return
	}

	roomWidth := minRoomSize + rng.IntN(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + rng.IntN(node.height-minRoomSize-roomPadding+1)

	node.room = &bspRoom{
		x:      node.x + rng.IntN(node.width-roomWidth),
		y:      node.y + rng.IntN(node.height-roomHeight),
		width:  roomWidth,
		height: roomHeight,
	}
}

// carveRooms opens every room's cells
func carveRooms(p *plan, node *bspNode) {
	if node.room != nil {
		for row := node.room.y; row < node.room.y+node.room.height; row++ {
			for col := node.room.x; col < node.room.x+node.room.width; col++ {
				p.carve(setup.Pos{Row: row, Col: col}, true)
			}
		}
	}

	if node.left != nil {
		carveRooms(p, node.left)
	}
	if node.right != nil {
		carveRooms(p, node.right)
	}
}

// connectRooms joins a room from each side of every split
func connectRooms(rng *rand.Rand, p *plan, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)

	if leftRoom != nil && rightRoom != nil {
		from, to := leftRoom.centre(), rightRoom.centre()
		if rng.IntN(2) == 0 {
			// Horizontal first, then vertical
			carveCorridorHorizontal(p, from.Row, from.Col, to.Col)
			carveCorridorVertical(p, to.Col, from.Row, to.Row)
		} else {
			carveCorridorVertical(p, from.Col, from.Row, to.Row)
			carveCorridorHorizontal(p, to.Row, from.Col, to.Col)
		}
	}

	connectRooms(rng, p, node.left)
	connectRooms(rng, p, node.right)
}

// carveCorridorHorizontal carves a one cell wide corridor along row
func carveCorridorHorizontal(p *plan, row, startCol, endCol int) {
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	for col := startCol; col <= endCol; col++ {
		p.carve(setup.Pos{Row: row, Col: col}, false)
	}
}

// carveCorridorVertical carves a one cell wide corridor along col
func carveCorridorVertical(p *plan, col, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	for row := startRow; row <= endRow; row++ {
		p.carve(setup.Pos{Row: row, Col: col}, false)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *rand.Rand, node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *bspRoom
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.IntN(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom
	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

package world

// Room is a rectangular room placed by the generator. Rooms are transient
// generator state: once the grid is carved they are discarded.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center coordinates of the room, floor-biased.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room's bounding box, grown by padding
// tiles on every side, overlaps the other room's.
func (r Room) Intersects(other Room, padding int) bool {
	return r.X-padding < other.X+other.Width+padding &&
		r.X+r.Width+padding > other.X-padding &&
		r.Y-padding < other.Y+other.Height+padding &&
		r.Y+r.Height+padding > other.Y-padding
}

// distanceTo returns the Manhattan distance between two room centers.
func (r Room) distanceTo(other Room) int {
	x1, y1 := r.Center()
	x2, y2 := other.Center()
	return abs(x1-x2) + abs(y1-y2)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

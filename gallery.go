package galleria

import (
	"math"
)

// GalleryItem is one exhibit: an image plane plus the caption shown while it
// faces the viewer.
type GalleryItem struct {
	Title  string
	Artist string
	Image  string // Path to a PNG or JPEG file
}

func (it GalleryItem) Caption() string {
	if it.Artist == "" {
		return it.Title
	}
	return it.Title + " by " + it.Artist
}

// SlotAngle is the angular slot of item i among n items, i*2*pi/n radians.
func SlotAngle(i, n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(i) * 2 * math.Pi / float32(n)
}

// LeftNeighbor wraps around: the left neighbor of item 0 is item n-1.
func LeftNeighbor(i, n int) int {
	return ((i-1)%n + n) % n
}

// RightNeighbor wraps around: the right neighbor of item n-1 is item 0.
func RightNeighbor(i, n int) int {
	return (i + 1) % n
}

type NavDirection int

const (
	NavLeft  NavDirection = -1
	NavRight NavDirection = 1
)

func (d NavDirection) String() string {
	switch d {
	case NavLeft:
		return "left"
	case NavRight:
		return "right"
	}
	return "none"
}

// CarouselState tracks which item faces the viewer and the current yaw of
// the carousel root, in radians.
type CarouselState struct {
	Index int
	Count int
	Yaw   float32
}

// TitleLabel is the caption overlay. Alpha is animated by the title
// crossfade; the renderer draws the text with this opacity.
type TitleLabel struct {
	Text  string
	Alpha float32
}

package galleria

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the single vertex format used by the scene pipeline.
type Vertex struct {
	Pos    [3]float32
	Normal [3]float32
	UV     [2]float32
}

// MeshComponent attaches geometry and a texture to an entity.
type MeshComponent struct {
	Mesh    AssetId
	Texture AssetId
}

// MaterialComponent controls shading of a mesh entity.
type MaterialComponent struct {
	Tint          mgl32.Vec4 // Multiplied with the texture; W is alpha.
	Unlit         bool       // Skip lighting (arrows, overlays).
	MirrorInFloor bool       // Entity is re-drawn mirrored for the floor reflection.
}

// MakeQuadMesh builds a w*h rectangle in the XY plane, centered at the
// origin, facing +Z.
func MakeQuadMesh(w, h float32) ([]Vertex, []uint16) {
	hw, hh := w/2, h/2
	vertices := []Vertex{
		{Pos: [3]float32{-hw, -hh, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 1}},
		{Pos: [3]float32{hw, -hh, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 1}},
		{Pos: [3]float32{hw, hh, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 0}},
		{Pos: [3]float32{-hw, hh, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 0}},
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}
	return vertices, indices
}

// MakeFloorMesh builds a size*size plane at y=0 facing +Y.
func MakeFloorMesh(size float32) ([]Vertex, []uint16) {
	hs := size / 2
	vertices := []Vertex{
		{Pos: [3]float32{-hs, 0, hs}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0, 1}},
		{Pos: [3]float32{hs, 0, hs}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{1, 1}},
		{Pos: [3]float32{hs, 0, -hs}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{1, 0}},
		{Pos: [3]float32{-hs, 0, -hs}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0, 0}},
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}
	return vertices, indices
}

// MakeArrowMesh builds a triangle in the XY plane pointing along +X when
// dir > 0 and -X when dir < 0, facing +Z. Height h, length l.
func MakeArrowMesh(dir int, l, h float32) ([]Vertex, []uint16) {
	tip := l / 2
	if dir < 0 {
		tip = -tip
	}
	hh := h / 2
	vertices := []Vertex{
		{Pos: [3]float32{-tip, hh, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 0}},
		{Pos: [3]float32{-tip, -hh, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{0, 1}},
		{Pos: [3]float32{tip, 0, 0}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 0.5}},
	}
	var indices []uint16
	if dir < 0 {
		indices = []uint16{0, 2, 1}
	} else {
		indices = []uint16{0, 1, 2}
	}
	return vertices, indices
}

package galleria

import (
	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
)

// LightComponent is the ECS component for lights. Spot lights aim down the
// entity's local -Z axis; ConeAngle is the full cone angle in degrees.
type LightComponent struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	Range     float32
	ConeAngle float32
}

type LightDef struct {
	Type      LightType
	Position  mgl32.Vec3
	Rotation  mgl32.Quat
	Color     [3]float32
	Intensity float32
	Range     float32
	ConeAngle float32
}

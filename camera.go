package galleria

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent marks the viewer entity. Position and orientation come from
// the entity's TransformComponent; the camera looks down its local -Z axis,
// Y-up.
type CameraComponent struct {
	FovY float32 // Vertical field of view in radians
	Near float32
	Far  float32
}

func (c *CameraComponent) Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

func ViewMatrix(tr *TransformComponent) mgl32.Mat4 {
	forward := tr.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	up := tr.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	eye := tr.Position
	return mgl32.LookAtV(eye, eye.Add(forward), up)
}

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// ScreenPointToRay builds a world-space picking ray through the cursor.
// px/py are window pixels with (0,0) at the top-left.
func ScreenPointToRay(cam *CameraComponent, tr *TransformComponent, px, py float64, width, height int) Ray {
	if width <= 0 || height <= 0 {
		return Ray{Origin: tr.Position, Dir: tr.Rotation.Rotate(mgl32.Vec3{0, 0, -1})}
	}

	// NDC, Y flipped: window Y grows downward.
	nx := float32(px)/float32(width)*2.0 - 1.0
	ny := 1.0 - float32(py)/float32(height)*2.0

	proj := cam.Projection(width, height)
	view := ViewMatrix(tr)
	invVP := proj.Mul4(view).Inv()

	nearPt := invVP.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	farPt := invVP.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})

	near3 := nearPt.Vec3().Mul(1.0 / nearPt.W())
	far3 := farPt.Vec3().Mul(1.0 / farPt.W())

	return Ray{
		Origin: near3,
		Dir:    far3.Sub(near3).Normalize(),
	}
}

// PrimaryRay finds the first camera entity and casts a ray through the cursor.
func PrimaryRay(cmd *Commands, px, py float64, width, height int) (Ray, bool) {
	var ray Ray
	found := false
	MakeQuery2[CameraComponent, TransformComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, tr *TransformComponent) bool {
		ray = ScreenPointToRay(cam, tr, px, py, width, height)
		found = true
		return false
	})
	return ray, found
}

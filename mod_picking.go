package galleria

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// PickableComponent makes an entity clickable. The hit region is a rectangle
// in the entity's XY object plane, centered at the origin. Tag carries
// arbitrary metadata back to whoever consumes the hit.
type PickableComponent struct {
	HalfWidth  float32
	HalfHeight float32
	Tag        any
}

type RayHit struct {
	Entity EntityId
	T      float32 // World-space distance from the ray origin
	Point  mgl32.Vec3
	Tag    any
}

const rayEpsilon = 1e-6

// RaycastPickables intersects the ray with every pickable entity and returns
// the hits ordered by distance, nearest first.
func RaycastPickables(cmd *Commands, ray Ray) []RayHit {
	var hits []RayHit

	MakeQuery2[PickableComponent, TransformComponent](cmd).Map(func(eid EntityId, pick *PickableComponent, tr *TransformComponent) bool {
		w2o := tr.WorldToObject()
		o := w2o.Mul4x1(ray.Origin.Vec4(1)).Vec3()
		d := w2o.Mul4x1(ray.Dir.Vec4(0)).Vec3()

		if math.Abs(float64(d.Z())) < rayEpsilon {
			return true // Ray parallel to the pick plane
		}

		t := -o.Z() / d.Z()
		if t <= 0 {
			return true
		}

		p := o.Add(d.Mul(t))
		if p.X() < -pick.HalfWidth || p.X() > pick.HalfWidth ||
			p.Y() < -pick.HalfHeight || p.Y() > pick.HalfHeight {
			return true
		}

		worldPoint := tr.ObjectToWorld().Mul4x1(p.Vec4(1)).Vec3()
		hits = append(hits, RayHit{
			Entity: eid,
			T:      worldPoint.Sub(ray.Origin).Len(),
			Point:  worldPoint,
			Tag:    pick.Tag,
		})
		return true
	})

	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

package galleria

import (
	"github.com/go-gl/mathgl/mgl32"
)

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate),
	)
}

// TransformHierarchySystem recomputes the world TransformComponent of every
// entity that has a Parent from its LocalTransform and the parent's world
// transform. Multiple passes propagate through deeper chains; the loop stops
// as soon as a pass changes nothing.
func TransformHierarchySystem(cmd *Commands) {
	for pass := 0; pass < 8; pass++ {
		changed := false
		MakeQuery3[LocalTransform, Parent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransform, parent *Parent, world *TransformComponent) bool {
			var parentWorld *TransformComponent
			for _, c := range cmd.GetAllComponents(parent.Entity) {
				if pw, ok := c.(*TransformComponent); ok {
					parentWorld = pw
					break
				}
			}
			if parentWorld == nil {
				return true
			}

			// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
			scaledLocalPos := mgl32.Vec3{
				local.Position.X() * parentWorld.Scale.X(),
				local.Position.Y() * parentWorld.Scale.Y(),
				local.Position.Z() * parentWorld.Scale.Z(),
			}
			newPos := parentWorld.Position.Add(parentWorld.Rotation.Rotate(scaledLocalPos))

			// WorldRot = ParentRot * LocalRot
			newRot := parentWorld.Rotation.Mul(local.Rotation).Normalize()

			// WorldScale = ParentScale * LocalScale, component-wise
			newScale := mgl32.Vec3{
				parentWorld.Scale.X() * local.Scale.X(),
				parentWorld.Scale.Y() * local.Scale.Y(),
				parentWorld.Scale.Z() * local.Scale.Z(),
			}

			if newPos != world.Position || newRot != world.Rotation || newScale != world.Scale {
				world.Position = newPos
				world.Rotation = newRot
				world.Scale = newScale
				changed = true
			}
			return true
		})
		if !changed {
			break
		}
	}
}

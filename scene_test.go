package galleria

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func buildTestScene(t *testing.T, n int) (*App, *Commands, GallerySceneDef) {
	t.Helper()

	items := testItems(n)
	def := DefaultGallerySceneDef(items)

	app := NewAppBuilder().
		UseModule(
			AssetServerModule{},
			GallerySceneModule{Def: def},
		).
		Build()
	return app, app.Commands(), def
}

func TestBuildGallerySceneEntityCounts(t *testing.T) {
	const n = 5
	_, cmd, def := buildTestScene(t, n)

	meshCount := 0
	MakeQuery1[MeshComponent](cmd).Map(func(EntityId, *MeshComponent) bool {
		meshCount++
		return true
	})
	// n image planes, 2n arrows, one floor.
	if want := n + 2*n + 1; meshCount != want {
		t.Errorf("expected %d mesh entities, got %d", want, meshCount)
	}

	pickCount := 0
	MakeQuery1[PickableComponent](cmd).Map(func(EntityId, *PickableComponent) bool {
		pickCount++
		return true
	})
	if pickCount != 2*n {
		t.Errorf("expected %d pickables, got %d", 2*n, pickCount)
	}

	lightCount := 0
	MakeQuery1[LightComponent](cmd).Map(func(EntityId, *LightComponent) bool {
		lightCount++
		return true
	})
	if lightCount != len(def.Lights) {
		t.Errorf("expected %d lights, got %d", len(def.Lights), lightCount)
	}

	cameraCount := 0
	MakeQuery1[CameraComponent](cmd).Map(func(EntityId, *CameraComponent) bool {
		cameraCount++
		return true
	})
	if cameraCount != 1 {
		t.Errorf("expected exactly one camera, got %d", cameraCount)
	}

	rootCount := 0
	MakeQuery1[CarouselRootTag](cmd).Map(func(EntityId, *CarouselRootTag) bool {
		rootCount++
		return true
	})
	if rootCount != 1 {
		t.Errorf("expected exactly one carousel root, got %d", rootCount)
	}
}

func TestBuildGallerySceneLayout(t *testing.T) {
	const n = 5
	_, cmd, def := buildTestScene(t, n)

	// With the root at identity, hierarchy propagation places item 0
	// straight ahead of the camera.
	TransformHierarchySystem(cmd)

	var positions []mgl32.Vec3
	MakeQuery4[MeshComponent, MaterialComponent, TransformComponent, LocalTransform](cmd).Map(
		func(eid EntityId, _ *MeshComponent, mat *MaterialComponent, tr *TransformComponent, _ *LocalTransform) bool {
			if mat.MirrorInFloor {
				positions = append(positions, tr.Position)
			}
			return true
		})
	if len(positions) != n {
		t.Fatalf("expected %d image planes, got %d", n, len(positions))
	}

	foundFront := false
	for _, p := range positions {
		// Every image hangs on the ring at the configured radius and height.
		radial := math.Hypot(float64(p.X()), float64(p.Z()))
		if math.Abs(radial-float64(def.Radius)) > 0.01 {
			t.Errorf("image at %v is off the ring (radius %v)", p, radial)
		}
		if math.Abs(float64(p.Y()-def.ImageY)) > 0.01 {
			t.Errorf("image at %v is at the wrong height", p)
		}
		if p.Sub(mgl32.Vec3{0, def.ImageY, -def.Radius}).Len() < 0.01 {
			foundFront = true
		}
	}
	if !foundFront {
		t.Errorf("no image faces the viewer at start")
	}
}

func TestBuildGallerySceneRequiresItems(t *testing.T) {
	app := NewAppBuilder().UseModule(AssetServerModule{}).Build()
	assets := ResourceFor[AssetServer](app)

	def := DefaultGallerySceneDef(nil)
	err := BuildGalleryScene(app.Commands(), assets, NewNopLogger(), &def)
	if err == nil {
		t.Errorf("empty gallery should be rejected")
	}
}

func TestMakeMeshes(t *testing.T) {
	v, idx := MakeQuadMesh(3, 2)
	if len(v) != 4 || len(idx) != 6 {
		t.Errorf("quad: expected 4 vertices and 6 indices, got %d/%d", len(v), len(idx))
	}
	for _, vert := range v {
		if vert.Normal != [3]float32{0, 0, 1} {
			t.Errorf("quad should face +Z, got normal %v", vert.Normal)
		}
	}

	v, _ = MakeFloorMesh(10)
	for _, vert := range v {
		if vert.Pos[1] != 0 || vert.Normal != [3]float32{0, 1, 0} {
			t.Errorf("floor vertex off the y=0 plane: %v", vert)
		}
	}

	right, _ := MakeArrowMesh(1, 1, 1)
	left, _ := MakeArrowMesh(-1, 1, 1)
	if right[2].Pos[0] <= 0 {
		t.Errorf("right arrow tip should point along +X, got %v", right[2].Pos)
	}
	if left[2].Pos[0] >= 0 {
		t.Errorf("left arrow tip should point along -X, got %v", left[2].Pos)
	}
}

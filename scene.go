package galleria

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GallerySceneDef describes the gallery layout: the exhibits, the ring they
// hang on, the floor and the lights. The camera sits at the ring's center.
type GallerySceneDef struct {
	Items []GalleryItem

	Radius      float32
	ImageWidth  float32
	ImageHeight float32
	ImageY      float32

	ArrowLength float32
	ArrowHeight float32
	ArrowGap    float32

	Floor     bool
	FloorSize float32

	CameraHeight float32
	CameraFovY   float32

	Lights []LightDef
}

func DefaultGallerySceneDef(items []GalleryItem) GallerySceneDef {
	return GallerySceneDef{
		Items:        items,
		Radius:       7,
		ImageWidth:   3,
		ImageHeight:  2,
		ImageY:       1.8,
		ArrowLength:  0.5,
		ArrowHeight:  0.5,
		ArrowGap:     0.45,
		Floor:        true,
		FloorSize:    40,
		CameraHeight: 1.8,
		CameraFovY:   mgl32.DegToRad(60),
		Lights: []LightDef{
			{
				Type:      LightTypeAmbient,
				Color:     [3]float32{1, 1, 1},
				Intensity: 0.25,
			},
			{
				// Spotlight above the viewer, aimed at the facing image.
				Type:      LightTypeSpot,
				Position:  mgl32.Vec3{0, 6, 0},
				Rotation:  mgl32.QuatRotate(-mgl32.DegToRad(50), mgl32.Vec3{1, 0, 0}),
				Color:     [3]float32{1, 0.96, 0.88},
				Intensity: 2.2,
				Range:     25,
				ConeAngle: 38,
			},
			{
				Type:      LightTypePoint,
				Position:  mgl32.Vec3{0, 4, 2},
				Color:     [3]float32{0.9, 0.9, 1},
				Intensity: 0.6,
				Range:     30,
			},
		},
	}
}

// BuildGalleryScene spawns the carousel root, one image plane with a pair of
// navigation arrows per item, the floor, the lights and the camera.
//
// Items are laid out clockwise around the root, so a positive yaw step on the
// root brings the next index in front of the camera. Item 0 starts facing the
// viewer.
func BuildGalleryScene(cmd *Commands, assets *AssetServer, log Logger, def *GallerySceneDef) error {
	n := len(def.Items)
	if n == 0 {
		return fmt.Errorf("gallery scene needs at least one item")
	}

	root := cmd.AddEntity(
		NewTransform(mgl32.Vec3{0, 0, 0}),
		CarouselRootTag{},
	)

	quadVerts, quadIdx := MakeQuadMesh(def.ImageWidth, def.ImageHeight)
	quadMesh := assets.LoadMesh(quadVerts, quadIdx)

	leftVerts, leftIdx := MakeArrowMesh(-1, def.ArrowLength, def.ArrowHeight)
	leftArrowMesh := assets.LoadMesh(leftVerts, leftIdx)
	rightVerts, rightIdx := MakeArrowMesh(1, def.ArrowLength, def.ArrowHeight)
	rightArrowMesh := assets.LoadMesh(rightVerts, rightIdx)

	arrowTexture := assets.CreateSolidTexture([4]uint8{255, 255, 255, 255})
	placeholder := assets.CreateSolidTexture([4]uint8{90, 90, 96, 255})

	arrowDX := def.ImageWidth/2 + def.ArrowGap

	for i, item := range def.Items {
		texture, err := assets.LoadTexture(item.Image)
		if err != nil {
			log.Warnf("gallery: %v, using placeholder", err)
			texture = placeholder
		}

		// Negative slot angle = clockwise placement.
		phi := -SlotAngle(i, n)

		cmd.AddEntity(
			NewTransform(mgl32.Vec3{}),
			LocalTransform{
				Position: slotLocal(phi, 0, def.ImageY, def.Radius),
				Rotation: mgl32.QuatRotate(phi, mgl32.Vec3{0, 1, 0}),
				Scale:    mgl32.Vec3{1, 1, 1},
			},
			Parent{Entity: root},
			MeshComponent{Mesh: quadMesh, Texture: texture},
			MaterialComponent{
				Tint:          mgl32.Vec4{1, 1, 1, 1},
				MirrorInFloor: true,
			},
		)

		arrows := []struct {
			mesh AssetId
			dx   float32
			tag  ArrowTag
		}{
			{leftArrowMesh, -arrowDX, ArrowTag{Direction: NavLeft, TargetIndex: LeftNeighbor(i, n)}},
			{rightArrowMesh, arrowDX, ArrowTag{Direction: NavRight, TargetIndex: RightNeighbor(i, n)}},
		}
		for _, a := range arrows {
			cmd.AddEntity(
				NewTransform(mgl32.Vec3{}),
				LocalTransform{
					Position: slotLocal(phi, a.dx, def.ImageY, def.Radius),
					Rotation: mgl32.QuatRotate(phi, mgl32.Vec3{0, 1, 0}),
					Scale:    mgl32.Vec3{1, 1, 1},
				},
				Parent{Entity: root},
				MeshComponent{Mesh: a.mesh, Texture: arrowTexture},
				MaterialComponent{
					Tint:  mgl32.Vec4{0.85, 0.85, 0.9, 0.9},
					Unlit: true,
				},
				// Hit region slightly larger than the triangle itself.
				PickableComponent{
					HalfWidth:  def.ArrowLength/2 + 0.1,
					HalfHeight: def.ArrowHeight/2 + 0.1,
					Tag:        a.tag,
				},
			)
		}
	}

	if def.Floor {
		floorVerts, floorIdx := MakeFloorMesh(def.FloorSize)
		floorMesh := assets.LoadMesh(floorVerts, floorIdx)
		floorTexture := assets.CreateSolidTexture([4]uint8{26, 26, 30, 255})
		cmd.AddEntity(
			NewTransform(mgl32.Vec3{0, 0, 0}),
			MeshComponent{Mesh: floorMesh, Texture: floorTexture},
			MaterialComponent{Tint: mgl32.Vec4{1, 1, 1, 0.82}},
			FloorTag{},
		)
	}

	for _, l := range def.Lights {
		rot := l.Rotation
		if rot == (mgl32.Quat{}) {
			rot = mgl32.QuatIdent()
		}
		cmd.AddEntity(
			TransformComponent{Position: l.Position, Rotation: rot, Scale: mgl32.Vec3{1, 1, 1}},
			LightComponent{
				Type:      l.Type,
				Color:     l.Color,
				Intensity: l.Intensity,
				Range:     l.Range,
				ConeAngle: l.ConeAngle,
			},
		)
	}

	cmd.AddEntity(
		NewTransform(mgl32.Vec3{0, def.CameraHeight, 0}),
		CameraComponent{FovY: def.CameraFovY, Near: 0.1, Far: 100},
	)

	log.Infof("gallery: scene built with %d items, radius %.1f", n, def.Radius)
	return nil
}

// slotLocal rotates the offset (dx, dy, -radius) by phi around Y. Item 0
// (phi=0) ends up straight ahead of the camera on -Z.
func slotLocal(phi, dx, dy, radius float32) mgl32.Vec3 {
	sin, cos := float32(math.Sin(float64(phi))), float32(math.Cos(float64(phi)))
	x, z := dx, -radius
	return mgl32.Vec3{
		cos*x + sin*z,
		dy,
		-sin*x + cos*z,
	}
}

// GallerySceneModule spawns the gallery described by Def at install time.
// AssetServerModule must be installed first.
type GallerySceneModule struct {
	Def GallerySceneDef
}

func (m GallerySceneModule) Install(app *App, cmd *Commands) {
	assets := ResourceFor[AssetServer](app)
	if assets == nil {
		panic("GallerySceneModule requires AssetServerModule")
	}
	if err := BuildGalleryScene(cmd, assets, app.Logger(), &m.Def); err != nil {
		panic(err)
	}
}

package galleria

import (
	"math"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/galleria3d/galleria/shaders"
)

const maxLights = 4

type gpuLight struct {
	Position  [4]float32 // W is the light type
	Direction [4]float32 // W is cos(half cone angle) for spot lights
	Color     [4]float32 // W is the intensity
	Misc      [4]float32 // X is the range, 0 = unlimited
}

// drawUniforms must match struct Globals in gallery.wgsl field for field.
type drawUniforms struct {
	ViewProj mgl32.Mat4
	Model    mgl32.Mat4
	Tint     [4]float32
	Ambient  [4]float32
	Params   [4]float32 // X light count, Y unlit flag
	Lights   [maxLights]gpuLight
}

type meshBuffers struct {
	vertexBuf  *wgpu.Buffer
	indexBuf   *wgpu.Buffer
	indexCount uint32
}

// RenderState caches GPU-side objects between frames. Mesh buffers and
// texture views are created lazily, once per asset.
type RenderState struct {
	gpu     *GpuState
	sampler *wgpu.Sampler

	scenePipeline *wgpu.RenderPipeline
	textPipeline  *wgpu.RenderPipeline

	atlas         *FontAtlas
	atlasView     *wgpu.TextureView
	textBindGroup *wgpu.BindGroup

	meshes   map[AssetId]*meshBuffers
	textures map[AssetId]*wgpu.TextureView

	// Transient objects released after each frame's submit.
	frameTrash []interface{ Release() }

	clearColor        wgpu.Color
	reflectionOpacity float32
	titleScale        float32
	titleMarginBottom float32

	log Logger
}

// RendererModule draws the gallery: the mirrored reflection pass, the floor,
// the upright geometry and the title overlay. FontPath is optional; without
// it the title is simply not drawn.
type RendererModule struct {
	FontPath string
	FontSize float64
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	ws := ResourceFor[WindowState](app)
	if ws == nil {
		panic("RendererModule requires WindowModule")
	}
	log := app.Logger()

	gpu := createGpuState(ws)
	rs := &RenderState{
		gpu:               gpu,
		sampler:           createLinearSampler(gpu),
		scenePipeline:     createScenePipeline(gpu, shaders.GalleryWGSL),
		textPipeline:      createTextPipeline(gpu, shaders.TextWGSL),
		meshes:            make(map[AssetId]*meshBuffers),
		textures:          make(map[AssetId]*wgpu.TextureView),
		clearColor:        wgpu.Color{R: 0.03, G: 0.03, B: 0.04, A: 1},
		reflectionOpacity: 0.35,
		titleScale:        1,
		titleMarginBottom: 110,
		log:               log,
	}

	if m.FontPath != "" {
		fontSize := m.FontSize
		if fontSize <= 0 {
			fontSize = 32
		}
		atlas, err := NewFontAtlas(m.FontPath, fontSize)
		if err != nil {
			log.Warnf("renderer: %v, title overlay disabled", err)
		} else {
			rs.atlas = atlas
			rs.atlasView = createAtlasTexture(atlas, gpu)
			rs.textBindGroup = createTextBindGroup(rs)
		}
	}

	cmd.AddResources(rs)
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func createTextBindGroup(rs *RenderState) *wgpu.BindGroup {
	layout := rs.textPipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bg, err := rs.gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: rs.atlasView, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: rs.sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}
	return bg
}

type drawItem struct {
	mesh     *meshBuffers
	texture  *wgpu.TextureView
	model    mgl32.Mat4
	tint     [4]float32
	unlit    bool
	mirrored bool
	depth    float32 // View-space distance, for back-to-front ordering
}

func renderSystem(rs *RenderState, ws *WindowState, assets *AssetServer, label *TitleLabel, cmd *Commands) {
	if ws.WindowWidth <= 0 || ws.WindowHeight <= 0 {
		return
	}
	if uint32(ws.WindowWidth) != rs.gpu.surfaceConfig.Width || uint32(ws.WindowHeight) != rs.gpu.surfaceConfig.Height {
		rs.gpu.resize(ws.WindowWidth, ws.WindowHeight)
	}

	// Camera
	var viewProj mgl32.Mat4
	var eye mgl32.Vec3
	haveCamera := false
	MakeQuery2[CameraComponent, TransformComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, tr *TransformComponent) bool {
		viewProj = cam.Projection(ws.WindowWidth, ws.WindowHeight).Mul4(ViewMatrix(tr))
		eye = tr.Position
		haveCamera = true
		return false
	})
	if !haveCamera {
		return
	}

	// Lights
	var lights [maxLights]gpuLight
	var ambient [4]float32
	lightCount := 0
	MakeQuery2[LightComponent, TransformComponent](cmd).Map(func(eid EntityId, light *LightComponent, tr *TransformComponent) bool {
		if light.Type == LightTypeAmbient {
			ambient = [4]float32{light.Color[0], light.Color[1], light.Color[2], light.Intensity}
			return true
		}
		if lightCount >= maxLights {
			return true
		}
		dir := tr.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
		cosCutoff := float32(0)
		if light.ConeAngle > 0 {
			cosCutoff = cosDeg(light.ConeAngle / 2)
		}
		lights[lightCount] = gpuLight{
			Position:  [4]float32{tr.Position.X(), tr.Position.Y(), tr.Position.Z(), float32(light.Type)},
			Direction: [4]float32{dir.X(), dir.Y(), dir.Z(), cosCutoff},
			Color:     [4]float32{light.Color[0], light.Color[1], light.Color[2], light.Intensity},
			Misc:      [4]float32{light.Range, 0, 0, 0},
		}
		lightCount++
		return true
	})

	// Gather draw items. No depth buffer: reflections first, floor over
	// them, then upright geometry back to front.
	var mirrored, floors, upright []drawItem

	floorEntities := make(set[EntityId])
	MakeQuery2[FloorTag, MeshComponent](cmd).Map(func(eid EntityId, _ *FloorTag, _ *MeshComponent) bool {
		floorEntities[eid] = struct{}{}
		return true
	})

	MakeQuery3[MeshComponent, MaterialComponent, TransformComponent](cmd).Map(func(eid EntityId, mesh *MeshComponent, mat *MaterialComponent, tr *TransformComponent) bool {
		buffers := rs.meshBuffers(mesh.Mesh, assets)
		texture := rs.textureView(mesh.Texture, assets)
		if buffers == nil || texture == nil {
			return true
		}

		model := tr.ObjectToWorld()
		item := drawItem{
			mesh:    buffers,
			texture: texture,
			model:   model,
			tint:    [4]float32{mat.Tint.X(), mat.Tint.Y(), mat.Tint.Z(), mat.Tint.W()},
			unlit:   mat.Unlit,
			depth:   tr.Position.Sub(eye).Len(),
		}

		if _, isFloor := floorEntities[eid]; isFloor {
			floors = append(floors, item)
			return true
		}

		if mat.MirrorInFloor {
			reflected := item
			// Mirror across the floor plane y=0 and fade the copy.
			reflected.model = mgl32.Scale3D(1, -1, 1).Mul4(model)
			reflected.tint[3] *= rs.reflectionOpacity
			reflected.mirrored = true
			mirrored = append(mirrored, reflected)
		}
		upright = append(upright, item)
		return true
	})

	sort.Slice(mirrored, func(i, j int) bool { return mirrored[i].depth > mirrored[j].depth })
	sort.Slice(upright, func(i, j int) bool { return upright[i].depth > upright[j].depth })

	// Frame
	nextTexture, err := rs.gpu.surface.GetCurrentTexture()
	if err != nil {
		rs.log.Errorf("renderer: get current texture: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		rs.log.Errorf("renderer: create view: %v", err)
		return
	}
	defer view.Release()

	encoder, err := rs.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		rs.log.Errorf("renderer: create encoder: %v", err)
		return
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: rs.clearColor,
		}},
	})

	pass.SetPipeline(rs.scenePipeline)
	for _, batch := range [][]drawItem{mirrored, floors, upright} {
		for i := range batch {
			rs.drawScene(pass, &batch[i], viewProj, ambient, lights, lightCount)
		}
	}

	rs.drawTitle(pass, label, ws)

	if err := pass.End(); err != nil {
		rs.log.Errorf("renderer: render pass end: %v", err)
	}

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		rs.log.Errorf("renderer: encoder finish: %v", err)
		return
	}
	rs.gpu.queue.Submit(cmdBuf)
	rs.gpu.surface.Present()

	for _, obj := range rs.frameTrash {
		obj.Release()
	}
	rs.frameTrash = rs.frameTrash[:0]
}

func (rs *RenderState) drawScene(pass *wgpu.RenderPassEncoder, item *drawItem, viewProj mgl32.Mat4, ambient [4]float32, lights [maxLights]gpuLight, lightCount int) {
	uniforms := drawUniforms{
		ViewProj: viewProj,
		Model:    item.model,
		Tint:     item.tint,
		Ambient:  ambient,
		Params:   [4]float32{float32(lightCount), boolToFloat(item.unlit), 0, 0},
		Lights:   lights,
	}

	buffer, err := rs.gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Draw Uniforms",
		Contents: wgpu.ToBytes([]drawUniforms{uniforms}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	rs.frameTrash = append(rs.frameTrash, buffer)

	layout := rs.scenePipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := rs.gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buffer, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: item.texture, Size: wgpu.WholeSize},
			{Binding: 2, Sampler: rs.sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}
	rs.frameTrash = append(rs.frameTrash, bindGroup)

	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, item.mesh.vertexBuf, 0, item.mesh.vertexBuf.GetSize())
	pass.SetIndexBuffer(item.mesh.indexBuf, wgpu.IndexFormatUint16, 0, item.mesh.indexBuf.GetSize())
	pass.DrawIndexed(item.mesh.indexCount, 1, 0, 0, 0)
}

func (rs *RenderState) drawTitle(pass *wgpu.RenderPassEncoder, label *TitleLabel, ws *WindowState) {
	if rs.atlas == nil || rs.textBindGroup == nil || label.Text == "" || label.Alpha <= 0 {
		return
	}

	textW, _ := rs.atlas.MeasureText(label.Text, rs.titleScale)
	items := []TextItem{{
		Text:     label.Text,
		Position: [2]float32{(float32(ws.WindowWidth) - textW) / 2, float32(ws.WindowHeight) - rs.titleMarginBottom},
		Scale:    rs.titleScale,
		Color:    [4]float32{1, 1, 1, label.Alpha},
	}}
	vertices := rs.atlas.BuildVertices(items, ws.WindowWidth, ws.WindowHeight)
	if len(vertices) == 0 {
		return
	}

	buffer, err := rs.gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Text Vertices",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(err)
	}
	rs.frameTrash = append(rs.frameTrash, buffer)

	pass.SetPipeline(rs.textPipeline)
	pass.SetBindGroup(0, rs.textBindGroup, nil)
	pass.SetVertexBuffer(0, buffer, 0, buffer.GetSize())
	pass.Draw(uint32(len(vertices)), 1, 0, 0)
}

func (rs *RenderState) meshBuffers(id AssetId, assets *AssetServer) *meshBuffers {
	if buffers, ok := rs.meshes[id]; ok {
		return buffers
	}
	asset, ok := assets.Mesh(id)
	if !ok {
		return nil
	}
	vertexBuf, indexBuf := createMeshBuffers(&asset, rs.gpu.device)
	buffers := &meshBuffers{
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		indexCount: uint32(len(asset.indices)),
	}
	rs.meshes[id] = buffers
	return buffers
}

func (rs *RenderState) textureView(id AssetId, assets *AssetServer) *wgpu.TextureView {
	if view, ok := rs.textures[id]; ok {
		return view
	}
	asset, ok := assets.Texture(id)
	if !ok {
		return nil
	}
	view := createTextureFromAsset(&asset, rs.gpu)
	rs.textures[id] = view
	return view
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

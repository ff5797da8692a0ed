package galleria

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/google/uuid"
)

type AssetId string

type AssetServer struct {
	meshes   map[AssetId]MeshAsset
	textures map[AssetId]TextureAsset
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(&AssetServer{
		meshes:   make(map[AssetId]MeshAsset),
		textures: make(map[AssetId]TextureAsset),
	})
}

type MeshAsset struct {
	version  uint
	vertices []Vertex
	indices  []uint16
}

type TextureAsset struct {
	version uint
	texels  []uint8
	width   uint32
	height  uint32
}

func (server *AssetServer) LoadMesh(vertices []Vertex, indices []uint16) AssetId {
	id := makeAssetId()
	server.meshes[id] = MeshAsset{
		version:  0,
		vertices: vertices,
		indices:  indices,
	}
	return id
}

// LoadTexture decodes a PNG or JPEG file into an RGBA texture asset.
func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("open texture %s: %w", filename, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode texture %s: %w", filename, err)
	}

	bounds := img.Bounds()
	rgbaImg, ok := img.(*image.RGBA)
	if !ok {
		rgbaImg = image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgbaImg.Set(x, y, img.At(x, y))
			}
		}
	}

	id := makeAssetId()
	server.textures[id] = TextureAsset{
		version: 0,
		texels:  rgbaImg.Pix,
		width:   uint32(bounds.Dx()),
		height:  uint32(bounds.Dy()),
	}
	return id, nil
}

func (server *AssetServer) CreateTexture(texels []uint8, width, height uint32) AssetId {
	id := makeAssetId()
	server.textures[id] = TextureAsset{
		version: 0,
		texels:  texels,
		width:   width,
		height:  height,
	}
	return id
}

// CreateSolidTexture makes a 1x1 texture of the given color, used for
// untextured surfaces like the floor and the arrows.
func (server *AssetServer) CreateSolidTexture(rgba [4]uint8) AssetId {
	return server.CreateTexture(rgba[:], 1, 1)
}

func (server *AssetServer) Mesh(id AssetId) (MeshAsset, bool) {
	m, ok := server.meshes[id]
	return m, ok
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	t, ok := server.textures[id]
	return t, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

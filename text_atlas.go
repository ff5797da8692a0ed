package galleria

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextVertex feeds the overlay text pipeline. Pos is already in clip space.
type TextVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// TextItem is one string to draw. Position is in window pixels, top-left of
// the text block, with (0,0) at the window's top-left corner.
type TextItem struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyphInfo struct {
	uvMin   [2]float32
	uvMax   [2]float32
	size    [2]float32
	bearing [2]float32
	advance float32
}

// FontAtlas rasterizes the printable ASCII range of a font into a single
// alpha texture and lays out quads for strings against it.
type FontAtlas struct {
	Image  *image.Alpha
	face   font.Face
	glyphs map[rune]glyphInfo
}

const (
	atlasSize    = 512
	atlasPadding = 4
)

func NewFontAtlas(fontPath string, fontSize float64) (*FontAtlas, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fontPath, err)
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontPath, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face for %s: %w", fontPath, err)
	}

	atlas := &FontAtlas{
		Image:  image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize)),
		face:   face,
		glyphs: make(map[rune]glyphInfo),
	}

	penX, penY, rowH := 2, 2, 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := mask.Bounds().Dx(), mask.Bounds().Dy()

		if penX+w >= atlasSize {
			penX = 2
			penY += rowH + atlasPadding
			rowH = 0
		}
		if penY+h >= atlasSize {
			return nil, fmt.Errorf("font %s at size %.0f does not fit the glyph atlas", fontPath, fontSize)
		}

		draw.Draw(atlas.Image, image.Rect(penX, penY, penX+w, penY+h), mask, mask.Bounds().Min, draw.Src)

		atlas.glyphs[r] = glyphInfo{
			uvMin:   [2]float32{float32(penX) / atlasSize, float32(penY) / atlasSize},
			uvMax:   [2]float32{float32(penX+w) / atlasSize, float32(penY+h) / atlasSize},
			size:    [2]float32{float32(w), float32(h)},
			bearing: [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			advance: float32(adv) / 64.0, // fixed 26.6
		}

		penX += w + atlasPadding
		if h > rowH {
			rowH = h
		}
	}

	return atlas, nil
}

// BuildVertices lays out two triangles per glyph in clip space for the given
// window size.
func (fa *FontAtlas) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	vertices := make([]TextVertex, 0, len(items)*6)

	sw, sh := float32(screenW), float32(screenH)
	metrics := fa.face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	for _, item := range items {
		startX := item.Position[0]
		penX := startX
		penY := item.Position[1] + ascent*item.Scale

		for _, r := range item.Text {
			if r == '\n' {
				penX = startX
				penY += lineHeight * item.Scale
				continue
			}
			g, ok := fa.glyphs[r]
			if !ok {
				continue
			}

			x0 := (penX+g.bearing[0]*item.Scale)/sw*2 - 1
			y0 := 1 - (penY+g.bearing[1]*item.Scale)/sh*2
			x1 := (penX+(g.bearing[0]+g.size[0])*item.Scale)/sw*2 - 1
			y1 := 1 - (penY+(g.bearing[1]+g.size[1])*item.Scale)/sh*2

			vertices = append(vertices,
				TextVertex{Pos: [2]float32{x0, y0}, UV: [2]float32{g.uvMin[0], g.uvMin[1]}, Color: item.Color},
				TextVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color},
				TextVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color},
				TextVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color},
				TextVertex{Pos: [2]float32{x1, y1}, UV: [2]float32{g.uvMax[0], g.uvMax[1]}, Color: item.Color},
				TextVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color},
			)

			penX += g.advance * item.Scale
		}
	}

	return vertices
}

// MeasureText returns the pixel width and height of the text block.
func (fa *FontAtlas) MeasureText(text string, scale float32) (float32, float32) {
	if fa == nil {
		return 0, 0
	}

	lineHeight := float32(fa.face.Metrics().Height.Ceil())
	maxW, lineW := float32(0), float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			if lineW > maxW {
				maxW = lineW
			}
			lineW = 0
			lines++
			continue
		}
		if g, ok := fa.glyphs[r]; ok {
			lineW += g.advance * scale
		}
	}
	if lineW > maxW {
		maxW = lineW
	}

	return maxW, lineHeight * scale * float32(lines)
}

func (fa *FontAtlas) LineHeight(scale float32) float32 {
	if fa == nil {
		return 0
	}
	return float32(fa.face.Metrics().Height.Ceil()) * scale
}

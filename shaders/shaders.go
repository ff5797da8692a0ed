package shaders

import (
	_ "embed"
)

//go:embed gallery.wgsl
var GalleryWGSL string

//go:embed text.wgsl
var TextWGSL string

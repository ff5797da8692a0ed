package main

import (
	"flag"
	"time"

	"github.com/galleria3d/galleria"
)

func main() {
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	fontPath := flag.String("font", "assets/Roboto-Medium.ttf", "TTF font for the title overlay")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	items := []galleria.GalleryItem{
		{Title: "Water Lilies", Artist: "Claude Monet", Image: "assets/water_lilies.jpg"},
		{Title: "The Starry Night", Artist: "Vincent van Gogh", Image: "assets/starry_night.jpg"},
		{Title: "The Great Wave", Artist: "Katsushika Hokusai", Image: "assets/great_wave.jpg"},
		{Title: "Girl with a Pearl Earring", Artist: "Johannes Vermeer", Image: "assets/pearl_earring.jpg"},
		{Title: "Composition VIII", Artist: "Wassily Kandinsky", Image: "assets/composition_viii.jpg"},
	}

	app := galleria.NewAppBuilder().
		UseModule(
			galleria.LoggingModule{Prefix: "galleria", Debug: *debug},
			galleria.TimeModule{},
			galleria.NewWindow(*width, *height, "Galleria"),
			galleria.InputModule{},
			galleria.AssetServerModule{},
			galleria.TweenModule{},
			galleria.CarouselModule{
				Items:          items,
				RotateDuration: 600 * time.Millisecond,
				FadeDuration:   200 * time.Millisecond,
			},
			galleria.HierarchyModule{},
			galleria.GallerySceneModule{Def: galleria.DefaultGallerySceneDef(items)},
			galleria.RendererModule{FontPath: *fontPath, FontSize: 34},
		).
		Build()

	app.Run()
}

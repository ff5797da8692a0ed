package galleria

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyLeft int = iota
	KeyRight
	KeyEscape
	KeySpace
	MouseButtonLeft
	MouseButtonRight
	inputCodeCount
)

type InputModule struct{}

type Input struct {
	Pressed      [inputCodeCount]bool
	JustPressed  [inputCodeCount]bool
	JustReleased [inputCodeCount]bool

	MouseX, MouseY float64

	WindowWidth, WindowHeight int
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

var keyToGlfw = map[int]glfw.Key{
	KeyLeft:   glfw.KeyLeft,
	KeyRight:  glfw.KeyRight,
	KeyEscape: glfw.KeyEscape,
	KeySpace:  glfw.KeySpace,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}

func inputSystem(s *WindowState, input *Input) {
	for key, glfwKey := range keyToGlfw {
		updateEdge(input, key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		updateEdge(input, btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()
	input.WindowWidth, input.WindowHeight = s.WindowWidth, s.WindowHeight
}

func updateEdge(input *Input, code int, down bool) {
	input.JustPressed[code] = down && !input.Pressed[code]
	input.JustReleased[code] = !down && input.Pressed[code]
	input.Pressed[code] = down
}

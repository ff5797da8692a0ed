package galleria

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(n int) []GalleryItem {
	items := make([]GalleryItem, n)
	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta"}
	for i := range items {
		items[i] = GalleryItem{Title: names[i%len(names)], Artist: "Tester", Image: "missing.png"}
	}
	return items
}

func testCarousel(n int) (*Carousel, *Tweens) {
	items := testItems(n)
	state := &CarouselState{Count: n}
	label := &TitleLabel{Text: items[0].Caption(), Alpha: 1}
	car := &Carousel{
		Items:          items,
		State:          state,
		Label:          label,
		RotateDuration: 100 * time.Millisecond,
		FadeDuration:   40 * time.Millisecond,
	}
	return car, NewTweens()
}

func settle(tweens *Tweens, dt time.Duration, steps int) {
	for i := 0; i < steps; i++ {
		tweens.Advance(dt)
	}
}

func TestNavigateWrapArithmetic(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8} {
		car, tweens := testCarousel(n)

		for i := 0; i < n; i++ {
			car.State.Index = i

			car.Navigate(tweens, NavRight)
			if car.State.Index != (i+1)%n {
				t.Errorf("n=%d: right from %d gave %d, want %d", n, i, car.State.Index, (i+1)%n)
			}

			car.State.Index = i
			car.Navigate(tweens, NavLeft)
			want := ((i-1)%n + n) % n
			if car.State.Index != want {
				t.Errorf("n=%d: left from %d gave %d, want %d", n, i, car.State.Index, want)
			}
		}
	}
}

func TestNavigateYawDelta(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8} {
		for _, dir := range []NavDirection{NavLeft, NavRight} {
			car, tweens := testCarousel(n)
			startYaw := car.State.Yaw

			car.Navigate(tweens, dir)
			settle(tweens, 10*time.Millisecond, 50)

			delta := car.State.Yaw - startYaw
			wantMag := 2 * math.Pi / float64(n)
			if math.Abs(math.Abs(float64(delta))-wantMag) > 1e-4 {
				t.Errorf("n=%d dir=%s: |delta| = %v, want %v", n, dir, math.Abs(float64(delta)), wantMag)
			}
			if dir == NavRight && delta <= 0 {
				t.Errorf("n=%d: right navigation should increase yaw, delta = %v", n, delta)
			}
			if dir == NavLeft && delta >= 0 {
				t.Errorf("n=%d: left navigation should decrease yaw, delta = %v", n, delta)
			}
		}
	}
}

func TestTitleCrossfadeOrdering(t *testing.T) {
	car, tweens := testCarousel(5)
	oldText := car.Label.Text

	car.Navigate(tweens, NavRight)
	newText := car.Items[1].Caption()
	require.NotEqual(t, oldText, newText)

	// While fading out the old text must stay in place.
	swapped := false
	for i := 0; i < 100 && tweens.Active(tweenChanTitleFade); i++ {
		textBefore := car.Label.Text
		tweens.Advance(5 * time.Millisecond)

		if !swapped {
			if car.Label.Text == newText {
				// The swap is only allowed at full transparency.
				assert.LessOrEqual(t, car.Label.Alpha, float32(1e-4),
					"text swapped while still visible (alpha %v)", car.Label.Alpha)
				swapped = true
			} else {
				assert.Equal(t, oldText, textBefore, "text changed before fade-out completed")
			}
		}
	}

	require.True(t, swapped, "title text never swapped")
	assert.Equal(t, newText, car.Label.Text)
	assert.InDelta(t, 1.0, float64(car.Label.Alpha), 1e-4, "title should fade back to fully opaque")
}

func TestNavigateRetargetsMidFlight(t *testing.T) {
	car, tweens := testCarousel(5)

	car.Navigate(tweens, NavRight)
	settle(tweens, 10*time.Millisecond, 3) // mid-rotation

	car.Navigate(tweens, NavRight)
	if tweens.Count() != 2 {
		t.Errorf("second navigate should reuse the yaw and fade channels, have %d tweens", tweens.Count())
	}
	settle(tweens, 10*time.Millisecond, 60)

	if car.State.Index != 2 {
		t.Errorf("two right navigations should land on index 2, got %d", car.State.Index)
	}
	wantYaw := 2 * 2 * math.Pi / 5
	if math.Abs(float64(car.State.Yaw)-wantYaw) > 1e-3 {
		t.Errorf("yaw should settle at two slots, got %v want %v", car.State.Yaw, wantYaw)
	}
}

func TestCarouselClickNavigation(t *testing.T) {
	app := NewAppBuilder().
		UseModule(
			TweenModule{},
			CarouselModule{
				Items:          testItems(5),
				RotateDuration: 50 * time.Millisecond,
				FadeDuration:   20 * time.Millisecond,
			},
		).
		Build()
	cmd := app.Commands()
	cmd.AddResources(&Input{}, &Time{})

	cmd.AddEntity(
		NewTransform(mgl32.Vec3{0, 0, 0}),
		CameraComponent{FovY: mgl32.DegToRad(60), Near: 0.1, Far: 100},
	)
	cmd.AddEntity(
		NewTransform(mgl32.Vec3{0, 0, -5}),
		PickableComponent{
			HalfWidth:  1,
			HalfHeight: 1,
			Tag:        ArrowTag{Direction: NavRight, TargetIndex: 1},
		},
	)
	app.FlushCommands()

	input := ResourceFor[Input](app)
	input.JustPressed[MouseButtonLeft] = true
	input.MouseX, input.MouseY = 640, 360
	input.WindowWidth, input.WindowHeight = 1280, 720

	car := ResourceFor[Carousel](app)
	tweens := ResourceFor[Tweens](app)
	quit := ResourceFor[Quit](app)

	carouselInputSystem(input, car, tweens, quit, cmd)

	if car.State.Index != 1 {
		t.Errorf("clicking the right arrow should navigate to index 1, got %d", car.State.Index)
	}
}

func TestCarouselKeyboardAndEscape(t *testing.T) {
	app := NewAppBuilder().
		UseModule(
			TweenModule{},
			CarouselModule{Items: testItems(3)},
		).
		Build()
	cmd := app.Commands()
	cmd.AddResources(&Input{}, &Time{})

	input := ResourceFor[Input](app)
	car := ResourceFor[Carousel](app)
	tweens := ResourceFor[Tweens](app)
	quit := ResourceFor[Quit](app)

	input.JustPressed[KeyRight] = true
	carouselInputSystem(input, car, tweens, quit, cmd)
	assert.Equal(t, 1, car.State.Index)

	input.JustPressed[KeyRight] = false
	input.JustPressed[KeyLeft] = true
	carouselInputSystem(input, car, tweens, quit, cmd)
	assert.Equal(t, 0, car.State.Index)

	input.JustPressed[KeyLeft] = false
	input.JustPressed[KeyEscape] = true
	carouselInputSystem(input, car, tweens, quit, cmd)
	assert.True(t, quit.Requested, "escape should request quit")
}

// End-to-end: five items, full module wiring minus window and GPU.
func TestGalleryNavigationEndToEnd(t *testing.T) {
	items := testItems(5)

	app := NewAppBuilder().
		UseModule(
			AssetServerModule{},
			TweenModule{},
			CarouselModule{
				Items:          items,
				RotateDuration: 100 * time.Millisecond,
				FadeDuration:   40 * time.Millisecond,
			},
			HierarchyModule{},
			GallerySceneModule{Def: DefaultGallerySceneDef(items)},
		).
		Build()

	cmd := app.Commands()
	cmd.AddResources(&Input{}, &Time{})

	step := func() {
		ResourceFor[Time](app).Dt = 10 * time.Millisecond
		app.Step()
	}

	// The scene spawns one pickable pair per item, each wired to the
	// precomputed wrap neighbors.
	arrowTargets := map[NavDirection]map[int]int{NavLeft: {}, NavRight: {}}
	MakeQuery1[PickableComponent](cmd).Map(func(eid EntityId, pick *PickableComponent) bool {
		arrow, ok := pick.Tag.(ArrowTag)
		require.True(t, ok, "every pickable in the gallery is an arrow")
		if arrow.Direction == NavLeft {
			arrowTargets[NavLeft][arrow.TargetIndex]++
		} else {
			arrowTargets[NavRight][arrow.TargetIndex]++
		}
		return true
	})
	assert.Len(t, arrowTargets[NavLeft], 5)
	assert.Len(t, arrowTargets[NavRight], 5)
	assert.Equal(t, 1, arrowTargets[NavLeft][4], "item 0's left arrow targets item 4")
	assert.Equal(t, 1, arrowTargets[NavRight][0], "item 4's right arrow targets item 0")

	_ = ResourceFor[Carousel](app)
	state := ResourceFor[CarouselState](app)
	label := ResourceFor[TitleLabel](app)
	input := ResourceFor[Input](app)

	require.Equal(t, 5, state.Count)
	require.Equal(t, items[0].Caption(), label.Text)

	// Navigate right via the keyboard path.
	input.JustPressed[KeyRight] = true
	step()
	input.JustPressed[KeyRight] = false
	assert.Equal(t, 1, state.Index)

	for i := 0; i < 40; i++ {
		step()
	}

	slot := 2 * math.Pi / 5
	assert.InDelta(t, slot, float64(state.Yaw), 1e-3, "one right step rotates by 2*pi/5")
	assert.Equal(t, items[1].Caption(), label.Text)
	assert.InDelta(t, 1.0, float64(label.Alpha), 1e-3)

	// The carousel root follows the yaw.
	rootChecked := false
	MakeQuery2[CarouselRootTag, TransformComponent](cmd).Map(func(eid EntityId, _ *CarouselRootTag, tr *TransformComponent) bool {
		want := mgl32.QuatRotate(state.Yaw, mgl32.Vec3{0, 1, 0}).Rotate(mgl32.Vec3{0, 0, -1})
		got := tr.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
		assert.Less(t, got.Sub(want).Len(), float32(1e-3), "root rotation should match the animated yaw")
		rootChecked = true
		return false
	})
	require.True(t, rootChecked, "carousel root entity missing")

	// Navigate left twice: 1 -> 0 -> 4, exercising the wrap.
	for i := 0; i < 2; i++ {
		input.JustPressed[KeyLeft] = true
		step()
		input.JustPressed[KeyLeft] = false
		for j := 0; j < 40; j++ {
			step()
		}
	}

	assert.Equal(t, 4, state.Index)
	assert.InDelta(t, -slot, float64(state.Yaw), 1e-3, "net one left step from start")
	assert.Equal(t, items[4].Caption(), label.Text)
}

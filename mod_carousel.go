package galleria

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	tweenChanCarouselYaw = "carousel.yaw"
	tweenChanTitleFade   = "carousel.title"
)

// CarouselRootTag marks the entity whose yaw the navigation rotates. All
// image planes and arrows hang off this entity.
type CarouselRootTag struct{}

// ArrowTag rides on arrow pickables; a click navigates in Direction, which
// lands on TargetIndex.
type ArrowTag struct {
	Direction   NavDirection
	TargetIndex int
}

// FloorTag marks the reflective floor so the renderer can order it between
// the mirrored and the upright geometry.
type FloorTag struct{}

// Carousel drives navigation. It mutates CarouselState and TitleLabel
// through tweens; collaborators that live in the app (the tween runner) are
// passed in per call so the controller itself stays a plain value.
type Carousel struct {
	Items []GalleryItem
	State *CarouselState
	Label *TitleLabel

	RotateDuration time.Duration
	FadeDuration   time.Duration

	// Where the yaw settles once all pending steps finish. Advances by
	// exactly one slot per Navigate, so retargeting mid-rotation still
	// lands on a slot boundary.
	targetYaw float32

	log Logger
}

// Navigate advances the facing index by one step in dir, wrapping at both
// ends, and starts the yaw rotation and the title crossfade. A second
// Navigate during an animation retargets the running tweens from their
// current values.
func (c *Carousel) Navigate(tweens *Tweens, dir NavDirection) {
	n := len(c.Items)
	if n == 0 || dir == 0 {
		return
	}

	next := ((c.State.Index+int(dir))%n + n) % n
	c.State.Index = next
	if c.log != nil {
		c.log.Debugf("carousel: navigate %s, now facing %d (%s)", dir, next, c.Items[next].Title)
	}

	delta := float32(dir) * 2 * math.Pi / float32(n)
	c.targetYaw += delta
	tweens.Start(tweenChanCarouselYaw, Tween{
		From:     c.State.Yaw,
		To:       c.targetYaw,
		Duration: c.RotateDuration,
		Ease:     EaseInOutQuad,
		Apply:    func(v float32) { c.State.Yaw = v },
	})

	item := c.Items[next]
	tweens.Start(tweenChanTitleFade, Tween{
		From:     c.Label.Alpha,
		To:       0,
		Duration: c.FadeDuration,
		Ease:     EaseOutQuad,
		Apply:    func(v float32) { c.Label.Alpha = v },
		OnComplete: func() {
			// Swap the text only once fully invisible, then fade back in.
			c.Label.Text = item.Caption()
			tweens.Start(tweenChanTitleFade, Tween{
				From:     0,
				To:       1,
				Duration: c.FadeDuration,
				Ease:     EaseInQuad,
				Apply:    func(v float32) { c.Label.Alpha = v },
			})
		},
	})
}

// CarouselModule installs the navigation controller: arrow keys and arrow
// clicks rotate the carousel and crossfade the title.
type CarouselModule struct {
	Items          []GalleryItem
	RotateDuration time.Duration
	FadeDuration   time.Duration
}

func (m CarouselModule) Install(app *App, cmd *Commands) {
	if m.RotateDuration <= 0 {
		m.RotateDuration = 600 * time.Millisecond
	}
	if m.FadeDuration <= 0 {
		m.FadeDuration = 200 * time.Millisecond
	}

	state := &CarouselState{Count: len(m.Items)}
	label := &TitleLabel{Alpha: 1}
	if len(m.Items) > 0 {
		label.Text = m.Items[0].Caption()
	}

	cmd.AddResources(state, label, &Carousel{
		Items:          m.Items,
		State:          state,
		Label:          label,
		RotateDuration: m.RotateDuration,
		FadeDuration:   m.FadeDuration,
		log:            app.Logger(),
	})

	app.UseSystem(
		System(carouselInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(carouselYawSystem).
			InStage(PostUpdate),
	)
}

func carouselInputSystem(input *Input, car *Carousel, tweens *Tweens, quit *Quit, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		quit.Requested = true
	}
	if input.JustPressed[KeyLeft] {
		car.Navigate(tweens, NavLeft)
	}
	if input.JustPressed[KeyRight] {
		car.Navigate(tweens, NavRight)
	}

	if !input.JustPressed[MouseButtonLeft] {
		return
	}
	ray, ok := PrimaryRay(cmd, input.MouseX, input.MouseY, input.WindowWidth, input.WindowHeight)
	if !ok {
		return
	}
	for _, hit := range RaycastPickables(cmd, ray) {
		if arrow, ok := hit.Tag.(ArrowTag); ok {
			car.Navigate(tweens, arrow.Direction)
			break
		}
	}
}

// carouselYawSystem copies the animated yaw onto the root entity's rotation.
// It runs in PostUpdate before the hierarchy propagation, so children pick up
// the new rotation in the same frame.
func carouselYawSystem(state *CarouselState, cmd *Commands) {
	MakeQuery2[CarouselRootTag, TransformComponent](cmd).Map(func(eid EntityId, _ *CarouselRootTag, tr *TransformComponent) bool {
		tr.Rotation = mgl32.QuatRotate(state.Yaw, mgl32.Vec3{0, 1, 0})
		return false
	})
}

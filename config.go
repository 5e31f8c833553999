package kinetik

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"
)

// Config describes a full scene: solver settings plus the bodies and
// ring stacks to spawn. A Config is the unit of save/load (presets.go)
// and of reset: rebuilding from the same Config and seed replays the
// exact same simulation.
type Config struct {
	Seed              int64      `json:"seed"`
	Gravity           mgl64.Vec2 `json:"gravity"`
	MaxDt             float64    `json:"max_dt,omitempty"`
	Slop              float64    `json:"slop,omitempty"`
	CorrectionPercent float64    `json:"correction_percent,omitempty"`
	ChainActivation   bool       `json:"chain_activation,omitempty"`
	Debug             bool       `json:"debug,omitempty"`

	// Material defaults applied to specs that leave the field at zero.
	DefaultRestitution float64 `json:"default_restitution,omitempty"`
	DefaultFriction    float64 `json:"default_friction,omitempty"`

	Bodies []BodySpec  `json:"bodies,omitempty"`
	Rings  []RingStack `json:"rings,omitempty"`
	Bounds *BoundsSpec `json:"bounds,omitempty"`
}

// BodySpec declares a single circle or rect body.
type BodySpec struct {
	Label       string     `json:"label,omitempty"`
	Kind        string     `json:"kind"` // "circle" or "rect"
	Radius      float64    `json:"radius,omitempty"`
	Width       float64    `json:"width,omitempty"`
	Height      float64    `json:"height,omitempty"`
	Pos         mgl64.Vec2 `json:"pos"`
	Vel         mgl64.Vec2 `json:"vel,omitempty"`
	Angle       float64    `json:"angle,omitempty"`
	Restitution float64    `json:"restitution,omitempty"`
	Friction    float64    `json:"friction,omitempty"`
	Immovable   bool       `json:"immovable,omitempty"`
	Color       string     `json:"color,omitempty"`
}

// RingStack expands to Count concentric rings around Center. Ring i has
// outer radius MinRadius + i*(Thickness+Spacing) and rotation speed
// BaseRotation + i*RotationStep; colors cycle through the palette.
type RingStack struct {
	Center        mgl64.Vec2 `json:"center"`
	Count         int        `json:"count"`
	MinRadius     float64    `json:"min_radius"`
	Thickness     float64    `json:"thickness"`
	Spacing       float64    `json:"spacing,omitempty"`
	GapAngle      float64    `json:"gap_angle"`
	GapStart      float64    `json:"gap_start,omitempty"`
	BaseRotation  float64    `json:"base_rotation,omitempty"`
	RotationStep  float64    `json:"rotation_step,omitempty"`
	Restitution   float64    `json:"restitution,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ActivateFirst bool       `json:"activate_first,omitempty"`
}

// BoundsSpec builds four immovable walls enclosing a Width x Height
// arena centered on Center.
type BoundsSpec struct {
	Center        mgl64.Vec2 `json:"center"`
	Width         float64    `json:"width"`
	Height        float64    `json:"height"`
	WallThickness float64    `json:"wall_thickness,omitempty"`
	Restitution   float64    `json:"restitution,omitempty"`
}

// defaultRingPalette matches the neon look of the reference scenes.
var defaultRingPalette = []color.RGBA{
	colornames.Deepskyblue,
	colornames.Magenta,
	colornames.Gold,
	colornames.Springgreen,
	colornames.Orangered,
	colornames.Blueviolet,
}

func DefaultConfig() Config {
	return Config{
		Gravity:           mgl64.Vec2{0, 1000},
		MaxDt:             defaultMaxDt,
		Slop:              defaultSlop,
		CorrectionPercent: defaultCorrectionPercent,
	}
}

func lookupColor(name string, fallback color.RGBA) (color.RGBA, error) {
	if name == "" {
		return fallback, nil
	}
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

func (s BodySpec) Validate() error {
	switch s.Kind {
	case "circle":
		if _, err := NewCircle(s.Radius); err != nil {
			return err
		}
	case "rect":
		if _, err := NewRect(s.Width, s.Height); err != nil {
			return err
		}
	default:
		return fmt.Errorf("body kind must be \"circle\" or \"rect\", got %q", s.Kind)
	}
	// Restitution above 1 is a legitimate "super-elastic" tuning knob;
	// only negative values are rejected.
	if s.Restitution < 0 {
		return fmt.Errorf("restitution must not be negative, got %v", s.Restitution)
	}
	if _, err := lookupColor(s.Color, color.RGBA{}); err != nil {
		return err
	}
	return nil
}

func (s RingStack) Validate() error {
	if s.Count <= 0 {
		return fmt.Errorf("ring stack count must be positive, got %d", s.Count)
	}
	for i := 0; i < s.Count; i++ {
		outer := s.MinRadius + float64(i)*(s.Thickness+s.Spacing)
		if _, err := NewRing(outer, s.Thickness, s.GapAngle, s.GapStart, 0); err != nil {
			return fmt.Errorf("ring %d of stack: %w", i, err)
		}
	}
	for _, name := range s.Colors {
		if _, err := lookupColor(name, color.RGBA{}); err != nil {
			return err
		}
	}
	return nil
}

func (s BoundsSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("bounds must have positive size, got %vx%v", s.Width, s.Height)
	}
	return nil
}

func (c Config) Validate() error {
	if c.MaxDt < 0 {
		return fmt.Errorf("max dt must not be negative, got %v", c.MaxDt)
	}
	if c.DefaultRestitution < 0 {
		return fmt.Errorf("default restitution must not be negative, got %v", c.DefaultRestitution)
	}
	for i, b := range c.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	for i, r := range c.Rings {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("ring stack %d: %w", i, err)
		}
	}
	if c.Bounds != nil {
		if err := c.Bounds.Validate(); err != nil {
			return fmt.Errorf("bounds: %w", err)
		}
	}
	return nil
}

func bodyFromSpec(s BodySpec) (*Body, error) {
	var shape Shape
	switch s.Kind {
	case "circle":
		c, err := NewCircle(s.Radius)
		if err != nil {
			return nil, err
		}
		shape = c
	case "rect":
		r, err := NewRect(s.Width, s.Height)
		if err != nil {
			return nil, err
		}
		shape = r
	default:
		return nil, fmt.Errorf("body kind must be \"circle\" or \"rect\", got %q", s.Kind)
	}

	b := NewBody(shape, s.Pos)
	b.Label = s.Label
	b.Vel = s.Vel
	b.Angle = normalizeDeg(s.Angle)
	b.Immovable = s.Immovable
	if s.Restitution > 0 {
		b.Restitution = s.Restitution
	}
	if s.Friction > 0 {
		b.Friction = s.Friction
	}
	c, err := lookupColor(s.Color, b.Color)
	if err != nil {
		return nil, err
	}
	b.Color = c
	return b, nil
}

func ringsFromStack(s RingStack) ([]*Body, error) {
	palette := defaultRingPalette
	if len(s.Colors) > 0 {
		palette = make([]color.RGBA, len(s.Colors))
		for i, name := range s.Colors {
			c, err := lookupColor(name, color.RGBA{})
			if err != nil {
				return nil, err
			}
			palette[i] = c
		}
	}

	out := make([]*Body, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		outer := s.MinRadius + float64(i)*(s.Thickness+s.Spacing)
		speed := s.BaseRotation + float64(i)*s.RotationStep
		ring, err := NewRing(outer, s.Thickness, s.GapAngle, s.GapStart, speed)
		if err != nil {
			return nil, fmt.Errorf("ring %d of stack: %w", i, err)
		}
		b := NewImmovableBody(ring, s.Center)
		b.Color = palette[i%len(palette)]
		if s.Restitution > 0 {
			b.Restitution = s.Restitution
		}
		if s.ActivateFirst && i == 0 {
			ring.Activate()
		}
		out = append(out, b)
	}
	return out, nil
}

func wallsFromBounds(s BoundsSpec) []*Body {
	t := s.WallThickness
	if t <= 0 {
		t = 10
	}
	hw, hh := s.Width/2, s.Height/2
	cx, cy := s.Center.X(), s.Center.Y()

	specs := []struct {
		w, h float64
		pos  mgl64.Vec2
	}{
		{s.Width + 2*t, t, mgl64.Vec2{cx, cy - hh - t/2}}, // top
		{s.Width + 2*t, t, mgl64.Vec2{cx, cy + hh + t/2}}, // bottom
		{t, s.Height, mgl64.Vec2{cx - hw - t/2, cy}},      // left
		{t, s.Height, mgl64.Vec2{cx + hw + t/2, cy}},      // right
	}

	walls := make([]*Body, 0, len(specs))
	for _, sp := range specs {
		b := NewImmovableBody(Rect{Width: sp.w, Height: sp.h}, sp.pos)
		b.Label = "wall"
		if s.Restitution > 0 {
			b.Restitution = s.Restitution
		}
		walls = append(walls, b)
	}
	return walls
}

// NewSimulation validates the config and builds a ready-to-step App
// with all core modules installed and the scene spawned.
func NewSimulation(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := NewAppBuilder().
		UseModule(
			LoggingModule{Prefix: "kinetik", Debug: cfg.Debug},
			TimeModule{},
			WorldModule{Seed: cfg.Seed},
			PhysicsModule{},
			RingModule{},
			ParticleModule{},
		).
		Build()

	world := app.World()
	world.Gravity = cfg.Gravity
	world.ChainActivation = cfg.ChainActivation
	if cfg.MaxDt > 0 {
		world.MaxDt = cfg.MaxDt
	}
	world.Slop = cfg.Slop
	world.CorrectionPercent = cfg.CorrectionPercent

	cmd := app.Commands()
	log := app.Logger()

	applyDefaults := func(b *Body, restitution, friction float64) {
		if restitution == 0 && cfg.DefaultRestitution > 0 {
			b.Restitution = cfg.DefaultRestitution
		}
		if friction == 0 && cfg.DefaultFriction > 0 {
			b.Friction = cfg.DefaultFriction
		}
	}

	for _, stack := range cfg.Rings {
		rings, err := ringsFromStack(stack)
		if err != nil {
			return nil, err
		}
		for _, rb := range rings {
			applyDefaults(rb, stack.Restitution, 0)
			cmd.AddBody(rb)
		}
		log.Debugf("spawned ring stack: %d rings around %v", stack.Count, stack.Center)
	}
	for i, spec := range cfg.Bodies {
		b, err := bodyFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		applyDefaults(b, spec.Restitution, spec.Friction)
		cmd.AddBody(b)
		log.Debugf("spawned %s body %s at %v", spec.Kind, b.ID, b.Pos)
	}
	if cfg.Bounds != nil {
		for _, wall := range wallsFromBounds(*cfg.Bounds) {
			cmd.AddBody(wall)
		}
	}
	app.FlushCommands()

	return app, nil
}

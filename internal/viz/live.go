package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/forces"
	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/vec"
)

const (
	liveWidth    = 60
	liveHeight   = 20
	maxTrail     = 1500
	pilotKey     = "pilot"
	burstSeconds = 2.0
)

type TickMsg time.Time

// Live is the interactive orbit view: it steps the world at a fixed
// frame rate, feeds keyboard burns into the tracked body's ledger
// under its own contributor key, and redraws the trail and the element
// readout every frame.
type Live struct {
	cfg     *config.Config
	world   *sim.World
	tracked *sim.Body
	central *sim.Body
	solver  orbit.Solver

	t             float64
	stepsPerFrame int
	fps           int
	running       bool

	canvas *Canvas
	trail  []vec.Vec2
	scale  float64

	burstTicks  int
	burstThrust float64

	elements   orbit.Elements
	elementErr error
}

// NewLive builds the world from cfg and sizes the view so the starting
// orbit fits on the canvas.
func NewLive(cfg *config.Config, fps int) (*Live, error) {
	if fps <= 0 {
		fps = 30
	}

	l := &Live{cfg: cfg, fps: fps, running: true}
	if err := l.rebuild(); err != nil {
		return nil, err
	}
	l.canvas = NewCanvas(liveWidth, liveHeight)

	// Step enough sim time per frame to cover one wall-clock second of
	// frames with at least one tick each.
	l.stepsPerFrame = int(1.0 / (cfg.Dt * float64(fps)))
	if l.stepsPerFrame < 1 {
		l.stepsPerFrame = 1
	}

	return l, nil
}

func (l *Live) rebuild() error {
	w, tracked, central, err := sim.Build(l.cfg)
	if err != nil {
		return err
	}
	l.world = w
	l.tracked = tracked
	l.central = central
	l.solver = orbit.NewSolver(l.cfg.G)
	l.t = 0
	l.trail = l.trail[:0]
	l.burstTicks = 0

	r0 := tracked.Position.Sub(central.Position).Length()
	if r0 > 0 {
		l.scale = float64(liveHeight*4) * 0.35 / r0
		// A pilot burst strong enough to visibly bend the orbit.
		grav := l.cfg.G * central.Mass * tracked.Mass / (r0 * r0)
		l.burstThrust = grav * 0.5
	} else {
		l.scale = 1
		l.burstThrust = 1
	}

	l.solve()
	return nil
}

func (l *Live) Init() tea.Cmd {
	return l.tick()
}

func (l *Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(l.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			l.rebuild()
		case "t":
			l.burstTicks = int(burstSeconds / l.cfg.Dt)
		case "+", "=":
			l.scale *= 1.25
		case "-", "_":
			l.scale /= 1.25
		}
	case TickMsg:
		if l.running {
			l.advance()
		}
		return l, l.tick()
	}
	return l, nil
}

// advance runs the frame's ticks. The pilot writes its ledger entry
// before each Step, so within a tick the ordering stays
// write -> aggregate -> integrate.
func (l *Live) advance() {
	key := forces.CustomKey(pilotKey)

	for i := 0; i < l.stepsPerFrame; i++ {
		var c forces.Contribution
		if l.burstTicks > 0 {
			dir := l.tracked.Velocity.Sub(l.central.Velocity).Normalize()
			c.Force = vec.FromPlanar(dir.Scale(l.burstThrust))
			l.burstTicks--
		}
		l.tracked.ForceLedger().Set(key, c)

		l.world.Step(l.t, l.cfg.Dt)
		l.t += l.cfg.Dt
	}

	l.trail = append(l.trail, l.tracked.Position.Sub(l.central.Position))
	if len(l.trail) > maxTrail {
		l.trail = l.trail[len(l.trail)-maxTrail:]
	}

	l.solve()
}

func (l *Live) solve() {
	rel := l.tracked.Position.Sub(l.central.Position)
	relV := l.tracked.Velocity.Sub(l.central.Velocity)
	l.elements, l.elementErr = l.solver.Solve(l.central.Mass, rel, relV)
}

func (l *Live) View() string {
	l.draw()

	var stats string
	stats += labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.1f", l.t)) + "\n"
	rel := l.tracked.Position.Sub(l.central.Position)
	relV := l.tracked.Velocity.Sub(l.central.Velocity)
	stats += labelStyle.Render("radius") + valueStyle.Render(fmt.Sprintf("%.6g", rel.Length())) + "\n"
	stats += labelStyle.Render("speed") + valueStyle.Render(fmt.Sprintf("%.6g", relV.Length())) + "\n"
	if l.burstTicks > 0 {
		stats += labelStyle.Render("thrusters") + warnStyle.Render("burning") + "\n"
	}
	stats += "\n"
	if l.elementErr != nil {
		stats += warnStyle.Render("orbit reading unavailable") + "\n"
		stats += warnStyle.Render(l.elementErr.Error()) + "\n"
	} else {
		stats += ElementsView(l.elements)
	}

	header := headerStyle.Render(fmt.Sprintf("orbitlab · %s around %s", l.tracked.Name, l.central.Name))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(l.canvas.String()),
		statsStyle.Render(stats))
	help := helpStyle.Render("space pause · t burn prograde · r reset · +/- zoom · q quit")

	return header + "\n" + body + "\n" + help + "\n"
}

func (l *Live) draw() {
	l.canvas.Clear()

	cx := l.canvas.PixelWidth() / 2
	cy := l.canvas.PixelHeight() / 2

	project := func(p vec.Vec2) (int, int) {
		// Terminal rows grow downward; flip y.
		return cx + int(p.X*l.scale), cy - int(p.Y*l.scale)
	}

	for _, p := range l.trail {
		x, y := project(p)
		l.canvas.Set(x, y)
	}

	// Central body outline, tracked body as a dot.
	l.canvas.DrawCircle(cx, cy, 2)
	x, y := project(l.tracked.Position.Sub(l.central.Position))
	l.canvas.Set(x, y)
}

package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/towerlab/internal/config"
	"github.com/san-kum/towerlab/internal/pick"
	"github.com/san-kum/towerlab/internal/tower"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 600
	tickRate        = time.Second / 60
)

type TickMsg time.Time

// Model is the live TUI: it owns a session and renders it while
// routing keys to parameter tuning and the camera, and the mouse to
// the drag bridge.
type Model struct {
	session *tower.Session
	canvas  *Canvas

	running  bool
	showHelp bool
	selected int

	sway []float64

	mouseDown  bool
	lastMouseX int
	lastMouseY int
}

func NewModel(s *tower.Session) Model {
	return Model{
		session: s,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
		sway:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.session.Reset()
			m.sway = m.sway[:0]
		case "tab":
			m.selected = (m.selected + 1) % len(tower.ParamNames)
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "a":
			m.session.Camera().Orbit(-0.1, 0)
		case "d":
			m.session.Camera().Orbit(0.1, 0)
		case "w":
			m.session.Camera().Orbit(0, 0.1)
		case "s":
			m.session.Camera().Orbit(0, -0.1)
		case "+", "=":
			m.session.Camera().Dolly(0.9)
		case "-", "_":
			m.session.Camera().Dolly(1.1)
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case TickMsg:
		if m.running {
			m.session.Tick(1.0 / 60)
		} else {
			// a zero tick applies queued edits without advancing time,
			// so tuning works while paused
			m.session.Tick(0)
			m.session.Camera().Update(1.0 / 60)
		}
		tip := m.session.Cap().Body.Position()
		m.sway = append(m.sway, math.Hypot(tip.X, tip.Z))
		if len(m.sway) > historyCapacity {
			m.sway = m.sway[1:]
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	drag := m.session.Dragger()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !drag.Start(0, m.mouseRay(msg.X, msg.Y), m.session.Targets()) {
				// missed the tower: the press orbits instead
				m.mouseDown = true
			}
			m.lastMouseX, m.lastMouseY = msg.X, msg.Y
		case tea.MouseButtonWheelUp:
			m.session.Camera().Dolly(0.92)
		case tea.MouseButtonWheelDown:
			m.session.Camera().Dolly(1.08)
		}
	case tea.MouseActionMotion:
		if drag.Dragging() {
			drag.Move(0, m.mouseRay(msg.X, msg.Y))
		} else if m.mouseDown {
			dx := float64(msg.X - m.lastMouseX)
			dy := float64(msg.Y - m.lastMouseY)
			m.session.Camera().Orbit(dx*0.03, dy*0.05)
		}
		m.lastMouseX, m.lastMouseY = msg.X, msg.Y
	case tea.MouseActionRelease:
		// some terminals report the released button as none
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			drag.End(0)
			m.mouseDown = false
		}
	}
}

// mouseRay maps a terminal cell to a world ray. The canvas is padded
// one row down and two columns right; cells subdivide into braille
// subpixels.
func (m *Model) mouseRay(x, y int) pick.Ray {
	px := float64((x - 2) * 2)
	py := float64((y - 1) * 4)
	return m.session.Camera().ScreenRay(px, py, canvasWidth*2, canvasHeight*4)
}

func (m *Model) adjustParam(dir int) {
	name := tower.ParamNames[m.selected]
	val := paramValue(m.session.Config(), name)
	switch name {
	case "frames":
		val += float64(dir)
	case "joint_limit":
		val += float64(dir) * 0.05
	default:
		if dir > 0 {
			val *= 1.05
		} else {
			val *= 0.95
		}
	}
	m.session.Queue(tower.SetParam{Name: name, Value: val})
}

func paramValue(cfg *config.Tower, name string) float64 {
	switch name {
	case "frames":
		return float64(cfg.Frames)
	case "frame_size":
		return cfg.FrameSize
	case "thickness":
		return cfg.Thickness
	case "connector_length":
		return cfg.ConnectorLength
	case "angular_damping":
		return cfg.AngularDamping
	case "weight_reduction":
		return cfg.WeightReduction
	case "weight_scale":
		return cfg.WeightScale
	case "frame_density":
		return cfg.FrameDensity
	case "weight_density":
		return cfg.WeightDensity
	case "joint_limit":
		return cfg.JointLimit
	case "gravity":
		return cfg.Gravity
	}
	return 0
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawScene(m.canvas, m.session.Scene(), m.session.Camera())
	if p, ok := m.session.Dragger().AnchorPosition(); ok {
		DrawMarker(m.canvas, m.session.Camera(), p)
	}
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("TOWERLAB") + "\n")

	status := "RUNNING"
	if m.session.Dragger().Dragging() {
		status = "DRAGGING"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.sway) > 1 {
		chart := asciigraph.Plot(m.sway, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Tip sway"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	cfg := m.session.Config()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.session.Time())) + "\n")
	tip := m.session.Cap().Body.Position()
	s.WriteString(labelStyle.Render("Tip sway") + valueStyle.Render(fmt.Sprintf("%.3f", math.Hypot(tip.X, tip.Z))) + "\n")
	s.WriteString(labelStyle.Render("Joints") + valueStyle.Render(fmt.Sprintf("%d", len(m.session.Joints()))) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, name := range tower.ParamNames {
		line := fmt.Sprintf("%-17s %.3f", name, paramValue(cfg, name))
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	if err := m.session.LastErr(); err != nil {
		s.WriteString("\n" + errorStyle.Render(err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit Tab:Param ↑↓:Tune\nWASD:Orbit +/-:Zoom Drag:Grab ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset tower              ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  W/A/S/D  - Orbit camera             ║
║  +/-      - Zoom                     ║
║  Mouse    - Drag a frame, orbit on   ║
║             empty space              ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`

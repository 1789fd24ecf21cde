package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/towerlab/internal/config"
	"github.com/san-kum/towerlab/internal/phys"
	"github.com/san-kum/towerlab/internal/pick"
	"github.com/san-kum/towerlab/internal/scene"
	"github.com/san-kum/towerlab/internal/tower"
)

func litCells(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				n++
			}
		}
	}
	return n
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	if litCells(c) != 2 {
		t.Errorf("lit cells = %d, want 2", litCells(c))
	}

	// out of bounds is a no-op
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
	if litCells(c) != 2 {
		t.Error("out-of-bounds set changed the grid")
	}

	c.Clear()
	if litCells(c) != 0 {
		t.Error("clear left pixels lit")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 0, 19, 39)
	if litCells(c) == 0 {
		t.Fatal("line lit nothing")
	}

	out := c.String()
	if lines := strings.Count(out, "\n"); lines != 10 {
		t.Errorf("rendered %d rows, want 10", lines)
	}
}

func TestDrawSceneLightsPixels(t *testing.T) {
	sc := scene.NewScene()
	node := scene.NewNode()
	node.AddBox(phys.Vec3{X: 1, Y: 1, Z: 1}, phys.Vec3{})
	node.SetPosition(phys.Vec3{Y: 1})
	sc.Add(node)

	cam := pick.NewCamera(phys.Vec3{Y: 1}, 5)
	c := NewCanvas(40, 20)
	DrawScene(c, sc, cam)
	if litCells(c) == 0 {
		t.Fatal("visible box drew nothing")
	}

	// a box far behind the camera must not draw
	c.Clear()
	node.SetPosition(cam.Position().Add(cam.Forward().Scale(-20)))
	DrawScene(c, sc, cam)
	if litCells(c) != 0 {
		t.Error("box behind the camera drew pixels")
	}
}

func TestAdjustParamQueuesCommand(t *testing.T) {
	cfg := config.Default()
	cfg.Frames = 3
	s, err := tower.NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	m := NewModel(s)

	// select "frames" and bump it
	m.selected = 0
	m.adjustParam(1)
	s.Tick(1.0 / 60)

	if got := s.Config().Frames; got != 4 {
		t.Errorf("frames = %d, want 4 after adjust", got)
	}
}

func TestPausedTickAppliesQueuedEdits(t *testing.T) {
	cfg := config.Default()
	cfg.Frames = 3
	s, err := tower.NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	m := NewModel(s)
	m.running = false

	m.selected = 0
	m.adjustParam(1)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	if got := s.Config().Frames; got != 4 {
		t.Errorf("frames = %d, want 4 while paused", got)
	}
	if s.Time() != 0 {
		t.Errorf("paused tick advanced the clock to %v", s.Time())
	}
}

func TestWheelReleaseKeepsDrag(t *testing.T) {
	cfg := config.Default()
	cfg.Frames = 3
	s, err := tower.NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	m := NewModel(s)

	// grab the first dynamic tier's weight cube directly
	seg := s.Segments()[2]
	aimY := seg.Body.Position().Y - seg.Geom.ComY - cfg.FrameSize/2
	ray := pick.Ray{Origin: phys.Vec3{Y: aimY, Z: 5}, Dir: phys.Vec3{Z: -1}}
	if !s.Dragger().Start(0, ray, s.Targets()) {
		t.Fatal("drag did not start")
	}

	m.handleMouse(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonWheelUp})
	if !s.Dragger().Dragging() {
		t.Fatal("wheel release ended the drag")
	}

	m.handleMouse(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if s.Dragger().Dragging() {
		t.Error("left release did not end the drag")
	}
}

func TestParamValueCoversAllNames(t *testing.T) {
	cfg := config.Default()
	for _, name := range tower.ParamNames {
		if paramValue(cfg, name) == 0 {
			t.Errorf("param %q reads as zero on the default config", name)
		}
	}
}

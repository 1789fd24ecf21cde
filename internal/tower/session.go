package tower

import (
	"github.com/san-kum/towerlab/internal/config"
	"github.com/san-kum/towerlab/internal/phys"
	"github.com/san-kum/towerlab/internal/pick"
	"github.com/san-kum/towerlab/internal/scene"
)

// Session is a live tower: configuration, physics world, render
// scene, orbit camera and drag bridge, plus the segment and joint
// records of the current build. All interaction goes through it.
type Session struct {
	cfg    *config.Tower
	world  *phys.World
	scene  *scene.Scene
	camera *pick.Camera
	drag   *pick.Dragger

	segments []*Segment
	joints   []*phys.HingeJoint

	pending []SetParam
	lastErr error

	time float64
}

// NewSession validates the configuration, builds the tower and frames
// it with the camera. The config is cloned; later edits to the
// caller's copy do not leak in.
func NewSession(cfg *config.Tower) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	w := phys.NewWorld()
	w.Gravity = phys.Vec3{Y: -cfg.Gravity}

	height := towerHeight(cfg)
	cam := pick.NewCamera(phys.Vec3{Y: height / 2}, max(1.6*height, 6))

	s := &Session{
		cfg:    cfg,
		world:  w,
		scene:  scene.NewScene(),
		camera: cam,
		drag:   pick.NewDragger(w, cam),
	}
	s.rebuild()
	return s, nil
}

// towerHeight is the approximate world Y of the cap's top edge, used
// only for camera framing.
func towerHeight(cfg *config.Tower) float64 {
	return cfg.PedestalHeight + cfg.FrameSize/2 +
		float64(cfg.Frames)*Span(cfg) + cfg.FrameSize*0.5
}

// rebuild tears the current tower down and assembles a fresh one from
// the current configuration. Any active drag is cancelled first so no
// constraint outlives its body.
func (s *Session) rebuild() {
	s.drag.Cancel()
	for _, j := range s.joints {
		s.world.RemoveConstraint(j)
	}
	for _, seg := range s.segments {
		s.world.RemoveBody(seg.Body)
		s.scene.Remove(seg.Node)
	}
	s.segments, s.joints = buildChain(s.world, s.scene, s.cfg)
	s.camera.Target = phys.Vec3{Y: towerHeight(s.cfg) / 2}
}

// Tick advances the session by elapsed wall seconds: pending
// parameter commands are applied, the world is stepped, scene nodes
// are synced to their bodies and the camera eases toward its goals.
func (s *Session) Tick(elapsed float64) {
	s.drainCommands()
	s.world.Step(elapsed)
	s.time += elapsed
	for _, seg := range s.segments {
		seg.Node.SetPosition(seg.Body.Position())
		seg.Node.SetRotation(seg.Body.Rotation())
	}
	s.camera.Update(elapsed)
}

// Reset rebuilds the tower in its rest pose without touching the
// configuration.
func (s *Session) Reset() {
	s.rebuild()
	s.time = 0
}

// Targets returns the pickable segments for ray tests, in the same
// order as Segments.
func (s *Session) Targets() []pick.Target {
	targets := make([]pick.Target, len(s.segments))
	for i, seg := range s.segments {
		targets[i] = pick.Target{Body: seg.Body, Node: seg.Node, Draggable: seg.Draggable}
	}
	return targets
}

// Cap returns the terminal segment.
func (s *Session) Cap() *Segment { return s.segments[len(s.segments)-1] }

func (s *Session) Config() *config.Tower      { return s.cfg.Clone() }
func (s *Session) World() *phys.World         { return s.world }
func (s *Session) Scene() *scene.Scene        { return s.scene }
func (s *Session) Camera() *pick.Camera       { return s.camera }
func (s *Session) Dragger() *pick.Dragger     { return s.drag }
func (s *Session) Segments() []*Segment       { return s.segments }
func (s *Session) Joints() []*phys.HingeJoint { return s.joints }
func (s *Session) Time() float64              { return s.time }

// JointAngles returns the current hinge angle of every joint, bottom
// up.
func (s *Session) JointAngles() []float64 {
	angles := make([]float64, len(s.joints))
	for i, j := range s.joints {
		angles[i] = j.Angle()
	}
	return angles
}

// LastErr returns the most recent rejected parameter command, or nil.
func (s *Session) LastErr() error { return s.lastErr }

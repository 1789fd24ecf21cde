package tower

import (
	"github.com/san-kum/towerlab/internal/config"
	"github.com/san-kum/towerlab/internal/phys"
	"github.com/san-kum/towerlab/internal/scene"
)

// Segment is one physical tier of the tower: a rigid body and a scene
// node, owned exclusively and paired for life. Records are created
// during rebuild and torn down at the start of the next one.
type Segment struct {
	// Tier is the weight-shrink index: >= 0 for weighted tiers,
	// NoWeight for the base frame, pedestalTier for the pedestal.
	Tier      int
	Draggable bool
	Geom      TierGeometry

	Body *phys.Body
	Node *scene.Node
}

// pedestalTier marks the pedestal record, which has no frame geometry
// at all.
const pedestalTier = -2

type segmentOpts struct {
	static bool
	vane   bool
}

// buildSegment composes the rigid body and matching visual node for
// one tier. Every sub-shape is placed at its nominal offset from the
// frame center minus the tier's center-of-mass offset, so the body's
// origin is its center of mass and the visuals stay coincident with
// the physics hull. The caller owns placement and lifecycle.
func buildSegment(w *phys.World, sc *scene.Scene, cfg *config.Tower, tier int, opts segmentOpts) *Segment {
	geom := Geometry(tier, cfg)

	var body *phys.Body
	if opts.static {
		body = phys.NewStaticBody()
	} else {
		body = phys.NewBody(geom.Mass)
	}
	node := scene.NewNode()

	t := cfg.Thickness
	f := cfg.FrameSize
	com := geom.ComY
	add := func(size, nominal phys.Vec3) {
		offset := nominal.Sub(phys.Vec3{Y: com})
		body.AddBox(size.Scale(0.5), offset)
		node.AddBox(size, offset)
	}

	// two horizontal beams, two shortened vertical beams
	add(phys.Vec3{X: f, Y: t, Z: t}, phys.Vec3{Y: (f - t) / 2})
	add(phys.Vec3{X: f, Y: t, Z: t}, phys.Vec3{Y: -(f - t) / 2})
	add(phys.Vec3{X: t, Y: f - 2*t, Z: t}, phys.Vec3{X: (f - t) / 2})
	add(phys.Vec3{X: t, Y: f - 2*t, Z: t}, phys.Vec3{X: -(f - t) / 2})

	// connector stub reaching up to the hinge point
	if cfg.ConnectorLength > 0 {
		add(phys.Vec3{X: t, Y: cfg.ConnectorLength, Z: t},
			phys.Vec3{Y: (f-t)/2 + cfg.ConnectorLength/2})
	}

	if tier >= 0 {
		e := geom.WeightEdge
		add(phys.Vec3{X: e, Y: e, Z: e}, phys.Vec3{Y: -f / 2})

		// strut from the cube's top face up to the bottom beam, only
		// when the cube is small enough to leave a gap
		if gap := t - e/2; gap > 0 {
			add(phys.Vec3{X: t, Y: gap, Z: t},
				phys.Vec3{Y: -f/2 + e/2 + gap/2})
		}
	}

	if opts.vane {
		add(phys.Vec3{X: f * 0.4, Y: f * 0.25, Z: t / 2},
			phys.Vec3{Y: TopPivotY(cfg) + f*0.125})
	}

	if !opts.static {
		// AddBox refreshes inertia; reassert mass so damping and the
		// inertia tensor reflect the final shape set
		body.SetMass(geom.Mass)
		body.SetDamping(0.01, cfg.AngularDamping)
	}

	w.AddBody(body)
	sc.Add(node)

	return &Segment{
		Tier:      tier,
		Draggable: !opts.static,
		Geom:      geom,
		Body:      body,
		Node:      node,
	}
}

// place positions the segment so its frame center sits at centerY on
// the tower axis. The body origin is the center of mass, offset from
// the frame center by the tier's ComY.
func (s *Segment) place(centerY float64) {
	s.Body.SetPosition(phys.Vec3{Y: centerY + s.Geom.ComY})
	s.Node.SetPosition(s.Body.Position())
	s.Node.SetRotation(s.Body.Rotation())
}

// topPivotLocal returns the upper hinge anchor in the body frame.
func (s *Segment) topPivotLocal(cfg *config.Tower) phys.Vec3 {
	return phys.Vec3{Y: TopPivotY(cfg) - s.Geom.ComY}
}

// bottomPivotLocal returns the lower hinge anchor in the body frame.
func (s *Segment) bottomPivotLocal(cfg *config.Tower) phys.Vec3 {
	return phys.Vec3{Y: BottomPivotY(cfg) - s.Geom.ComY}
}

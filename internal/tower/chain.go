package tower

import (
	"github.com/san-kum/towerlab/internal/config"
	"github.com/san-kum/towerlab/internal/phys"
	"github.com/san-kum/towerlab/internal/scene"
)

// hingeAxis is the shared rotation axis of every joint in the chain,
// expressed in each body's rest frame. All frames start unrotated, so
// the local axis is the world Z axis.
var hingeAxis = phys.Vec3{Z: 1}

// buildChain assembles the full tower into the given world and scene:
// a static pedestal, a static base frame bolted to it, Frames-1 hinged
// dynamic tiers with shrinking weights, and a terminal cap carrying
// the heaviest-shrunk weight and a direction vane. Returns the segment
// records in bottom-up order (pedestal first) and the hinge joints in
// the same order as the tiers they attach.
func buildChain(w *phys.World, sc *scene.Scene, cfg *config.Tower) ([]*Segment, []*phys.HingeJoint) {
	segments := []*Segment{buildPedestal(w, sc, cfg)}

	base := buildSegment(w, sc, cfg, NoWeight, segmentOpts{static: true})
	base.place(cfg.PedestalHeight + cfg.FrameSize/2)
	segments = append(segments, base)

	joints := make([]*phys.HingeJoint, 0, cfg.Frames)
	prev := base
	pivotY := cfg.PedestalHeight + cfg.FrameSize/2 + TopPivotY(cfg)

	link := func(child *Segment) {
		j := phys.NewHingeJoint(prev.Body, child.Body,
			prev.topPivotLocal(cfg), child.bottomPivotLocal(cfg),
			hingeAxis, hingeAxis,
			-cfg.JointLimit, cfg.JointLimit)
		j.SetCollideConnected(false)
		w.AddConstraint(j)
		joints = append(joints, j)
		segments = append(segments, child)
		prev = child
	}

	for i := 1; i < cfg.Frames; i++ {
		seg := buildSegment(w, sc, cfg, i-1, segmentOpts{})
		seg.place(pivotY - BottomPivotY(cfg))
		link(seg)
		pivotY += Span(cfg)
	}

	// the terminal cap is one more hinged frame, distinguished only by
	// the vane that makes its swing readable from any camera angle
	top := buildSegment(w, sc, cfg, cfg.Frames-1, segmentOpts{vane: true})
	top.place(pivotY - BottomPivotY(cfg))
	link(top)

	return segments, joints
}

// buildPedestal builds the static block the base frame stands on. It
// is the only record without frame geometry.
func buildPedestal(w *phys.World, sc *scene.Scene, cfg *config.Tower) *Segment {
	size := phys.Vec3{
		X: cfg.FrameSize * 0.8,
		Y: cfg.PedestalHeight,
		Z: cfg.FrameSize * 0.8,
	}

	body := phys.NewStaticBody()
	body.AddBox(size.Scale(0.5), phys.Vec3{})
	body.SetPosition(phys.Vec3{Y: cfg.PedestalHeight / 2})

	node := scene.NewNode()
	node.AddBox(size, phys.Vec3{})
	node.SetPosition(body.Position())

	w.AddBody(body)
	sc.Add(node)

	return &Segment{Tier: pedestalTier, Body: body, Node: node}
}

// Package scene is the render sink for the simulation: a flat ordered
// collection of nodes, each a group of boxes with a world position and
// orientation. The simulation only ever calls SetPosition and
// SetRotation per tick; renderers read the tree back to draw it.
package scene

import "github.com/san-kum/towerlab/internal/phys"

// Box is one rendered cuboid, placed at Offset in its node's local
// frame. Size holds full edge lengths.
type Box struct {
	Size   phys.Vec3
	Offset phys.Vec3
}

// Node is a rigid group of boxes sharing one world transform.
type Node struct {
	boxes []Box
	pos   phys.Vec3
	rot   phys.Quat
}

func NewNode() *Node {
	return &Node{rot: phys.QuatIdentity()}
}

// AddBox appends a box of the given full size at a local offset.
func (n *Node) AddBox(size, offset phys.Vec3) {
	n.boxes = append(n.boxes, Box{Size: size, Offset: offset})
}

func (n *Node) Boxes() []Box { return n.boxes }

func (n *Node) SetPosition(p phys.Vec3) { n.pos = p }
func (n *Node) SetRotation(q phys.Quat) { n.rot = q }

func (n *Node) Position() phys.Vec3 { return n.pos }
func (n *Node) Rotation() phys.Quat { return n.rot }

// Corners returns the eight world-space corners of box i.
func (n *Node) Corners(i int) [8]phys.Vec3 {
	b := n.boxes[i]
	h := b.Size.Scale(0.5)
	var out [8]phys.Vec3
	k := 0
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				local := b.Offset.Add(phys.Vec3{X: h.X * sx, Y: h.Y * sy, Z: h.Z * sz})
				out[k] = n.pos.Add(n.rot.Rotate(local))
				k++
			}
		}
	}
	return out
}

// Scene is the ordered node collection. Order matters: nodes are
// paired with physics bodies by position.
type Scene struct {
	nodes []*Node
}

func NewScene() *Scene { return &Scene{} }

func (s *Scene) Add(n *Node) { s.nodes = append(s.nodes, n) }

func (s *Scene) Remove(n *Node) {
	for i, other := range s.nodes {
		if other == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

func (s *Scene) Nodes() []*Node { return s.nodes }
func (s *Scene) Len() int       { return len(s.nodes) }

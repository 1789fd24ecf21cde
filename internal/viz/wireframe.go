package viz

import (
	"github.com/san-kum/towerlab/internal/phys"
	"github.com/san-kum/towerlab/internal/pick"
	"github.com/san-kum/towerlab/internal/scene"
)

// boxEdges pairs the corner indices of scene.Node.Corners: bit 2 is
// the X sign, bit 1 the Y sign, bit 0 the Z sign, so edges connect
// corners differing in exactly one bit.
var boxEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 4},
	{1, 3}, {1, 5},
	{2, 3}, {2, 6},
	{3, 7},
	{4, 5}, {4, 6},
	{5, 7}, {6, 7},
}

// DrawScene projects every box edge of the scene through the camera
// onto the canvas. Edges with an endpoint behind the camera are
// dropped whole.
func DrawScene(c *Canvas, sc *scene.Scene, cam *pick.Camera) {
	w := float64(c.Width * 2)
	h := float64(c.Height * 4)
	for _, node := range sc.Nodes() {
		for i := range node.Boxes() {
			corners := node.Corners(i)
			var px, py [8]float64
			var ok [8]bool
			for k, corner := range corners {
				px[k], py[k], _, ok[k] = cam.Project(corner, w, h)
			}
			for _, e := range boxEdges {
				a, b := e[0], e[1]
				if !ok[a] || !ok[b] {
					continue
				}
				c.Line(int(px[a]), int(py[a]), int(px[b]), int(py[b]))
			}
		}
	}
}

// DrawMarker highlights a world point, for the active grab point.
func DrawMarker(c *Canvas, cam *pick.Camera, p phys.Vec3) {
	w := float64(c.Width * 2)
	h := float64(c.Height * 4)
	if px, py, _, ok := cam.Project(p, w, h); ok {
		c.Mark(int(px), int(py), 1)
	}
}

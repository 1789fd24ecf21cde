package tower

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/towerlab/internal/config"
)

func TestTower(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Tower Suite")
}

var _ = Describe("chain assembly", func() {
	build := func(frames int) *Session {
		cfg := scenarioConfig()
		cfg.Frames = frames
		s, err := NewSession(cfg)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	DescribeTable("body and joint counts",
		func(frames int) {
			s := build(frames)
			Expect(s.World().NumBodies()).To(Equal(frames+2), "pedestal + base + tiers")
			Expect(s.Joints()).To(HaveLen(frames))
			Expect(s.Segments()).To(HaveLen(frames + 2))
			Expect(s.Scene().Len()).To(Equal(frames + 2))
		},
		Entry("single frame", 1),
		Entry("three frames", 3),
		Entry("six frames", 6),
		Entry("ten frames", 10),
	)

	It("degenerates to a cap hinged to the base", func() {
		s := build(1)
		segs := s.Segments()
		Expect(segs[0].Tier).To(Equal(pedestalTier))
		Expect(segs[1].Tier).To(Equal(NoWeight))
		Expect(segs[2].Tier).To(Equal(0), "sole dynamic frame carries the largest weight")
		Expect(segs[2].Draggable).To(BeTrue())
		Expect(s.Joints()[0].BodyA()).To(BeIdenticalTo(segs[1].Body))
		Expect(s.Joints()[0].BodyB()).To(BeIdenticalTo(segs[2].Body))
	})

	It("orders weight tiers bottom-up with shrinking weights", func() {
		s := build(5)
		segs := s.Segments()[2:]
		for i, seg := range segs {
			Expect(seg.Tier).To(Equal(i))
		}
		for i := 1; i < len(segs); i++ {
			Expect(segs[i].Geom.WeightMass).To(BeNumerically("<", segs[i-1].Geom.WeightMass))
		}
	})

	It("links every joint between vertically adjacent segments", func() {
		s := build(4)
		cfg := s.Config()
		segs := s.Segments()
		for i, j := range s.Joints() {
			Expect(j.BodyA()).To(BeIdenticalTo(segs[i+1].Body))
			Expect(j.BodyB()).To(BeIdenticalTo(segs[i+2].Body))
			Expect(j.CollideConnected()).To(BeFalse())
			Expect(j.Separation()).To(BeNumerically("~", 0, 1e-9))

			// every pivot sits one span above the previous one
			pivot := segs[i+2].Body.Position().Y + BottomPivotY(cfg) - segs[i+2].Geom.ComY
			wantPivot := cfg.PedestalHeight + cfg.FrameSize/2 + TopPivotY(cfg) + float64(i)*Span(cfg)
			Expect(pivot).To(BeNumerically("~", wantPivot, 1e-9))
		}
	})

	It("rebuilds reproducibly", func() {
		s := build(4)
		before := make([]float64, 0, len(s.Segments()))
		for _, seg := range s.Segments() {
			before = append(before, seg.Body.Position().Y)
		}

		s.Reset()
		Expect(s.World().NumBodies()).To(Equal(6))
		Expect(s.World().NumConstraints()).To(Equal(4))
		for i, seg := range s.Segments() {
			Expect(seg.Body.Position().Y).To(BeNumerically("~", before[i], 1e-12))
		}
	})

	It("keeps the weight cube inside the frame for any tier", func() {
		cfg := scenarioConfig()
		cfg.WeightScale = 1
		cfg.WeightReduction = 1
		for tier := 0; tier < 20; tier++ {
			g := Geometry(tier, cfg)
			Expect(g.WeightEdge).To(BeNumerically("<=", g.InnerSpan-config.WeightMargin))
		}
	})
})

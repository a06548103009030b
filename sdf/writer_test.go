package sdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opensta-go/opensta/sta"
)

func TestWriterSkipsInstancesWithNoAnnotations(t *testing.T) {
	fx := newInvFixture(t)
	var buf bytes.Buffer
	w := NewWriter(fx.network, fx.graph, WriteOptions{ArcMinIndex: 0, ArcMaxIndex: 1})
	if err := w.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "(CELL") {
		t.Errorf("expected no CELL section for an unannotated instance, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "(DELAYFILE\n") || !strings.HasSuffix(buf.String(), ")\n") {
		t.Errorf("expected a well-formed empty DELAYFILE, got:\n%s", buf.String())
	}
}

func TestWriterIOPathFormatsBothEdgesInOneEntry(t *testing.T) {
	fx := newInvFixture(t)
	riseArc := fx.set.Arcs()[0]
	fallArc := fx.set.Arcs()[1]

	fx.graph.SetArcDelay(fx.edge, riseArc.Index(), 0, 0.3e-9)
	fx.graph.SetArcDelay(fx.edge, riseArc.Index(), 1, 0.3e-9)
	fx.graph.SetArcDelayAnnotated(fx.edge, riseArc.Index(), 0, true)
	fx.graph.SetArcDelayAnnotated(fx.edge, riseArc.Index(), 1, true)

	fx.graph.SetArcDelay(fx.edge, fallArc.Index(), 0, 0.4e-9)
	fx.graph.SetArcDelay(fx.edge, fallArc.Index(), 1, 0.4e-9)
	fx.graph.SetArcDelayAnnotated(fx.edge, fallArc.Index(), 0, true)
	fx.graph.SetArcDelayAnnotated(fx.edge, fallArc.Index(), 1, true)

	var buf bytes.Buffer
	w := NewWriter(fx.network, fx.graph, WriteOptions{ArcMinIndex: 0, ArcMaxIndex: 1, Design: "top"})
	if err := w.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `(DESIGN "top")`) {
		t.Errorf("missing DESIGN header, got:\n%s", out)
	}
	if !strings.Contains(out, `(CELLTYPE "INV1")`) {
		t.Errorf("missing CELLTYPE, got:\n%s", out)
	}
	if !strings.Contains(out, "(INSTANCE u1)") {
		t.Errorf("missing INSTANCE, got:\n%s", out)
	}
	want := "(IOPATH A Z (0.300::0.300) (0.400::0.400))"
	if !strings.Contains(out, want) {
		t.Errorf("IOPATH line = missing %q, got:\n%s", want, out)
	}
}

func TestWriterIOPathRoundTripsThroughReader(t *testing.T) {
	src := newInvFixture(t)
	riseArc := src.set.Arcs()[0]
	fallArc := src.set.Arcs()[1]

	src.graph.SetArcDelay(src.edge, riseArc.Index(), 0, 0.3e-9)
	src.graph.SetArcDelay(src.edge, riseArc.Index(), 1, 0.35e-9)
	src.graph.SetArcDelayAnnotated(src.edge, riseArc.Index(), 0, true)
	src.graph.SetArcDelayAnnotated(src.edge, riseArc.Index(), 1, true)

	src.graph.SetArcDelay(src.edge, fallArc.Index(), 0, 0.4e-9)
	src.graph.SetArcDelay(src.edge, fallArc.Index(), 1, 0.45e-9)
	src.graph.SetArcDelayAnnotated(src.edge, fallArc.Index(), 0, true)
	src.graph.SetArcDelayAnnotated(src.edge, fallArc.Index(), 1, true)

	var buf bytes.Buffer
	w := NewWriter(src.network, src.graph, WriteOptions{ArcMinIndex: 0, ArcMaxIndex: 1, EmitTimescale: true})
	if err := w.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dst := newInvFixture(t)
	toks, err := Tokenize(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Tokenize: %v\n%s", err, buf.String())
	}
	groups, err := ParseFile("roundtrip.sdf", toks)
	if err != nil {
		t.Fatalf("ParseFile: %v\n%s", err, buf.String())
	}
	report := &sta.FakeReport{}
	r := NewReader("roundtrip.sdf", dst.network, dst.graph, dst.lib, report, newOptions())
	if err := r.Read(groups); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors reading back written SDF: %v", report.Errors)
	}

	dstRiseArc := dst.set.Arcs()[0]
	dstFallArc := dst.set.Arcs()[1]
	const eps = 1e-12
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"rise min", dst.graph.ArcDelay(dst.edge, dstRiseArc.Index(), 0), 0.3e-9},
		{"rise max", dst.graph.ArcDelay(dst.edge, dstRiseArc.Index(), 1), 0.35e-9},
		{"fall min", dst.graph.ArcDelay(dst.edge, dstFallArc.Index(), 0), 0.4e-9},
		{"fall max", dst.graph.ArcDelay(dst.edge, dstFallArc.Index(), 1), 0.45e-9},
	}
	for _, c := range checks {
		if absFloat(c.got-c.want) > eps {
			t.Errorf("%s delay = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestWriterPeriodCheck(t *testing.T) {
	fx := newInvFixture(t)
	pinA := fx.network.FindPin("u1/A")

	fx.graph.SetPeriodCheckAnnotation(pinA, 0, 2e-9)
	fx.graph.SetPeriodCheckAnnotation(pinA, 1, 2e-9)

	var buf bytes.Buffer
	w := NewWriter(fx.network, fx.graph, WriteOptions{ArcMinIndex: 0, ArcMaxIndex: 1, EmitTyp: true})
	if err := w.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "(TIMINGCHECK") {
		t.Fatalf("expected a TIMINGCHECK section, got:\n%s", out)
	}
	want := "(PERIOD u1/A (2.000:2.000:2.000))"
	if !strings.Contains(out, want) {
		t.Errorf("PERIOD line = missing %q, got:\n%s", want, out)
	}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

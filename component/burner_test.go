package component

import (
	"errors"
	"math"
	"testing"

	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

func TestBurner(t *testing.T) {
	g := thermo.NewVariableGas()
	b := graph.NewBuilder()
	src := newSource(b, "src", flowAt(g, 800, 50e5, 20, 0))
	bn := NewBurner(b, "burner", g)
	b.Connect(src.out, bn.FlIn)
	bn.FAR = 0.025
	bn.DPqP = 0.04

	_, ctx, err := mustBuild(b)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	out := ctx.Flow(bn.FlOut)

	if out.Tt <= 800 {
		t.Errorf("燃烧未升温: %g", out.Tt)
	}
	if math.Abs(ctx.Scalar(bn.Wfuel)-0.025*20) > 1e-12 {
		t.Errorf("燃油流量错误: %g", ctx.Scalar(bn.Wfuel))
	}
	if math.Abs(out.W-(20+0.5)) > 1e-12 {
		t.Errorf("出口流量错误: %g", out.W)
	}
	if math.Abs(out.Pt-50e5*0.96) > 1e-6 {
		t.Errorf("燃烧室压损错误: %g", out.Pt)
	}
	if out.Gas.FAR != 0.025 {
		t.Errorf("出口油气比错误: %g", out.Gas.FAR)
	}
	if ctx.Scalar(bn.TtOut) != out.Tt {
		t.Errorf("出口总温探针与流动状态不一致")
	}
}

func TestBurnerTemperatureMonotone(t *testing.T) {
	g := thermo.NewVariableGas()
	run := func(far float64) float64 {
		b := graph.NewBuilder()
		src := newSource(b, "src", flowAt(g, 800, 50e5, 20, 0))
		bn := NewBurner(b, "burner", g)
		b.Connect(src.out, bn.FlIn)
		bn.FAR = far
		_, ctx, err := mustBuild(b)
		if err != nil {
			t.Fatalf("评估失败: %v", err)
		}
		return ctx.Flow(bn.FlOut).Tt
	}
	if run(0.030) <= run(0.020) {
		t.Errorf("出口总温应随油气比单调上升")
	}
}

func TestBurnerInvalidFAR(t *testing.T) {
	g := thermo.NewVariableGas()
	b := graph.NewBuilder()
	src := newSource(b, "src", flowAt(g, 800, 50e5, 20, 0))
	bn := NewBurner(b, "burner", g)
	b.Connect(src.out, bn.FlIn)
	bn.FAR = 0

	_, _, err := mustBuild(b)
	if !errors.Is(err, types.ErrEvaluation) {
		t.Errorf("油气比非正应报评估错误, 实际 %v", err)
	}
}

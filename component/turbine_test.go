package component

import (
	"math"
	"testing"

	"turbofan/cmap"
	"turbofan/graph"
	"turbofan/thermo"
)

func TestTurbineDesignWithCooling(t *testing.T) {
	g := thermo.NewVariableGas()
	b := graph.NewBuilder()
	hot := newSource(b, "hot", flowAt(g, 1700, 15e5, 20, 0.025))
	coolV := newSource(b, "cool_vanes", flowAt(g, 750, 16e5, 1.5, 0))
	coolB := newSource(b, "cool_blades", flowAt(g, 750, 16e5, 1.0, 0))

	bleeds := []*TurbineBleed{
		{Name: "vanes", FracP: 1},  // 入口掺混, 参与做功
		{Name: "blades", FracP: 0}, // 出口掺混
	}
	tb := NewTurbine(b, "hpt", g, cmap.NewTurbineMap(true), bleeds)
	b.Connect(hot.out, tb.FlIn)
	b.Connect(coolV.out, bleeds[0].FlIn)
	b.Connect(coolB.out, bleeds[1].FlIn)
	tb.PR, tb.Eff, tb.Nmech = 4.5, 0.91, 9000

	_, ctx, err := mustBuild(b)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	out := ctx.Flow(tb.FlOut)

	if math.Abs(out.Pt-15e5/4.5) > 1e-6 {
		t.Errorf("出口总压错误: %g", out.Pt)
	}
	if out.Tt >= 1700 {
		t.Errorf("膨胀未降温: %g", out.Tt)
	}
	// 质量守恒: 主流+全部冷却气
	if math.Abs(out.W-(20+1.5+1.0)) > 1e-9 {
		t.Errorf("质量不守恒: %g", out.W)
	}
	// 产功为正扭矩
	trq := ctx.Scalar(tb.Trq)
	if trq <= 0 {
		t.Errorf("涡轮扭矩符号错误: %g", trq)
	}
	pwr := ctx.Scalar(tb.Pwr)
	if math.Abs(trq*omega(tb.Nmech)-pwr) > 1e-6*pwr {
		t.Errorf("扭矩与功率不一致")
	}
	// 能量账目: 出口总焓流 = 入口焓流 - 轴功
	hIn := 20*hot.fs.Ht + 1.5*coolV.fs.Ht + 1.0*coolB.fs.Ht
	hOut := out.W * out.Ht
	if math.Abs(hIn-pwr-hOut)/hIn > 1e-9 {
		t.Errorf("能量不守恒: in=%g pwr=%g out=%g", hIn, pwr, hOut)
	}
	// 组分掺混稀释油气比
	if out.Gas.FAR >= 0.025 || out.Gas.FAR <= 0 {
		t.Errorf("掺混后油气比异常: %g", out.Gas.FAR)
	}
}

func TestTurbineEntryMixingDoesWork(t *testing.T) {
	g := thermo.NewVariableGas()
	run := func(fracP float64) float64 {
		b := graph.NewBuilder()
		hot := newSource(b, "hot", flowAt(g, 1700, 15e5, 20, 0.025))
		cool := newSource(b, "cool", flowAt(g, 750, 16e5, 2, 0))
		bl := []*TurbineBleed{{Name: "c", FracP: fracP}}
		tb := NewTurbine(b, "t", g, cmap.NewTurbineMap(true), bl)
		b.Connect(hot.out, tb.FlIn)
		b.Connect(cool.out, bl[0].FlIn)
		tb.PR, tb.Eff, tb.Nmech = 4.5, 0.91, 9000
		_, ctx, err := mustBuild(b)
		if err != nil {
			t.Fatalf("评估失败: %v", err)
		}
		return ctx.Scalar(tb.Pwr)
	}
	// 入口掺混的冷却气参与做功, 功率应高于出口掺混
	if run(1) <= run(0) {
		t.Errorf("入口掺混应比出口掺混产出更多轴功")
	}
}

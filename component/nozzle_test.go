package component

import (
	"errors"
	"math"
	"testing"

	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// runNozzle 以给定总压与环境静压评估喷管
func runNozzle(t *testing.T, pt, ps float64) (*Nozzle, *graph.Context, error) {
	t.Helper()
	g := thermo.NewVariableGas()
	b := graph.NewBuilder()
	amb := newScalarSource(b, "amb", ps)
	src := newSource(b, "src", flowAt(g, 700, pt, 30, 0.02))
	nz := NewNozzle(b, "nozzle", g)
	b.Connect(src.out, nz.FlIn)
	b.Bind(amb.out, nz.PsIn)
	nz.Cv = 0.99
	_, ctx, err := mustBuild(b)
	return nz, ctx, err
}

func TestNozzleChoked(t *testing.T) {
	nz, ctx, err := runNozzle(t, 1.2e5, 23842) // 高落压比, 堵塞
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	out := ctx.Flow(nz.FlOut)
	if out.MN <= 1 {
		t.Errorf("高落压比完全膨胀出口应为超声速: MN=%g", out.MN)
	}
	fg := ctx.Scalar(nz.Fg)
	v := ctx.Scalar(nz.Vexit)
	if math.Abs(fg-30*v) > 1e-9 {
		t.Errorf("毛推力应为 W*V: fg=%g", fg)
	}
	if a := ctx.Scalar(nz.Area); a <= 0 {
		t.Errorf("喉道面积非正: %g", a)
	}
	// 完全膨胀: 出口静压等于环境静压
	if out.Ps != 23842 {
		t.Errorf("完全膨胀闭合条件被破坏: Ps=%g", out.Ps)
	}
}

func TestNozzleSubsonic(t *testing.T) {
	nz, ctx, err := runNozzle(t, 1.2e5, 1.0e5) // 低落压比, 未堵塞
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	out := ctx.Flow(nz.FlOut)
	if out.MN >= 1 {
		t.Errorf("低落压比出口应为亚声速: MN=%g", out.MN)
	}
	if a := ctx.Scalar(nz.Area); a <= 0 {
		t.Errorf("喉道面积非正: %g", a)
	}
}

func TestNozzleAreaShrinksWithPressure(t *testing.T) {
	_, ctx1, err := runNozzle(t, 3e5, 23842)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	nz2, ctx2, err := runNozzle(t, 6e5, 23842)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	// 同流量下供给总压越高, 所需喉道面积越小
	if ctx2.Scalar(nz2.Area) >= ctx1.Scalar(nz2.Area) {
		t.Errorf("喉道面积应随供给总压上升而减小")
	}
}

func TestNozzleInsufficientPressure(t *testing.T) {
	_, _, err := runNozzle(t, 0.9e5, 1.0e5)
	if !errors.Is(err, types.ErrEvaluation) {
		t.Errorf("落压比不足应报评估错误, 实际 %v", err)
	}
}

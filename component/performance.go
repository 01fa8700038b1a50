package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/types"
)

// Performance 性能汇总
// 收集各喷管毛推力、冲压阻力与燃油流量, 产出净推力、
// 耗油率与测得总压比 Pt3/Pt2
type Performance struct {
	base

	FlRef   *graph.FlowIn     // 基准站位(进气道出口, Pt2)
	FlHPC   *graph.FlowIn     // 高压压气机出口(Pt3)
	Wfuel   *graph.ScalarIn   // 燃油流量
	RamDrag *graph.ScalarIn   // 冲压阻力
	Fg      []*graph.ScalarIn // 各喷管毛推力

	Fn   graph.ScalarID // 净推力 (N)
	TSFC graph.ScalarID // 耗油率 (kg/s/N)
	OPR  graph.ScalarID // 测得总压比 Pt3/Pt2
}

// NewPerformance 创建性能汇总
func NewPerformance(b *graph.Builder, name string, numNozzles int) *Performance {
	p := &Performance{base: base{name: name}}
	b.Add(p)
	p.FlRef = b.FlowInput(p)
	p.FlHPC = b.FlowInput(p)
	p.Wfuel = b.ScalarInput(p)
	p.RamDrag = b.ScalarInput(p)
	p.Fg = make([]*graph.ScalarIn, numNozzles)
	for i := range p.Fg {
		p.Fg[i] = b.ScalarInput(p)
	}
	p.Fn = b.ScalarOut(p)
	p.TSFC = b.ScalarOut(p)
	p.OPR = b.ScalarOut(p)
	return p
}

// Evaluate 性能汇总
func (p *Performance) Evaluate(ctx *graph.Context) error {
	ref := ctx.Flow(p.FlRef.ID())
	hpc := ctx.Flow(p.FlHPC.ID())
	if ref.Pt <= 0 {
		return fmt.Errorf("%w: 基准总压非正: %g", types.ErrEvaluation, ref.Pt)
	}

	fn := -ctx.Scalar(p.RamDrag.ID())
	for _, fg := range p.Fg {
		fn += ctx.Scalar(fg.ID())
	}
	wf := ctx.Scalar(p.Wfuel.ID())

	ctx.SetScalar(p.Fn, fn)
	// 推力未配平时净推力可为非正, 耗油率仅在正推力下有意义
	if fn > 0 {
		ctx.SetScalar(p.TSFC, wf/fn)
	} else {
		ctx.SetScalar(p.TSFC, 0)
	}
	ctx.SetScalar(p.OPR, hpc.Pt/ref.Pt)
	return nil
}

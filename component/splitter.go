package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/types"
)

// Splitter 分流器
// 按涵道比把入口流动分为核心与外涵两股，总参数继承，
// 出口流量之和与入口流量为精确算术相等
type Splitter struct {
	base

	BPR float64 // 涵道比 (外涵流量/核心流量), 常为平衡未知量

	FlIn      *graph.FlowIn
	FlOutCore graph.FlowID
	FlOutByp  graph.FlowID
}

// NewSplitter 创建分流器
func NewSplitter(b *graph.Builder, name string) *Splitter {
	sp := &Splitter{base: base{name: name}, BPR: 1}
	b.Add(sp)
	sp.FlIn = b.FlowInput(sp)
	sp.FlOutCore = b.FlowOut(sp)
	sp.FlOutByp = b.FlowOut(sp)
	return sp
}

// Evaluate 分流
func (sp *Splitter) Evaluate(ctx *graph.Context) error {
	if sp.BPR <= 0 {
		return fmt.Errorf("%w: 涵道比非正: %g", types.ErrEvaluation, sp.BPR)
	}
	fs := ctx.Flow(sp.FlIn.ID())

	core := fs
	core.W = fs.W / (1 + sp.BPR)
	byp := fs
	byp.W = fs.W - core.W // 质量守恒为精确算术

	ctx.SetFlow(sp.FlOutCore, core)
	ctx.SetFlow(sp.FlOutByp, byp)
	return nil
}

package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/types"
)

// BleedOutPort 外部引气口
type BleedOutPort struct {
	Name  string
	FracW float64 // 抽取流量分数(相对入口流量)

	FlOut graph.FlowID
}

// BleedOut 引气抽取元件
// 在所在站位按流量分数抽取冷却气，引出气继承入口总参数，
// 剩余流量为精确算术差
type BleedOut struct {
	base

	Bleeds []*BleedOutPort

	FlIn  *graph.FlowIn
	FlOut graph.FlowID
}

// NewBleedOut 创建引气抽取元件
func NewBleedOut(b *graph.Builder, name string, bleeds []*BleedOutPort) *BleedOut {
	bo := &BleedOut{base: base{name: name}, Bleeds: bleeds}
	b.Add(bo)
	bo.FlIn = b.FlowInput(bo)
	bo.FlOut = b.FlowOut(bo)
	for _, bl := range bleeds {
		bl.FlOut = b.FlowOut(bo)
	}
	return bo
}

// Evaluate 抽取引气
func (bo *BleedOut) Evaluate(ctx *graph.Context) error {
	in := ctx.Flow(bo.FlIn.ID())
	wOut := in.W
	for _, bl := range bo.Bleeds {
		if bl.FracW < 0 || bl.FracW >= 1 {
			return fmt.Errorf("%w: 引气分数越界 [0,1): %s=%g", types.ErrEvaluation, bl.Name, bl.FracW)
		}
		bleed := in
		bleed.W = bl.FracW * in.W
		ctx.SetFlow(bl.FlOut, bleed)
		wOut -= bleed.W
	}
	if wOut <= 0 {
		return fmt.Errorf("%w: 引气耗尽主流: W=%g", types.ErrEvaluation, wOut)
	}
	out := in
	out.W = wOut
	ctx.SetFlow(bo.FlOut, out)
	return nil
}

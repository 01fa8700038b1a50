package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/types"
)

// Inlet 进气道
// 施加总压恢复系数并产出冲压阻力，流量不变
type Inlet struct {
	base

	Recovery float64 // 总压恢复系数 (0,1]

	FlIn    *graph.FlowIn
	FlOut   graph.FlowID
	RamDrag graph.ScalarID // 冲压阻力 (N)
}

// NewInlet 创建进气道
func NewInlet(b *graph.Builder, name string) *Inlet {
	in := &Inlet{base: base{name: name}, Recovery: 1}
	b.Add(in)
	in.FlIn = b.FlowInput(in)
	in.FlOut = b.FlowOut(in)
	in.RamDrag = b.ScalarOut(in)
	return in
}

// Evaluate 施加总压恢复
func (in *Inlet) Evaluate(ctx *graph.Context) error {
	if in.Recovery <= 0 || in.Recovery > 1 {
		return fmt.Errorf("%w: 总压恢复系数越界 (0,1]: %g", types.ErrEvaluation, in.Recovery)
	}
	fs := ctx.Flow(in.FlIn.ID())
	ram := fs.W * fs.V

	fs.Pt *= in.Recovery
	fs.Ts, fs.Ps, fs.V, fs.MN = 0, 0, 0, 0
	ctx.SetFlow(in.FlOut, fs)
	ctx.SetScalar(in.RamDrag, ram)
	return nil
}

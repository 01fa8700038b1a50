package component

import (
	"turbofan/graph"
)

// Duct 管道
// 施加总压损失系数 dP/P，流量与总焓不变
type Duct struct {
	base

	DPqP float64 // 总压损失系数 [0,1)

	FlIn  *graph.FlowIn
	FlOut graph.FlowID
}

// NewDuct 创建管道
func NewDuct(b *graph.Builder, name string) *Duct {
	d := &Duct{base: base{name: name}}
	b.Add(d)
	d.FlIn = b.FlowInput(d)
	d.FlOut = b.FlowOut(d)
	return d
}

// Evaluate 施加总压损失
func (d *Duct) Evaluate(ctx *graph.Context) error {
	if err := checkLoss(d.name, d.DPqP); err != nil {
		return err
	}
	fs := ctx.Flow(d.FlIn.ID())
	fs.Pt *= 1 - d.DPqP
	ctx.SetFlow(d.FlOut, fs)
	return nil
}

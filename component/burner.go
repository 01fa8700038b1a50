package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// Burner 燃烧室
// 给定油气比经物性协作者计算出口总温/总焓与燃油流量，
// 施加燃烧室总压损失。油气比常为平衡未知量(出口总温配平)。
type Burner struct {
	base
	gas thermo.Gas

	FAR     float64 // 油气比, 常为平衡未知量
	DPqP    float64 // 总压损失系数 [0,1)
	LHV     float64 // 燃油低热值 (J/kg)
	EffComb float64 // 燃烧效率

	FlIn  *graph.FlowIn
	FlOut graph.FlowID
	Wfuel graph.ScalarID // 燃油流量 (kg/s)
	TtOut graph.ScalarID // 出口总温 (K), 供 T4 平衡探测
}

// NewBurner 创建燃烧室
func NewBurner(b *graph.Builder, name string, gas thermo.Gas) *Burner {
	bn := &Burner{base: base{name: name}, gas: gas, LHV: 43.0e6, EffComb: 0.995}
	b.Add(bn)
	bn.FlIn = b.FlowInput(bn)
	bn.FlOut = b.FlowOut(bn)
	bn.Wfuel = b.ScalarOut(bn)
	bn.TtOut = b.ScalarOut(bn)
	return bn
}

// Evaluate 燃烧过程
func (bn *Burner) Evaluate(ctx *graph.Context) error {
	if err := checkLoss(bn.name, bn.DPqP); err != nil {
		return err
	}
	if bn.FAR <= 0 {
		return fmt.Errorf("%w: 油气比非正: %g", types.ErrEvaluation, bn.FAR)
	}
	in := ctx.Flow(bn.FlIn.ID())

	wf := bn.FAR * in.W
	wOut := in.W + wf
	gasOut := types.Composition{FAR: in.Gas.FAR + bn.FAR}
	htOut := (in.W*in.Ht + wf*bn.EffComb*bn.LHV) / wOut
	ptOut := in.Pt * (1 - bn.DPqP)

	out, err := totalFlow(ctx, bn.gas, htOut, ptOut, wOut, gasOut)
	if err != nil {
		return err
	}
	ctx.SetFlow(bn.FlOut, out)
	ctx.SetScalar(bn.Wfuel, wf)
	ctx.SetScalar(bn.TtOut, out.Tt)
	return nil
}

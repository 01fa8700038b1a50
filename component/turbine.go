package component

import (
	"fmt"

	"turbofan/cmap"
	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// TurbineBleed 涡轮冷却气回注口
// FracP=1 在涡轮入口掺混(参与做功), FracP=0 在出口掺混(不做功),
// 中间值按分数在两处分配
type TurbineBleed struct {
	Name  string
	FracP float64 // 入口掺混分数 [0,1]

	FlIn *graph.FlowIn
}

// Turbine 涡轮
// 压比常为平衡未知量(设计模式用轴功率平衡配平)。
// 非设计模式压比保持设计值(堵塞假定)，效率由特性图修正。
// 轴扭矩按涡轮产功为正号约定。
type Turbine struct {
	base
	gas thermo.Gas
	tm  cmap.TurbineMap

	PR     float64 // 膨胀压比 (>1)
	Eff    float64 // 等熵效率
	Nmech  float64 // 机械转速 (rpm)
	Design bool    // 设计模式

	Bleeds []*TurbineBleed

	FlIn  *graph.FlowIn
	FlOut graph.FlowID
	Trq   graph.ScalarID // 轴扭矩 (N·m), 产功为正
	Pwr   graph.ScalarID // 涡轮功率 (W)
}

// NewTurbine 创建涡轮
func NewTurbine(b *graph.Builder, name string, gas thermo.Gas, tm cmap.TurbineMap, bleeds []*TurbineBleed) *Turbine {
	t := &Turbine{base: base{name: name}, gas: gas, tm: tm, Design: true, Bleeds: bleeds}
	b.Add(t)
	t.FlIn = b.FlowInput(t)
	for _, bl := range bleeds {
		bl.FlIn = b.FlowInput(t)
	}
	t.FlOut = b.FlowOut(t)
	t.Trq = b.ScalarOut(t)
	t.Pwr = b.ScalarOut(t)
	return t
}

// Evaluate 膨胀过程
func (t *Turbine) Evaluate(ctx *graph.Context) error {
	if t.PR <= 1 {
		return fmt.Errorf("%w: 涡轮压比非膨胀: %g", types.ErrEvaluation, t.PR)
	}
	in := ctx.Flow(t.FlIn.ID())
	_, nc := corrected(in, t.Nmech)

	var eff float64
	if t.Design {
		eff = t.Eff
		t.tm.SetDesign(eff, nc)
	} else {
		var err error
		if eff, err = t.tm.Eff(nc); err != nil {
			return err
		}
	}

	// 入口掺混: 按 FracP 分数参与做功的冷却气
	w1 := in.W
	h1sum := in.W * in.Ht
	farSum := in.W * in.Gas.FAR
	for _, bl := range t.Bleeds {
		if bl.FracP < 0 || bl.FracP > 1 {
			return fmt.Errorf("%w: 掺混分数越界 [0,1]: %s=%g", types.ErrEvaluation, bl.Name, bl.FracP)
		}
		fs := ctx.Flow(bl.FlIn.ID())
		wb := bl.FracP * fs.W
		w1 += wb
		h1sum += wb * fs.Ht
		farSum += wb * fs.Gas.FAR
	}
	ht1 := h1sum / w1
	gas1 := types.Composition{FAR: farSum / w1}
	tt1, iters, err := t.gas.TFromH(ht1, gas1)
	if err != nil {
		return err
	}
	if err := ctx.ChargeSubSolve(iters); err != nil {
		return err
	}

	// 理想与实际焓降
	ttIdeal := thermo.IsentropicT(t.gas, tt1, 1/t.PR, gas1)
	dhIdeal := ht1 - t.gas.Enthalpy(ttIdeal, gas1)
	dh := eff * dhIdeal
	pwr := w1 * dh

	// 出口掺混: 剩余冷却气在涡轮后混入
	w2 := w1
	h2sum := w1 * (ht1 - dh)
	farSum2 := w1 * gas1.FAR
	for _, bl := range t.Bleeds {
		fs := ctx.Flow(bl.FlIn.ID())
		wb := (1 - bl.FracP) * fs.W
		w2 += wb
		h2sum += wb * fs.Ht
		farSum2 += wb * fs.Gas.FAR
	}
	out, err := totalFlow(ctx, t.gas, h2sum/w2, in.Pt/t.PR, w2,
		types.Composition{FAR: farSum2 / w2})
	if err != nil {
		return err
	}
	ctx.SetFlow(t.FlOut, out)
	ctx.SetScalar(t.Pwr, pwr)
	ctx.SetScalar(t.Trq, pwr/omega(t.Nmech))
	return nil
}

package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/types"
)

// Gearbox 风扇齿轮箱
// 跨转子扭矩耦合: 风扇侧驱动扭矩抵消风扇负载，
// 低压轴侧按传动比换算为等功率负载扭矩。
// 风扇机械转速 = 低压轴转速 / 传动比。
type Gearbox struct {
	base

	Ratio float64 // 传动比 N_lp/N_fan (>1 减速)
	Eff   float64 // 传动效率

	TrqIn    *graph.ScalarIn // 风扇扭矩(负载, 负值)
	TrqToFan graph.ScalarID  // 风扇轴侧驱动扭矩
	TrqToLP  graph.ScalarID  // 低压轴侧负载扭矩
}

// NewGearbox 创建齿轮箱
func NewGearbox(b *graph.Builder, name string) *Gearbox {
	gb := &Gearbox{base: base{name: name}, Ratio: 1, Eff: 1}
	b.Add(gb)
	gb.TrqIn = b.ScalarInput(gb)
	gb.TrqToFan = b.ScalarOut(gb)
	gb.TrqToLP = b.ScalarOut(gb)
	return gb
}

// Evaluate 扭矩换算
func (gb *Gearbox) Evaluate(ctx *graph.Context) error {
	if gb.Ratio < 1 {
		return fmt.Errorf("%w: 传动比小于1: %g", types.ErrEvaluation, gb.Ratio)
	}
	if gb.Eff <= 0 || gb.Eff > 1 {
		return fmt.Errorf("%w: 传动效率越界 (0,1]: %g", types.ErrEvaluation, gb.Eff)
	}
	fanTrq := ctx.Scalar(gb.TrqIn.ID())
	drive := -fanTrq // 驱动扭矩与风扇负载平衡
	ctx.SetScalar(gb.TrqToFan, drive)
	// 等功率换算到低压轴: trq_lp * ω_lp = trq_fan * ω_fan / η
	ctx.SetScalar(gb.TrqToLP, -drive/(gb.Ratio*gb.Eff))
	return nil
}

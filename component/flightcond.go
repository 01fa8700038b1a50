package component

import (
	"math"

	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// FlightConditions 飞行条件
// 由高度与马赫数给出进气道入口的总/静状态，环境静压单独
// 作为标量输出供喷管完全膨胀闭合条件直连
type FlightConditions struct {
	base
	gas thermo.Gas

	Alt float64 // 几何高度 (m)
	MN  float64 // 飞行马赫数
	W   float64 // 进气质量流量 (kg/s), 常为平衡未知量

	FlOut graph.FlowID   // 入口流动状态
	PsOut graph.ScalarID // 环境静压
}

// NewFlightConditions 创建飞行条件元件
func NewFlightConditions(b *graph.Builder, name string, gas thermo.Gas) *FlightConditions {
	fc := &FlightConditions{base: base{name: name}, gas: gas}
	b.Add(fc)
	fc.FlOut = b.FlowOut(fc)
	fc.PsOut = b.ScalarOut(fc)
	return fc
}

// Evaluate 计算飞行条件
func (fc *FlightConditions) Evaluate(ctx *graph.Context) error {
	ts, ps := thermo.Atmosphere(fc.Alt)
	air := types.Air()
	gm := fc.gas.Gamma(ts, air)
	v := fc.MN * math.Sqrt(gm*fc.gas.R(air)*ts)
	ht := fc.gas.Enthalpy(ts, air) + 0.5*v*v

	tt, iters, err := fc.gas.TFromH(ht, air)
	if err != nil {
		return err
	}
	if err := ctx.ChargeSubSolve(iters); err != nil {
		return err
	}
	pt := ps * thermo.PressureRatioFromT(fc.gas, ts, tt, air)

	fs := types.FlowState{
		Tt: tt, Pt: pt, Ht: ht,
		Ts: ts, Ps: ps, V: v, MN: fc.MN,
		W: fc.W, Gas: air,
	}
	if err := fs.Validate(); err != nil {
		return err
	}
	ctx.SetFlow(fc.FlOut, fs)
	ctx.SetScalar(fc.PsOut, ps)
	return nil
}

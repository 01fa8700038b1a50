package component

import (
	"fmt"
	"math"

	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// Nozzle 收敛喷管 (CV 损失模型)
// 完全膨胀闭合条件: 环境静压经标量端口直连为出口静压，不占用平衡方程。
// 输出毛推力与喉道面积; 设计点解出的喉道面积在多点装配中
// 固化为非设计点的面积配平目标。
type Nozzle struct {
	base
	gas thermo.Gas

	Cv float64 // 速度损失系数

	FlIn  *graph.FlowIn
	PsIn  *graph.ScalarIn // 出口静压(环境静压直连)
	FlOut graph.FlowID    // 出口静状态
	Fg    graph.ScalarID  // 毛推力 (N)
	Area  graph.ScalarID  // 喉道面积 (m²)
	Vexit graph.ScalarID  // 出口速度 (m/s)
}

// NewNozzle 创建喷管
func NewNozzle(b *graph.Builder, name string, gas thermo.Gas) *Nozzle {
	nz := &Nozzle{base: base{name: name}, gas: gas, Cv: 1}
	b.Add(nz)
	nz.FlIn = b.FlowInput(nz)
	nz.PsIn = b.ScalarInput(nz)
	nz.FlOut = b.FlowOut(nz)
	nz.Fg = b.ScalarOut(nz)
	nz.Area = b.ScalarOut(nz)
	nz.Vexit = b.ScalarOut(nz)
	return nz
}

// Evaluate 膨胀到环境静压
func (nz *Nozzle) Evaluate(ctx *graph.Context) error {
	if nz.Cv <= 0 || nz.Cv > 1 {
		return fmt.Errorf("%w: 速度损失系数越界 (0,1]: %g", types.ErrEvaluation, nz.Cv)
	}
	in := ctx.Flow(nz.FlIn.ID())
	ps := ctx.Scalar(nz.PsIn.ID())
	if in.Pt <= ps {
		return fmt.Errorf("%w: 喷管落压比不足: Pt=%g Ps=%g", types.ErrEvaluation, in.Pt, ps)
	}
	r := nz.gas.R(in.Gas)

	// 完全膨胀出口状态
	tsExit := thermo.IsentropicT(nz.gas, in.Tt, ps/in.Pt, in.Gas)
	dh := in.Ht - nz.gas.Enthalpy(tsExit, in.Gas)
	if dh < 0 {
		dh = 0
	}
	v := nz.Cv * math.Sqrt(2*dh)
	fg := in.W * v

	// 喉道: 堵塞时取声速喉道, 否则喉道即出口
	gm := nz.gas.Gamma(in.Tt, in.Gas)
	critPR := math.Pow((gm+1)/2, gm/(gm-1))
	var area float64
	if in.Pt/ps >= critPR {
		tStar := thermo.IsentropicT(nz.gas, in.Tt, 1/critPR, in.Gas)
		pStar := in.Pt / critPR
		vStar := math.Sqrt(nz.gas.Gamma(tStar, in.Gas) * r * tStar)
		area = in.W / (pStar / (r * tStar) * vStar)
	} else {
		rhoExit := ps / (r * tsExit)
		if v <= 0 {
			return fmt.Errorf("%w: 喷管出口速度为零", types.ErrEvaluation)
		}
		area = in.W / (rhoExit * v)
	}

	out := in
	out.Ts, out.Ps, out.V = tsExit, ps, v
	out.MN = v / math.Sqrt(nz.gas.Gamma(tsExit, in.Gas)*r*tsExit)
	ctx.SetFlow(nz.FlOut, out)
	ctx.SetScalar(nz.Fg, fg)
	ctx.SetScalar(nz.Area, area)
	ctx.SetScalar(nz.Vexit, v)
	return nil
}

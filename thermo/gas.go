// Package thermo 提供气体物性协作者。
// 循环核心只通过 Gas 接口消费物性：给定总/静热力输入返回导出物性。
// 详细的燃烧产物化学与真实气体物性在核心范围之外，VariableGas 是一个
// 变比热理想气体替身，足以驱动平衡求解。
package thermo

import (
	"fmt"
	"math"

	"turbofan/types"
)

// Gas 气体物性模型接口
type Gas interface {
	R(gas types.Composition) float64                               // 气体常数 (J/kg/K)
	Cp(T float64, gas types.Composition) float64                   // 定压比热 (J/kg/K)
	Gamma(T float64, gas types.Composition) float64                // 比热比
	Enthalpy(T float64, gas types.Composition) float64             // 比焓 (J/kg, 基准温度处为0)
	TFromH(h float64, gas types.Composition) (float64, int, error) // 由焓反解温度, 返回迭代次数
}

// 变比热理想气体参数
const (
	TRef       = 288.15  // 焓基准温度 (K)
	rAir       = 287.05  // 空气气体常数
	cpAirRef   = 1004.7  // 空气基准比热
	cpAirSlope = 0.134   // 空气比热温度斜率 (J/kg/K²)
	cpGasRef   = 1156.0  // 燃气基准比热
	cpGasSlope = 0.188   // 燃气比热温度斜率
	farStoich  = 0.06766 // 化学恰当油气比
)

// VariableGas 变比热理想气体
// cp 随温度线性变化并按油气比在空气与燃气之间插值，
// 焓温反解为牛顿子迭代，迭代次数由调用方计入子求解预算
type VariableGas struct {
	MaxIter int     // 焓温反解最大迭代次数
	Tol     float64 // 焓温反解温度容差 (K)
}

// NewVariableGas 创建默认物性模型
func NewVariableGas() *VariableGas {
	return &VariableGas{MaxIter: 30, Tol: 1e-8}
}

// blend 按油气比插值系数
func blend(gas types.Composition) float64 {
	b := gas.FAR / farStoich
	if b < 0 {
		return 0
	}
	if b > 1 {
		return 1
	}
	return b
}

// R 气体常数
func (g *VariableGas) R(types.Composition) float64 { return rAir }

// Cp 定压比热
func (g *VariableGas) Cp(T float64, gas types.Composition) float64 {
	b := blend(gas)
	cpRef := cpAirRef + b*(cpGasRef-cpAirRef)
	slope := cpAirSlope + b*(cpGasSlope-cpAirSlope)
	return cpRef + slope*(T-TRef)
}

// Gamma 比热比
func (g *VariableGas) Gamma(T float64, gas types.Composition) float64 {
	cp := g.Cp(T, gas)
	return cp / (cp - rAir)
}

// Enthalpy 比焓，比热线性时的解析积分
func (g *VariableGas) Enthalpy(T float64, gas types.Composition) float64 {
	b := blend(gas)
	cpRef := cpAirRef + b*(cpGasRef-cpAirRef)
	slope := cpAirSlope + b*(cpGasSlope-cpAirSlope)
	dT := T - TRef
	return cpRef*dT + 0.5*slope*dT*dT
}

// TFromH 由焓反解温度
// 牛顿迭代，初值取常比热近似；超过预算返回子求解错误
func (g *VariableGas) TFromH(h float64, gas types.Composition) (float64, int, error) {
	T := TRef + h/cpAirRef
	if T < 50 {
		T = 50
	}
	for i := 0; i < g.MaxIter; i++ {
		f := g.Enthalpy(T, gas) - h
		dT := f / g.Cp(T, gas)
		T -= dT
		if T < 50 {
			T = 50
		}
		if math.Abs(dT) < g.Tol {
			return T, i + 1, nil
		}
	}
	return 0, g.MaxIter, fmt.Errorf("%w: 焓温反解未收敛 h=%g", types.ErrSubSolve, h)
}

// IsentropicT 等熵过程终温
// 给定初温与压比返回终温，比热比取过程平均温度处的值并做两次定点修正
func IsentropicT(g Gas, T1, pr float64, gas types.Composition) float64 {
	T2 := T1
	for range 3 {
		gm := g.Gamma(0.5*(T1+T2), gas)
		T2 = T1 * math.Pow(pr, (gm-1)/gm)
	}
	return T2
}

// PressureRatioFromT 等熵过程温比对应的压比(IsentropicT 的逆)
func PressureRatioFromT(g Gas, T1, T2 float64, gas types.Composition) float64 {
	gm := g.Gamma(0.5*(T1+T2), gas)
	return math.Pow(T2/T1, gm/(gm-1))
}

// Atmosphere 国际标准大气
// 返回给定几何高度处的静温与静压，适用范围 0~20km
func Atmosphere(alt float64) (ts, ps float64) {
	const (
		t0   = 288.15
		p0   = 101325.0
		lapz = 0.0065
		tTrp = 216.65
		hTrp = 11000.0
	)
	if alt <= hTrp {
		ts = t0 - lapz*alt
		ps = p0 * math.Pow(ts/t0, 9.80665/(lapz*rAir))
		return ts, ps
	}
	ts = tTrp
	pTrp := p0 * math.Pow(tTrp/t0, 9.80665/(lapz*rAir))
	ps = pTrp * math.Exp(-9.80665*(alt-hTrp)/(rAir*tTrp))
	return ts, ps
}

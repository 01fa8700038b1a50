// Package component 实现流动元件。
// 每个元件是声明输入到声明输出的纯变换: outputs = f(inputs, 参数, 协作者)。
// 物性与特性图通过 thermo.Gas / cmap 接口注入，协作者无法在有效范围内
// 给出结果时元件返回评估错误而不是产出流动状态，由求解器回退处理。
// 参数字段(压比、油气比、涵道比、转速)可在每次求解前被平衡集改写，
// 元件本身在装配后身份不变。
package component

import (
	"fmt"
	"math"

	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// 换算参数基准
const (
	refT = 288.15   // 换算温度基准 (K)
	refP = 101325.0 // 换算压力基准 (Pa)
)

// base 元件公共信息
type base struct {
	name string
}

// Name 元件标识
func (b *base) Name() string { return b.name }

// totalFlow 由总焓构造总参数流动状态
// 焓温反解的迭代次数计入子求解预算
func totalFlow(ctx *graph.Context, g thermo.Gas, ht, pt, w float64, gas types.Composition) (types.FlowState, error) {
	T, iters, err := g.TFromH(ht, gas)
	if err != nil {
		return types.FlowState{}, err
	}
	if err := ctx.ChargeSubSolve(iters); err != nil {
		return types.FlowState{}, err
	}
	fs := types.FlowState{Tt: T, Pt: pt, Ht: ht, W: w, Gas: gas}
	return fs, fs.Validate()
}

// corrected 换算流量与换算转速
func corrected(fs types.FlowState, nmech float64) (wc, nc float64) {
	theta := fs.Tt / refT
	delta := fs.Pt / refP
	wc = fs.W * math.Sqrt(theta) / delta
	nc = nmech / math.Sqrt(theta)
	return wc, nc
}

// omega 机械转速 rpm 转角速度 rad/s
func omega(nmech float64) float64 {
	return nmech * math.Pi / 30
}

// checkLoss 校验损失系数取值
func checkLoss(name string, v float64) error {
	if v < 0 || v >= 1 {
		return fmt.Errorf("%w: %s 损失系数越界 [0,1): %g", types.ErrEvaluation, name, v)
	}
	return nil
}

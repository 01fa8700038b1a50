package graph

import (
	"fmt"

	"turbofan/types"
)

// Context 单次图评估的上下文
// 每次求解迭代整体重建或重置，评估之间不携带隐藏状态；
// 子求解预算约束元件内部的隐式迭代总量
type Context struct {
	flows     []types.FlowState
	flowSet   []bool
	scalars   []float64
	scalarSet []bool

	subBudget int
	subUsed   int
}

// Reset 重置上下文供下一次评估复用
func (ctx *Context) Reset() {
	for i := range ctx.flowSet {
		ctx.flowSet[i] = false
	}
	for i := range ctx.scalarSet {
		ctx.scalarSet[i] = false
		ctx.scalars[i] = 0
	}
	ctx.subUsed = 0
}

// SetFlow 写入流端口
func (ctx *Context) SetFlow(id FlowID, fs types.FlowState) {
	ctx.flows[id] = fs
	ctx.flowSet[id] = true
}

// Flow 读取流端口
// Build 校验后读取未赋值端口不可达，出现即为装配器缺陷
func (ctx *Context) Flow(id FlowID) types.FlowState {
	if !ctx.flowSet[id] {
		panic(fmt.Sprintf("读取未赋值的流端口: %d", id))
	}
	return ctx.flows[id]
}

// SetScalar 写入标量端口
func (ctx *Context) SetScalar(id ScalarID, v float64) {
	ctx.scalars[id] = v
	ctx.scalarSet[id] = true
}

// Scalar 读取标量端口
func (ctx *Context) Scalar(id ScalarID) float64 {
	if !ctx.scalarSet[id] {
		panic(fmt.Sprintf("读取未赋值的标量端口: %d", id))
	}
	return ctx.scalars[id]
}

// ChargeSubSolve 计入元件内部隐式迭代
// 超出预算返回子求解错误，外层按失败评估处理而非崩溃
func (ctx *Context) ChargeSubSolve(n int) error {
	ctx.subUsed += n
	if ctx.subUsed > ctx.subBudget {
		return fmt.Errorf("%w: 已用 %d / 预算 %d", types.ErrSubSolve, ctx.subUsed, ctx.subBudget)
	}
	return nil
}

// SubSolvesUsed 已消耗的子求解次数
func (ctx *Context) SubSolvesUsed() int { return ctx.subUsed }

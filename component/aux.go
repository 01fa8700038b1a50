package component

import (
	"fmt"

	"turbofan/graph"
	"turbofan/types"
)

// PRProduct 总压比组合
// OPR = 风扇压比 × 低压压气机压比 × 高压压气机压比。
// 三个压比参数与对应压气机参数由同一平衡未知量一起改写
type PRProduct struct {
	base

	FanPR float64
	LPCPR float64
	HPCPR float64

	OPR graph.ScalarID
}

// NewPRProduct 创建总压比组合
func NewPRProduct(b *graph.Builder, name string) *PRProduct {
	p := &PRProduct{base: base{name: name}, FanPR: 1, LPCPR: 1, HPCPR: 1}
	b.Add(p)
	p.OPR = b.ScalarOut(p)
	return p
}

// Evaluate 计算总压比
func (p *PRProduct) Evaluate(ctx *graph.Context) error {
	ctx.SetScalar(p.OPR, p.FanPR*p.LPCPR*p.HPCPR)
	return nil
}

// VelocityRatio 理想喷流速度比
// vr = 外涵喷管出口速度 / 核心喷管出口速度
type VelocityRatio struct {
	base

	V18 *graph.ScalarIn // 外涵喷管出口速度
	V8  *graph.ScalarIn // 核心喷管出口速度

	VR graph.ScalarID
}

// NewVelocityRatio 创建速度比元件
func NewVelocityRatio(b *graph.Builder, name string) *VelocityRatio {
	v := &VelocityRatio{base: base{name: name}}
	b.Add(v)
	v.V18 = b.ScalarInput(v)
	v.V8 = b.ScalarInput(v)
	v.VR = b.ScalarOut(v)
	return v
}

// Evaluate 计算速度比
func (v *VelocityRatio) Evaluate(ctx *graph.Context) error {
	v8 := ctx.Scalar(v.V8.ID())
	if v8 <= 0 {
		return fmt.Errorf("%w: 核心喷管出口速度非正: %g", types.ErrEvaluation, v8)
	}
	ctx.SetScalar(v.VR, ctx.Scalar(v.V18.ID())/v8)
	return nil
}

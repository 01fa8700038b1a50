package component

import (
	"fmt"

	"turbofan/cmap"
	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// CompressorBleed 压气机级间引气口
// 在压缩过程中按功分数位置抽取流量，引出气的焓与压力
// 按抽取位置在进出口之间插值
type CompressorBleed struct {
	Name     string
	FracW    float64 // 抽取流量分数(相对入口流量)
	FracWork float64 // 抽取位置的功分数 1=出口 0=入口
	FracP    float64 // 抽取位置的压升分数

	FlOut graph.FlowID
}

// Compressor 压气机
// 设计模式: 压比与效率为参数(常由平衡集驱动)并在设计点定标特性图;
// 非设计模式: 压比与效率由特性图按换算转速/流量给出。
// 轴扭矩按压气机耗功为负号约定。
type Compressor struct {
	base
	gas thermo.Gas
	cm  cmap.CompressorMap

	PR     float64 // 压比
	Eff    float64 // 等熵效率
	Nmech  float64 // 机械转速 (rpm)
	Design bool    // 设计模式

	Bleeds []*CompressorBleed

	FlIn  *graph.FlowIn
	FlOut graph.FlowID
	Trq   graph.ScalarID // 轴扭矩 (N·m), 耗功为负
	Pwr   graph.ScalarID // 压缩功率 (W)
}

// NewCompressor 创建压气机
func NewCompressor(b *graph.Builder, name string, gas thermo.Gas, cm cmap.CompressorMap, bleeds []*CompressorBleed) *Compressor {
	c := &Compressor{base: base{name: name}, gas: gas, cm: cm, Design: true, Bleeds: bleeds}
	b.Add(c)
	c.FlIn = b.FlowInput(c)
	c.FlOut = b.FlowOut(c)
	c.Trq = b.ScalarOut(c)
	c.Pwr = b.ScalarOut(c)
	for _, bl := range bleeds {
		bl.FlOut = b.FlowOut(c)
	}
	return c
}

// Evaluate 压缩过程
func (c *Compressor) Evaluate(ctx *graph.Context) error {
	in := ctx.Flow(c.FlIn.ID())
	wc, nc := corrected(in, c.Nmech)

	// 压比与效率: 设计模式定标特性图, 非设计模式查询特性图
	var pr, eff float64
	if c.Design {
		pr, eff = c.PR, c.Eff
		c.cm.SetDesign(pr, eff, nc, wc)
	} else {
		var err error
		if pr, err = c.cm.PR(nc, wc); err != nil {
			return err
		}
		if eff, err = c.cm.Eff(nc, wc); err != nil {
			return err
		}
	}
	if pr <= 1 {
		return fmt.Errorf("%w: 压气机压比非增压: %g", types.ErrEvaluation, pr)
	}
	if eff <= 0 || eff > 1 {
		return fmt.Errorf("%w: 压气机效率越界: %g", types.ErrEvaluation, eff)
	}

	// 理想与实际焓升
	ttIdeal := thermo.IsentropicT(c.gas, in.Tt, pr, in.Gas)
	dhIdeal := c.gas.Enthalpy(ttIdeal, in.Gas) - in.Ht
	dh := dhIdeal / eff
	ptOut := in.Pt * pr

	// 级间引气: 焓与压力按抽取位置插值, 剩余流量与能量精确重分配
	wOut := in.W
	pwr := 0.0
	for _, bl := range c.Bleeds {
		wb := bl.FracW * in.W
		hb := in.Ht + bl.FracWork*dh
		pb := in.Pt + bl.FracP*(ptOut-in.Pt)
		bleed, err := totalFlow(ctx, c.gas, hb, pb, wb, in.Gas)
		if err != nil {
			return err
		}
		ctx.SetFlow(bl.FlOut, bleed)
		wOut -= wb
		pwr += wb * bl.FracWork * dh
	}
	if wOut <= 0 {
		return fmt.Errorf("%w: 引气耗尽主流: W=%g", types.ErrEvaluation, wOut)
	}
	pwr += wOut * dh

	out, err := totalFlow(ctx, c.gas, in.Ht+dh, ptOut, wOut, in.Gas)
	if err != nil {
		return err
	}
	ctx.SetFlow(c.FlOut, out)
	ctx.SetScalar(c.Pwr, pwr)
	ctx.SetScalar(c.Trq, -pwr/omega(c.Nmech))
	return nil
}

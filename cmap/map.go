// Package cmap 提供压气机/涡轮特性图协作者。
// 真实特性图的插值与外推在核心范围之外，核心只消费接口：
// 给定换算流量与换算转速返回压比与效率修正。
// ScaledMap 是设计点定标的解析替身：设计点处恒等，偏离设计点时
// 给出光滑的压比与效率变化，外推关闭时越界返回评估错误。
package cmap

import (
	"fmt"
	"math"

	"turbofan/types"
)

// CompressorMap 压气机特性图接口
type CompressorMap interface {
	// SetDesign 在设计点定标特性图
	SetDesign(pr, eff, nc, wc float64)
	// PR 给定换算转速与换算流量返回压比
	PR(nc, wc float64) (float64, error)
	// Eff 给定换算转速与换算流量返回绝对效率
	Eff(nc, wc float64) (float64, error)
}

// TurbineMap 涡轮特性图接口
type TurbineMap interface {
	// SetDesign 在设计点定标特性图
	SetDesign(eff, nc float64)
	// Eff 给定换算转速返回绝对效率
	Eff(nc float64) (float64, error)
}

// 换算转速有效范围(相对设计点)
const (
	ncMin = 0.35
	ncMax = 1.20
)

// ScaledCompressorMap 定标压气机特性图
type ScaledCompressorMap struct {
	Extrap bool // 允许外推

	prDes  float64
	effDes float64
	ncDes  float64
	wcDes  float64
	scaled bool
}

// NewCompressorMap 创建压气机特性图
func NewCompressorMap(extrap bool) *ScaledCompressorMap {
	return &ScaledCompressorMap{Extrap: extrap}
}

// SetDesign 设计点定标
func (m *ScaledCompressorMap) SetDesign(pr, eff, nc, wc float64) {
	m.prDes, m.effDes, m.ncDes, m.wcDes = pr, eff, nc, wc
	m.scaled = true
}

// check 检查定标与范围
func (m *ScaledCompressorMap) check(nc float64) (float64, error) {
	if !m.scaled {
		return 0, fmt.Errorf("%w: 特性图未定标", types.ErrConfig)
	}
	nr := nc / m.ncDes
	if !m.Extrap && (nr < ncMin || nr > ncMax) {
		return 0, fmt.Errorf("%w: 换算转速越出特性图范围 n/n_des=%.3f", types.ErrEvaluation, nr)
	}
	return nr, nil
}

// PR 速度线压比
// 压升近似按换算转速的幂律缩放，设计点处等于定标压比
func (m *ScaledCompressorMap) PR(nc, wc float64) (float64, error) {
	nr, err := m.check(nc)
	if err != nil {
		return 0, err
	}
	pr := 1 + (m.prDes-1)*math.Pow(nr, 1.8)
	if pr < 1.001 {
		pr = 1.001
	}
	return pr, nil
}

// Eff 效率修正
// 偏离设计转速与设计换算流量的二次惩罚，设计点处等于定标效率
func (m *ScaledCompressorMap) Eff(nc, wc float64) (float64, error) {
	nr, err := m.check(nc)
	if err != nil {
		return 0, err
	}
	wr := wc / m.wcDes
	eff := m.effDes * (1 - 0.25*(nr-1)*(nr-1) - 0.05*(wr-nr)*(wr-nr))
	if eff < 0.5 {
		eff = 0.5
	}
	return eff, nil
}

// ScaledTurbineMap 定标涡轮特性图
type ScaledTurbineMap struct {
	Extrap bool // 允许外推

	effDes float64
	ncDes  float64
	scaled bool
}

// NewTurbineMap 创建涡轮特性图
func NewTurbineMap(extrap bool) *ScaledTurbineMap {
	return &ScaledTurbineMap{Extrap: extrap}
}

// SetDesign 设计点定标
func (m *ScaledTurbineMap) SetDesign(eff, nc float64) {
	m.effDes, m.ncDes = eff, nc
	m.scaled = true
}

// Eff 效率修正
func (m *ScaledTurbineMap) Eff(nc float64) (float64, error) {
	if !m.scaled {
		return 0, fmt.Errorf("%w: 特性图未定标", types.ErrConfig)
	}
	nr := nc / m.ncDes
	if !m.Extrap && (nr < ncMin || nr > ncMax) {
		return 0, fmt.Errorf("%w: 换算转速越出特性图范围 n/n_des=%.3f", types.ErrEvaluation, nr)
	}
	eff := m.effDes * (1 - 0.12*(nr-1)*(nr-1))
	if eff < 0.5 {
		eff = 0.5
	}
	return eff, nil
}

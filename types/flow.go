package types

import "fmt"

// Composition 气体组分标签
// 用标量油气比描述燃气组分，纯空气为 0
type Composition struct {
	FAR float64 // 油气比 (燃油质量/空气质量)
}

// Air 纯空气组分
func Air() Composition { return Composition{} }

// FlowState 流动状态
// 由上游元件的输出端口一次性产出，每次求解迭代整体重建，不做原位修改。
// 内部站位只保证总参数与流量有效，静参数仅在显式计算的站位(飞行条件、喷管出口)填写。
type FlowState struct {
	Tt  float64     // 总温 (K)
	Pt  float64     // 总压 (Pa)
	Ht  float64     // 总焓 (J/kg)
	Ts  float64     // 静温 (K)
	Ps  float64     // 静压 (Pa)
	V   float64     // 速度 (m/s)
	MN  float64     // 马赫数
	W   float64     // 质量流量 (kg/s)
	Gas Composition // 气体组分
}

// Validate 检查流动状态不变量
func (fs FlowState) Validate() error {
	if fs.W < 0 {
		return fmt.Errorf("%w: 质量流量为负 %g", ErrEvaluation, fs.W)
	}
	if fs.Tt <= 0 || fs.Pt <= 0 {
		return fmt.Errorf("%w: 总参数非正 Tt=%g Pt=%g", ErrEvaluation, fs.Tt, fs.Pt)
	}
	if fs.Ts > fs.Tt || fs.Ps > fs.Pt {
		return fmt.Errorf("%w: 静参数超过总参数 Ts=%g Tt=%g Ps=%g Pt=%g",
			ErrEvaluation, fs.Ts, fs.Tt, fs.Ps, fs.Pt)
	}
	return nil
}

// String 输出站位状态
func (fs FlowState) String() string {
	return fmt.Sprintf("W=%8.3f Tt=%8.2f Pt=%10.1f FAR=%.5f", fs.W, fs.Tt, fs.Pt, fs.Gas.FAR)
}

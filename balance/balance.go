// Package balance 维护平衡未知量与残差方程的映射。
// 每个未知量以固定参数的身份写回元件图(Apply 绑定)，其正确取值
// 使关联残差为零: residual = lhs − rhs·mult, 按 ResRef 归一化。
// 平衡集对物理含义不可知, 只负责表达式求值与边界钳位。
package balance

import (
	"fmt"
	"math"

	"turbofan/graph"
	"turbofan/types"
)

// RHS 残差右端
// 图输出探针或常数目标, 守恒类平衡用常数零
type RHS struct {
	ref      graph.ScalarID
	isScalar bool
	value    float64
}

// FromScalar 右端取图输出
func FromScalar(id graph.ScalarID) RHS {
	return RHS{ref: id, isScalar: true}
}

// Constant 右端取常数目标
func Constant(v float64) RHS {
	return RHS{value: v}
}

// Def 未知量定义
type Def struct {
	Name  string
	Init  float64 // 初值
	Lower float64 // 下界
	Upper float64 // 上界, 0 表示无上界
	Mult  float64 // 右端乘子, 0 按 1 处理

	Lhs    graph.ScalarID // 左端探针
	Rhs    RHS            // 右端
	Tol    float64        // 收敛容差(未归一化残差), 0 取默认
	ResRef float64        // 残差归一化基准, 0 按 1 处理

	Apply func(x float64) // 未知量写回绑定
}

// Set 平衡集
type Set struct {
	g     *graph.Graph
	defs  []Def
	vals  []float64
	index map[string]int
}

// NewSet 创建平衡集
func NewSet(g *graph.Graph) *Set {
	return &Set{g: g, index: map[string]int{}}
}

// Register 注册一个未知量及其控制方程
// 重名、缺失绑定或探针不存在是装配错误
func (s *Set) Register(d Def) error {
	if d.Name == "" {
		return fmt.Errorf("%w: 未知量名为空", types.ErrConfig)
	}
	if _, ok := s.index[d.Name]; ok {
		return fmt.Errorf("%w: 未知量重名: %s", types.ErrConfig, d.Name)
	}
	if d.Apply == nil {
		return fmt.Errorf("%w: 未知量 %s 缺少写回绑定", types.ErrConfig, d.Name)
	}
	if !s.g.ScalarValid(d.Lhs) {
		return fmt.Errorf("%w: 未知量 %s 左端探针不存在: %d", types.ErrConfig, d.Name, d.Lhs)
	}
	if d.Rhs.isScalar && !s.g.ScalarValid(d.Rhs.ref) {
		return fmt.Errorf("%w: 未知量 %s 右端探针不存在: %d", types.ErrConfig, d.Name, d.Rhs.ref)
	}
	if d.Upper != 0 && d.Upper <= d.Lower {
		return fmt.Errorf("%w: 未知量 %s 边界非法: [%g, %g]", types.ErrConfig, d.Name, d.Lower, d.Upper)
	}
	if d.Mult == 0 {
		d.Mult = 1
	}
	if d.ResRef == 0 {
		d.ResRef = 1
	}
	if d.Tol == 0 {
		d.Tol = 1e-6 * d.ResRef
	}
	s.index[d.Name] = len(s.defs)
	s.defs = append(s.defs, d)
	s.vals = append(s.vals, s.clampOne(len(s.defs)-1, d.Init))
	s.defs[len(s.defs)-1].Apply(s.vals[len(s.vals)-1])
	return nil
}

// Len 未知量数量
func (s *Set) Len() int { return len(s.defs) }

// Names 未知量名列表(注册顺序)
func (s *Set) Names() []string {
	names := make([]string, len(s.defs))
	for i, d := range s.defs {
		names[i] = d.Name
	}
	return names
}

// Value 按名读取当前值
func (s *Set) Value(name string) (float64, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.vals[i], true
}

// SetConstant 按名改写常数右端(多点装配把设计几何固化到非设计点)
func (s *Set) SetConstant(name string, v float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: 未知量不存在: %s", types.ErrConfig, name)
	}
	if s.defs[i].Rhs.isScalar {
		return fmt.Errorf("%w: 未知量 %s 右端不是常数", types.ErrConfig, name)
	}
	s.defs[i].Rhs.value = v
	return nil
}

// SetInit 按名改写初值并立即写回
func (s *Set) SetInit(name string, v float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: 未知量不存在: %s", types.ErrConfig, name)
	}
	s.vals[i] = s.clampOne(i, v)
	s.defs[i].Apply(s.vals[i])
	return nil
}

// clampOne 单值钳位
func (s *Set) clampOne(i int, x float64) float64 {
	d := s.defs[i]
	if x < d.Lower {
		return d.Lower
	}
	if d.Upper != 0 && x > d.Upper {
		return d.Upper
	}
	return x
}

// Values 当前未知量向量(拷贝)
func (s *Set) Values() []float64 {
	out := make([]float64, len(s.vals))
	copy(out, s.vals)
	return out
}

// Clamp 向量钳位(原位), 返回是否发生钳位
func (s *Set) Clamp(x []float64) bool {
	clamped := false
	for i := range x {
		c := s.clampOne(i, x[i])
		if c != x[i] {
			clamped = true
			x[i] = c
		}
	}
	return clamped
}

// SetValues 写入未知量向量并应用到图参数, 越界值被钳位而非回绕
func (s *Set) SetValues(x []float64) {
	for i := range s.defs {
		s.vals[i] = s.clampOne(i, x[i])
		s.defs[i].Apply(s.vals[i])
	}
}

// Residuals 从一次新鲜评估的图输出计算归一化残差向量
// 纯函数, 除注册的定义外无隐藏状态
func (s *Set) Residuals(ctx *graph.Context) []float64 {
	res := make([]float64, len(s.defs))
	for i, d := range s.defs {
		rhs := d.Rhs.value
		if d.Rhs.isScalar {
			rhs = ctx.Scalar(d.Rhs.ref)
		}
		res[i] = (ctx.Scalar(d.Lhs) - rhs*d.Mult) / d.ResRef
	}
	return res
}

// WithinTolerance 检查归一化残差向量是否满足各自声明的容差
func (s *Set) WithinTolerance(res []float64) bool {
	for i, d := range s.defs {
		if math.Abs(res[i]*d.ResRef) > d.Tol {
			return false
		}
	}
	return true
}

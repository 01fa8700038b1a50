package component

import (
	"turbofan/graph"
)

// Shaft 转轴
// 汇聚同一转子上所有元件的带符号扭矩(压气机负/涡轮正)，
// 输出净功率与正反向实功率，净功率由专门的平衡方程约束为零
type Shaft struct {
	base

	Nmech float64 // 机械转速 (rpm)

	Trq    []*graph.ScalarIn // 扭矩端口
	PwrNet graph.ScalarID    // 净功率 (W)
	PwrIn  graph.ScalarID    // 输入实功率(产功侧, W)
	PwrOut graph.ScalarID    // 输出实功率(耗功侧, W, 负值)
}

// NewShaft 创建转轴
func NewShaft(b *graph.Builder, name string, numPorts int) *Shaft {
	s := &Shaft{base: base{name: name}}
	b.Add(s)
	s.Trq = make([]*graph.ScalarIn, numPorts)
	for i := range s.Trq {
		s.Trq[i] = b.ScalarInput(s)
	}
	s.PwrNet = b.ScalarOut(s)
	s.PwrIn = b.ScalarOut(s)
	s.PwrOut = b.ScalarOut(s)
	return s
}

// Evaluate 功率汇总
func (s *Shaft) Evaluate(ctx *graph.Context) error {
	w := omega(s.Nmech)
	var net, in, out float64
	for _, p := range s.Trq {
		pwr := ctx.Scalar(p.ID()) * w
		net += pwr
		if pwr > 0 {
			in += pwr
		} else {
			out += pwr
		}
	}
	ctx.SetScalar(s.PwrNet, net)
	ctx.SetScalar(s.PwrIn, in)
	ctx.SetScalar(s.PwrOut, out)
	return nil
}

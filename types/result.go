package types

import "fmt"

// Status 求解终态
type Status int

const (
	StatusConverged Status = iota // 收敛
	StatusDiverged                // 发散
)

// String 输出终态
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "收敛"
	case StatusDiverged:
		return "发散"
	}
	return fmt.Sprintf("未知状态(%d)", int(s))
}

// IterRecord 单次外层迭代记录
type IterRecord struct {
	Iter         int     // 迭代序号
	ResidualNorm float64 // 残差范数
	StepScale    float64 // 线搜索接受的步长比例
	LineSearch   int     // 线搜索回退次数
}

// SolveReport 求解报告
// 发散时保留最后一次成功评估的残差向量与未知量向量用于诊断
type SolveReport struct {
	Status       Status       // 终态
	Iterations   int          // 外层迭代次数
	ResidualNorm float64      // 最终残差范数
	Residuals    []float64    // 最终残差向量(归一化)
	Unknowns     []float64    // 最终未知量向量
	History      []IterRecord // 迭代历史
	Err          error        // 发散原因(收敛时为 nil)
}

// Converged 是否收敛
func (r *SolveReport) Converged() bool {
	return r != nil && r.Status == StatusConverged
}

// String 输出报告摘要
func (r *SolveReport) String() string {
	return fmt.Sprintf("%s: 迭代=%d 残差=%.3e", r.Status, r.Iterations, r.ResidualNorm)
}

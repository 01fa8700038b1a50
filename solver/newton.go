// Package solver 实现循环点的隐式求解。
// 外层为牛顿迭代: 提出候选未知量向量 → 按拓扑顺序前向评估全图 →
// 重算残差向量 → 差分装配雅可比并直接求解牛顿步 → 阻尼线搜索
// 接受子步, 直到残差收敛或达到失败上限。
// 评估失败(物性/特性图越界、子求解超预算)在线搜索内按无穷残差
// 回退处理, 只有顶层以 收敛/发散 终态向调用方交付。
package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"turbofan/balance"
	"turbofan/graph"
	"turbofan/types"
)

// Options 求解配置
// 显式传入构造函数, 不使用进程级可变全局设置
type Options struct {
	MaxIter        int     // 最大外层迭代次数
	Atol           float64 // 残差范数绝对容差
	Rtol           float64 // 残差范数相对容差(默认实际停用)
	LineSearchIter int     // 线搜索最大回退次数
	Rho            float64 // 线搜索步长回退系数
	FDStep         float64 // 雅可比差分相对步长
	SubSolves      int     // 单次评估的子求解预算
	MaxOscillation int     // 残差增长的最大连续次数
}

// DefaultOptions 默认求解配置
func DefaultOptions() Options {
	return Options{
		MaxIter:        types.MaxIterations,
		Atol:           types.AbsTolerance,
		Rtol:           types.RelTolerance,
		LineSearchIter: types.MaxLineSearchIter,
		Rho:            types.LineSearchRho,
		FDStep:         types.DefaultFDStep,
		SubSolves:      types.MaxSubSolves,
		MaxOscillation: types.MaxOscillationCount,
	}
}

// Solver 牛顿求解器
// 独占一个循环点的图与平衡集
type Solver struct {
	g   *graph.Graph
	set *balance.Set
	opt Options
	ctx *graph.Context
}

// New 创建求解器
func New(g *graph.Graph, set *balance.Set, opt Options) *Solver {
	return &Solver{g: g, set: set, opt: opt}
}

// evaluate 写回未知量并做一次全图评估, 返回归一化残差向量
func (s *Solver) evaluate(x []float64) ([]float64, error) {
	s.set.SetValues(x)
	if err := s.g.Evaluate(s.ctx); err != nil {
		return nil, err
	}
	return s.set.Residuals(s.ctx), nil
}

// norm2 残差范数
func norm2(r []float64) float64 {
	sum := 0.0
	for _, v := range r {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// jacobian 前向差分装配雅可比
// 差分点越出未知量边界或评估失败时退回后向差分
func (s *Solver) jacobian(x, r []float64) (*mat.Dense, error) {
	n := len(x)
	jac := mat.NewDense(n, n, nil)
	xp := make([]float64, n)
	for j := 0; j < n; j++ {
		h := s.opt.FDStep * math.Max(math.Abs(x[j]), 1)
		copy(xp, x)
		xp[j] = x[j] + h
		s.set.Clamp(xp)
		if xp[j] == x[j] {
			// 上界处改用后向差分
			xp[j] = x[j] - h
			s.set.Clamp(xp)
		}
		rp, err := s.evaluate(xp)
		if err != nil {
			// 差分点评估失败, 换另一侧
			copy(xp, x)
			xp[j] = x[j] - h
			s.set.Clamp(xp)
			if rp, err = s.evaluate(xp); err != nil {
				return nil, fmt.Errorf("差分列 %d 评估失败: %w", j, err)
			}
		}
		dj := xp[j] - x[j]
		if dj == 0 {
			return nil, fmt.Errorf("%w: 未知量 %d 边界过窄无法差分", types.ErrSingular, j)
		}
		for i := 0; i < n; i++ {
			jac.Set(i, j, (rp[i]-r[i])/dj)
		}
	}
	return jac, nil
}

// newtonStep 直接求解牛顿步 J·dx = −r
// 奇异时对角扰动重试一次, 重复奇异交由调用方按发散终止
func newtonStep(jac *mat.Dense, r []float64, retried *bool) ([]float64, error) {
	n := len(r)
	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, -r[i])
	}
	var lu mat.LU
	lu.Factorize(jac)
	dx := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(dx, false, rhs); err != nil {
		if *retried {
			return nil, fmt.Errorf("%w: 扰动重试后仍奇异: %v", types.ErrSingular, err)
		}
		*retried = true
		// 对角扰动一次
		mu := 0.0
		for i := 0; i < n; i++ {
			mu = math.Max(mu, math.Abs(jac.At(i, i)))
		}
		mu = 1e-8 * (1 + mu)
		for i := 0; i < n; i++ {
			jac.Set(i, i, jac.At(i, i)+mu)
		}
		lu.Factorize(jac)
		if err := lu.SolveVecTo(dx, false, rhs); err != nil {
			return nil, fmt.Errorf("%w: 扰动重试后仍奇异: %v", types.ErrSingular, err)
		}
	}
	return dx.RawVector().Data, nil
}

// Solve 求解到收敛或发散
func (s *Solver) Solve() *types.SolveReport {
	s.ctx = s.g.NewContext(s.opt.SubSolves)
	rep := &types.SolveReport{Status: types.StatusDiverged}

	x := s.set.Values()
	r, err := s.evaluate(x)
	if err != nil {
		rep.Err = fmt.Errorf("初始评估失败: %w", err)
		rep.Unknowns = x
		return rep
	}
	norm := norm2(r)
	norm0 := math.Max(norm, 1e-300)
	osc := 0
	singularRetried := false

	finish := func(status types.Status, err error) *types.SolveReport {
		rep.Status = status
		rep.Err = err
		rep.ResidualNorm = norm
		rep.Residuals = append([]float64(nil), r...)
		rep.Unknowns = append([]float64(nil), x...)
		return rep
	}

	for iter := 0; iter < s.opt.MaxIter; iter++ {
		rep.Iterations = iter
		// 收敛检查: 绝对容差主导, 同时要求每个残差满足各自声明容差
		if (norm < s.opt.Atol || norm/norm0 < s.opt.Rtol) && s.set.WithinTolerance(r) {
			return finish(types.StatusConverged, nil)
		}

		jac, err := s.jacobian(x, r)
		if err != nil {
			return finish(types.StatusDiverged, fmt.Errorf("雅可比装配失败: %w", err))
		}
		dx, err := newtonStep(jac, r, &singularRetried)
		if err != nil {
			return finish(types.StatusDiverged, err)
		}

		// 阻尼线搜索: 评估失败按无穷残差回退, 子步预算内接受
		// 充分下降的候选, 否则接受残差最小的成功候选(有界牛顿步)
		alpha := 1.0
		var bestX, bestR []float64
		bestNorm := math.Inf(1)
		var lastErr error
		lsUsed := 0
		accepted := false
		for ls := 0; ls < s.opt.LineSearchIter; ls++ {
			lsUsed = ls + 1
			cand := make([]float64, len(x))
			for i := range cand {
				cand[i] = x[i] + alpha*dx[i]
			}
			s.set.Clamp(cand)
			rc, err := s.evaluate(cand)
			if err != nil {
				lastErr = err
				alpha *= s.opt.Rho
				continue
			}
			nc := norm2(rc)
			if nc <= (1-1e-4*alpha)*norm {
				bestX, bestR, bestNorm = cand, rc, nc
				accepted = true
				break
			}
			if nc < bestNorm {
				bestX, bestR, bestNorm = cand, rc, nc
			}
			alpha *= s.opt.Rho
		}
		if math.IsInf(bestNorm, 1) {
			return finish(types.StatusDiverged,
				fmt.Errorf("线搜索子步预算耗尽: %w", lastErr))
		}

		rep.History = append(rep.History, types.IterRecord{
			Iter: iter, ResidualNorm: bestNorm, StepScale: alpha, LineSearch: lsUsed,
		})

		// 震荡与无界增长检测
		if bestNorm < norm {
			osc = 0
		} else {
			osc++
		}
		x, r, norm = bestX, bestR, bestNorm
		if !accepted && osc > s.opt.MaxOscillation {
			return finish(types.StatusDiverged,
				fmt.Errorf("残差震荡不收敛: iter=%d res=%.3e", iter, norm))
		}
		if norm > 1e8*norm0 {
			return finish(types.StatusDiverged,
				fmt.Errorf("残差无界增长: iter=%d res=%.3e", iter, norm))
		}
	}
	if (norm < s.opt.Atol || norm/norm0 < s.opt.Rtol) && s.set.WithinTolerance(r) {
		rep.Iterations = s.opt.MaxIter
		return finish(types.StatusConverged, nil)
	}
	return finish(types.StatusDiverged,
		fmt.Errorf("超过最大迭代次数 %d, 残差 %.3e", s.opt.MaxIter, norm))
}

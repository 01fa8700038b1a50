package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"turbofan/types"
)

// PlotHistory 将迭代残差历史绘制为对数坐标折线图并写入 path
// 历史为空时返回错误
func PlotHistory(rep *types.SolveReport, title, path string) error {
	if rep == nil || len(rep.History) == 0 {
		return fmt.Errorf("%w: 无迭代历史可绘制", types.ErrConfig)
	}
	pts := make(plotter.XYs, len(rep.History))
	for i, h := range rep.History {
		pts[i].X = float64(h.Iter)
		// 对数坐标下限保护
		pts[i].Y = math.Max(h.ResidualNorm, 1e-16)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "residual norm"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("绘制残差历史失败: %w", err)
	}
	p.Add(line, plotter.NewGrid())
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("保存残差历史图失败: %w", err)
	}
	return nil
}

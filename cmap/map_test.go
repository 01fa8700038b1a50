package cmap

import (
	"errors"
	"math"
	"testing"

	"turbofan/types"
)

func TestCompressorMapDesignIdentity(t *testing.T) {
	m := NewCompressorMap(true)
	m.SetDesign(3.0, 0.88, 5000, 120)
	pr, err := m.PR(5000, 120)
	if err != nil {
		t.Fatalf("设计点查询失败: %v", err)
	}
	if math.Abs(pr-3.0) > 1e-12 {
		t.Errorf("设计点压比应恒等: %g", pr)
	}
	eff, err := m.Eff(5000, 120)
	if err != nil {
		t.Fatalf("设计点查询失败: %v", err)
	}
	if math.Abs(eff-0.88) > 1e-12 {
		t.Errorf("设计点效率应恒等: %g", eff)
	}
}

func TestCompressorMapOffDesign(t *testing.T) {
	m := NewCompressorMap(true)
	m.SetDesign(3.0, 0.88, 5000, 120)
	// 降转速压比下降 效率下降
	pr, _ := m.PR(4000, 100)
	if pr >= 3.0 || pr < 1 {
		t.Errorf("降转速压比异常: %g", pr)
	}
	eff, _ := m.Eff(4000, 100)
	if eff >= 0.88 {
		t.Errorf("偏设计效率应下降: %g", eff)
	}
}

func TestMapRangeViolation(t *testing.T) {
	m := NewCompressorMap(false)
	m.SetDesign(3.0, 0.88, 5000, 120)
	if _, err := m.PR(1000, 120); !errors.Is(err, types.ErrEvaluation) {
		t.Errorf("越界应返回评估错误, 实际 %v", err)
	}
	// 允许外推时不报错
	m.Extrap = true
	if _, err := m.PR(1000, 120); err != nil {
		t.Errorf("外推开启时不应报错: %v", err)
	}
}

func TestMapUnscaled(t *testing.T) {
	m := NewCompressorMap(true)
	if _, err := m.PR(5000, 120); !errors.Is(err, types.ErrConfig) {
		t.Errorf("未定标应返回配置错误, 实际 %v", err)
	}
	tm := NewTurbineMap(true)
	if _, err := tm.Eff(5000); !errors.Is(err, types.ErrConfig) {
		t.Errorf("未定标应返回配置错误, 实际 %v", err)
	}
}

func TestTurbineMap(t *testing.T) {
	m := NewTurbineMap(false)
	m.SetDesign(0.91, 9000)
	eff, err := m.Eff(9000)
	if err != nil || math.Abs(eff-0.91) > 1e-12 {
		t.Fatalf("设计点效率应恒等: %g %v", eff, err)
	}
	if _, err := m.Eff(2000); !errors.Is(err, types.ErrEvaluation) {
		t.Errorf("越界应返回评估错误, 实际 %v", err)
	}
}

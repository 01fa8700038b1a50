package component

import (
	"math"
	"testing"

	"turbofan/graph"
)

func TestShaftPowerBookkeeping(t *testing.T) {
	b := graph.NewBuilder()
	turb := newScalarSource(b, "turb_trq", 5000)  // 产功
	comp := newScalarSource(b, "comp_trq", -4800) // 耗功
	s := NewShaft(b, "shaft", 2)
	b.Bind(turb.out, s.Trq[0])
	b.Bind(comp.out, s.Trq[1])
	s.Nmech = 9000

	_, ctx, err := mustBuild(b)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	w := omega(9000)
	if net := ctx.Scalar(s.PwrNet); math.Abs(net-200*w) > 1e-6 {
		t.Errorf("净功率错误: %g", net)
	}
	if in := ctx.Scalar(s.PwrIn); math.Abs(in-5000*w) > 1e-6 {
		t.Errorf("输入实功率错误: %g", in)
	}
	if out := ctx.Scalar(s.PwrOut); math.Abs(out+4800*w) > 1e-6 {
		t.Errorf("输出实功率错误: %g", out)
	}
}

func TestGearboxPowerConservation(t *testing.T) {
	b := graph.NewBuilder()
	fan := newScalarSource(b, "fan_trq", -30000) // 风扇负载
	gb := NewGearbox(b, "gearbox")
	b.Bind(fan.out, gb.TrqIn)
	gb.Ratio = 3.0

	_, ctx, err := mustBuild(b)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	drive := ctx.Scalar(gb.TrqToFan)
	if drive != 30000 {
		t.Errorf("风扇侧驱动扭矩应抵消负载: %g", drive)
	}
	// 等功率: trq_lp * ω_lp = -trq_fan_drive * ω_fan
	nLP, nFan := 9000.0, 3000.0
	pLP := ctx.Scalar(gb.TrqToLP) * omega(nLP)
	pFan := drive * omega(nFan)
	if math.Abs(pLP+pFan) > 1e-6*math.Abs(pFan) {
		t.Errorf("齿轮箱功率不守恒: lp=%g fan=%g", pLP, pFan)
	}
}

func TestFanShaftBalancesThroughGearbox(t *testing.T) {
	// 风扇轴上风扇负载与齿轮箱驱动扭矩之和为零
	b := graph.NewBuilder()
	fan := newScalarSource(b, "fan_trq", -25000)
	gb := NewGearbox(b, "gearbox")
	b.Bind(fan.out, gb.TrqIn)
	gb.Ratio = 3.0
	fs := NewShaft(b, "fan_shaft", 2)
	b.Bind(fan.out, fs.Trq[0])
	b.Bind(gb.TrqToFan, fs.Trq[1])
	fs.Nmech = 3000

	_, ctx, err := mustBuild(b)
	if err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	if net := ctx.Scalar(fs.PwrNet); math.Abs(net) > 1e-9 {
		t.Errorf("风扇轴应恒平衡: %g", net)
	}
}

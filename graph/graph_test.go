package graph

import (
	"errors"
	"testing"

	"turbofan/types"
)

// stubNode 测试用元件: 输入流量乘以系数后输出
type stubNode struct {
	name string
	k    float64
	in   *FlowIn
	out  FlowID
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Evaluate(ctx *Context) error {
	fs := types.FlowState{Tt: 300, Pt: 1e5, W: 1}
	if n.in != nil {
		fs = ctx.Flow(n.in.ID())
	}
	fs.W *= n.k
	ctx.SetFlow(n.out, fs)
	return nil
}

func TestBuildAndEvaluate(t *testing.T) {
	b := NewBuilder()
	src := &stubNode{name: "src", k: 2}
	b.Add(src)
	src.out = b.FlowOut(src)
	dst := &stubNode{name: "dst", k: 3}
	b.Add(dst)
	dst.in = b.FlowInput(dst)
	dst.out = b.FlowOut(dst)
	b.Connect(src.out, dst.in)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("装配失败: %v", err)
	}
	ctx := g.NewContext(10)
	if err := g.Evaluate(ctx); err != nil {
		t.Fatalf("评估失败: %v", err)
	}
	if got := ctx.Flow(dst.out).W; got != 6 {
		t.Errorf("评估结果错误: %g", got)
	}
	// 重置后重复评估结果一致(无隐藏状态)
	if err := g.Evaluate(ctx); err != nil {
		t.Fatalf("重复评估失败: %v", err)
	}
	if got := ctx.Flow(dst.out).W; got != 6 {
		t.Errorf("重复评估结果漂移: %g", got)
	}
}

func TestDuplicateNode(t *testing.T) {
	b := NewBuilder()
	n1 := &stubNode{name: "x", k: 1}
	n2 := &stubNode{name: "x", k: 1}
	b.Add(n1)
	n1.out = b.FlowOut(n1)
	b.Add(n2)
	if _, err := b.Build(); !errors.Is(err, types.ErrConfig) {
		t.Errorf("重名元件应报装配错误, 实际 %v", err)
	}
}

func TestDanglingInput(t *testing.T) {
	b := NewBuilder()
	n := &stubNode{name: "x", k: 1}
	b.Add(n)
	n.in = b.FlowInput(n)
	n.out = b.FlowOut(n)
	if _, err := b.Build(); !errors.Is(err, types.ErrConfig) {
		t.Errorf("悬空输入应报装配错误, 实际 %v", err)
	}
}

func TestFanInOne(t *testing.T) {
	b := NewBuilder()
	s1 := &stubNode{name: "s1", k: 1}
	b.Add(s1)
	s1.out = b.FlowOut(s1)
	s2 := &stubNode{name: "s2", k: 1}
	b.Add(s2)
	s2.out = b.FlowOut(s2)
	d := &stubNode{name: "d", k: 1}
	b.Add(d)
	d.in = b.FlowInput(d)
	d.out = b.FlowOut(d)
	b.Connect(s1.out, d.in)
	b.Connect(s2.out, d.in) // 第二个生产者
	if _, err := b.Build(); !errors.Is(err, types.ErrConfig) {
		t.Errorf("重复生产者应报装配错误, 实际 %v", err)
	}
}

func TestOrderViolation(t *testing.T) {
	b := NewBuilder()
	d := &stubNode{name: "d", k: 1}
	b.Add(d)
	d.in = b.FlowInput(d)
	d.out = b.FlowOut(d)
	s := &stubNode{name: "s", k: 1}
	b.Add(s)
	s.out = b.FlowOut(s)
	b.Connect(s.out, d.in) // 生产者注册晚于消费者
	if _, err := b.Build(); !errors.Is(err, types.ErrConfig) {
		t.Errorf("顺序违例应报装配错误, 实际 %v", err)
	}
}

func TestSubSolveBudget(t *testing.T) {
	b := NewBuilder()
	n := &stubNode{name: "n", k: 1}
	b.Add(n)
	n.out = b.FlowOut(n)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("装配失败: %v", err)
	}
	ctx := g.NewContext(5)
	if err := ctx.ChargeSubSolve(3); err != nil {
		t.Fatalf("预算内不应报错: %v", err)
	}
	if err := ctx.ChargeSubSolve(3); !errors.Is(err, types.ErrSubSolve) {
		t.Errorf("超预算应报子求解错误, 实际 %v", err)
	}
	ctx.Reset()
	if ctx.SubSolvesUsed() != 0 {
		t.Errorf("重置后预算未清零")
	}
}

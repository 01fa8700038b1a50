package component

import (
	"turbofan/graph"
	"turbofan/thermo"
	"turbofan/types"
)

// source 测试用流动源
type source struct {
	name string
	fs   types.FlowState
	out  graph.FlowID
}

func (s *source) Name() string { return s.name }
func (s *source) Evaluate(ctx *graph.Context) error {
	ctx.SetFlow(s.out, s.fs)
	return nil
}

func newSource(b *graph.Builder, name string, fs types.FlowState) *source {
	s := &source{name: name, fs: fs}
	b.Add(s)
	s.out = b.FlowOut(s)
	return s
}

// scalarSource 测试用标量源
type scalarSource struct {
	name string
	v    float64
	out  graph.ScalarID
}

func (s *scalarSource) Name() string { return s.name }
func (s *scalarSource) Evaluate(ctx *graph.Context) error {
	ctx.SetScalar(s.out, s.v)
	return nil
}

func newScalarSource(b *graph.Builder, name string, v float64) *scalarSource {
	s := &scalarSource{name: name, v: v}
	b.Add(s)
	s.out = b.ScalarOut(s)
	return s
}

// flowAt 构造焓值自洽的总参数流动状态
func flowAt(g thermo.Gas, tt, pt, w, far float64) types.FlowState {
	gas := types.Composition{FAR: far}
	return types.FlowState{Tt: tt, Pt: pt, Ht: g.Enthalpy(tt, gas), W: w, Gas: gas}
}

// mustBuild 装配并评估, 失败即测试终止
func mustBuild(b *graph.Builder) (*graph.Graph, *graph.Context, error) {
	g, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	ctx := g.NewContext(types.MaxSubSolves)
	return g, ctx, g.Evaluate(ctx)
}

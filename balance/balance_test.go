package balance

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turbofan/graph"
	"turbofan/types"
)

// paramNode 测试用元件: 输出等于参数平方
type paramNode struct {
	name string
	X    float64
	out  graph.ScalarID
}

func (n *paramNode) Name() string { return n.name }
func (n *paramNode) Evaluate(ctx *graph.Context) error {
	ctx.SetScalar(n.out, n.X*n.X)
	return nil
}

func buildSquare(t *testing.T) (*graph.Graph, *paramNode) {
	t.Helper()
	b := graph.NewBuilder()
	n := &paramNode{name: "sq"}
	b.Add(n)
	n.out = b.ScalarOut(n)
	g, err := b.Build()
	require.NoError(t, err)
	return g, n
}

func TestRegisterValidation(t *testing.T) {
	g, n := buildSquare(t)
	s := NewSet(g)

	require.NoError(t, s.Register(Def{
		Name: "x", Init: 1, Lower: 0, Upper: 10,
		Lhs: n.out, Rhs: Constant(4),
		Apply: func(v float64) { n.X = v },
	}))
	// 重名
	err := s.Register(Def{Name: "x", Lhs: n.out, Rhs: Constant(0), Apply: func(float64) {}})
	assert.ErrorIs(t, err, types.ErrConfig)
	// 缺绑定
	err = s.Register(Def{Name: "y", Lhs: n.out, Rhs: Constant(0)})
	assert.ErrorIs(t, err, types.ErrConfig)
	// 探针不存在
	err = s.Register(Def{Name: "z", Lhs: graph.ScalarID(99), Rhs: Constant(0), Apply: func(float64) {}})
	assert.ErrorIs(t, err, types.ErrConfig)
	// 边界非法
	err = s.Register(Def{Name: "w", Lower: 5, Upper: 2, Lhs: n.out, Rhs: Constant(0), Apply: func(float64) {}})
	assert.ErrorIs(t, err, types.ErrConfig)
}

func TestResidualEvaluation(t *testing.T) {
	g, n := buildSquare(t)
	s := NewSet(g)
	require.NoError(t, s.Register(Def{
		Name: "x", Init: 3, Lower: 0, Upper: 10,
		Lhs: n.out, Rhs: Constant(4), ResRef: 2, Tol: 1e-9,
		Apply: func(v float64) { n.X = v },
	}))

	ctx := g.NewContext(10)
	require.NoError(t, g.Evaluate(ctx))
	res := s.Residuals(ctx)
	// (9 - 4) / 2
	assert.InDelta(t, 2.5, res[0], 1e-12)
	assert.False(t, s.WithinTolerance(res))

	// 解处残差为零
	s.SetValues([]float64{2})
	require.NoError(t, g.Evaluate(ctx))
	res = s.Residuals(ctx)
	assert.InDelta(t, 0, res[0], 1e-12)
	assert.True(t, s.WithinTolerance(res))
}

func TestMultiplier(t *testing.T) {
	g, n := buildSquare(t)
	s := NewSet(g)
	require.NoError(t, s.Register(Def{
		Name: "x", Init: 2, Lower: 0, Upper: 10, Mult: -1,
		Lhs: n.out, Rhs: Constant(-4),
		Apply: func(v float64) { n.X = v },
	}))
	ctx := g.NewContext(10)
	require.NoError(t, g.Evaluate(ctx))
	// lhs - rhs*mult = 4 - (-4)(-1) = 0
	assert.InDelta(t, 0, s.Residuals(ctx)[0], 1e-12)
}

func TestSetConstant(t *testing.T) {
	g, n := buildSquare(t)
	s := NewSet(g)
	require.NoError(t, s.Register(Def{
		Name: "x", Init: 1, Lower: 0, Upper: 10,
		Lhs: n.out, Rhs: Constant(4),
		Apply: func(v float64) { n.X = v },
	}))
	require.NoError(t, s.SetConstant("x", 9))
	ctx := g.NewContext(10)
	s.SetValues([]float64{3})
	require.NoError(t, g.Evaluate(ctx))
	assert.InDelta(t, 0, s.Residuals(ctx)[0], 1e-12)

	assert.Error(t, s.SetConstant("nope", 1))
}

// 钳位性质: 任意输入向量经 SetValues 后当前值不越界
func TestClampProperty(t *testing.T) {
	g, n := buildSquare(t)
	s := NewSet(g)
	require.NoError(t, s.Register(Def{
		Name: "x", Init: 1, Lower: 0.5, Upper: 8,
		Lhs: n.out, Rhs: Constant(4),
		Apply: func(v float64) { n.X = v },
	}))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	properties.Property("钳位后取值不越界", prop.ForAll(
		func(x float64) bool {
			s.SetValues([]float64{x})
			v, _ := s.Value("x")
			return v >= 0.5 && v <= 8 && n.X == v
		},
		gen.Float64Range(-1e6, 1e6),
	))
	properties.TestingRun(t)
}

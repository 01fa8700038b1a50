// Package graph 实现静态检查的元件图。
// 端口在装配期由 Builder 分配为整型索引，连接在 Build 时校验：
// 每个输入端口恰有一个生产者，生产者必须先于消费者注册，
// 由此注册顺序即为确定的求解评估顺序，运行期不再做名字查找。
// 平衡未知量引入的代数环不进入图本身：图只做给定未知量下的
// 单向前向评估，外层由求解器做不动点迭代。
package graph

import (
	"fmt"

	"turbofan/types"
)

// FlowID 流端口索引
type FlowID int

// ScalarID 标量端口索引
type ScalarID int

// FlowIn 流输入端口
// 由元件构造时向 Builder 申请，装配时绑定上游输出
type FlowIn struct {
	id    FlowID
	owner int
}

// ID 绑定的流索引
func (in *FlowIn) ID() FlowID { return in.id }

// ScalarIn 标量输入端口
type ScalarIn struct {
	id    ScalarID
	owner int
}

// ID 绑定的标量索引
func (in *ScalarIn) ID() ScalarID { return in.id }

// Node 元件节点接口
// 每个元件是声明输入到声明输出的纯变换
type Node interface {
	Name() string
	Evaluate(ctx *Context) error
}

// Builder 图装配器
// 记录第一个装配错误，全部错误在 Build 时统一返回
type Builder struct {
	nodes     []Node
	nodeIndex map[string]int

	flowOwner []int // 流索引 -> 生产节点序号
	flowIns   []*FlowIn
	scOwner   []int // 标量索引 -> 生产节点序号
	scIns     []*ScalarIn

	err error
}

// NewBuilder 创建装配器
func NewBuilder() *Builder {
	return &Builder{nodeIndex: map[string]int{}}
}

// fail 记录首个装配错误
func (b *Builder) fail(format string, a ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: "+format, append([]any{types.ErrConfig}, a...)...)
	}
}

// Add 注册元件节点，注册顺序即评估顺序
func (b *Builder) Add(n Node) {
	if _, ok := b.nodeIndex[n.Name()]; ok {
		b.fail("元件重复注册: %s", n.Name())
		return
	}
	b.nodeIndex[n.Name()] = len(b.nodes)
	b.nodes = append(b.nodes, n)
}

// index 查询已注册元件序号
func (b *Builder) index(n Node) int {
	i, ok := b.nodeIndex[n.Name()]
	if !ok || b.nodes[i] != n {
		b.fail("端口属主未注册: %s", n.Name())
		return types.PortUnbound
	}
	return i
}

// FlowOut 为元件分配一个流输出端口
func (b *Builder) FlowOut(owner Node) FlowID {
	id := FlowID(len(b.flowOwner))
	b.flowOwner = append(b.flowOwner, b.index(owner))
	return id
}

// FlowInput 为元件声明一个流输入端口
func (b *Builder) FlowInput(owner Node) *FlowIn {
	in := &FlowIn{id: types.PortUnbound, owner: b.index(owner)}
	b.flowIns = append(b.flowIns, in)
	return in
}

// ScalarOut 为元件分配一个标量输出端口
func (b *Builder) ScalarOut(owner Node) ScalarID {
	id := ScalarID(len(b.scOwner))
	b.scOwner = append(b.scOwner, b.index(owner))
	return id
}

// ScalarInput 为元件声明一个标量输入端口
func (b *Builder) ScalarInput(owner Node) *ScalarIn {
	in := &ScalarIn{id: types.PortUnbound, owner: b.index(owner)}
	b.scIns = append(b.scIns, in)
	return in
}

// Connect 连接流输出到流输入
// 输入端口扇入恒为1，重复连接是装配错误
func (b *Builder) Connect(src FlowID, dst *FlowIn) {
	if dst == nil {
		b.fail("连接目标流端口为空")
		return
	}
	if dst.id != types.PortUnbound {
		b.fail("流输入端口重复连接(扇入必须为1): 节点%d", dst.owner)
		return
	}
	if int(src) < 0 || int(src) >= len(b.flowOwner) {
		b.fail("连接源流端口不存在: %d", src)
		return
	}
	dst.id = src
}

// Bind 连接标量输出到标量输入
func (b *Builder) Bind(src ScalarID, dst *ScalarIn) {
	if dst == nil {
		b.fail("连接目标标量端口为空")
		return
	}
	if dst.id != types.PortUnbound {
		b.fail("标量输入端口重复连接: 节点%d", dst.owner)
		return
	}
	if int(src) < 0 || int(src) >= len(b.scOwner) {
		b.fail("连接源标量端口不存在: %d", src)
		return
	}
	dst.id = src
}

// Build 完成装配
// 校验: 无悬空输入端口, 每个输入的生产者先于消费者(拓扑顺序成立)
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, in := range b.flowIns {
		if in.id == types.PortUnbound {
			return nil, fmt.Errorf("%w: 悬空流输入端口: %s", types.ErrConfig, b.nodes[in.owner].Name())
		}
		if b.flowOwner[in.id] >= in.owner {
			return nil, fmt.Errorf("%w: 流连接违反评估顺序: %s <- %s",
				types.ErrConfig, b.nodes[in.owner].Name(), b.nodes[b.flowOwner[in.id]].Name())
		}
	}
	for _, in := range b.scIns {
		if in.id == types.PortUnbound {
			return nil, fmt.Errorf("%w: 悬空标量输入端口: %s", types.ErrConfig, b.nodes[in.owner].Name())
		}
		if b.scOwner[in.id] >= in.owner {
			return nil, fmt.Errorf("%w: 标量连接违反评估顺序: %s <- %s",
				types.ErrConfig, b.nodes[in.owner].Name(), b.nodes[b.scOwner[in.id]].Name())
		}
	}
	return &Graph{nodes: b.nodes, nFlows: len(b.flowOwner), nScalars: len(b.scOwner)}, nil
}

// Graph 已装配的元件图
type Graph struct {
	nodes    []Node
	nFlows   int
	nScalars int
}

// NumScalars 标量端口数量
func (g *Graph) NumScalars() int { return g.nScalars }

// ScalarValid 校验标量索引是否存在
func (g *Graph) ScalarValid(id ScalarID) bool {
	return int(id) >= 0 && int(id) < g.nScalars
}

// NewContext 创建一次评估的上下文
func (g *Graph) NewContext(subBudget int) *Context {
	return &Context{
		flows:     make([]types.FlowState, g.nFlows),
		flowSet:   make([]bool, g.nFlows),
		scalars:   make([]float64, g.nScalars),
		scalarSet: make([]bool, g.nScalars),
		subBudget: subBudget,
	}
}

// Evaluate 按固定拓扑顺序评估全图
// 任一元件失败即中止并返回评估错误，由求解器按无穷残差回退
func (g *Graph) Evaluate(ctx *Context) error {
	ctx.Reset()
	for _, n := range g.nodes {
		if err := n.Evaluate(ctx); err != nil {
			return fmt.Errorf("元件 %s 评估失败: %w", n.Name(), err)
		}
	}
	return nil
}

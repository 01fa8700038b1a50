// Package turbofan 装配齿轮传动双转子分排喷管涡扇的热力循环模型。
// 部件图按拓扑顺序前向评估, 跨部件的代数耦合(轴功率、几何匹配、
// 匹配目标)全部表达为平衡方程, 由牛顿求解器整体闭合。
// 设计点解出喷管喉道面积与特性图定标, 非设计点继承设计几何,
// 以轴能量守恒与推力需求重新配平。
package turbofan

import (
	"fmt"

	"turbofan/balance"
	"turbofan/cmap"
	"turbofan/component"
	"turbofan/config"
	"turbofan/graph"
	"turbofan/solver"
	"turbofan/thermo"
	"turbofan/types"
)

// engineMaps 全机特性图组
// 设计点定标后由各非设计点共享读取
type engineMaps struct {
	fan cmap.CompressorMap
	lpc cmap.CompressorMap
	hpc cmap.CompressorMap
	hpt cmap.TurbineMap
	lpt cmap.TurbineMap
}

func newEngineMaps() *engineMaps {
	return &engineMaps{
		fan: cmap.NewCompressorMap(false),
		lpc: cmap.NewCompressorMap(false),
		hpc: cmap.NewCompressorMap(false),
		hpt: cmap.NewTurbineMap(false),
		lpt: cmap.NewTurbineMap(false),
	}
}

// CyclePoint 一个循环工况点
// 持有完整的部件图、平衡集与求解结果; 只支持串行使用
type CyclePoint struct {
	Name   string
	Design bool

	g   *graph.Graph
	set *balance.Set
	opt solver.Options
	gas thermo.Gas

	fc       *component.FlightConditions
	inlet    *component.Inlet
	fan      *component.Compressor
	splitter *component.Splitter
	lpc      *component.Compressor
	hpc      *component.Compressor
	hpcExit  *component.BleedOut
	burner   *component.Burner
	hpt      *component.Turbine
	lpt      *component.Turbine
	coreNozz *component.Nozzle
	bypNozz  *component.Nozzle
	gearbox  *component.Gearbox
	fanShaft *component.Shaft
	lpShaft  *component.Shaft
	hpShaft  *component.Shaft
	oprComp  *component.PRProduct
	vrComp   *component.VelocityRatio
	perf     *component.Performance

	Report *types.SolveReport
	ctx    *graph.Context
}

// buildGraph 装配全机部件图
// 核心流路: 飞行条件→进气道→风扇→分流器→低压压气机→高压压气机
// →出口引气→燃烧室→高压涡轮→低压涡轮→核心喷管;
// 外涵流路: 分流器→外涵管道→外涵喷管。
// 低压涡轮冷却气取自高压压气机级间, 高压涡轮冷却气取自其出口。
func (p *CyclePoint) buildGraph(cfg *config.Config, maps *engineMaps) error {
	b := graph.NewBuilder()
	cc := &cfg.Components

	p.fc = component.NewFlightConditions(b, "flight_cond", p.gas)
	p.fc.Alt, p.fc.MN = cfg.Flight.Alt, cfg.Flight.MN

	p.inlet = component.NewInlet(b, "inlet")
	p.inlet.Recovery = cc.InletRecovery
	b.Connect(p.fc.FlOut, p.inlet.FlIn)

	p.fan = component.NewCompressor(b, "fan", p.gas, maps.fan, nil)
	p.fan.Design = p.Design
	p.fan.Eff = cc.Fan.Eff
	p.fan.Nmech = cc.LPNmech / cc.Gear.Ratio
	b.Connect(p.inlet.FlOut, p.fan.FlIn)

	p.splitter = component.NewSplitter(b, "splitter")
	p.splitter.BPR = cfg.Guesses.BPR
	b.Connect(p.fan.FlOut, p.splitter.FlIn)

	ductLPC := component.NewDuct(b, "duct_lpc_inlet")
	ductLPC.DPqP = cc.Ducts.LPCInlet
	b.Connect(p.splitter.FlOutCore, ductLPC.FlIn)

	p.lpc = component.NewCompressor(b, "lp_compressor", p.gas, maps.lpc, nil)
	p.lpc.Design = p.Design
	p.lpc.Eff = cc.LPC.Eff
	p.lpc.Nmech = cc.LPNmech
	b.Connect(ductLPC.FlOut, p.lpc.FlIn)

	ductHPC := component.NewDuct(b, "duct_hpc_inlet")
	ductHPC.DPqP = cc.Ducts.HPCInlet
	b.Connect(p.lpc.FlOut, ductHPC.FlIn)

	lptVanes := &component.CompressorBleed{
		Name:  "lpt_vanes_cool",
		FracW: cc.LPTVanesCool.FracW, FracWork: cc.LPTVanesCool.FracWork, FracP: cc.LPTVanesCool.FracP,
	}
	lptBlades := &component.CompressorBleed{
		Name:  "lpt_blades_cool",
		FracW: cc.LPTBladesCool.FracW, FracWork: cc.LPTBladesCool.FracWork, FracP: cc.LPTBladesCool.FracP,
	}
	p.hpc = component.NewCompressor(b, "hp_compressor", p.gas, maps.hpc,
		[]*component.CompressorBleed{lptVanes, lptBlades})
	p.hpc.Design = p.Design
	p.hpc.PR = cc.HPC.PR
	p.hpc.Eff = cc.HPC.Eff
	p.hpc.Nmech = cc.HPNmech
	b.Connect(ductHPC.FlOut, p.hpc.FlIn)

	hptVanes := &component.BleedOutPort{Name: "hpt_vanes_cool", FracW: cc.HPTVanesCool.FracW}
	hptBlades := &component.BleedOutPort{Name: "hpt_blades_cool", FracW: cc.HPTBladesCool.FracW}
	p.hpcExit = component.NewBleedOut(b, "bleed_hpc_exit",
		[]*component.BleedOutPort{hptVanes, hptBlades})
	b.Connect(p.hpc.FlOut, p.hpcExit.FlIn)

	p.burner = component.NewBurner(b, "burner", p.gas)
	p.burner.FAR = cfg.Guesses.FAR
	p.burner.DPqP = cc.Burner.DPqP
	p.burner.LHV = cc.Burner.LHV
	p.burner.EffComb = cc.Burner.EffComb
	b.Connect(p.hpcExit.FlOut, p.burner.FlIn)

	// 高压涡轮: 导叶冷却气入口掺混(做功), 动叶冷却气出口掺混
	hptVanesIn := &component.TurbineBleed{Name: "hpt_vanes", FracP: 1}
	hptBladesIn := &component.TurbineBleed{Name: "hpt_blades", FracP: 0}
	p.hpt = component.NewTurbine(b, "hp_turbine", p.gas, maps.hpt,
		[]*component.TurbineBleed{hptVanesIn, hptBladesIn})
	p.hpt.Design = p.Design
	p.hpt.Eff = cc.HPT.Eff
	p.hpt.Nmech = cc.HPNmech
	p.hpt.PR = cfg.Guesses.HPTPR
	b.Connect(p.burner.FlOut, p.hpt.FlIn)
	b.Connect(hptVanes.FlOut, hptVanesIn.FlIn)
	b.Connect(hptBlades.FlOut, hptBladesIn.FlIn)

	ductLPT := component.NewDuct(b, "duct_lpt_inlet")
	ductLPT.DPqP = cc.Ducts.LPTInlet
	b.Connect(p.hpt.FlOut, ductLPT.FlIn)

	lptVanesIn := &component.TurbineBleed{Name: "lpt_vanes", FracP: 1}
	lptBladesIn := &component.TurbineBleed{Name: "lpt_blades", FracP: 0}
	p.lpt = component.NewTurbine(b, "lp_turbine", p.gas, maps.lpt,
		[]*component.TurbineBleed{lptVanesIn, lptBladesIn})
	p.lpt.Design = p.Design
	p.lpt.Eff = cc.LPT.Eff
	p.lpt.Nmech = cc.LPNmech
	p.lpt.PR = cfg.Guesses.LPTPR
	b.Connect(ductLPT.FlOut, p.lpt.FlIn)
	b.Connect(lptVanes.FlOut, lptVanesIn.FlIn)
	b.Connect(lptBlades.FlOut, lptBladesIn.FlIn)

	ductCore := component.NewDuct(b, "duct_core_outlet")
	ductCore.DPqP = cc.Ducts.CoreOutlet
	b.Connect(p.lpt.FlOut, ductCore.FlIn)

	p.coreNozz = component.NewNozzle(b, "core_nozzle", p.gas)
	b.Connect(ductCore.FlOut, p.coreNozz.FlIn)
	b.Bind(p.fc.PsOut, p.coreNozz.PsIn)

	ductBP := component.NewDuct(b, "duct_bp")
	ductBP.DPqP = cc.Ducts.Bypass
	b.Connect(p.splitter.FlOutByp, ductBP.FlIn)

	p.bypNozz = component.NewNozzle(b, "bypass_nozzle", p.gas)
	b.Connect(ductBP.FlOut, p.bypNozz.FlIn)
	b.Bind(p.fc.PsOut, p.bypNozz.PsIn)

	// 传动链: 风扇轴经齿轮箱挂到低压轴
	p.gearbox = component.NewGearbox(b, "fan_gearbox")
	p.gearbox.Ratio = cc.Gear.Ratio
	p.gearbox.Eff = cc.Gear.Eff
	b.Bind(p.fan.Trq, p.gearbox.TrqIn)

	p.fanShaft = component.NewShaft(b, "fan_shaft", 2)
	p.fanShaft.Nmech = cc.LPNmech / cc.Gear.Ratio
	b.Bind(p.fan.Trq, p.fanShaft.Trq[0])
	b.Bind(p.gearbox.TrqToFan, p.fanShaft.Trq[1])

	p.lpShaft = component.NewShaft(b, "lp_shaft", 3)
	p.lpShaft.Nmech = cc.LPNmech
	b.Bind(p.gearbox.TrqToLP, p.lpShaft.Trq[0])
	b.Bind(p.lpc.Trq, p.lpShaft.Trq[1])
	b.Bind(p.lpt.Trq, p.lpShaft.Trq[2])

	p.hpShaft = component.NewShaft(b, "hp_shaft", 2)
	p.hpShaft.Nmech = cc.HPNmech
	b.Bind(p.hpc.Trq, p.hpShaft.Trq[0])
	b.Bind(p.hpt.Trq, p.hpShaft.Trq[1])

	p.oprComp = component.NewPRProduct(b, "opr_comp")
	p.oprComp.HPCPR = cc.HPC.PR

	p.vrComp = component.NewVelocityRatio(b, "ideal_jet_velocity_ratio")
	b.Bind(p.bypNozz.Vexit, p.vrComp.V18)
	b.Bind(p.coreNozz.Vexit, p.vrComp.V8)

	p.perf = component.NewPerformance(b, "performance", 2)
	b.Connect(p.inlet.FlOut, p.perf.FlRef)
	b.Connect(p.hpc.FlOut, p.perf.FlHPC)
	b.Bind(p.burner.Wfuel, p.perf.Wfuel)
	b.Bind(p.inlet.RamDrag, p.perf.RamDrag)
	b.Bind(p.coreNozz.Fg, p.perf.Fg[0])
	b.Bind(p.bypNozz.Fg, p.perf.Fg[1])

	g, err := b.Build()
	if err != nil {
		return err
	}
	p.g = g
	return nil
}

// registerDesignBalances 设计点平衡集
// W↔内涵喷管面积, BPR↔外涵喷管面积, 风扇压比↔理想喷流速度比,
// 低压压比↔总压比, 油气比↔涡轮前温度, 两涡轮压比↔轴功率守恒
func (p *CyclePoint) registerDesignBalances(cfg *config.Config) error {
	reg := func(d balance.Def) error { return p.set.Register(d) }
	if err := reg(balance.Def{
		Name: "W", Init: cfg.Guesses.W, Lower: 1, Upper: 2000,
		Lhs: p.coreNozz.Area, Rhs: balance.Constant(cfg.Geometry.A8),
		Apply: func(x float64) { p.fc.W = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "BPR", Init: cfg.Guesses.BPR, Lower: 0.1, Upper: 40,
		Lhs: p.bypNozz.Area, Rhs: balance.Constant(cfg.Geometry.A18),
		Apply: func(x float64) { p.splitter.BPR = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "fan_PR", Init: cfg.Guesses.FanPR, Lower: 1.02, Upper: 2.5,
		Lhs: p.vrComp.VR, Rhs: balance.Constant(cfg.Targets.VR),
		Apply: func(x float64) { p.fan.PR = x; p.oprComp.FanPR = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "lpc_PR", Init: cfg.Guesses.LPCPR, Lower: 1.02, Upper: 10,
		Lhs: p.oprComp.OPR, Rhs: balance.Constant(cfg.Targets.OPR),
		Apply: func(x float64) { p.lpc.PR = x; p.oprComp.LPCPR = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "FAR", Init: cfg.Guesses.FAR, Lower: 1e-4, Upper: 0.06,
		Lhs: p.burner.TtOut, Rhs: balance.Constant(cfg.Targets.T4),
		Apply: func(x float64) { p.burner.FAR = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "hpt_PR", Init: cfg.Guesses.HPTPR, Lower: 1.001, Upper: 8, ResRef: 1e4,
		Lhs: p.hpShaft.PwrNet, Rhs: balance.Constant(0),
		Apply: func(x float64) { p.hpt.PR = x },
	}); err != nil {
		return err
	}
	return reg(balance.Def{
		Name: "lpt_PR", Init: cfg.Guesses.LPTPR, Lower: 1.001, Upper: 15, ResRef: 1e4,
		Lhs: p.lpShaft.PwrNet, Rhs: balance.Constant(0),
		Apply: func(x float64) { p.lpt.PR = x },
	})
}

// registerOffDesignBalances 非设计点平衡集
// W↔设计内涵喷管面积, BPR↔设计外涵喷管面积(几何继承),
// 油气比↔净推力需求(节流), 两轴转速↔轴能量守恒(产功=耗功,
// 乘子 −1)。涡轮压比保持设计值。
func (p *CyclePoint) registerOffDesignBalances(cfg *config.Config, pt config.OffPoint) error {
	cc := &cfg.Components
	reg := func(d balance.Def) error { return p.set.Register(d) }
	if err := reg(balance.Def{
		Name: "W", Init: cfg.Guesses.W, Lower: 1, Upper: 2000,
		Lhs: p.coreNozz.Area, Rhs: balance.Constant(cfg.Geometry.A8),
		Apply: func(x float64) { p.fc.W = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "FAR", Init: cfg.Guesses.FAR, Lower: 1e-4, Upper: 0.06,
		Lhs: p.perf.Fn, Rhs: balance.Constant(pt.Thrust), ResRef: 1e3,
		Apply: func(x float64) { p.burner.FAR = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "BPR", Init: cfg.Guesses.BPR, Lower: 0.1, Upper: 40,
		Lhs: p.bypNozz.Area, Rhs: balance.Constant(cfg.Geometry.A18),
		Apply: func(x float64) { p.splitter.BPR = x },
	}); err != nil {
		return err
	}
	if err := reg(balance.Def{
		Name: "lp_Nmech", Init: cc.LPNmech, Lower: 500, Mult: -1, ResRef: 1e4,
		Lhs: p.lpShaft.PwrIn, Rhs: balance.FromScalar(p.lpShaft.PwrOut),
		Apply: func(x float64) {
			p.lpc.Nmech, p.lpt.Nmech, p.lpShaft.Nmech = x, x, x
			p.fan.Nmech = x / cc.Gear.Ratio
			p.fanShaft.Nmech = x / cc.Gear.Ratio
		},
	}); err != nil {
		return err
	}
	return reg(balance.Def{
		Name: "hp_Nmech", Init: cc.HPNmech, Lower: 500, Mult: -1, ResRef: 1e4,
		Lhs: p.hpShaft.PwrIn, Rhs: balance.FromScalar(p.hpShaft.PwrOut),
		Apply: func(x float64) {
			p.hpc.Nmech, p.hpt.Nmech, p.hpShaft.Nmech = x, x, x
		},
	})
}

func solverOptions(cfg *config.Config) solver.Options {
	opt := solver.DefaultOptions()
	opt.MaxIter = cfg.Solver.MaxIter
	opt.Atol = cfg.Solver.Atol
	opt.Rtol = cfg.Solver.Rtol
	opt.LineSearchIter = cfg.Solver.LineSearchIter
	opt.Rho = cfg.Solver.Rho
	opt.SubSolves = cfg.Solver.SubSolves
	return opt
}

// newDesignPoint 装配设计点
func newDesignPoint(cfg *config.Config, maps *engineMaps) (*CyclePoint, error) {
	p := &CyclePoint{Name: "DESIGN", Design: true, gas: thermo.NewVariableGas(), opt: solverOptions(cfg)}
	if err := p.buildGraph(cfg, maps); err != nil {
		return nil, fmt.Errorf("设计点装配失败: %w", err)
	}
	p.set = balance.NewSet(p.g)
	if err := p.registerDesignBalances(cfg); err != nil {
		return nil, fmt.Errorf("设计点平衡注册失败: %w", err)
	}
	return p, nil
}

// newOffDesignPoint 装配非设计点
// 特性图组须已在设计点定标
func newOffDesignPoint(cfg *config.Config, pt config.OffPoint, maps *engineMaps) (*CyclePoint, error) {
	p := &CyclePoint{Name: pt.Name, gas: thermo.NewVariableGas(), opt: solverOptions(cfg)}
	ptCfg := *cfg
	ptCfg.Flight = config.Flight{Alt: pt.Alt, MN: pt.MN}
	if err := p.buildGraph(&ptCfg, maps); err != nil {
		return nil, fmt.Errorf("非设计点 %s 装配失败: %w", pt.Name, err)
	}
	p.set = balance.NewSet(p.g)
	if err := p.registerOffDesignBalances(cfg, pt); err != nil {
		return nil, fmt.Errorf("非设计点 %s 平衡注册失败: %w", pt.Name, err)
	}
	return p, nil
}

// Solve 求解本工况点并保留末次评估结果供读数
func (p *CyclePoint) Solve() error {
	p.Report = solver.New(p.g, p.set, p.opt).Solve()
	if !p.Report.Converged() {
		return fmt.Errorf("工况点 %s 未收敛: %w", p.Name, p.Report.Err)
	}
	// 以收敛解做一次干净评估, 读数与解一致
	p.ctx = p.g.NewContext(p.opt.SubSolves)
	p.set.SetValues(p.Report.Unknowns)
	if err := p.g.Evaluate(p.ctx); err != nil {
		return fmt.Errorf("工况点 %s 收敛解复算失败: %w", p.Name, err)
	}
	return nil
}

// Unknown 按名读取平衡未知量的当前值
func (p *CyclePoint) Unknown(name string) (float64, bool) {
	return p.set.Value(name)
}

// Summary 工况点读数汇总
type Summary struct {
	Point string
	MN    float64
	Alt   float64 // m
	W     float64 // kg/s
	Fn    float64 // N
	OPR   float64 // 测得 Pt3/Pt2
	TSFC  float64 // kg/s/N
	BPR   float64
	FAR   float64
	T4    float64 // K
	A8    float64 // m²
	A18   float64 // m²
	FanPR float64
	LPCPR float64
	HPTPR float64
	LPTPR float64
}

// Summarize 从收敛解提取汇总读数
func (p *CyclePoint) Summarize() (Summary, error) {
	if p.ctx == nil {
		return Summary{}, fmt.Errorf("%w: 工况点 %s 尚未求解", types.ErrConfig, p.Name)
	}
	return Summary{
		Point: p.Name,
		MN:    p.fc.MN,
		Alt:   p.fc.Alt,
		W:     p.fc.W,
		Fn:    p.ctx.Scalar(p.perf.Fn),
		OPR:   p.ctx.Scalar(p.perf.OPR),
		TSFC:  p.ctx.Scalar(p.perf.TSFC),
		BPR:   p.splitter.BPR,
		FAR:   p.burner.FAR,
		T4:    p.ctx.Scalar(p.burner.TtOut),
		A8:    p.ctx.Scalar(p.coreNozz.Area),
		A18:   p.ctx.Scalar(p.bypNozz.Area),
		FanPR: p.fan.PR,
		LPCPR: p.lpc.PR,
		HPTPR: p.hpt.PR,
		LPTPR: p.lpt.PR,
	}, nil
}

// Station 流路站位读数
type Station struct {
	Name string
	Flow types.FlowState
}

// Stations 从收敛解提取沿程各站位的流动状态(外部报表用)
func (p *CyclePoint) Stations() ([]Station, error) {
	if p.ctx == nil {
		return nil, fmt.Errorf("%w: 工况点 %s 尚未求解", types.ErrConfig, p.Name)
	}
	ids := []struct {
		name string
		id   graph.FlowID
	}{
		{"flight_cond", p.fc.FlOut},
		{"inlet", p.inlet.FlOut},
		{"fan", p.fan.FlOut},
		{"splitter_core", p.splitter.FlOutCore},
		{"splitter_byp", p.splitter.FlOutByp},
		{"lp_compressor", p.lpc.FlOut},
		{"hp_compressor", p.hpc.FlOut},
		{"bleed_hpc_exit", p.hpcExit.FlOut},
		{"burner", p.burner.FlOut},
		{"hp_turbine", p.hpt.FlOut},
		{"lp_turbine", p.lpt.FlOut},
		{"core_nozzle", p.coreNozz.FlOut},
		{"bypass_nozzle", p.bypNozz.FlOut},
	}
	out := make([]Station, len(ids))
	for i, s := range ids {
		out[i] = Station{Name: s.name, Flow: p.ctx.Flow(s.id)}
	}
	return out, nil
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"%-10s M%.2f alt=%.0fm W=%.2fkg/s Fn=%.0fN OPR=%.2f TSFC=%.3ekg/s/N BPR=%.3f FAR=%.5f T4=%.1fK",
		s.Point, s.MN, s.Alt, s.W, s.Fn, s.OPR, s.TSFC, s.BPR, s.FAR, s.T4)
}

// MultiPoint 多点装配
// 设计点求解 → 几何与特性图定标固化 → 各非设计点逐一求解
type MultiPoint struct {
	Cfg config.Config

	Design    *CyclePoint
	OffDesign []*CyclePoint

	maps *engineMaps
}

// NewMultiPoint 创建多点装配
func NewMultiPoint(cfg config.Config) (*MultiPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mp := &MultiPoint{Cfg: cfg, maps: newEngineMaps()}
	des, err := newDesignPoint(&mp.Cfg, mp.maps)
	if err != nil {
		return nil, err
	}
	mp.Design = des
	return mp, nil
}

// Run 求解设计点并把解出的几何、特性图定标与初值传递给各非设计点
func (mp *MultiPoint) Run() error {
	if err := mp.Design.Solve(); err != nil {
		return err
	}
	// 设计点收敛解处的几何与定标即为全机定义
	a8 := mp.Design.ctx.Scalar(mp.Design.coreNozz.Area)
	a18 := mp.Design.ctx.Scalar(mp.Design.bypNozz.Area)

	mp.OffDesign = mp.OffDesign[:0]
	for _, pt := range mp.Cfg.OffDesign {
		od, err := newOffDesignPoint(&mp.Cfg, pt, mp.maps)
		if err != nil {
			return err
		}
		// 涡轮压比保持设计值(堵塞假定)
		od.hpt.PR = mp.Design.hpt.PR
		od.lpt.PR = mp.Design.lpt.PR
		// 非设计几何配平目标取设计点实际解出的面积
		if err := od.set.SetConstant("W", a8); err != nil {
			return err
		}
		if err := od.set.SetConstant("BPR", a18); err != nil {
			return err
		}
		// 设计解作初值
		for _, init := range []struct {
			name string
			val  float64
		}{
			{"W", mp.Design.fc.W},
			{"FAR", mp.Design.burner.FAR},
			{"BPR", mp.Design.splitter.BPR},
		} {
			if err := od.set.SetInit(init.name, init.val); err != nil {
				return err
			}
		}
		if err := od.Solve(); err != nil {
			return err
		}
		mp.OffDesign = append(mp.OffDesign, od)
	}
	return nil
}

// Summaries 全部工况点读数
func (mp *MultiPoint) Summaries() ([]Summary, error) {
	out := make([]Summary, 0, 1+len(mp.OffDesign))
	s, err := mp.Design.Summarize()
	if err != nil {
		return nil, err
	}
	out = append(out, s)
	for _, od := range mp.OffDesign {
		s, err := od.Summarize()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

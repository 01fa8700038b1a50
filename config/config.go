// Package config 提供发动机装配与求解的参数配置。
// YAML 载入, 结构体标签声明校验规则, Default 给出基线机参数。
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"turbofan/types"
)

var validate = validator.New()

// Flight 飞行条件
type Flight struct {
	Alt float64 `yaml:"alt" validate:"gte=0,lte=30000"` // 几何高度 [m]
	MN  float64 `yaml:"mn" validate:"gte=0,lt=3"`       // 飞行马赫数
}

// Targets 设计点匹配目标
type Targets struct {
	T4  float64 `yaml:"t4" validate:"gt=400,lte=2400"` // 涡轮前总温 [K]
	OPR float64 `yaml:"opr" validate:"gt=1,lte=100"`   // 总增压比
	VR  float64 `yaml:"vr" validate:"gt=0,lt=2"`       // 理想喷流速度比 v18/v8
}

// Geometry 喷管出口几何目标
type Geometry struct {
	A8  float64 `yaml:"a8" validate:"gt=0"`  // 内涵喷管喉道面积 [m²]
	A18 float64 `yaml:"a18" validate:"gt=0"` // 外涵喷管喉道面积 [m²]
}

// CompressorSpec 压气机设计参数
type CompressorSpec struct {
	PR  float64 `yaml:"pr" validate:"omitempty,gt=1"` // 设计压比(平衡未知量时忽略)
	Eff float64 `yaml:"eff" validate:"gt=0.5,lt=1"`   // 设计等熵效率
}

// TurbineSpec 涡轮设计参数
type TurbineSpec struct {
	Eff float64 `yaml:"eff" validate:"gt=0.5,lt=1"`
}

// BleedSpec 引气份额
type BleedSpec struct {
	FracW    float64 `yaml:"frac_w" validate:"gte=0,lt=1"`    // 质量流量份额
	FracWork float64 `yaml:"frac_work" validate:"gte=0,lte=1"` // 抽气位置的做功份额
	FracP    float64 `yaml:"frac_p" validate:"gte=0,lte=1"`    // 抽气位置的增压份额
}

// Ducts 各站位管道总压损失 dP/P
type Ducts struct {
	LPCInlet   float64 `yaml:"lpc_inlet" validate:"gte=0,lt=1"`
	HPCInlet   float64 `yaml:"hpc_inlet" validate:"gte=0,lt=1"`
	LPTInlet   float64 `yaml:"lpt_inlet" validate:"gte=0,lt=1"`
	CoreOutlet float64 `yaml:"core_outlet" validate:"gte=0,lt=1"`
	Bypass     float64 `yaml:"bypass" validate:"gte=0,lt=1"`
}

// Burner 燃烧室参数
type Burner struct {
	DPqP    float64 `yaml:"dpqp" validate:"gte=0,lt=1"`
	EffComb float64 `yaml:"eff_comb" validate:"gt=0.8,lte=1"`
	LHV     float64 `yaml:"lhv" validate:"gt=1e7"` // 燃料低热值 [J/kg]
}

// Gear 风扇减速器
type Gear struct {
	Ratio float64 `yaml:"ratio" validate:"gte=1"` // 低压轴转速 / 风扇转速
	Eff   float64 `yaml:"eff" validate:"gt=0.9,lte=1"`
}

// Components 部件参数
type Components struct {
	InletRecovery float64        `yaml:"inlet_recovery" validate:"gt=0,lte=1"`
	Fan           CompressorSpec `yaml:"fan"`
	LPC           CompressorSpec `yaml:"lpc"`
	HPC           CompressorSpec `yaml:"hpc" validate:"required"`
	Burner        Burner         `yaml:"burner"`
	HPT           TurbineSpec    `yaml:"hpt"`
	LPT           TurbineSpec    `yaml:"lpt"`
	Ducts         Ducts          `yaml:"ducts"`
	Gear          Gear           `yaml:"gear"`
	LPNmech       float64        `yaml:"lp_nmech" validate:"gt=0"` // 低压轴设计转速 [rpm]
	HPNmech       float64        `yaml:"hp_nmech" validate:"gt=0"` // 高压轴设计转速 [rpm]

	// 低压涡轮冷却气: 高压压气机中段抽气
	LPTVanesCool  BleedSpec `yaml:"lpt_vanes_cool"`
	LPTBladesCool BleedSpec `yaml:"lpt_blades_cool"`
	// 高压涡轮冷却气: 高压压气机出口抽气
	HPTVanesCool  BleedSpec `yaml:"hpt_vanes_cool"`
	HPTBladesCool BleedSpec `yaml:"hpt_blades_cool"`
}

// Guesses 平衡未知量初值
type Guesses struct {
	W     float64 `yaml:"w" validate:"gt=0"`
	BPR   float64 `yaml:"bpr" validate:"gt=0"`
	FanPR float64 `yaml:"fan_pr" validate:"gt=1"`
	LPCPR float64 `yaml:"lpc_pr" validate:"gt=1"`
	HPTPR float64 `yaml:"hpt_pr" validate:"gt=1"`
	LPTPR float64 `yaml:"lpt_pr" validate:"gt=1"`
	FAR   float64 `yaml:"far" validate:"gt=0,lt=0.06"`
}

// Solver 求解选项
type Solver struct {
	MaxIter        int     `yaml:"max_iter" validate:"gt=0"`
	Atol           float64 `yaml:"atol" validate:"gt=0"`
	Rtol           float64 `yaml:"rtol" validate:"gt=0"`
	LineSearchIter int     `yaml:"line_search_iter" validate:"gt=0"`
	Rho            float64 `yaml:"rho" validate:"gt=0,lt=1"`
	SubSolves      int     `yaml:"sub_solves" validate:"gt=0"`
}

// OffPoint 非设计工况点
type OffPoint struct {
	Name   string  `yaml:"name" validate:"required"`
	Alt    float64 `yaml:"alt" validate:"gte=0,lte=30000"`
	MN     float64 `yaml:"mn" validate:"gte=0,lt=3"`
	Thrust float64 `yaml:"thrust" validate:"gt=0"` // 净推力需求 [N]
}

// Config 总配置
type Config struct {
	Flight     Flight     `yaml:"flight"`
	Targets    Targets    `yaml:"targets"`
	Geometry   Geometry   `yaml:"geometry"`
	Components Components `yaml:"components"`
	Guesses    Guesses    `yaml:"guesses"`
	Solver     Solver     `yaml:"solver"`
	OffDesign  []OffPoint `yaml:"off_design" validate:"dive"`
}

// Default 基线机配置
// 巡航 10668 m / M0.8, OPR 50, T4 1700 K, 齿轮传动分排喷管
func Default() Config {
	return Config{
		Flight: Flight{Alt: 10668, MN: 0.8},
		Targets: Targets{T4: 1700, OPR: 50, VR: 0.8},
		Geometry: Geometry{A8: 0.37809, A18: 2.41186},
		Components: Components{
			InletRecovery: 0.996,
			Fan:           CompressorSpec{Eff: 0.9},
			LPC:           CompressorSpec{PR: 2.586, Eff: 0.88},
			HPC:           CompressorSpec{PR: 15, Eff: 0.85},
			Burner:        Burner{DPqP: 0.04, EffComb: 0.995, LHV: 43e6},
			HPT:           TurbineSpec{Eff: 0.91},
			LPT:           TurbineSpec{Eff: 0.92},
			Ducts: Ducts{
				LPCInlet:   0.02,
				HPCInlet:   0.015,
				LPTInlet:   0,
				CoreOutlet: 0.01001,
				Bypass:     0.03,
			},
			Gear:    Gear{Ratio: 3.1, Eff: 1.0},
			LPNmech: 4666,
			HPNmech: 14705,

			LPTVanesCool:  BleedSpec{FracW: 0.03333, FracWork: 0.23, FracP: 0.22477},
			LPTBladesCool: BleedSpec{FracW: 0.00667, FracWork: 0.23, FracP: 0.22477},
			HPTVanesCool:  BleedSpec{FracW: 0.16},
			HPTBladesCool: BleedSpec{FracW: 0.09},
		},
		Guesses: Guesses{
			W: 100, BPR: 15, FanPR: 1.3, LPCPR: 3.0,
			HPTPR: 3.0, LPTPR: 4.0, FAR: 0.025,
		},
		Solver: Solver{
			MaxIter:        types.MaxIterations,
			Atol:           types.AbsTolerance,
			Rtol:           types.RelTolerance,
			LineSearchIter: types.MaxLineSearchIter,
			Rho:            types.LineSearchRho,
			SubSolves:      types.MaxSubSolves,
		},
		OffDesign: []OffPoint{
			{Name: "OD_Thrust", Alt: 10668, MN: 0.8, Thrust: 27000},
		},
	}
}

// Validate 配置校验
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	return nil
}

// Load 读取 YAML 配置文件并与基线默认值合并
// 文件中未出现的字段保持 Default 取值
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("%w: 读取配置失败: %v", types.ErrConfig, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: 解析配置失败: %v", types.ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

package types

// 默认端口常量定义
const (
	PortUnbound = -1 // 端口未连接标记
)

// 默认求解参数常量定义
var (
	AbsTolerance        = 1e-8  // 残差绝对收敛容差
	RelTolerance        = 1e-99 // 残差相对收敛容差(实际由绝对容差主导)
	MaxIterations       = 50    // 最大外层迭代次数
	MaxSubSolves        = 1000  // 单次评估的子求解预算
	MaxLineSearchIter   = 3     // 线搜索最大回退次数
	LineSearchRho       = 0.75  // 线搜索步长回退系数
	MaxOscillationCount = 8     // 最大震荡次数
	DefaultFDStep       = 1e-6  // 雅可比差分步长(相对)
)

package types

import "errors"

// 错误分类定义
// 装配错误在求解开始前即为致命错误；评估错误在线搜索内部按无穷残差回退处理；
// 奇异错误允许一次扰动重试，重复出现按发散终止。
var (
	ErrConfig     = errors.New("装配配置错误")
	ErrEvaluation = errors.New("评估失败")
	ErrSubSolve   = errors.New("子求解预算耗尽")
	ErrSingular   = errors.New("雅可比矩阵奇异")
)

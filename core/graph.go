package core

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/conv"
)

// Row 是图查询返回的一行记录：列名 -> 值。
// 取数一律走 Float/String 兜底方法：图里的商品数据质量参差，
// 缺 price/rating 的行按 0 处理而不是丢弃（下游多样性分桶需要价格值）。
type Row map[string]any

// Float 读取数值列，缺失或类型不符时返回 0。
func (r Row) Float(key string) float64 {
	f, _ := conv.ToFloat64(r[key])
	return f
}

// Int 读取整数列，缺失或类型不符时返回 0。
func (r Row) Int(key string) int {
	n, _ := conv.ToInt(r[key])
	return n
}

// String 读取字符串列，缺失或类型不符时返回 ""。
func (r Row) String(key string) string {
	s, _ := conv.ToString(r[key])
	return s
}

// GraphStore 是图存储的领域接口：执行参数化图查询并返回行集合。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 本引擎只做只读查询，不会通过此接口写图
//   - 连接池、会话并发上限等是实现方的职责
//
// 实现：
//   - store.Neo4jStore 实现此接口（生产）
//   - 测试里用按查询文本分发的 fake 实现
type GraphStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Run 执行一条参数化查询，返回全部结果行。
	// 存储不可用时应返回 Module=graph、Code=UNAVAILABLE 的 DomainError，
	// 召回源据此降级为空列表而不是让整个请求失败。
	Run(ctx context.Context, query string, params map[string]any) ([]Row, error)

	// Close 关闭连接/释放资源
	Close(ctx context.Context) error
}

// Graph 错误定义
var (
	// ErrGraphUnavailable 表示图存储不可达或查询失败
	ErrGraphUnavailable = NewDomainError(ModuleGraph, ErrorCodeUnavailable, "graph: store unavailable")
)

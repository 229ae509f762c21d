package filter

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// Filter 是过滤器的抽象接口，判断一个候选是否应该被剔除。
// 返回 true 表示剔除，false 表示保留。
// 注意：已购商品的排除不在这里做——那是各召回源查询谓词的职责；
// 过滤阶段处理的是运营约束（下架、黑名单、规则）。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被剔除
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

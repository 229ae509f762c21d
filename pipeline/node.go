package pipeline

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// Kind 用于标记 Node 类型，方便观测/治理（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindRank        Kind = "rank"        // 混排阶段：位次归一化 + 加权聚合
	KindReRank      Kind = "rerank"      // 重排阶段：多样性约束/截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：属性补齐、解释标注
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态：召回生成、过滤剔除、
// 混排聚合、重排筛选都是同一形态的变换。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

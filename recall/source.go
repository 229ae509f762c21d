package recall

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/utils"
)

// Source 表示一个可复用的召回源（协同过滤/内容/图遍历/趋势/...）。
// 每个源都是 (customer, fanout) -> 有序候选列表的纯函数：
// 不跨请求持有状态，只读图存储，列表在查询边界就按扇出上限截断。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// 混排阶段依赖的位次特征，由 Fanout 在合并前写入每个候选。
const (
	FeatureRank = "recall_rank" // 候选在所属召回列表中的位次（0 起）
	FeatureSize = "recall_size" // 所属召回列表的长度
)

// LabelSource 记录候选来自哪个召回源，混排按它查权重。
const LabelSource = "recall_source"

// itemFromRow 把一行图查询结果转成候选 Item。
// sku 为空的行直接丢弃；price/rating 缺失按 0 兜底（Row 的取数语义），
// 多样性分桶与展示都依赖这些字段有值。
func itemFromRow(row core.Row, source string) *core.Item {
	sku := row.String("sku")
	if sku == "" {
		return nil
	}
	it := core.NewItem(sku)
	it.Title = row.String("title")
	it.Price = row.Float("price")
	it.Rating = row.Float("rating")
	it.Category = row.String("category")
	it.Brand = row.String("brand")
	it.Score = row.Float("score")
	it.PutLabel(LabelSource, utils.Label{Value: source, Source: "recall"})
	return it
}

// itemsFromRows 按行序转换整个结果集，保持图查询给出的排序。
func itemsFromRows(rows []core.Row, source string) []*core.Item {
	out := make([]*core.Item, 0, len(rows))
	for _, row := range rows {
		if it := itemFromRow(row, source); it != nil {
			out = append(out, it)
		}
	}
	return out
}

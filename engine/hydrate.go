package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"
)

// hydrateQuery 一次性解析最终候选的展示属性。
// 查不到的 SKU 会从结果中消失：最终输出里的每个 SKU 必须能在商品库解析。
const hydrateQuery = `
UNWIND $skus AS sku
MATCH (p:Product {sku: sku})
RETURN p.sku AS sku,
       p.title AS title,
       p.price AS price,
       p.rating AS rating,
       p.category AS category,
       p.brand AS brand`

// hydrateNode 是属性补齐 Node：
//   - 用商品库数据补齐混排候选缺失的展示属性（兜底榜单候选只有 SKU）
//   - 剔除商品库中已不存在的 SKU
//
// 商品库查询失败时按原样放行（降级），不让整个请求失败。
type hydrateNode struct {
	graph  core.GraphStore
	logger *zap.Logger
}

func (n *hydrateNode) Name() string        { return "engine.hydrate" }
func (n *hydrateNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *hydrateNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || n.graph == nil {
		return items, nil
	}

	skus := make([]string, 0, len(items))
	for _, it := range items {
		if it != nil && it.SKU != "" {
			skus = append(skus, it.SKU)
		}
	}

	rows, err := n.graph.Run(ctx, hydrateQuery, map[string]any{"skus": skus})
	if err != nil {
		n.logger.Warn("hydrate degraded, passing items through", zap.Error(err))
		return items, nil
	}

	resolved := make(map[string]core.Row, len(rows))
	for _, row := range rows {
		if sku := row.String("sku"); sku != "" {
			resolved[sku] = row
		}
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		row, ok := resolved[it.SKU]
		if !ok {
			// 商品库解析不到，剔除
			continue
		}
		if it.Title == "" {
			it.Title = row.String("title")
		}
		if it.Price == 0 {
			it.Price = row.Float("price")
		}
		if it.Rating == 0 {
			it.Rating = row.Float("rating")
		}
		if it.Category == "" {
			it.Category = row.String("category")
		}
		if it.Brand == "" {
			it.Brand = row.String("brand")
		}
		out = append(out, it)
	}
	return out, nil
}

var _ pipeline.Node = (*hydrateNode)(nil)

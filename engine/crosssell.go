package engine

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/utils"
)

// crossSellQuery 找同一批客户经常一起购买的商品，按共购人数排序。
const crossSellQuery = `
MATCH (p:Product {sku: $sku})<-[:PURCHASED]-(c:Customer)-[:PURCHASED]->(cross:Product)
WHERE p <> cross

WITH cross,
     count(DISTINCT c) AS coPurchaseCount,
     cross.rating AS rating

RETURN cross.sku AS sku,
       cross.title AS title,
       cross.price AS price,
       rating AS rating,
       cross.category AS category,
       cross.brand AS brand,
       coPurchaseCount AS score
ORDER BY score DESC, rating DESC
LIMIT $limit`

// CrossSell 为商品详情页 / 购物车场景生成搭售候选：
// 买过 sku 的客户还买过什么，按共购人数排序。
// 与 Recommend 不同，这是以商品而非客户为锚点的召回，不做混排。
func (e *Engine) CrossSell(ctx context.Context, sku string, limit int) ([]*core.Item, error) {
	if sku == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: cross-sell requires a sku")
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := e.graph.Run(ctx, crossSellQuery, map[string]any{
		"sku":   sku,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(rows))
	for _, row := range rows {
		itemSKU := row.String("sku")
		if itemSKU == "" {
			continue
		}
		it := core.NewItem(itemSKU)
		it.Title = row.String("title")
		it.Price = row.Float("price")
		it.Rating = row.Float("rating")
		it.Category = row.String("category")
		it.Brand = row.String("brand")
		it.Score = row.Float("score")
		it.PutLabel("anchor_sku", utils.Label{Value: sku, Source: "cross_sell"})
		out = append(out, it)
	}
	return out, nil
}

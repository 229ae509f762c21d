package recall

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// SourceCategoryTrending 是类目内趋势召回源名，同时是混排权重的查找键。
const SourceCategoryTrending = "recall.category_trending"

// categoryTrendingQuery 把趋势计算限制在客户历史购买过的类目内，
// 窗口比全局趋势更短（默认 14 天），已购商品在查询边界排除。
// 趋势分 = 近期去重买家数 × 平均评分。
const categoryTrendingQuery = `
MATCH (c:Customer {customer_id: $customer_id})-[:PURCHASED]->(p:Product)
WITH c, collect(DISTINCT p.category) AS preferredCategories

MATCH (other:Customer)-[r:PURCHASED]->(trending:Product)
WHERE trending.category IN preferredCategories
  AND NOT EXISTS((c)-[:PURCHASED]->(trending))
  AND r.purchase_date > datetime() - duration({days: $window_days})

WITH trending,
     count(DISTINCT other) AS recentBuyers,
     avg(trending.rating) AS avgRating

RETURN trending.sku AS sku,
       trending.title AS title,
       trending.price AS price,
       trending.rating AS rating,
       trending.category AS category,
       trending.brand AS brand,
       recentBuyers * avgRating AS score
ORDER BY score DESC
LIMIT $limit`

// CategoryTrending 是类目内趋势召回源：客户偏好类目里正在热销的商品。
// 结果与客户相关，不做快照缓存。
type CategoryTrending struct {
	Graph core.GraphStore

	// WindowDays 是回看窗口天数，默认 14
	WindowDays int

	// Limit 是扇出上限；<= 0 时取 rctx.Limit（趋势召回不放大扇出）
	Limit int
}

func (r *CategoryTrending) Name() string { return SourceCategoryTrending }

func (r *CategoryTrending) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Graph == nil || rctx == nil || rctx.CustomerID == "" {
		return nil, nil
	}

	days := r.WindowDays
	if days <= 0 {
		days = 14
	}
	limit := r.Limit
	if limit <= 0 {
		limit = rctx.Limit
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.Graph.Run(ctx, categoryTrendingQuery, map[string]any{
		"customer_id": rctx.CustomerID,
		"window_days": days,
		"limit":       limit,
	})
	if err != nil {
		return nil, err
	}
	return itemsFromRows(rows, SourceCategoryTrending), nil
}

var _ Source = (*CategoryTrending)(nil)

package recall

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// SourceContent 是内容召回源名，同时是混排权重的查找键。
const SourceContent = "recall.content"

// contentQuery 按客户的历史偏好做内容匹配：
//   - 候选必须命中偏好类目或偏好品牌，且落在价格带内
//   - 价格带 = 历史均价 ± 2 倍标准差；购买不足 2 件时标准差无定义，
//     此时价格带放开为无界（purchases < 2 / stdev 为空或 0 的分支）
//   - 打分 = 类目命中 + 品牌命中 + 高评分加成，零分候选在查询里就滤掉
const contentQuery = `
MATCH (c:Customer {customer_id: $customer_id})-[:PURCHASED]->(p:Product)
WITH c,
     collect(DISTINCT p.category) AS categories,
     collect(DISTINCT p.brand) AS brands,
     avg(p.price) AS avgPrice,
     stdev(p.price) AS priceStdev,
     count(p) AS purchases

MATCH (rec:Product)
WHERE NOT EXISTS((c)-[:PURCHASED]->(rec))
  AND (rec.category IN categories OR rec.brand IN brands)
  AND (purchases < 2 OR priceStdev IS NULL OR priceStdev = 0 OR
       (rec.price >= avgPrice - 2 * priceStdev AND rec.price <= avgPrice + 2 * priceStdev))

WITH rec,
     (CASE WHEN rec.category IN categories THEN $category_weight ELSE 0 END +
      CASE WHEN rec.brand IN brands THEN $brand_weight ELSE 0 END +
      CASE WHEN rec.rating > $rating_floor THEN $rating_weight ELSE 0 END) AS contentScore
WHERE contentScore > 0

RETURN rec.sku AS sku,
       rec.title AS title,
       rec.price AS price,
       rec.rating AS rating,
       rec.category AS category,
       rec.brand AS brand,
       contentScore AS score
ORDER BY score DESC
LIMIT $limit`

// Content 是基于商品特征的内容召回源。
//
// 核心思想："客户偏好某些类目/品牌/价位，推荐同特征的其他商品"
//
// 打分构成固定为 类目 >= 品牌 >= 评分加成 的优先级次序，
// 具体权重由 core.ContentWeights 配置并在引擎构造时校验。
type Content struct {
	Graph core.GraphStore

	// Weights 是打分构成，零值时退回默认 0.5/0.3/0.2
	Weights core.ContentWeights

	// RatingFloor 是高评分加成的门槛（rating > floor），默认 4.0
	RatingFloor float64

	// Limit 是扇出上限；<= 0 时取 rctx.EffectiveFanout()
	Limit int
}

func (r *Content) Name() string { return SourceContent }

func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Graph == nil || rctx == nil || rctx.CustomerID == "" {
		return nil, nil
	}

	w := r.Weights
	if w.Category == 0 && w.Brand == 0 && w.Rating == 0 {
		w = core.ContentWeights{Category: 0.5, Brand: 0.3, Rating: 0.2}
	}
	floor := r.RatingFloor
	if floor <= 0 {
		floor = 4.0
	}
	limit := r.Limit
	if limit <= 0 {
		limit = rctx.EffectiveFanout()
	}

	rows, err := r.Graph.Run(ctx, contentQuery, map[string]any{
		"customer_id":     rctx.CustomerID,
		"category_weight": w.Category,
		"brand_weight":    w.Brand,
		"rating_weight":   w.Rating,
		"rating_floor":    floor,
		"limit":           limit,
	})
	if err != nil {
		return nil, err
	}
	return itemsFromRows(rows, SourceContent), nil
}

var _ Source = (*Content)(nil)

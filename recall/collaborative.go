package recall

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// SourceCollaborative 是协同过滤源名，同时是混排权重的查找键。
const SourceCollaborative = "recall.collaborative"

// collaborativeQuery 在图上直接完成相似客户计算与候选召回：
// 1. 以购买集合的 Jaccard 相似度找相似客户，低于下限的剪掉
// 2. 取相似客户买过、目标客户没买过的商品（已购排除在查询边界完成）
// 3. 原生分 = 贡献邻居的相似度之和，按去重邻居数破平（佐证越多越靠前）
const collaborativeQuery = `
MATCH (target:Customer {customer_id: $customer_id})-[:PURCHASED]->(p:Product)
WITH target, collect(id(p)) AS targetProducts

MATCH (other:Customer)-[:PURCHASED]->(p:Product)
WHERE other <> target
WITH target, targetProducts, other, collect(id(p)) AS otherProducts

WITH target, other,
     size([x IN targetProducts WHERE x IN otherProducts]) AS intersection,
     size(targetProducts + [x IN otherProducts WHERE NOT x IN targetProducts]) AS union
WHERE union > 0
WITH target, other, (intersection * 1.0) / union AS similarity
WHERE similarity > $min_similarity

MATCH (other)-[:PURCHASED]->(rec:Product)
WHERE NOT EXISTS((target)-[:PURCHASED]->(rec))

RETURN rec.sku AS sku,
       rec.title AS title,
       rec.price AS price,
       rec.rating AS rating,
       rec.category AS category,
       rec.brand AS brand,
       sum(similarity) AS score,
       count(DISTINCT other) AS recommenders
ORDER BY score DESC, recommenders DESC
LIMIT $limit`

// Collaborative 是基于客户的协同过滤召回源（User-CF）。
//
// 核心思想："购买行为相似的客户，会买相似的商品"
//
// 工程特征：
//   - 可解释性强（explain 的"相似客户也买了"直接对应这里）
//   - 冷启动差：目标客户购买记录少时相似客户集合为空，返回空列表
type Collaborative struct {
	Graph core.GraphStore

	// MinSimilarity 是 Jaccard 相似度下限，默认 0.1
	MinSimilarity float64

	// Limit 是扇出上限；<= 0 时取 rctx.EffectiveFanout()
	Limit int
}

func (r *Collaborative) Name() string { return SourceCollaborative }

func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Graph == nil || rctx == nil || rctx.CustomerID == "" {
		return nil, nil
	}

	minSim := r.MinSimilarity
	if minSim <= 0 {
		minSim = 0.1
	}
	limit := r.Limit
	if limit <= 0 {
		limit = rctx.EffectiveFanout()
	}

	rows, err := r.Graph.Run(ctx, collaborativeQuery, map[string]any{
		"customer_id":    rctx.CustomerID,
		"min_similarity": minSim,
		"limit":          limit,
	})
	if err != nil {
		return nil, err
	}
	return itemsFromRows(rows, SourceCollaborative), nil
}

var _ Source = (*Collaborative)(nil)

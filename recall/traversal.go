package recall

import (
	"context"
	"fmt"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// SourceTraversal 是图遍历召回源名，同时是混排权重的查找键。
const SourceTraversal = "recall.traversal"

// traversalQueryTmpl 从已购商品沿共现边（ALSO_BOUGHT / VIEWED_TOGETHER）
// 扩展至多 %d 跳。原生分 = 到达路径数 × (1/最短路径长) × 商品综合分：
// 离得近、佐证多、质量高的候选排前面。
// 跳数上限无法参数化进变长模式，只能拼进查询文本，由配置校验约束在 [1,3]。
const traversalQueryTmpl = `
MATCH path = (c:Customer {customer_id: $customer_id})-[:PURCHASED]->(p1:Product)
             -[:ALSO_BOUGHT|VIEWED_TOGETHER*1..%d]-(p2:Product)
WHERE NOT EXISTS((c)-[:PURCHASED]->(p2))
  AND p1 <> p2

WITH p2,
     count(DISTINCT path) AS pathCount,
     min(length(path)) AS minDistance,
     avg(p2.overall_score) AS productScore

RETURN p2.sku AS sku,
       p2.title AS title,
       p2.price AS price,
       p2.rating AS rating,
       p2.category AS category,
       p2.brand AS brand,
       pathCount * (1.0 / minDistance) * productScore AS score
ORDER BY score DESC
LIMIT $limit`

// Traversal 是基于共现边遍历的图召回源。
//
// 核心思想："和你买过的东西一起被买/一起被看的商品，也值得推荐"
// 已购商品的排除写在查询谓词里，不做事后过滤。
type Traversal struct {
	Graph core.GraphStore

	// MaxHops 是共现边扩展的最大跳数，默认 2
	MaxHops int

	// Limit 是扇出上限；<= 0 时取 rctx.EffectiveFanout()
	Limit int
}

func (r *Traversal) Name() string { return SourceTraversal }

func (r *Traversal) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Graph == nil || rctx == nil || rctx.CustomerID == "" {
		return nil, nil
	}

	hops := r.MaxHops
	if hops < 1 || hops > 3 {
		hops = 2
	}
	limit := r.Limit
	if limit <= 0 {
		limit = rctx.EffectiveFanout()
	}

	query := fmt.Sprintf(traversalQueryTmpl, hops)
	rows, err := r.Graph.Run(ctx, query, map[string]any{
		"customer_id": rctx.CustomerID,
		"limit":       limit,
	})
	if err != nil {
		return nil, err
	}
	return itemsFromRows(rows, SourceTraversal), nil
}

var _ Source = (*Traversal)(nil)

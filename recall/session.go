package recall

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// SourceSession 是会话召回源名。
// 会话召回不参与五路混排，由引擎的实时推荐入口单独使用。
const SourceSession = "recall.session"

// sessionQuery 从当前会话浏览过的商品出发，沿一跳共现边找相关商品，
// 按共现关系条数排序；会话内已看过的 SKU 不再返回。
const sessionQuery = `
UNWIND $viewed AS viewedSku
MATCH (p:Product {sku: viewedSku})
MATCH (p)-[:ALSO_BOUGHT|VIEWED_TOGETHER]-(rec:Product)
WHERE NOT rec.sku IN $viewed

WITH rec, count(*) AS relationCount

RETURN rec.sku AS sku,
       rec.title AS title,
       rec.price AS price,
       rec.rating AS rating,
       rec.category AS category,
       rec.brand AS brand,
       relationCount AS score
ORDER BY score DESC
LIMIT $limit`

// Session 是基于当前会话行为的实时召回源："看了这些，还可能看什么"。
// 输入是 rctx.SessionSKUs；没有浏览记录时返回空列表。
type Session struct {
	Graph core.GraphStore

	// Limit 是返回条数上限，默认 5
	Limit int
}

func (r *Session) Name() string { return SourceSession }

func (r *Session) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Graph == nil || rctx == nil || len(rctx.SessionSKUs) == 0 {
		return nil, nil
	}

	limit := r.Limit
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.Graph.Run(ctx, sessionQuery, map[string]any{
		"viewed": rctx.SessionSKUs,
		"limit":  limit,
	})
	if err != nil {
		return nil, err
	}
	return itemsFromRows(rows, SourceSession), nil
}

var _ Source = (*Session)(nil)

package recall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// SourceTrending 是全局趋势召回源名，同时是混排权重的查找键。
const SourceTrending = "recall.trending"

// trendingQuery 取回看窗口内的热销商品：
// 趋势分 = 近期去重买家数 × 平均下单件数 × 商品综合分。
const trendingQuery = `
MATCH (c:Customer)-[r:PURCHASED]->(p:Product)
WHERE r.purchase_date > datetime() - duration({days: $window_days})

WITH p,
     count(DISTINCT c) AS recentBuyers,
     avg(r.quantity) AS avgQuantity,
     p.overall_score AS productScore

RETURN p.sku AS sku,
       p.title AS title,
       p.price AS price,
       p.rating AS rating,
       p.category AS category,
       p.brand AS brand,
       recentBuyers * avgQuantity * productScore AS score
ORDER BY score DESC
LIMIT $limit`

// Trending 是全局趋势召回源。
//
// 结果与客户无关，适合缓存：配置 Store 后，榜单快照按 CacheTTL 缓存，
// 避免每个请求都对图做全量聚合。
// 图存储不可用时，从离线作业维护的 zset 榜单（FallbackKey）兜底，
// 兜底结果只有 SKU 与榜单分，展示属性由引擎的属性补齐阶段填充。
type Trending struct {
	Graph core.GraphStore

	// WindowDays 是回看窗口天数，默认 30
	WindowDays int

	// Limit 是扇出上限；<= 0 时取 rctx.Limit（趋势召回不放大扇出）
	Limit int

	// Store 是可选的快照缓存 / 兜底榜单存储
	Store    core.Store
	CacheKey string // 缓存 key 前缀，默认 "trending:global"
	CacheTTL int    // 缓存时长（秒），0 表示不缓存

	// FallbackKey 是兜底 zset 榜单的 key，空表示不兜底
	FallbackKey string
}

func (r *Trending) Name() string { return SourceTrending }

// cachedItem 是榜单快照的序列化形态。
type cachedItem struct {
	SKU      string  `json:"sku"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Score    float64 `json:"score"`
}

func (r *Trending) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Graph == nil {
		return nil, nil
	}

	days := r.WindowDays
	if days <= 0 {
		days = 30
	}
	limit := r.Limit
	if limit <= 0 && rctx != nil {
		limit = rctx.Limit
	}
	if limit <= 0 {
		limit = 10
	}

	// 缓存命中直接返回快照
	cacheKey := ""
	if r.Store != nil && r.CacheTTL > 0 {
		prefix := r.CacheKey
		if prefix == "" {
			prefix = "trending:global"
		}
		cacheKey = fmt.Sprintf("%s:%d:%d", prefix, days, limit)
		if data, err := r.Store.Get(ctx, cacheKey); err == nil {
			if items := r.decodeSnapshot(data); items != nil {
				return items, nil
			}
		}
	}

	rows, err := r.Graph.Run(ctx, trendingQuery, map[string]any{
		"window_days": days,
		"limit":       limit,
	})
	if err != nil {
		if fallback := r.fallbackFromStore(ctx, limit); fallback != nil {
			return fallback, nil
		}
		return nil, err
	}
	items := itemsFromRows(rows, SourceTrending)

	if cacheKey != "" && len(items) > 0 {
		r.writeSnapshot(ctx, cacheKey, items)
	}
	return items, nil
}

func (r *Trending) decodeSnapshot(data []byte) []*core.Item {
	var cached []cachedItem
	if json.Unmarshal(data, &cached) != nil || len(cached) == 0 {
		return nil
	}
	rows := make([]core.Row, 0, len(cached))
	for _, c := range cached {
		rows = append(rows, core.Row{
			"sku": c.SKU, "title": c.Title, "price": c.Price, "rating": c.Rating,
			"category": c.Category, "brand": c.Brand, "score": c.Score,
		})
	}
	return itemsFromRows(rows, SourceTrending)
}

func (r *Trending) writeSnapshot(ctx context.Context, key string, items []*core.Item) {
	cached := make([]cachedItem, 0, len(items))
	for _, it := range items {
		cached = append(cached, cachedItem{
			SKU: it.SKU, Title: it.Title, Price: it.Price, Rating: it.Rating,
			Category: it.Category, Brand: it.Brand, Score: it.Score,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	// 缓存写失败可忽略，下一个请求重新查图
	_ = r.Store.Set(ctx, key, data, r.CacheTTL)
}

// fallbackFromStore 在图不可用时从 zset 榜单兜底。
func (r *Trending) fallbackFromStore(ctx context.Context, limit int) []*core.Item {
	if r.Store == nil || r.FallbackKey == "" {
		return nil
	}
	kv, ok := r.Store.(core.KeyValueStore)
	if !ok {
		return nil
	}
	members, err := kv.ZRange(ctx, r.FallbackKey, 0, int64(limit-1))
	if err != nil || len(members) == 0 {
		return nil
	}
	out := make([]*core.Item, 0, len(members))
	for _, sku := range members {
		row := core.Row{"sku": sku}
		if score, err := kv.ZScore(ctx, r.FallbackKey, sku); err == nil {
			row["score"] = score
		}
		if it := itemFromRow(row, SourceTrending); it != nil {
			out = append(out, it)
		}
	}
	return out
}

var _ Source = (*Trending)(nil)

// Package engine 对外提供推荐引擎的调用入口。
//
// 一次推荐请求是一条无状态流水线：
//
//	召回 fanout（五路并发）→ 过滤 → 位次混排 → 属性补齐 → 多样性重排 → 截断
//
// 请求之间不共享任何可变状态；所有中间结构都是请求局部的。
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/explain"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/filter"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/rank"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/recall"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/rerank"
)

// defaultLimit 是调用方没给条数时的默认值。
const defaultLimit = 10

// Options 是单次推荐请求的开关。
type Options struct {
	// Diversify 启用多样性重排：混排先产出 3 倍超采样池再做贪心准入。
	Diversify bool

	// IncludeExplanations 为最终结果逐条生成推荐理由。
	IncludeExplanations bool
}

// Engine 是混合推荐引擎。
// 构造后只读，可被多个 goroutine 并发调用。
type Engine struct {
	cfg       core.EngineConfig
	graph     core.GraphStore
	cache     core.Store
	filters   []filter.Filter
	explainer *explain.Generator
	logger    *zap.Logger
}

// Option 定制引擎构造。
type Option func(*Engine)

// WithConfig 覆盖默认参数（构造时统一校验）。
func WithConfig(cfg core.EngineConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithCache 注入 KV 存储，供趋势榜快照缓存与兜底榜单使用。
func WithCache(s core.Store) Option {
	return func(e *Engine) { e.cache = s }
}

// WithFilters 注入过滤器（黑名单、规则等），作用在召回合并之后。
func WithFilters(fs ...filter.Filter) Option {
	return func(e *Engine) { e.filters = append(e.filters, fs...) }
}

// WithLogger 注入日志器，默认 Nop。
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New 构造引擎。配置非法时返回错误而不是带病运行。
func New(graph core.GraphStore, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:   core.DefaultEngineConfig(),
		graph: graph,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.explainer = explain.NewGenerator(graph, e.logger)
	return e, nil
}

// Recommend 为客户生成至多 limit 条混合推荐。
// 未知客户不报错：各召回源查不到数据，结果就是空列表。
// 全部召回源降级时同样返回空列表——没有推荐是合法结果，不是故障。
func (e *Engine) Recommend(
	ctx context.Context,
	customerID string,
	limit int,
	opts Options,
) ([]*core.Item, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rctx := &core.RecommendContext{
		CustomerID:  customerID,
		Limit:       limit,
		FanoutLimit: limit * e.cfg.FanoutMultiplier,
	}

	// 混排截断目标：开多样性时先留 3 倍池
	blendLimit := limit
	if opts.Diversify {
		blendLimit = limit * e.cfg.OversampleMultiplier
	}

	nodes := []pipeline.Node{
		e.fanoutNode(),
	}
	if len(e.filters) > 0 {
		nodes = append(nodes, &filter.Node{Filters: e.filters})
	}
	nodes = append(nodes,
		&rank.HybridBlend{Weights: e.cfg.Weights, Limit: blendLimit},
		&hydrateNode{graph: e.graph, logger: e.logger},
	)
	if opts.Diversify {
		nodes = append(nodes, &rerank.Diversity{
			Limit:        limit,
			MaxPerBucket: e.cfg.MaxPerPriceBucket,
			LowMax:       e.cfg.PriceBucketLow,
			HighMin:      e.cfg.PriceBucketHigh,
		})
	}
	nodes = append(nodes, &rerank.TopN{N: limit})

	pipe := &pipeline.Pipeline{Nodes: nodes}
	items, err := pipe.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	if opts.IncludeExplanations {
		e.annotate(ctx, customerID, items)
	}
	return items, nil
}

// fanoutNode 组装五路召回源。
// 协同/内容/图遍历用 2 倍扇出，两路趋势用最终条数（趋势榜不放大扇出）。
func (e *Engine) fanoutNode() *recall.Fanout {
	return &recall.Fanout{
		Sources: []recall.Source{
			&recall.Collaborative{
				Graph:         e.graph,
				MinSimilarity: e.cfg.MinSimilarity,
			},
			&recall.Content{
				Graph:       e.graph,
				Weights:     e.cfg.Content,
				RatingFloor: e.cfg.HighRatingFloor,
			},
			&recall.Traversal{
				Graph:   e.graph,
				MaxHops: e.cfg.MaxHops,
			},
			&recall.Trending{
				Graph:       e.graph,
				WindowDays:  e.cfg.TrendingWindowDays,
				Store:       e.cache,
				CacheTTL:    e.cfg.TrendingCacheTTL,
				FallbackKey: "trending:fallback",
			},
			&recall.CategoryTrending{
				Graph:      e.graph,
				WindowDays: e.cfg.CategoryTrendingWindowDays,
			},
		},
		Timeout: e.cfg.ProviderTimeout,
		Logger:  e.logger,
	}
}

// annotate 为最终结果逐条生成推荐理由。
// 单条失败只丢那条的理由，不影响请求。
func (e *Engine) annotate(ctx context.Context, customerID string, items []*core.Item) {
	for _, it := range items {
		if it == nil {
			continue
		}
		exp, err := e.explainer.Explain(ctx, customerID, it.SKU)
		if err != nil {
			e.logger.Warn("explanation skipped",
				zap.String("customer_id", customerID),
				zap.String("sku", it.SKU),
				zap.Error(err))
			continue
		}
		it.Reasons = exp.Reasons
	}
}

// Explain 为 (customerID, sku) 生成推荐理由。
func (e *Engine) Explain(ctx context.Context, customerID, sku string) (*explain.Explanation, error) {
	return e.explainer.Explain(ctx, customerID, sku)
}

// RecommendForSession 基于当前会话浏览过的 SKU 做实时推荐，
// 不走五路混排，直接用一跳共现召回。
func (e *Engine) RecommendForSession(
	ctx context.Context,
	viewedSKUs []string,
	limit int,
) ([]*core.Item, error) {
	if len(viewedSKUs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	src := &recall.Session{Graph: e.graph, Limit: limit}
	rctx := &core.RecommendContext{SessionSKUs: viewedSKUs, Limit: limit}
	items, err := src.Recall(ctx, rctx)
	if err != nil {
		e.logger.Warn("session recall degraded", zap.Error(err))
		return nil, nil
	}
	return items, nil
}

package core

import (
	"fmt"
	"math"
	"time"
)

// BlendWeights 是五路召回信号的混排权重，必须恰好加和为 1.0。
// 各召回源的原生分数量纲互不可比（Jaccard 相似度 vs 路径计数 vs 销量），
// 混排前会先做位次归一化，权重只作用在归一化后的贡献上。
type BlendWeights struct {
	Collaborative    float64 `yaml:"collaborative"`     // 协同过滤
	Content          float64 `yaml:"content"`           // 内容匹配
	Graph            float64 `yaml:"graph"`             // 图遍历共现
	Trending         float64 `yaml:"trending"`          // 全局趋势
	CategoryTrending float64 `yaml:"category_trending"` // 类目内趋势
}

// Sum 返回权重之和。
func (w BlendWeights) Sum() float64 {
	return w.Collaborative + w.Content + w.Graph + w.Trending + w.CategoryTrending
}

// ContentWeights 是内容召回的打分构成：类目命中 + 品牌命中 + 高评分加成。
// 约束：加和 <= 1.0，且 Category >= Brand >= Rating（优先级次序）。
type ContentWeights struct {
	Category float64 `yaml:"category"`
	Brand    float64 `yaml:"brand"`
	Rating   float64 `yaml:"rating"`
}

// EngineConfig 是推荐引擎的全部可调参数。
// 显式构造后传入引擎，算法代码不读环境变量等进程级状态。
type EngineConfig struct {
	Weights BlendWeights   `yaml:"weights"`
	Content ContentWeights `yaml:"content"`

	// MinSimilarity 是协同过滤的 Jaccard 相似度下限。
	MinSimilarity float64 `yaml:"min_similarity"`

	// HighRatingFloor 是内容召回“高评分加成”的评分门槛（rating > floor）。
	HighRatingFloor float64 `yaml:"high_rating_floor"`

	// MaxHops 是图遍历召回沿共现边扩展的最大跳数。
	MaxHops int `yaml:"max_hops"`

	// FanoutMultiplier 决定召回扇出：各源取 limit * multiplier 条候选。
	FanoutMultiplier int `yaml:"fanout_multiplier"`

	// OversampleMultiplier 决定多样性重排的输入池大小：limit * multiplier。
	OversampleMultiplier int `yaml:"oversample_multiplier"`

	// TrendingWindowDays / CategoryTrendingWindowDays 是两路趋势召回的回看窗口。
	TrendingWindowDays         int `yaml:"trending_window_days"`
	CategoryTrendingWindowDays int `yaml:"category_trending_window_days"`

	// 多样性分桶参数：价格低/高分界与每桶容量上限。
	PriceBucketLow    float64 `yaml:"price_bucket_low"`
	PriceBucketHigh   float64 `yaml:"price_bucket_high"`
	MaxPerPriceBucket int     `yaml:"max_per_price_bucket"`

	// ProviderTimeout 是单个召回源的超时，超时按空结果降级。
	ProviderTimeout time.Duration `yaml:"provider_timeout"`

	// TrendingCacheTTL 是全局趋势榜快照的缓存时长（秒），0 表示不缓存。
	TrendingCacheTTL int `yaml:"trending_cache_ttl"`
}

// DefaultEngineConfig 返回线上默认参数。
// 权重取自平台的标准五路混排配置；内容打分取 0.5/0.3/0.2 的保守版本。
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights: BlendWeights{
			Collaborative:    0.35,
			Content:          0.25,
			Graph:            0.20,
			Trending:         0.10,
			CategoryTrending: 0.10,
		},
		Content: ContentWeights{
			Category: 0.5,
			Brand:    0.3,
			Rating:   0.2,
		},
		MinSimilarity:              0.1,
		HighRatingFloor:            4.0,
		MaxHops:                    2,
		FanoutMultiplier:           2,
		OversampleMultiplier:       3,
		TrendingWindowDays:         30,
		CategoryTrendingWindowDays: 14,
		PriceBucketLow:             20,
		PriceBucketHigh:            50,
		MaxPerPriceBucket:          2,
		ProviderTimeout:            3 * time.Second,
		TrendingCacheTTL:           300,
	}
}

const weightEpsilon = 1e-9

// Validate 校验参数合法性。引擎构造时调用，拒绝非法配置而不是带病运行。
func (c EngineConfig) Validate() error {
	if diff := math.Abs(c.Weights.Sum() - 1.0); diff > weightEpsilon {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput,
			fmt.Sprintf("engine: blend weights must sum to 1.0, got %v", c.Weights.Sum()))
	}
	if c.Weights.Collaborative < 0 || c.Weights.Content < 0 || c.Weights.Graph < 0 ||
		c.Weights.Trending < 0 || c.Weights.CategoryTrending < 0 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: blend weights must be non-negative")
	}
	cw := c.Content
	if cw.Category+cw.Brand+cw.Rating > 1.0+weightEpsilon {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: content weights must sum to <= 1.0")
	}
	if cw.Category < cw.Brand || cw.Brand < cw.Rating || cw.Rating < 0 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput,
			"engine: content weights must keep category >= brand >= rating >= 0")
	}
	if c.MinSimilarity < 0 || c.MinSimilarity >= 1 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: min_similarity must be in [0, 1)")
	}
	if c.MaxHops < 1 || c.MaxHops > 3 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: max_hops must be in [1, 3]")
	}
	if c.FanoutMultiplier < 1 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: fanout_multiplier must be >= 1")
	}
	if c.OversampleMultiplier < 1 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: oversample_multiplier must be >= 1")
	}
	if c.TrendingWindowDays < 1 || c.CategoryTrendingWindowDays < 1 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: trending windows must be >= 1 day")
	}
	if c.PriceBucketLow <= 0 || c.PriceBucketHigh <= c.PriceBucketLow {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: price buckets must satisfy 0 < low < high")
	}
	if c.MaxPerPriceBucket < 1 {
		return NewDomainError(ModuleEngine, ErrorCodeInvalidInput, "engine: max_per_price_bucket must be >= 1")
	}
	return nil
}

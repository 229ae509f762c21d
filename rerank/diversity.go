package rerank

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/utils"
)

// 价格分桶名。
const (
	bucketLow    = "low"
	bucketMedium = "medium"
	bucketHigh   = "high"
)

// Diversity 是多样性重排 Node：对混排后的有序候选做贪心流式准入。
//
// 准入条件（满足任一即收）：
//   - 引入未见过的类目
//   - 引入未见过的品牌
//   - 所属价格桶已收条数 < MaxPerBucket
//
// 不满足则跳过。收满 Limit 条或输入耗尽即停。
// 只做选择性准入，绝不重排：被保留的两个候选保持输入相对顺序——
// 低分但多样的候选能排到高分冗余候选前面，只因为后者被跳过。
// 对同一份输出再跑一遍不会再剔除任何候选（已多样）。
type Diversity struct {
	// Limit 是目标条数；<= 0 表示不限（退化为只按桶容量过滤）。
	Limit int

	// MaxPerBucket 是每个价格桶的容量上限，默认 2。
	MaxPerBucket int

	// LowMax / HighMin 是价格分桶分界：price < LowMax 为 low，
	// price < HighMin 为 medium，其余为 high。默认 20 / 50。
	LowMax  float64
	HighMin float64
}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) priceBucket(price float64) string {
	lowMax := n.LowMax
	highMin := n.HighMin
	if lowMax <= 0 || highMin <= lowMax {
		lowMax, highMin = 20, 50
	}
	switch {
	case price < lowMax:
		return bucketLow
	case price < highMin:
		return bucketMedium
	default:
		return bucketHigh
	}
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	maxPerBucket := n.MaxPerBucket
	if maxPerBucket <= 0 {
		maxPerBucket = 2
	}

	seenCategories := make(map[string]bool, 16)
	seenBrands := make(map[string]bool, 16)
	bucketCounts := map[string]int{bucketLow: 0, bucketMedium: 0, bucketHigh: 0}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}

		bucket := n.priceBucket(it.Price)
		admit := !seenCategories[it.Category] ||
			!seenBrands[it.Brand] ||
			bucketCounts[bucket] < maxPerBucket
		if !admit {
			continue
		}

		seenCategories[it.Category] = true
		seenBrands[it.Brand] = true
		bucketCounts[bucket]++
		it.PutLabel("price_bucket", utils.Label{Value: bucket, Source: "rerank"})
		out = append(out, it)

		if n.Limit > 0 && len(out) >= n.Limit {
			break
		}
	}
	return out, nil
}

var _ pipeline.Node = (*Diversity)(nil)

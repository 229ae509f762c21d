package rank

import (
	"context"
	"math"
	"sort"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/recall"
)

// HybridBlend 是混排 Node：把五路召回的位次化贡献加权聚合成单一排序。
//
// 输入是 Fanout 的 union 合并结果——同一 SKU 在多个源中出现时是多个实例，
// 各带源内位次特征。对每个实例计算 RankDecay(rank, size) × 源权重，
// 按 SKU 累加；某个源没召回到的 SKU 从该源得 0 贡献。
//
// 聚合后的打分映射（Candidate Score Map）是请求内的局部状态，
// 排序产出后即丢弃，请求之间无共享。
//
// 排序：聚合分降序，同分按 SKU 字典序破平，保证输出确定。
// Confidence = min(2 × score, 1.0)，是饱和变换不是概率。
type HybridBlend struct {
	Weights core.BlendWeights

	// Limit 截断输出条数；多样性重排在后面时应给 3 倍超采样池。
	// <= 0 表示不截断。
	Limit int
}

func (n *HybridBlend) Name() string        { return "rank.hybrid_blend" }
func (n *HybridBlend) Kind() pipeline.Kind { return pipeline.KindRank }

// weightFor 按召回源名查混排权重，未注册的源不参与混排。
func (n *HybridBlend) weightFor(source string) (float64, bool) {
	switch source {
	case recall.SourceCollaborative:
		return n.Weights.Collaborative, true
	case recall.SourceContent:
		return n.Weights.Content, true
	case recall.SourceTraversal:
		return n.Weights.Graph, true
	case recall.SourceTrending:
		return n.Weights.Trending, true
	case recall.SourceCategoryTrending:
		return n.Weights.CategoryTrending, true
	default:
		return 0, false
	}
}

func (n *HybridBlend) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}

	// SKU -> 聚合候选。只在本次调用内存活。
	acc := make(map[string]*core.Item, len(items))

	for _, it := range items {
		if it == nil || it.SKU == "" {
			continue
		}
		lbl, ok := it.GetLabel(recall.LabelSource)
		if !ok {
			continue
		}
		weight, ok := n.weightFor(lbl.Value)
		if !ok {
			continue
		}

		rankPos := int(it.Features[recall.FeatureRank])
		size := int(it.Features[recall.FeatureSize])
		contribution := RankDecay(rankPos, size) * weight

		agg, exists := acc[it.SKU]
		if !exists {
			agg = core.NewItem(it.SKU)
			acc[it.SKU] = agg
		}
		agg.MergeAttributes(it)
		for k, v := range it.Labels {
			agg.PutLabel(k, v)
		}
		agg.Score += contribution
	}

	out := make([]*core.Item, 0, len(acc))
	for _, it := range acc {
		it.Confidence = math.Min(it.Score*2, 1.0)
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].SKU < out[j].SKU
	})

	if n.Limit > 0 && len(out) > n.Limit {
		out = out[:n.Limit]
	}
	return out, nil
}

var _ pipeline.Node = (*HybridBlend)(nil)

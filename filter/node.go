package filter

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/utils"
)

// Node 是过滤 Node，组合多个过滤器依次检查。
// 任何一个过滤器命中即剔除该候选；过滤器自身出错时跳过该过滤器，
// 不中断请求（宁可少过滤，不可不出结果）。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		filtered := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				filtered = true
				// 记录剔除原因，便于调试/观测
				item.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				break
			}
		}
		if !filtered {
			out = append(out, item)
		}
	}
	return out, nil
}

var _ pipeline.Node = (*Node)(nil)

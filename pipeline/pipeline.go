package pipeline

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// Pipeline 把一次推荐请求拆成可组合的 Node 链：
// Recall(fanout) → Filter → Blend → ReRank → PostProcess。
// Pipeline 自身无状态，每次请求由引擎按参数新组一条链。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

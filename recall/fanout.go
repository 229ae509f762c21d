package recall

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"
)

// Fanout 是召回编排 Node：并发执行多个召回源并合并结果。
//
// 合并语义与普通去重合并不同：同一 SKU 在多个源中出现时会保留多个实例，
// 每个实例带上自己源内的位次特征（FeatureRank/FeatureSize），
// 由混排阶段按位次衰减聚合成单条结果。
//
// 失败语义：单个源超时或出错时按空列表降级，绝不中断其他源——
// 信号变少的混排结果优于整个请求失败。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	Logger        *zap.Logger
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		mu    sync.Mutex
		all   []*core.Item
		eg, _ = errgroup.WithContext(ctx)
	)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for _, src := range n.Sources {
		s := src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 降级：记录后按空列表处理，不影响其他召回源
				logger.Warn("recall source degraded",
					zap.String("source", s.Name()),
					zap.String("customer_id", rctx.CustomerID),
					zap.Error(err))
				return nil
			}

			// 写入源内位次特征，混排按 (size - rank) / size 做衰减
			for i, it := range items {
				if it == nil {
					continue
				}
				it.PutFeature(FeatureRank, float64(i))
				it.PutFeature(FeatureSize, float64(len(items)))
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

var _ pipeline.Node = (*Fanout)(nil)

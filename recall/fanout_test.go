package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// stubSource 是固定应答的召回源。
type stubSource struct {
	name  string
	items []*core.Item
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func TestFanoutTagsRankFeatures(t *testing.T) {
	node := &Fanout{Sources: []Source{
		&stubSource{name: "recall.a", items: []*core.Item{
			core.NewItem("SKU-1"), core.NewItem("SKU-2"), core.NewItem("SKU-3"),
		}},
	}}

	out, err := node.Process(context.Background(), &core.RecommendContext{CustomerID: "C1"}, nil)
	if err != nil {
		t.Fatalf("fanout 失败: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("期望 3 条，实际 %d 条", len(out))
	}
	for i, it := range out {
		if it.Features[FeatureRank] != float64(i) {
			t.Errorf("第 %d 条的位次特征期望 %d，实际 %v", i, i, it.Features[FeatureRank])
		}
		if it.Features[FeatureSize] != 3 {
			t.Errorf("第 %d 条的列表长度特征期望 3，实际 %v", i, it.Features[FeatureSize])
		}
	}
}

// 单个源失败按空列表降级，其余源正常返回。
func TestFanoutDegradesFailedSource(t *testing.T) {
	node := &Fanout{Sources: []Source{
		&stubSource{name: "recall.ok", items: []*core.Item{core.NewItem("SKU-1")}},
		&stubSource{name: "recall.broken", err: errors.New("connection refused")},
	}}

	out, err := node.Process(context.Background(), &core.RecommendContext{CustomerID: "C1"}, nil)
	if err != nil {
		t.Fatalf("单源失败不应让 fanout 报错: %v", err)
	}
	if len(out) != 1 || out[0].SKU != "SKU-1" {
		t.Fatalf("正常源的结果应保留: %+v", out)
	}
}

// 全部源失败时结果是空列表，不是错误。
func TestFanoutAllSourcesFailed(t *testing.T) {
	node := &Fanout{Sources: []Source{
		&stubSource{name: "recall.a", err: errors.New("down")},
		&stubSource{name: "recall.b", err: errors.New("down")},
	}}

	out, err := node.Process(context.Background(), &core.RecommendContext{CustomerID: "C1"}, nil)
	if err != nil {
		t.Fatalf("全源失败不应报错: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("全源失败应得到空列表，实际 %d 条", len(out))
	}
}

// 超时的源按空列表降级，不拖垮整个请求。
func TestFanoutTimeout(t *testing.T) {
	node := &Fanout{
		Timeout: 20 * time.Millisecond,
		Sources: []Source{
			&stubSource{name: "recall.fast", items: []*core.Item{core.NewItem("SKU-1")}},
			&stubSource{name: "recall.slow", delay: 200 * time.Millisecond,
				items: []*core.Item{core.NewItem("SKU-2")}},
		},
	}

	out, err := node.Process(context.Background(), &core.RecommendContext{CustomerID: "C1"}, nil)
	if err != nil {
		t.Fatalf("超时源不应让 fanout 报错: %v", err)
	}
	if len(out) != 1 || out[0].SKU != "SKU-1" {
		t.Fatalf("只应保留未超时源的结果: %+v", out)
	}
}

// 同一 SKU 出现在多个源时保留多个实例，由混排聚合。
func TestFanoutKeepsDuplicateInstances(t *testing.T) {
	node := &Fanout{Sources: []Source{
		&stubSource{name: "recall.a", items: []*core.Item{core.NewItem("SKU-1")}},
		&stubSource{name: "recall.b", items: []*core.Item{core.NewItem("SKU-1")}},
	}}

	out, err := node.Process(context.Background(), &core.RecommendContext{CustomerID: "C1"}, nil)
	if err != nil {
		t.Fatalf("fanout 失败: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("union 合并应保留两个实例，实际 %d 条", len(out))
	}
}

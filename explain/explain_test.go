package explain

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// dispatchGraph 按查询文本分发固定应答。
type dispatchGraph struct {
	similar  []core.Row
	together []core.Row
	category []core.Row
	err      error
}

func (g *dispatchGraph) Name() string { return "dispatch" }

func (g *dispatchGraph) Run(_ context.Context, query string, _ map[string]any) ([]core.Row, error) {
	if g.err != nil {
		return nil, g.err
	}
	switch {
	case strings.Contains(query, "p.title AS product"):
		return g.together, nil
	case strings.Contains(query, "rec.category AS category"):
		return g.category, nil
	default:
		return g.similar, nil
	}
}

func (g *dispatchGraph) Close(context.Context) error { return nil }

var _ core.GraphStore = (*dispatchGraph)(nil)

func TestExplainAllThreeSignals(t *testing.T) {
	graph := &dispatchGraph{
		similar:  []core.Row{{"count": int64(4)}},
		together: []core.Row{{"product": "降噪耳机", "count": int64(3)}},
		category: []core.Row{{"count": int64(2), "category": "Electronics"}},
	}
	gen := NewGenerator(graph, nil)

	exp, err := gen.Explain(context.Background(), "CUST-1", "SKU-1")
	if err != nil {
		t.Fatalf("解释失败: %v", err)
	}
	if len(exp.Reasons) != 3 {
		t.Fatalf("三路信号齐全应有 3 条理由，实际 %d 条: %v", len(exp.Reasons), exp.Reasons)
	}
	if exp.Confidence != 1.0 {
		t.Errorf("三条理由的置信度应为 1.0，实际 %v", exp.Confidence)
	}
	wants := []string{
		"4 similar customers bought this",
		"Frequently bought with 降噪耳机",
		"Matches your interest in Electronics",
	}
	for i, want := range wants {
		if exp.Reasons[i] != want {
			t.Errorf("第 %d 条理由期望 %q，实际 %q", i, want, exp.Reasons[i])
		}
	}
}

func TestExplainConfidenceLevels(t *testing.T) {
	tests := []struct {
		name    string
		graph   *dispatchGraph
		reasons int
		conf    float64
	}{
		{
			"单一信号",
			&dispatchGraph{similar: []core.Row{{"count": int64(2)}}},
			1, 1.0 / 3.0,
		},
		{
			"两路信号",
			&dispatchGraph{
				similar:  []core.Row{{"count": int64(2)}},
				category: []core.Row{{"count": int64(1), "category": "Books"}},
			},
			2, 2.0 / 3.0,
		},
		{
			"计数为零不算信号",
			&dispatchGraph{similar: []core.Row{{"count": int64(0)}}},
			1, 0, // 落到兜底理由
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(tt.graph, nil)
			exp, err := gen.Explain(context.Background(), "CUST-1", "SKU-1")
			if err != nil {
				t.Fatalf("解释失败: %v", err)
			}
			if len(exp.Reasons) != tt.reasons {
				t.Errorf("理由条数期望 %d，实际 %d", tt.reasons, len(exp.Reasons))
			}
			if math.Abs(exp.Confidence-tt.conf) > 1e-9 {
				t.Errorf("置信度期望 %v，实际 %v", tt.conf, exp.Confidence)
			}
		})
	}
}

// 零信号时兜底理由一条、置信度 0，这是合法结果不是错误。
func TestExplainFallback(t *testing.T) {
	gen := NewGenerator(&dispatchGraph{}, nil)
	exp, err := gen.Explain(context.Background(), "CUST-GHOST", "SKU-1")
	if err != nil {
		t.Fatalf("兜底路径不应报错: %v", err)
	}
	if len(exp.Reasons) != 1 || exp.Reasons[0] != FallbackReason {
		t.Fatalf("应返回兜底理由: %v", exp.Reasons)
	}
	if exp.Confidence != 0 {
		t.Errorf("兜底置信度应为 0，实际 %v", exp.Confidence)
	}
}

// 三路查询互相独立：图整体失败时也只是三路都拿不到信号，落到兜底。
func TestExplainDegradesOnGraphError(t *testing.T) {
	gen := NewGenerator(&dispatchGraph{err: errors.New("neo4j down")}, nil)
	exp, err := gen.Explain(context.Background(), "CUST-1", "SKU-1")
	if err != nil {
		t.Fatalf("查询失败应降级而不是报错: %v", err)
	}
	if exp.Reasons[0] != FallbackReason || exp.Confidence != 0 {
		t.Errorf("降级结果应为兜底理由: %+v", exp)
	}
}

package filter

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/dsl"
)

// Rule 是规则过滤器：CEL 表达式命中（求值为 true）的候选被剔除。
// 规则由运营侧配置下发，例如 `item.price > 500.0 && item.rating < 3.0`。
// 表达式编译/求值出错时不剔除（由 Node 的错误语义兜底：宁可少过滤）。
type Rule struct {
	// Expr 是 CEL 表达式，命中即剔除。空表达式不剔除任何候选。
	Expr string
}

func (f *Rule) Name() string { return "filter.rule" }

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}

var _ Filter = (*Rule)(nil)

// Package dsl 基于 CEL (Common Expression Language) 提供规则表达式求值，
// 用于运营侧配置的候选剔除规则（filter.Rule）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

var (
	// celEnv 是全局 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Eval 对单个候选求值规则表达式。
//
// 可用变量：
//   - item: sku / title / price / rating / category / brand / score
//   - label: 各标签的 Value（如 label.recall_source）
//   - rctx: customer_id / scene 等请求上下文
//
// 表达式示例：
//   - `item.price > 500.0 && item.rating < 3.0`  → 高价低分商品
//   - `item.brand == "Acme"`                     → 停止合作的品牌
//   - `label.recall_source.contains("trending")` → 只看趋势来源
//
// 注意：CEL 访问不存在的 key 会报错，存在性检查用 label.key != null。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个针对 (item, rctx) 的求值器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{item: item, rctx: rctx, env: env}
}

// Evaluate 编译并执行表达式，返回布尔结果。
// 空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("dsl: cel env init failed: %v", celEnvErr)
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("dsl: compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("dsl: program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("dsl: eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func (e *Eval) buildInput() map[string]any {
	item := map[string]any{}
	label := map[string]any{}
	if e.item != nil {
		item = map[string]any{
			"sku":      e.item.SKU,
			"title":    e.item.Title,
			"price":    e.item.Price,
			"rating":   e.item.Rating,
			"category": e.item.Category,
			"brand":    e.item.Brand,
			"score":    e.item.Score,
		}
		for k, v := range e.item.Labels {
			label[k] = v.Value
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"customer_id": e.rctx.CustomerID,
			"limit":       e.rctx.Limit,
			"params":      e.rctx.Params,
		}
	}

	return map[string]any{
		"item":  item,
		"label": label,
		"rctx":  rctx,
	}
}

// Package explain 为 (customer, sku) 生成人类可读的推荐理由。
// 三路独立查询对应三类理由：相似客户佐证、共同购买、类目偏好。
// 理由条数决定置信度（count/3），所以置信度只会是 0、1/3、2/3、1 四档。
package explain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// FallbackReason 是零信号时的兜底理由。
// 它是降级的唯一用户可见信号：调用方应把它理解为"没有具体解释"，而不是错误。
const FallbackReason = "Recommended based on overall popularity"

// similarCustomersQuery 统计"买过你买过的商品、又买了目标商品"的客户数。
const similarCustomersQuery = `
MATCH (c:Customer {customer_id: $customer_id})-[:PURCHASED]->(p1:Product)
MATCH (p1)<-[:PURCHASED]-(other:Customer)-[:PURCHASED]->(rec:Product {sku: $sku})
WHERE other <> c
RETURN count(DISTINCT other) AS count`

// boughtTogetherQuery 找出客户历史与目标商品之间共同购买最多的那件商品。
const boughtTogetherQuery = `
MATCH (c:Customer {customer_id: $customer_id})-[:PURCHASED]->(p:Product)
MATCH (p)<-[:PURCHASED]-(other:Customer)-[:PURCHASED]->(rec:Product {sku: $sku})
WHERE other <> c
RETURN p.title AS product, count(DISTINCT other) AS count
ORDER BY count DESC
LIMIT 1`

// categoryMatchQuery 检查客户是否买过目标商品所在类目的商品。
const categoryMatchQuery = `
MATCH (c:Customer {customer_id: $customer_id})-[:PURCHASED]->(p:Product)
MATCH (rec:Product {sku: $sku})
WHERE p.category = rec.category
RETURN count(DISTINCT p) AS count, rec.category AS category`

// Explanation 是一次解释的结果。
type Explanation struct {
	SKU        string   `json:"sku"`
	Reasons    []string `json:"reasons"`
	Confidence float64  `json:"confidence"` // len(reasons)/3，兜底时为 0
}

// Generator 是解释生成器。三路查询互相独立，单路失败只丢那一条理由。
type Generator struct {
	Graph  core.GraphStore
	Logger *zap.Logger
}

// NewGenerator 创建解释生成器。
func NewGenerator(graph core.GraphStore, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{Graph: graph, Logger: logger}
}

// Explain 为 (customerID, sku) 生成至多 3 条理由。
// 零理由时返回兜底理由一条、置信度 0——这是合法结果，不是错误。
func (g *Generator) Explain(ctx context.Context, customerID, sku string) (*Explanation, error) {
	if g.Graph == nil {
		return nil, core.ErrGraphUnavailable
	}

	reasons := make([]string, 0, 3)

	if count := g.countQuery(ctx, similarCustomersQuery, customerID, sku); count > 0 {
		reasons = append(reasons, fmt.Sprintf("%d similar customers bought this", count))
	}

	if row := g.singleRow(ctx, boughtTogetherQuery, customerID, sku); row != nil && row.Int("count") > 0 {
		reasons = append(reasons, fmt.Sprintf("Frequently bought with %s", row.String("product")))
	}

	if row := g.singleRow(ctx, categoryMatchQuery, customerID, sku); row != nil && row.Int("count") > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches your interest in %s", row.String("category")))
	}

	confidence := float64(len(reasons)) / 3.0
	if len(reasons) == 0 {
		reasons = append(reasons, FallbackReason)
		confidence = 0
	}

	return &Explanation{SKU: sku, Reasons: reasons, Confidence: confidence}, nil
}

func (g *Generator) countQuery(ctx context.Context, query, customerID, sku string) int {
	row := g.singleRow(ctx, query, customerID, sku)
	if row == nil {
		return 0
	}
	return row.Int("count")
}

func (g *Generator) singleRow(ctx context.Context, query, customerID, sku string) core.Row {
	rows, err := g.Graph.Run(ctx, query, map[string]any{
		"customer_id": customerID,
		"sku":         sku,
	})
	if err != nil {
		g.Logger.Warn("explanation lookup degraded",
			zap.String("customer_id", customerID),
			zap.String("sku", sku),
			zap.Error(err))
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

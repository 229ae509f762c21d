package core

// RecommendContext 承载一次推荐请求的全部上下文，贯穿 Pipeline 透传。
// 请求之间不共享：每次请求新建一个，算法代码不得读取进程级状态。
type RecommendContext struct {
	// CustomerID 是目标客户标识。未知客户不会报错，
	// 各召回源查不到数据时自然返回空列表。
	CustomerID string

	// Limit 是调用方要求的最终结果条数。
	Limit int

	// FanoutLimit 是各召回源的扇出上限（通常为 Limit 的 2 倍），
	// 召回源在查询边界就截断，混排阶段不再放大列表。
	FanoutLimit int

	// SessionSKUs 是当前会话内浏览过的商品 SKU，供会话召回使用。
	SessionSKUs []string

	// Params 是请求级扩展参数（场景、实验分层等）。
	Params map[string]any
}

// EffectiveFanout 返回召回源应使用的扇出上限。
func (rctx *RecommendContext) EffectiveFanout() int {
	if rctx == nil {
		return 0
	}
	if rctx.FanoutLimit > 0 {
		return rctx.FanoutLimit
	}
	if rctx.Limit > 0 {
		return rctx.Limit * 2
	}
	return 20
}

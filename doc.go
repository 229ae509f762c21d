// Package recengine 是基于商品图谱的混合推荐引擎。
//
// 设计要点：
// - Pipeline-first: 一次推荐是一条 Node 流水线（Recall → Filter → Rank → ReRank → PostProcess）
// - 五路召回混排: 协同过滤 / 内容匹配 / 图遍历 / 全局趋势 / 类目趋势，按位次归一后加权融合
// - 降级优先: 单路召回失败按空列表处理，图不可用时趋势榜从 KV 兜底
// - Labels-first: labels 全链路透传与标准化 merge，支撑推荐理由与观测
package recengine

import "github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pipeline"

// 轻量 facade：便于直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

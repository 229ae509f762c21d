package core

import "github.com/abdulrahman-riyad/Graph-based-Rec-Engine/pkg/utils"

// Item 是推荐链路中的统一承载结构：以 SKU 为主键的候选商品，
// 携带展示属性、各阶段分数与标签。
// Score 在召回阶段是策略原生分，经过混排后是加权聚合分；
// Confidence 只在混排后有值，是 min(2*score, 1) 的饱和变换，
// 属于启发式指标而非概率，不要当校准过的置信度用。
type Item struct {
	SKU      string
	Title    string
	Price    float64
	Rating   float64
	Category string
	Brand    string

	Score      float64
	Confidence float64

	// Reasons 是 explain 生成的推荐理由，只在调用方要求时填充。
	Reasons []string

	// Features 承载数值型中间量（如召回位次），供混排计算使用。
	Features map[string]float64

	// Labels 全链路透传，记录候选的来源与各阶段决策。
	Labels map[string]utils.Label
}

func NewItem(sku string) *Item {
	return &Item{
		SKU:      sku,
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 读取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}

// PutFeature 写入数值特征。
func (it *Item) PutFeature(key string, v float64) {
	if it.Features == nil {
		it.Features = make(map[string]float64)
	}
	it.Features[key] = v
}

// MergeAttributes 用 other 的展示属性补齐自身的空缺字段，已有值不覆盖。
// 混排把同一 SKU 在多个召回源中的出现合并成一条时使用。
func (it *Item) MergeAttributes(other *Item) {
	if other == nil {
		return
	}
	if it.Title == "" {
		it.Title = other.Title
	}
	if it.Price == 0 {
		it.Price = other.Price
	}
	if it.Rating == 0 {
		it.Rating = other.Rating
	}
	if it.Category == "" {
		it.Category = other.Category
	}
	if it.Brand == "" {
		it.Brand = other.Brand
	}
}

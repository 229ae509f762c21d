package utils

import "strings"

// Label 是推荐链路中的可解释性载体：每个候选商品在召回/混排/重排各阶段
// 打上的标签都会透传到最终结果，explain 与观测都依赖它。
// Value 与 Source 的语义由业务自定义；这里只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / blend / rerank / filter / explain ...
}

// MergeLabel 合并同名 Label，策略是“保留历史、可追踪”：
// - Value 以 '|' 累积
// - Source 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

// Values 拆出累积后的全部 Value（按 '|' 切分），用于 explain 输出。
func (l Label) Values() []string {
	if l.Value == "" {
		return nil
	}
	return strings.Split(l.Value, "|")
}

// Contains 判断累积后的 Value 中是否包含 v。
func (l Label) Contains(v string) bool {
	for _, cur := range l.Values() {
		if cur == v {
			return true
		}
	}
	return false
}

package rank

// RankDecay 是位次归一化函数：长度为 size 的召回列表中，
// 第 rank 位（0 起）的归一化贡献为 (size - rank) / size。
// 首位恰好是 1.0，末位是 1/size（不为 0），随位次严格递减。
//
// 归一化只看位次不看原生分：各召回源的分数量纲互不可比
// （Jaccard 相似度 vs 路径加权计数 vs 销量），位次是唯一公共标尺。
// 空列表不参与归一化（除零保护由调用方的 size > 0 前置条件保证）。
func RankDecay(rank, size int) float64 {
	if size <= 0 || rank < 0 || rank >= size {
		return 0
	}
	return float64(size-rank) / float64(size)
}

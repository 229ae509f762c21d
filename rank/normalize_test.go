package rank

import (
	"math"
	"testing"
)

func TestRankDecay(t *testing.T) {
	tests := []struct {
		name string
		rank int
		size int
		want float64
	}{
		{"首位恰好 1.0", 0, 5, 1.0},
		{"末位是 1/size 而不是 0", 4, 5, 0.2},
		{"单元素列表首位即末位", 0, 1, 1.0},
		{"中间位次", 2, 10, 0.8},
		{"空列表", 0, 0, 0},
		{"负位次", -1, 5, 0},
		{"位次越界", 5, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankDecay(tt.rank, tt.size)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RankDecay(%d, %d) = %v, 期望 %v", tt.rank, tt.size, got, tt.want)
			}
		})
	}
}

// 同一列表内位次越靠前贡献越大，严格递减。
func TestRankDecayStrictlyDecreasing(t *testing.T) {
	const size = 20
	prev := math.Inf(1)
	for rank := 0; rank < size; rank++ {
		got := RankDecay(rank, size)
		if got >= prev {
			t.Fatalf("位次 %d 的衰减值 %v 未严格小于前一位的 %v", rank, got, prev)
		}
		if got <= 0 {
			t.Fatalf("列表内位次 %d 的衰减值应为正，实际 %v", rank, got)
		}
		prev = got
	}
}

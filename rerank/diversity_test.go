package rerank

import (
	"context"
	"testing"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

func product(sku, category, brand string, price float64) *core.Item {
	it := core.NewItem(sku)
	it.Category = category
	it.Brand = brand
	it.Price = price
	return it
}

// 同类目同品牌的候选只能靠价格桶容量准入，每桶至多 2 条。
func TestDiversitySameCategorySameBrand(t *testing.T) {
	node := &Diversity{Limit: 5, MaxPerBucket: 2, LowMax: 20, HighMin: 50}

	// 9 条同类目同品牌：3 条低价、3 条中价、3 条高价
	var items []*core.Item
	prices := []float64{5, 10, 15, 25, 30, 45, 60, 80, 100}
	for i, p := range prices {
		items = append(items, product(
			"SKU-"+string(rune('A'+i)), "Books", "Acme", p))
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("重排失败: %v", err)
	}
	// 首条靠新类目准入，之后全部依赖桶容量：
	// low 吃下前 2 条，第 3 条低价被跳过；medium、high 各 2 条，收满 5 即停
	wantSKUs := []string{"SKU-A", "SKU-B", "SKU-D", "SKU-E", "SKU-G"}
	if len(out) != len(wantSKUs) {
		t.Fatalf("期望 %d 条，实际 %d 条", len(wantSKUs), len(out))
	}
	for i, want := range wantSKUs {
		if out[i].SKU != want {
			t.Errorf("第 %d 位期望 %s，实际 %s", i, want, out[i].SKU)
		}
	}
	// 每个价格桶至多 2 条
	counts := map[string]int{}
	for _, it := range out {
		lbl, ok := it.GetLabel("price_bucket")
		if !ok {
			t.Fatalf("%s 缺少 price_bucket 标签", it.SKU)
		}
		counts[lbl.Value]++
	}
	for bucket, c := range counts {
		if c > 2 {
			t.Errorf("价格桶 %s 收了 %d 条，超过容量 2", bucket, c)
		}
	}
}

// 新类目或新品牌的候选即使落在已满的价格桶也能准入。
func TestDiversityAdmitsNovelCategoryOrBrand(t *testing.T) {
	node := &Diversity{Limit: 10, MaxPerBucket: 1, LowMax: 20, HighMin: 50}

	items := []*core.Item{
		product("SKU-1", "Books", "Acme", 10),
		product("SKU-2", "Books", "Acme", 12),      // 三条件全不满足，跳过
		product("SKU-3", "Garden", "Acme", 13),     // 新类目准入
		product("SKU-4", "Books", "Northwind", 14), // 新品牌准入
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("重排失败: %v", err)
	}
	wantSKUs := []string{"SKU-1", "SKU-3", "SKU-4"}
	if len(out) != len(wantSKUs) {
		t.Fatalf("期望 %d 条，实际 %d 条", len(wantSKUs), len(out))
	}
	for i, want := range wantSKUs {
		if out[i].SKU != want {
			t.Errorf("第 %d 位期望 %s，实际 %s", i, want, out[i].SKU)
		}
	}
}

// 只做选择性准入，不重排：保留的候选维持输入相对顺序。
func TestDiversityPreservesRelativeOrder(t *testing.T) {
	node := &Diversity{Limit: 10, MaxPerBucket: 2, LowMax: 20, HighMin: 50}

	items := []*core.Item{
		product("SKU-1", "Books", "Acme", 10),
		product("SKU-2", "Garden", "Oak", 30),
		product("SKU-3", "Toys", "Zephyr", 70),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("重排失败: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("全部候选都应准入，实际 %d 条", len(out))
	}
	for i, want := range []string{"SKU-1", "SKU-2", "SKU-3"} {
		if out[i].SKU != want {
			t.Errorf("相对顺序被破坏: 第 %d 位期望 %s，实际 %s", i, want, out[i].SKU)
		}
	}
}

// 幂等性：对一次重排的输出再跑一遍，不再剔除任何候选。
func TestDiversityIdempotent(t *testing.T) {
	node := &Diversity{Limit: 5, MaxPerBucket: 2, LowMax: 20, HighMin: 50}

	var items []*core.Item
	prices := []float64{5, 10, 15, 25, 30, 45, 60, 80, 100}
	for i, p := range prices {
		items = append(items, product("SKU-"+string(rune('A'+i)), "Books", "Acme", p))
	}

	first, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("第一遍重排失败: %v", err)
	}
	second, err := node.Process(context.Background(), nil, first)
	if err != nil {
		t.Fatalf("第二遍重排失败: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("幂等性被破坏: 第一遍 %d 条，第二遍 %d 条", len(first), len(second))
	}
	for i := range first {
		if first[i].SKU != second[i].SKU {
			t.Errorf("第 %d 位不一致: %s vs %s", i, first[i].SKU, second[i].SKU)
		}
	}
}

func TestDiversityPriceBuckets(t *testing.T) {
	node := &Diversity{}

	tests := []struct {
		price float64
		want  string
	}{
		{0, bucketLow},
		{19.99, bucketLow},
		{20, bucketMedium},
		{49.99, bucketMedium},
		{50, bucketHigh},
		{500, bucketHigh},
	}
	for _, tt := range tests {
		if got := node.priceBucket(tt.price); got != tt.want {
			t.Errorf("价格 %v 的分桶期望 %s，实际 %s", tt.price, tt.want, got)
		}
	}
}

func TestTopN(t *testing.T) {
	node := &TopN{N: 2}
	items := []*core.Item{
		core.NewItem("SKU-1"), core.NewItem("SKU-2"), core.NewItem("SKU-3"),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("截断失败: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("期望截断到 2 条，实际 %d 条", len(out))
	}
}

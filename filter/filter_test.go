package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/store"
)

func TestBlacklistInMemory(t *testing.T) {
	f := NewBlacklist([]string{"SKU-BAD"}, nil, "")

	tests := []struct {
		sku  string
		want bool
	}{
		{"SKU-BAD", true},
		{"SKU-OK", false},
	}
	for _, tt := range tests {
		it := core.NewItem(tt.sku)
		got, err := f.ShouldFilter(context.Background(), nil, it)
		if err != nil {
			t.Fatalf("过滤判定失败: %v", err)
		}
		if got != tt.want {
			t.Errorf("%s 的判定期望 %v，实际 %v", tt.sku, tt.want, got)
		}
	}
}

func TestBlacklistFromStore(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	ctx := context.Background()
	if err := ms.Set(ctx, "blacklist:global", []byte(`["SKU-RECALLED"]`)); err != nil {
		t.Fatalf("写入名单失败: %v", err)
	}

	f := NewBlacklist(nil, NewStoreAdapter(ms), "blacklist:global")

	got, err := f.ShouldFilter(ctx, nil, core.NewItem("SKU-RECALLED"))
	if err != nil || !got {
		t.Errorf("存储名单中的 SKU 应被剔除: (%v, %v)", got, err)
	}
	got, err = f.ShouldFilter(ctx, nil, core.NewItem("SKU-OK"))
	if err != nil || got {
		t.Errorf("不在名单中的 SKU 不应被剔除: (%v, %v)", got, err)
	}
}

// key 不存在视为空名单，不报错。
func TestStoreAdapterMissingKey(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	skus, err := NewStoreAdapter(ms).GetBlacklist(context.Background(), "blacklist:missing")
	if err != nil {
		t.Fatalf("缺失的 key 不应报错: %v", err)
	}
	if len(skus) != 0 {
		t.Errorf("缺失的 key 应视为空名单，实际 %v", skus)
	}
}

func TestRuleFilter(t *testing.T) {
	it := core.NewItem("SKU-1")
	it.Price = 600
	it.Rating = 2.5
	it.Brand = "Acme"

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"高价低分命中", `item.price > 500.0 && item.rating < 3.0`, true},
		{"品牌命中", `item.brand == "Acme"`, true},
		{"不命中", `item.price < 100.0`, false},
		{"空表达式不剔除", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Rule{Expr: tt.expr}
			got, err := f.ShouldFilter(context.Background(), nil, it)
			if err != nil {
				t.Fatalf("规则求值失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

// 非法表达式返回错误，由 Node 的错误语义兜底（跳过该过滤器）。
func TestRuleFilterInvalidExpr(t *testing.T) {
	f := &Rule{Expr: `item.price >`}
	_, err := f.ShouldFilter(context.Background(), nil, core.NewItem("SKU-1"))
	if err == nil {
		t.Fatal("非法表达式应返回错误")
	}
}

// errFilter 只会报错，用于验证 Node 的“宁可少过滤”语义。
type errFilter struct{}

func (errFilter) Name() string { return "filter.err" }
func (errFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return true, errors.New("boom")
}

func TestFilterNode(t *testing.T) {
	node := &Node{Filters: []Filter{
		errFilter{},
		NewBlacklist([]string{"SKU-2"}, nil, ""),
	}}

	items := []*core.Item{
		core.NewItem("SKU-1"),
		core.NewItem("SKU-2"),
		core.NewItem("SKU-3"),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("过滤失败: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("期望剔除 1 条，保留 %d 条里实际 %d 条", 2, len(out))
	}
	for _, it := range out {
		if it.SKU == "SKU-2" {
			t.Error("黑名单 SKU 未被剔除")
		}
	}
}

package filter

import (
	"context"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// Blacklist 是 SKU 黑名单过滤器，剔除下架/停售/运营拉黑的商品。
// 名单来源有两个，命中任一即剔除：
//  1. 内存列表（构造时注入，适合少量固定 SKU）
//  2. Store 中以 JSON 数组存放的名单（运营侧随时更新）
type Blacklist struct {
	// SKUs 是内存中的黑名单
	SKUs []string

	// Store 与 Key 指定存储中的名单位置（可选）
	Store BlacklistStore
	Key   string
}

// BlacklistStore 是黑名单存储接口，由 StoreAdapter 适配 core.Store 实现。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单 SKU 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklist 创建一个黑名单过滤器。
func NewBlacklist(skus []string, adapter *StoreAdapter, key string) *Blacklist {
	var store BlacklistStore
	if adapter != nil {
		store = adapter
	}
	return &Blacklist{SKUs: skus, Store: store, Key: key}
}

func (f *Blacklist) Name() string { return "filter.blacklist" }

func (f *Blacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, sku := range f.SKUs {
		if item.SKU == sku {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err == nil {
			for _, sku := range blacklist {
				if item.SKU == sku {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

var _ Filter = (*Blacklist)(nil)

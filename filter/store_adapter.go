package filter

import (
	"context"
	"encoding/json"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的名单读取接口。
// 名单以 JSON 字符串数组存放，key 不存在视为空名单。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 从 Store 读取黑名单。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]string, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var skus []string
	if err := json.Unmarshal(data, &skus); err != nil {
		return nil, err
	}
	return skus, nil
}

var _ BlacklistStore = (*StoreAdapter)(nil)

package store

// 注意：此包只包含实现，接口定义在 core 包。
//
// KV 存储（core.Store / core.KeyValueStore）：
//   - MemoryStore：测试/开发
//   - RedisStore：生产（黑名单、趋势榜快照缓存与兜底榜单）
//
// 图存储（core.GraphStore）：
//   - Neo4jStore：生产（客户/商品/购买/共现关系图，引擎只读）

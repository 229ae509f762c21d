package store

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
)

// Neo4jStore 是 Neo4j 实现的 core.GraphStore。
// 引擎对图只读：所有查询走 read 会话，写图是外部 ETL 流程的事。
// 连接池参数对齐数据侧约定：连接最长存活 30 分钟，池上限 50。
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// Neo4jConfig 是连接参数。
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// NewNeo4jStore 建立连接并验证连通性，失败返回 UNAVAILABLE。
func NewNeo4jStore(ctx context.Context, cfg Neo4jConfig, logger *zap.Logger) (*Neo4jStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j.Config) {
			c.MaxConnectionLifetime = 30 * time.Minute
			c.MaxConnectionPoolSize = 50
			c.ConnectionAcquisitionTimeout = 2 * time.Minute
		},
	)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleGraph, core.ErrorCodeUnavailable,
			"graph: create driver: "+err.Error())
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, core.NewDomainError(core.ModuleGraph, core.ErrorCodeUnavailable,
			"graph: verify connectivity: "+err.Error())
	}

	return &Neo4jStore{driver: driver, logger: logger}, nil
}

func (s *Neo4jStore) Name() string { return "neo4j" }

// Run 在 read 会话中执行查询，把每条记录转成 core.Row。
// 任何失败都归一为 UNAVAILABLE：召回源据此降级为空列表。
func (s *Neo4jStore) Run(ctx context.Context, query string, params map[string]any) ([]core.Row, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		s.logger.Warn("graph query failed", zap.Error(err))
		return nil, core.NewDomainError(core.ModuleGraph, core.ErrorCodeUnavailable,
			"graph: run query: "+err.Error())
	}

	var rows []core.Row
	for result.Next(ctx) {
		rows = append(rows, core.Row(result.Record().AsMap()))
	}
	if err := result.Err(); err != nil {
		s.logger.Warn("graph result iteration failed", zap.Error(err))
		return nil, core.NewDomainError(core.ModuleGraph, core.ErrorCodeUnavailable,
			"graph: consume result: "+err.Error())
	}
	return rows, nil
}

func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

var _ core.GraphStore = (*Neo4jStore)(nil)

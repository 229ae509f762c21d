// Package config 提供引擎的 YAML 配置装载。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/core"
	"github.com/abdulrahman-riyad/Graph-based-Rec-Engine/store"
)

// RedisConfig 是 Redis 连接参数。
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// FiltersConfig 声明过滤层：黑名单所在的存储 key 与 CEL 规则表达式列表。
type FiltersConfig struct {
	BlacklistKey string   `yaml:"blacklist_key"`
	Rules        []string `yaml:"rules"`
}

// Config 是完整的引擎配置。
type Config struct {
	Neo4j   store.Neo4jConfig `yaml:"neo4j"`
	Redis   RedisConfig       `yaml:"redis"`
	Engine  core.EngineConfig `yaml:"engine"`
	Filters FiltersConfig     `yaml:"filters"`
}

// Default 返回可直接运行的默认配置（本地 Neo4j + Redis）。
func Default() *Config {
	return &Config{
		Neo4j: store.Neo4jConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
			Password: "password",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Engine: core.DefaultEngineConfig(),
	}
}

// Load 从 YAML 文件装载配置。
// 文件里省略的引擎参数保持默认值，装载后统一校验。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置。
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return fmt.Errorf("config: neo4j.uri is required")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

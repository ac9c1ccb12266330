package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"room-allocator/internal/models"

	"go.uber.org/zap"
)

// Manager 对账快照缓存管理器
// 每轮对账结束后把全馆房态发布到 Redis，供看板等其他服务读取
type Manager struct {
	kv     KVStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewManager 创建快照管理器
func NewManager(kv KVStore, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		kv:     kv,
		ttl:    ttl,
		logger: logger,
	}
}

func stateKey(day string) string {
	return fmt.Sprintf("room-allocator:house:%s:state", day)
}

// UpdateHouseState 写入某一天的全馆房态快照
func (m *Manager) UpdateHouseState(ctx context.Context, day string, rooms []models.HouseRoom) error {
	key := stateKey(day)

	jsonData, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal house state: %w", err)
	}

	if err := m.kv.Set(ctx, key, string(jsonData), m.ttl); err != nil {
		return fmt.Errorf("failed to set snapshot cache: %w", err)
	}

	m.logger.Debug("Updated house state snapshot",
		zap.String("day", day),
		zap.String("key", key),
		zap.Int("room_count", len(rooms)),
	)

	return nil
}

// GetHouseState 读取某一天的全馆房态快照
// 快照不存在时返回 ErrCacheMiss
func (m *Manager) GetHouseState(ctx context.Context, day string) ([]models.HouseRoom, error) {
	key := stateKey(day)

	val, err := m.kv.Get(ctx, key)
	if err != nil {
		if err == ErrCacheMiss {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get snapshot cache: %w", err)
	}

	var rooms []models.HouseRoom
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal house state: %w", err)
	}

	return rooms, nil
}

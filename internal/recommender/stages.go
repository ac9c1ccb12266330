package recommender

import (
	"context"

	"room-allocator/internal/extractor"
	"room-allocator/internal/models"
)

// FilterByCategory 房型与容量硬过滤
// 只保留房型一致、容量足够且当日可用的房间，不做任何放宽
func FilterByCategory(ctx context.Context, booking models.Booking, rooms []models.HouseRoom) []models.HouseRoom {
	out := make([]models.HouseRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.Category != booking.Category {
			continue
		}
		if room.MaxGuests < booking.Guests {
			continue
		}
		if !room.UsableToday {
			continue
		}
		out = append(out, room)
	}
	return out
}

// PreferGroundFloorIfNoStairs 无楼梯软偏好
// 备注提取出 no_stairs 约束时收窄到地面层房间，
// 但收窄会清空候选时保持原列表不变（软偏好不允许把结果打空）
func PreferGroundFloorIfNoStairs(ex extractor.Extractor) Stage {
	return func(ctx context.Context, booking models.Booking, rooms []models.HouseRoom) []models.HouseRoom {
		if len(rooms) == 0 {
			return rooms
		}

		constraints := ex.Extract(ctx, booking.Notes)
		if !constraints.NoStairs {
			return rooms
		}

		ground := make([]models.HouseRoom, 0, len(rooms))
		for _, room := range rooms {
			if room.Floor == 0 {
				ground = append(ground, room)
			}
		}

		if len(ground) == 0 {
			return rooms
		}
		return ground
	}
}

// DefaultStages 默认阶段装配
// 扩展点：追加符合 Stage 签名的新阶段
func DefaultStages(ex extractor.Extractor) []Stage {
	return []Stage{
		FilterByCategory,
		PreferGroundFloorIfNoStairs(ex),
	}
}

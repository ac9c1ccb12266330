package recommender

import (
	"context"

	"room-allocator/internal/house"
	"room-allocator/internal/models"

	"go.uber.org/zap"
)

// Stage 推荐管线的一个阶段
// 纯函数：输入候选列表，输出收窄（或原样保留）后的候选列表
type Stage func(ctx context.Context, booking models.Booking, rooms []models.HouseRoom) []models.HouseRoom

// Pipeline 规则推荐管线
// 按装配顺序从左到右执行各阶段，取最终候选列表的第一间；
// 无匹配不是错误，用显式的 false 表示
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// NewPipeline 创建推荐管线（阶段顺序即执行顺序）
func NewPipeline(logger *zap.Logger, stages ...Stage) *Pipeline {
	return &Pipeline{
		stages: stages,
		logger: logger,
	}
}

// Recommend 为单个预订推荐至多一间房
// 候选初始顺序为对账引擎建立的房档顺序，管线各阶段只收窄不重排，
// 因此结果对相同输入是确定的
func (p *Pipeline) Recommend(ctx context.Context, booking models.Booking, state *house.State) (models.HouseRoom, bool) {
	rooms := state.Rooms()

	for _, stage := range p.stages {
		rooms = stage(ctx, booking, rooms)
	}

	if len(rooms) == 0 {
		p.logger.Debug("No room matched booking",
			zap.String("booking_id", booking.BookingID),
			zap.String("category", booking.Category),
		)
		return models.HouseRoom{}, false
	}

	return rooms[0], true
}

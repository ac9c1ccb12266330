package house

import (
	"room-allocator/internal/models"

	"go.uber.org/zap"
)

// Engine 房态对账引擎
// 将房间静态档案、当日运营房态、客房部巡查视角三路数据源
// 合并为统一的全馆房态；相同输入总是产生相同输出
type Engine struct {
	logger *zap.Logger
}

// NewEngine 创建对账引擎
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Reconcile 执行一轮对账
// 房档决定哪些房间存在：房档中的每个房间恰好产出一条 HouseRoom，
// 房态/巡查数据缺失时按定义的默认值补齐，多余记录被忽略
func (e *Engine) Reconcile(
	inventory []models.Room,
	statuses []models.RoomStatus,
	views []models.HouseView,
) *State {
	known := make(map[int]struct{}, len(inventory))
	for _, room := range inventory {
		known[room.Number] = struct{}{}
	}

	// 1. 房态数据建索引（重复房号后写覆盖，记数据质量告警）
	statusByRoom := make(map[int]models.RoomStatus, len(statuses))
	orphanStatuses := 0
	for _, status := range statuses {
		if _, dup := statusByRoom[status.RoomNumber]; dup {
			e.logger.Warn("Duplicate room number in status feed, last record wins",
				zap.Int("room_number", status.RoomNumber),
			)
		}
		if _, ok := known[status.RoomNumber]; !ok {
			orphanStatuses++
		}
		statusByRoom[status.RoomNumber] = status
	}

	// 2. 巡查数据建索引
	viewByRoom := make(map[int]models.HouseView, len(views))
	orphanViews := 0
	for _, view := range views {
		if _, dup := viewByRoom[view.RoomNumber]; dup {
			e.logger.Warn("Duplicate room number in house view feed, last record wins",
				zap.Int("room_number", view.RoomNumber),
			)
		}
		if _, ok := known[view.RoomNumber]; !ok {
			orphanViews++
		}
		viewByRoom[view.RoomNumber] = view
	}

	if orphanStatuses > 0 || orphanViews > 0 {
		e.logger.Debug("Ignoring feed records for rooms absent from inventory",
			zap.Int("orphan_statuses", orphanStatuses),
			zap.Int("orphan_views", orphanViews),
		)
	}

	// 3. 按房档逐间合并
	state := newState(len(inventory))
	for _, room := range inventory {
		effectiveStatus := models.StatusUnknown
		ready := false
		if status, ok := statusByRoom[room.Number]; ok {
			effectiveStatus = status.Status
			ready = status.Ready
		}

		bedMounted := "unknown"
		houseStatus := ""
		if view, ok := viewByRoom[room.Number]; ok {
			bedMounted = view.Mounted
			houseStatus = view.HouseStatus
		}

		// 任一数据源证明可用即视为当日可用（宁可偏向可用，
		// 避免过期或缺失的数据源挡住一间实际可排的房）
		usableToday := effectiveStatus == models.StatusFree || houseStatus == models.HouseStatusFree

		state.add(models.HouseRoom{
			Number:      room.Number,
			Wing:        room.Wing,
			Floor:       room.Floor,
			Category:    room.Category,
			BedPossible: room.BedPossible,
			MaxGuests:   room.MaxGuests,
			Status:      effectiveStatus,
			BedMounted:  bedMounted,
			Ready:       ready,
			UsableToday: usableToday,
		})
	}

	return state
}

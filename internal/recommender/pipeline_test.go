package recommender_test

import (
	"context"
	"testing"

	"room-allocator/internal/extractor"
	"room-allocator/internal/house"
	"room-allocator/internal/models"
	"room-allocator/internal/recommender"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPipeline() *recommender.Pipeline {
	ex := extractor.NewKeywordExtractor(nil)
	return recommender.NewPipeline(zap.NewNop(), recommender.DefaultStages(ex)...)
}

func reconcileScenario(statuses []models.RoomStatus, views []models.HouseView) *house.State {
	inventory := []models.Room{
		{Number: 101, Wing: "A", Floor: 0, Category: "S1", MaxGuests: 2},
		{Number: 201, Wing: "B", Floor: 1, Category: "S1", MaxGuests: 2},
	}
	return house.NewEngine(zap.NewNop()).Reconcile(inventory, statuses, views)
}

// 场景A：两间 S1 都空闲，备注提到不能爬楼梯 -> 选地面层的 101
func TestPipeline_Recommend_PrefersGroundFloorWhenNoStairs(t *testing.T) {
	state := reconcileScenario(
		[]models.RoomStatus{
			{RoomNumber: 101, Status: models.StatusFree, Ready: true},
			{RoomNumber: 201, Status: models.StatusFree, Ready: true},
		},
		nil,
	)

	booking := models.Booking{
		BookingID: "BK-001",
		Category:  "S1",
		Guests:    2,
		Notes:     "patient cannot climb stairs",
	}

	room, ok := newTestPipeline().Recommend(context.Background(), booking, state)
	require.True(t, ok)
	require.Equal(t, 101, room.Number)
}

// 场景B：101 维修且巡查视角为占用 -> 唯一可用的 201 胜出，
// 软偏好不允许为满足无楼梯而打空结果
func TestPipeline_Recommend_FallsBackToUpperFloorWhenGroundUnusable(t *testing.T) {
	state := reconcileScenario(
		[]models.RoomStatus{
			{RoomNumber: 101, Status: models.StatusMaintenance},
			{RoomNumber: 201, Status: models.StatusFree, Ready: true},
		},
		[]models.HouseView{
			{RoomNumber: 101, HouseStatus: models.HouseStatusOccupied, Mounted: "double"},
		},
	)

	room101, _ := state.Get(101)
	require.False(t, room101.UsableToday)

	booking := models.Booking{
		BookingID: "BK-002",
		Category:  "S1",
		Guests:    2,
		Notes:     "patient cannot climb stairs",
	}

	room, ok := newTestPipeline().Recommend(context.Background(), booking, state)
	require.True(t, ok)
	require.Equal(t, 201, room.Number)
}

// 场景C：请求的房型在房档中不存在 -> 显式的无结果，不是错误
func TestPipeline_Recommend_NoMatchReturnsNone(t *testing.T) {
	state := reconcileScenario(
		[]models.RoomStatus{
			{RoomNumber: 101, Status: models.StatusFree},
			{RoomNumber: 201, Status: models.StatusFree},
		},
		nil,
	)

	booking := models.Booking{BookingID: "BK-003", Category: "S3", Guests: 1}

	_, ok := newTestPipeline().Recommend(context.Background(), booking, state)
	require.False(t, ok)
}

// 推荐结果永远满足硬过滤条件
func TestPipeline_Recommend_ResultAlwaysSatisfiesHardFilter(t *testing.T) {
	state := reconcileScenario(
		[]models.RoomStatus{
			{RoomNumber: 101, Status: models.StatusOccupied},
			{RoomNumber: 201, Status: models.StatusFree},
		},
		nil,
	)

	bookings := []models.Booking{
		{BookingID: "BK-010", Category: "S1", Guests: 1},
		{BookingID: "BK-011", Category: "S1", Guests: 2, Notes: "sem escadas"},
		{BookingID: "BK-012", Category: "S1", Guests: 3},
		{BookingID: "BK-013", Category: "S2", Guests: 1},
	}

	pipeline := newTestPipeline()
	for _, booking := range bookings {
		room, ok := pipeline.Recommend(context.Background(), booking, state)
		if !ok {
			continue
		}
		require.Equal(t, booking.Category, room.Category)
		require.GreaterOrEqual(t, room.MaxGuests, booking.Guests)
		require.True(t, room.UsableToday)
	}
}

// 无阶段收窄时返回首个候选（平局按房档顺序）
func TestPipeline_Recommend_TieBreakByInventoryOrder(t *testing.T) {
	state := reconcileScenario(
		[]models.RoomStatus{
			{RoomNumber: 101, Status: models.StatusFree},
			{RoomNumber: 201, Status: models.StatusFree},
		},
		nil,
	)

	booking := models.Booking{BookingID: "BK-020", Category: "S1", Guests: 2}

	room, ok := newTestPipeline().Recommend(context.Background(), booking, state)
	require.True(t, ok)
	require.Equal(t, 101, room.Number)
}

// 追加的自定义阶段按装配顺序执行
func TestPipeline_Recommend_AppendedStageRuns(t *testing.T) {
	ex := extractor.NewKeywordExtractor(nil)
	preferReady := func(ctx context.Context, booking models.Booking, rooms []models.HouseRoom) []models.HouseRoom {
		ready := make([]models.HouseRoom, 0, len(rooms))
		for _, room := range rooms {
			if room.Ready {
				ready = append(ready, room)
			}
		}
		if len(ready) == 0 {
			return rooms
		}
		return ready
	}

	stages := append(recommender.DefaultStages(ex), preferReady)
	pipeline := recommender.NewPipeline(zap.NewNop(), stages...)

	state := reconcileScenario(
		[]models.RoomStatus{
			{RoomNumber: 101, Status: models.StatusFree, Ready: false},
			{RoomNumber: 201, Status: models.StatusFree, Ready: true},
		},
		nil,
	)

	booking := models.Booking{BookingID: "BK-030", Category: "S1", Guests: 2}

	room, ok := pipeline.Recommend(context.Background(), booking, state)
	require.True(t, ok)
	require.Equal(t, 201, room.Number)
}

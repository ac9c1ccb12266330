package models

import "time"

// 房态编码（rooms_status_today 数据源）
const (
	StatusFree        = "free"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
	StatusBlocked     = "blocked"
	StatusUnknown     = "unknown"
)

// 客房部视角房态编码（house_view_today 数据源）
const (
	HouseStatusFree        = "free"
	HouseStatusBooked      = "booked"
	HouseStatusOccupied    = "occupied"
	HouseStatusMaintenance = "maintenance"
	HouseStatusOutOfOrder  = "out of order"
)

// Room 房间静态档案（来自 rooms_main 数据源，每轮对账只读不改）
type Room struct {
	Number      int    `json:"room_number"`
	Wing        string `json:"wing"`
	Floor       int    `json:"floor"` // 0 = 地面层
	Category    string `json:"category"` // "S1".."S9"
	BedPossible string `json:"bed_possible"`
	MaxGuests   int    `json:"max_guests"`
}

// RoomStatus 当日运营房态（来自 rooms_status_today 数据源）
// 每个房间每天一条，运营状态以此为准
type RoomStatus struct {
	RoomNumber int    `json:"room_number"`
	Status     string `json:"status"` // free/occupied/maintenance/blocked/unknown
	BedMounted bool   `json:"bed_mounted"`
	Ready      bool   `json:"ready"`
}

// HouseView 客房部巡查视角（来自 house_view_today 数据源）
// 独立上报，可能与 RoomStatus 不一致
type HouseView struct {
	RoomNumber   int        `json:"room_number"`
	HouseStatus  string     `json:"house_status"` // free/booked/occupied/maintenance/out of order
	Mounted      string     `json:"mounted"`
	Notes        string     `json:"notes"`
	CheckoutDate *time.Time `json:"checkout_date,omitempty"`
}

// HouseRoom 对账后的房间统一视图（推荐管线唯一读取的实体）
// 每轮对账全量重建，生命周期为一个排房周期
type HouseRoom struct {
	Number      int    `json:"room_number"`
	Wing        string `json:"wing"`
	Floor       int    `json:"floor"`
	Category    string `json:"category"`
	BedPossible string `json:"bed_possible"`
	MaxGuests   int    `json:"max_guests"`
	Status      string `json:"status"`      // 生效房态（缺失时为 "unknown"）
	BedMounted  string `json:"bed_mounted"` // 生效床位描述（缺失时为 "unknown"）
	Ready       bool   `json:"ready"`
	UsableToday bool   `json:"usable_today"`
}

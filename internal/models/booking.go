package models

import "time"

// Booking 预订请求（来自 checkins_today 数据源，推荐的不可变输入）
type Booking struct {
	BookingID   string    `json:"booking_id"`
	Category    string    `json:"category"` // 请求的房型编码
	Guests      int       `json:"guests"`
	HasChildren bool      `json:"has_children"`
	HasElderly  bool      `json:"has_elderly"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Notes       string    `json:"notes"` // 自由文本备注，约束提取的输入
}

// Constraints 从备注中提取的结构化排房约束
// 当前只有 NoStairs 一项，后续约束按同样方式扩展
type Constraints struct {
	NoStairs bool `json:"no_stairs"`
}

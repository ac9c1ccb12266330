package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"room-allocator/internal/models"
)

// 数据目录下的约定文件名（.csv 或 .xlsx）
const (
	RoomsMainFeed   = "rooms_main"
	RoomStatusFeed  = "rooms_status_today"
	HouseViewFeed   = "house_view_today"
	CheckinsFeed    = "checkins_today"
	checkoutDateFmt = "2006-01-02"
)

// LoadRooms 加载房间静态档案
func LoadRooms(path string) ([]models.Room, error) {
	records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	rooms := make([]models.Room, 0, len(records))
	for i, record := range records {
		number, err := requireInt(record, "room_number", path, i+1)
		if err != nil {
			return nil, err
		}
		floor, err := requireInt(record, "floor", path, i+1)
		if err != nil {
			return nil, err
		}
		maxGuests, err := requireInt(record, "max_guests", path, i+1)
		if err != nil {
			return nil, err
		}
		category, err := requireField(record, "category", path, i+1)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, models.Room{
			Number:      number,
			Wing:        record["wing"],
			Floor:       floor,
			Category:    category,
			BedPossible: record["bed_possible"],
			MaxGuests:   maxGuests,
		})
	}

	return rooms, nil
}

// LoadRoomStatuses 加载当日运营房态
// 房号为空的行按上游习惯跳过（状态导出常带空行）
func LoadRoomStatuses(path string) ([]models.RoomStatus, error) {
	records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	statuses := make([]models.RoomStatus, 0, len(records))
	for i, record := range records {
		if record["room_number"] == "" {
			continue
		}
		number, err := requireInt(record, "room_number", path, i+1)
		if err != nil {
			return nil, err
		}
		status, err := requireField(record, "status", path, i+1)
		if err != nil {
			return nil, err
		}

		statuses = append(statuses, models.RoomStatus{
			RoomNumber: number,
			Status:     status,
			BedMounted: parseBool(record["bed_mounted"]),
			Ready:      parseBool(record["ready"]),
		})
	}

	return statuses, nil
}

// LoadHouseViews 加载客房部巡查视角
func LoadHouseViews(path string) ([]models.HouseView, error) {
	records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	views := make([]models.HouseView, 0, len(records))
	for i, record := range records {
		number, err := requireInt(record, "room_number", path, i+1)
		if err != nil {
			return nil, err
		}
		houseStatus, err := requireField(record, "house_status", path, i+1)
		if err != nil {
			return nil, err
		}

		view := models.HouseView{
			RoomNumber:  number,
			HouseStatus: houseStatus,
			Mounted:     record["mounted"],
			Notes:       record["notes"],
		}

		if raw := record["checkout_date"]; raw != "" {
			date, err := time.Parse(checkoutDateFmt, raw)
			if err != nil {
				return nil, fmt.Errorf("invalid checkout_date %q in %s (record %d): %w", raw, path, i+1, err)
			}
			view.CheckoutDate = &date
		}

		views = append(views, view)
	}

	return views, nil
}

// LoadCheckins 加载当日入住预订
func LoadCheckins(path string) ([]models.Booking, error) {
	records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(records))
	for i, record := range records {
		bookingID, err := requireField(record, "booking_id", path, i+1)
		if err != nil {
			return nil, err
		}
		category, err := requireField(record, "category", path, i+1)
		if err != nil {
			return nil, err
		}
		guests, err := requireInt(record, "guests", path, i+1)
		if err != nil {
			return nil, err
		}
		checkIn, err := requireDate(record, "check_in", path, i+1)
		if err != nil {
			return nil, err
		}
		checkOut, err := requireDate(record, "check_out", path, i+1)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, models.Booking{
			BookingID:   bookingID,
			Category:    category,
			Guests:      guests,
			HasChildren: parseBool(record["has_children"]),
			HasElderly:  parseBool(record["has_elderly"]),
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			Notes:       record["notes"],
		})
	}

	return bookings, nil
}

func requireInt(record map[string]string, field, path string, line int) (int, error) {
	raw, err := requireField(record, field, path, line)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q in %s (record %d): %w", field, raw, path, line, err)
	}
	return value, nil
}

func requireDate(record map[string]string, field, path string, line int) (time.Time, error) {
	raw, err := requireField(record, field, path, line)
	if err != nil {
		return time.Time{}, err
	}
	value, err := time.Parse(checkoutDateFmt, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q in %s (record %d): %w", field, raw, path, line, err)
	}
	return value, nil
}

func parseBool(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

// DirFeedSource 基于数据目录的数据源实现
// 每个数据源按约定文件名查找，.csv 优先，其次 .xlsx
type DirFeedSource struct {
	dir string
}

// NewDirFeedSource 创建目录数据源
func NewDirFeedSource(dir string) *DirFeedSource {
	return &DirFeedSource{dir: dir}
}

func (s *DirFeedSource) resolve(name string) (string, error) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(s.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("feed %s not found in %s (tried .csv and .xlsx)", name, s.dir)
}

// Rooms 房间静态档案
func (s *DirFeedSource) Rooms(ctx context.Context) ([]models.Room, error) {
	path, err := s.resolve(RoomsMainFeed)
	if err != nil {
		return nil, err
	}
	return LoadRooms(path)
}

// Statuses 当日运营房态
func (s *DirFeedSource) Statuses(ctx context.Context) ([]models.RoomStatus, error) {
	path, err := s.resolve(RoomStatusFeed)
	if err != nil {
		return nil, err
	}
	return LoadRoomStatuses(path)
}

// HouseViews 客房部巡查视角
func (s *DirFeedSource) HouseViews(ctx context.Context) ([]models.HouseView, error) {
	path, err := s.resolve(HouseViewFeed)
	if err != nil {
		return nil, err
	}
	return LoadHouseViews(path)
}

// Checkins 当日入住预订
func (s *DirFeedSource) Checkins(ctx context.Context) ([]models.Booking, error) {
	path, err := s.resolve(CheckinsFeed)
	if err != nil {
		return nil, err
	}
	return LoadCheckins(path)
}

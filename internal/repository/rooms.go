package repository

import (
	"database/sql"
	"fmt"

	"room-allocator/internal/models"

	"go.uber.org/zap"
)

// RoomRepository 房间静态档案数据访问（rooms 表）
type RoomRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoomRepository 创建房档 Repository
func NewRoomRepository(db *sql.DB, logger *zap.Logger) *RoomRepository {
	return &RoomRepository{
		db:     db,
		logger: logger,
	}
}

// GetAllRooms 获取全部房间静态档案
// 按房号排序，作为对账的权威房档顺序
func (r *RoomRepository) GetAllRooms() ([]models.Room, error) {
	query := `
		SELECT
			room_number,
			wing,
			floor,
			category,
			bed_possible,
			max_guests
		FROM rooms
		ORDER BY room_number
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		var wing, bedPossible sql.NullString

		err := rows.Scan(
			&room.Number,
			&wing,
			&room.Floor,
			&room.Category,
			&bedPossible,
			&room.MaxGuests,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}

		if wing.Valid {
			room.Wing = wing.String
		}
		if bedPossible.Valid {
			room.BedPossible = bedPossible.String
		}

		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

// GetRoomByNumber 按房号获取单间档案
func (r *RoomRepository) GetRoomByNumber(number int) (*models.Room, error) {
	query := `
		SELECT
			room_number,
			wing,
			floor,
			category,
			bed_possible,
			max_guests
		FROM rooms
		WHERE room_number = $1
	`

	var room models.Room
	var wing, bedPossible sql.NullString

	err := r.db.QueryRow(query, number).Scan(
		&room.Number,
		&wing,
		&room.Floor,
		&room.Category,
		&bedPossible,
		&room.MaxGuests,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room not found: %d", number)
		}
		return nil, fmt.Errorf("failed to query room: %w", err)
	}

	if wing.Valid {
		room.Wing = wing.String
	}
	if bedPossible.Valid {
		room.BedPossible = bedPossible.String
	}

	return &room, nil
}

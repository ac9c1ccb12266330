package repository_test

import (
	"errors"
	"testing"

	"room-allocator/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRoomRepository_GetAllRooms(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewRoomRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT\s+room_number`).
		WillReturnRows(sqlmock.NewRows([]string{
			"room_number", "wing", "floor", "category", "bed_possible", "max_guests",
		}).
			AddRow(101, "A", 0, "S1", "double", 2).
			AddRow(201, nil, 1, "S1", nil, 2))

	rooms, err := repo.GetAllRooms()
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	require.Equal(t, 101, rooms[0].Number)
	require.Equal(t, "A", rooms[0].Wing)
	require.Equal(t, "S1", rooms[0].Category)

	// NULL 列按零值处理
	require.Equal(t, 201, rooms[1].Number)
	require.Equal(t, "", rooms[1].Wing)
	require.Equal(t, "", rooms[1].BedPossible)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_GetAllRooms_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewRoomRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT\s+room_number`).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetAllRooms()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to query rooms")
}

func TestRoomRepository_GetRoomByNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewRoomRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT\s+room_number`).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{
			"room_number", "wing", "floor", "category", "bed_possible", "max_guests",
		}).AddRow(101, "A", 0, "S1", "double", 2))

	room, err := repo.GetRoomByNumber(101)
	require.NoError(t, err)
	require.Equal(t, 101, room.Number)
	require.Equal(t, "double", room.BedPossible)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_GetRoomByNumber_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewRoomRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT\s+room_number`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{
			"room_number", "wing", "floor", "category", "bed_possible", "max_guests",
		}))

	_, err = repo.GetRoomByNumber(999)
	require.Error(t, err)
	require.Contains(t, err.Error(), "room not found")
}

package house

import (
	"room-allocator/internal/models"
)

// State 对账后的全馆房态
// Go 的 map 迭代顺序不确定，这里额外保存房档插入顺序，
// 推荐管线按该顺序遍历，保证端到端确定性
type State struct {
	rooms map[int]models.HouseRoom
	order []int
}

func newState(capacity int) *State {
	return &State{
		rooms: make(map[int]models.HouseRoom, capacity),
		order: make([]int, 0, capacity),
	}
}

func (s *State) add(room models.HouseRoom) {
	if _, exists := s.rooms[room.Number]; !exists {
		s.order = append(s.order, room.Number)
	}
	s.rooms[room.Number] = room
}

// Get 按房号查询
func (s *State) Get(number int) (models.HouseRoom, bool) {
	room, ok := s.rooms[number]
	return room, ok
}

// Rooms 按房档顺序返回全部房间
func (s *State) Rooms() []models.HouseRoom {
	rooms := make([]models.HouseRoom, 0, len(s.order))
	for _, number := range s.order {
		rooms = append(rooms, s.rooms[number])
	}
	return rooms
}

// Len 房间数量
func (s *State) Len() int {
	return len(s.order)
}

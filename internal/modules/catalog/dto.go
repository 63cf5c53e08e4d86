package catalog

/* ---------- MUSEUMS ---------- */

type CreateMuseumRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

type UpdateMuseumRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

/* ---------- ROOMS ---------- */

type CreateRoomRequest struct {
	MuseumID    int64  `json:"museum_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Photo       string `json:"photo"`
}

type UpdateRoomRequest struct {
	MuseumID    int64  `json:"museum_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Photo       string `json:"photo"`
}

/* ---------- OBJECTS ---------- */

type CreateObjectRequest struct {
	RoomID      int64  `json:"room_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
	Audio       string `json:"audio"`
}

type UpdateObjectRequest struct {
	RoomID      int64  `json:"room_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
	Audio       string `json:"audio"`
}

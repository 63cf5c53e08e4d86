package domain

import "time"

// Museum is the root of the content hierarchy: Museum -> Room -> Object.
type Museum struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	Title       string    `json:"title" gorm:"column:title" validate:"required,max=255"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	Photo       string    `json:"photo,omitempty" gorm:"column:photo"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:MuseumID;constraint:OnDelete:CASCADE"`
}

func (Museum) TableName() string { return "museums" }

type Room struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	MuseumID    int64     `json:"museum_id" gorm:"column:museum_id;index" validate:"required"`
	Title       string    `json:"title" gorm:"column:title" validate:"required,max=255"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	Photo       string    `json:"photo,omitempty" gorm:"column:photo"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`

	Museum  *Museum  `json:"museum,omitempty" gorm:"foreignKey:MuseumID"`
	Objects []Object `json:"objects,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

func (Room) TableName() string { return "rooms" }

// Object is a single exhibit. Its title is the human-facing lookup key used
// by the visitor guide, compared case-insensitively within a room.
type Object struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	RoomID      int64     `json:"room_id" gorm:"column:room_id;index" validate:"required"`
	Title       string    `json:"title" gorm:"column:title" validate:"required,max=255"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	Photo       string    `json:"photo,omitempty" gorm:"column:photo"`
	Audio       string    `json:"audio,omitempty" gorm:"column:audio"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (Object) TableName() string { return "objects" }

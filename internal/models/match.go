package models

import (
	"time"

	"gorm.io/gorm"
)

// MatchRecord is the persisted result of a finished game. Live game state is
// never stored; only this write-once row survives a restart.
type MatchRecord struct {
	gorm.Model
	RoomCode   string    `json:"room_code" gorm:"type:varchar(16);index"`
	GameType   string    `json:"game_type" gorm:"type:varchar(20)"`
	Winner     string    `json:"winner" gorm:"type:varchar(64)"`
	Reason     string    `json:"reason" gorm:"type:varchar(20)"`
	Players    int       `json:"players"`
	Scores     string    `json:"scores,omitempty" gorm:"type:jsonb"`
	FinishedAt time.Time `json:"finished_at"`
}

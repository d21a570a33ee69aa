package models

import (
	"gorm.io/gorm"
)

// User is a registered account for the REST surface. Game participants
// identify themselves in-band over the websocket and do not need one.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

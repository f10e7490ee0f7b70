package model

// XPHistory is the append-only record of every XP grant.
type XPHistory struct {
	BaseModel
	UserID uint   `gorm:"index;not null" json:"userId"`
	Amount int    `gorm:"not null" json:"amount"`
	Reason string `gorm:"size:255;not null" json:"reason"`
}

func (XPHistory) TableName() string {
	return "xp_history"
}

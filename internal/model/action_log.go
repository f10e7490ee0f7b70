package model

// ActionLog is the append-only audit trail of administrative bank mutations.
type ActionLog struct {
	BaseModel
	UserID         uint   `gorm:"index" json:"userId"`
	Action         string `gorm:"size:100;not null" json:"action"`
	Specialization string `gorm:"size:50" json:"specialization"`
	Detail         string `gorm:"size:500" json:"detail"`
}

func (ActionLog) TableName() string {
	return "action_logs"
}

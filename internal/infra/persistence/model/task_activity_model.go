package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskActivityModel mirrors the 'task_activities' table. There is no foreign key to tasks
// so history survives deletion.
type TaskActivityModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MessageID  string     `gorm:"type:varchar(128);not null;uniqueIndex:idx_task_activities_message"`
	RequestID  string     `gorm:"type:varchar(128);not null;default:''"`
	Type       string     `gorm:"type:varchar(32);not null"`
	TaskID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_task_activities_user_task,priority:2"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_task_activities_user_task,priority:1"`
	User       *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	OccurredAt time.Time  `gorm:"not null;index:idx_task_activities_user_task,priority:3"`
	RecordedAt time.Time  `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (TaskActivityModel) TableName() string {
	return "task_activities"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table. Listing is served by idx_tasks_user_created.
type TaskModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_user_created,priority:1"`
	User        *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:varchar(1000);not null;default:''"`
	Category    string     `gorm:"type:varchar(100);not null;default:'Other'"`
	Completed   bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"index:idx_tasks_user_created,priority:2,sort:desc"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

// All lists every model in migration order.
func All() []any {
	return []any{&UserModel{}, &CredentialModel{}, &TaskModel{}, &TaskActivityModel{}}
}

package db

import (
	"time"

	"gorm.io/gorm"

	"taskboard/internal/core/domain"
)

type userModel struct {
	ID           uint64    `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string {
	return "users"
}

type taskModel struct {
	ID          uint64         `gorm:"primaryKey"`
	UserID      uint64         `gorm:"index;not null"`
	User        *userModel     `gorm:"foreignKey:UserID"`
	Title       string         `gorm:"size:255;not null"`
	Description *string        `gorm:"size:1000"`
	Status      string         `gorm:"size:20;index;not null"`
	Priority    int            `gorm:"not null"`
	DueDate     *time.Time     `gorm:"type:date;index"`
	CreatedAt   time.Time      `gorm:"index"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (taskModel) TableName() string {
	return "tasks"
}

func mapTaskModelToDomainTask(row taskModel) domain.Task {
	priority, _ := domain.NormalizePriority(row.Priority)
	task := domain.Task{
		ID:        row.ID,
		OwnerID:   row.UserID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  priority,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Description != nil {
		value := *row.Description
		task.Description = &value
	}

	if row.DueDate != nil {
		value := domain.DateOf(*row.DueDate)
		task.DueDate = &value
	}

	if row.User != nil {
		task.Owner = &domain.Owner{ID: row.User.ID, Name: row.User.Name}
	}

	return task
}

func mapUserModelToDomainUser(row userModel) domain.User {
	return domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

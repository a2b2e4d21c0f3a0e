package model

import (
	"time"

	"gorm.io/datatypes"
)

// InterviewSession is one row per (candidate, job) pair. The three lists are
// parallel and stored as JSON arrays.
type InterviewSession struct {
	SessionKey   string                      `gorm:"type:text;primaryKey"`
	CandidateId  string                      `gorm:"type:text;not null;index"`
	JobId        string                      `gorm:"type:text;not null;index"`
	Questions    datatypes.JSONSlice[string] `gorm:"not null"`
	Answers      datatypes.JSONSlice[string] `gorm:"not null"`
	Categories   datatypes.JSONSlice[string] `gorm:"not null"`
	Context      string                      `gorm:"type:text"`
	Version      int64                       `gorm:"not null;default:0"`
	GenerationId string                      `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

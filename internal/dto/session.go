package dto

import "time"

type OpenSessionRequest struct {
	TableID int `json:"table_id"`
}

type SessionDTO struct {
	ID       int        `json:"id"`
	TableID  int        `json:"table_id"`
	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
}

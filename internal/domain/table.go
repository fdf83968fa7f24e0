package domain

import "time"

type Table struct {
	ID        int
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

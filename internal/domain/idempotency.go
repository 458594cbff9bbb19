package domain

import "time"

// Idempotency stores the response of a completed unsafe request keyed by
// (client, route, key) so a retried webhook replays it instead of running
// the side effect again.
type Idempotency struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Client    string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_client_route_key,priority:1"`
	Route     string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_client_route_key,priority:2"`
	Key       string    `gorm:"column:idem_key;type:varchar(200);not null;uniqueIndex:ux_idem_client_route_key,priority:3"`
	Status    int       `gorm:"not null"`
	Body      []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }

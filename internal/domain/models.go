// Package domain defines the persistence models for pigs, their growth log,
// achievements and bot users. These types are mapped with GORM and shared by
// the repository, service and HTTP layers.
package domain

import (
	"time"
)

// PigKind tells a chat pig (one per user per chat) from a hand pig (one per
// user, used in inline mode and duels).
type PigKind string

const (
	KindChat PigKind = "chat"
	KindHand PigKind = "hand"
)

// Scope locates a pig for its owner. ChatID is zero for hand pigs.
type Scope struct {
	Kind   PigKind
	ChatID int64
}

// ChatScope is the scope of the owner's pig in chatID.
func ChatScope(chatID int64) Scope { return Scope{Kind: KindChat, ChatID: chatID} }

// HandScope is the scope of the owner's global hand pig.
func HandScope() Scope { return Scope{Kind: KindHand} }

// Pig is the per-owner, per-scope game state.
//
// Fields:
//   - OwnerID: Telegram user id.
//   - Kind/ChatID: the scope; unique together with OwnerID.
//   - Mass: current weight. Feeding keeps chat pigs at 1 or more.
//   - LastUpdateDate: game calendar day of the last feed or refresh.
//   - WinCount/LossCount: duel counters, hand pigs only.
type Pig struct {
	ID             uint      `json:"id"               gorm:"primaryKey"`
	OwnerID        uint64    `json:"owner_id"         gorm:"not null;uniqueIndex:ux_pig_owner_scope,priority:1"`
	Kind           PigKind   `json:"kind"             gorm:"type:varchar(8);not null;uniqueIndex:ux_pig_owner_scope,priority:2;index:idx_pig_kind_chat_mass,priority:1"`
	ChatID         int64     `json:"chat_id"          gorm:"not null;default:0;uniqueIndex:ux_pig_owner_scope,priority:3;index:idx_pig_kind_chat_mass,priority:2"`
	Name           string    `json:"name"             gorm:"type:varchar(256);not null"`
	Mass           int       `json:"mass"             gorm:"not null;index:idx_pig_kind_chat_mass,priority:3"`
	LastUpdateDate time.Time `json:"last_update_date" gorm:"not null"`
	WinCount       uint      `json:"win_count"        gorm:"not null;default:0"`
	LossCount      uint      `json:"loss_count"       gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for Pig.
func (Pig) TableName() string { return "pigs" }

// Scope returns the scope this pig lives in.
func (p Pig) Scope() Scope { return Scope{Kind: p.Kind, ChatID: p.ChatID} }

// GrowthLog is one append-only feed record. Rows are never updated; the
// insertion order is the chronological order.
type GrowthLog struct {
	ID            uint      `json:"id"             gorm:"primaryKey"`
	PigID         uint      `json:"pig_id"         gorm:"not null;index:idx_grow_log_pig,priority:1"`
	CreatedAt     time.Time `json:"created_at"     gorm:"not null"`
	WeightChange  int       `json:"weight_change"  gorm:"not null"`
	CurrentWeight int       `json:"current_weight" gorm:"not null"`

	Pig Pig `json:"-" gorm:"foreignKey:PigID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for GrowthLog.
func (GrowthLog) TableName() string { return "grow_log" }

// Achievement records a one-time unlock. A pig holds each code at most once.
type Achievement struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	PigID      uint      `json:"pig_id"      gorm:"not null;uniqueIndex:ux_achievement_pig_code,priority:1"`
	Code       int16     `json:"code"        gorm:"not null;uniqueIndex:ux_achievement_pig_code,priority:2"`
	UnlockedAt time.Time `json:"unlocked_at" gorm:"not null"`

	Pig Pig `json:"-" gorm:"foreignKey:PigID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Achievement.
func (Achievement) TableName() string { return "achievements" }

// UserStatus grades the owner's support tier.
type UserStatus int

const (
	StatusPlain UserStatus = iota
	StatusSubscribed
	StatusSupported
)

func (s UserStatus) String() string {
	switch s {
	case StatusSubscribed:
		return "subscribed"
	case StatusSupported:
		return "supported"
	default:
		return "plain"
	}
}

// MassBonus is the flat mass added to a hand pig on its daily refresh.
func (s UserStatus) MassBonus() int {
	switch s {
	case StatusSupported:
		return 500
	case StatusSubscribed:
		return 100
	default:
		return 0
	}
}

// User is a bot user. ID is the Telegram user id.
type User struct {
	ID         uint64    `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(256)"`
	Subscribed bool      `json:"subscribed" gorm:"not null;default:false"`
	Supported  bool      `json:"supported"  gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Status returns the user's support tier; supported wins over subscribed.
func (u User) Status() UserStatus {
	switch {
	case u.Supported:
		return StatusSupported
	case u.Subscribed:
		return StatusSubscribed
	default:
		return StatusPlain
	}
}

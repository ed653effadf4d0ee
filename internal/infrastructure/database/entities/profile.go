package entities

import (
	"time"

	"creative-hub/services/messaging-api/internal/domain/profile"
)

// Profile is the local read model of a marketplace user. Identity lives in
// the auth provider; this table only mirrors what the messaging surface
// renders.
type Profile struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DisplayName string  `gorm:"type:varchar(256);not null;default:''"`
	Email       string  `gorm:"type:varchar(320);not null;default:''"`
	AvatarURL   *string `gorm:"type:varchar(512)"`
	Role        string  `gorm:"type:varchar(40);not null;default:''"`
}

// TableName specifies the table name for Profile.
func (Profile) TableName() string {
	return "profile"
}

// EtoD converts database entity to domain model.
func (p *Profile) EtoD() *profile.Summary {
	return &profile.Summary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Role:        p.Role,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer record managed through the back office.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     *string   `gorm:"column:email"`
	Tel       string    `gorm:"column:tel;not null"`
	CPF       *string   `gorm:"column:cpf"`
	Address   *Address  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Address is the single postal address owned by a client. It is replaced
// wholesale on client updates, never patched in place.
type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID `gorm:"column:client_id;type:uuid;not null"`
	Street       string    `gorm:"column:street"`
	StreetNumber int       `gorm:"column:street_number"`
	City         *string   `gorm:"column:city"`
	State        *string   `gorm:"column:state"`
	Zipcode      *string   `gorm:"column:zipcode"`
	Country      *string   `gorm:"column:country"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (a *Address) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

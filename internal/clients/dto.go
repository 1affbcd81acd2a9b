package clients

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bmimportados/backoffice-backend/pkg/db/models"
)

// AddressInput is the postal address payload nested inside client writes.
type AddressInput struct {
	Street       string  `json:"street"`
	StreetNumber int     `json:"streetNumber"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zipcode      *string `json:"zipcode"`
	Country      *string `json:"country"`
}

// IsEmpty reports whether every address field is blank. Empty addresses are
// dropped instead of persisted.
func (a AddressInput) IsEmpty() bool {
	return strings.TrimSpace(a.Street) == "" &&
		a.StreetNumber == 0 &&
		blankPtr(a.City) &&
		blankPtr(a.State) &&
		blankPtr(a.Zipcode) &&
		blankPtr(a.Country)
}

func blankPtr(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}

// CreateClientInput captures the payload for registering a client.
type CreateClientInput struct {
	Name    string        `json:"name" validate:"required"`
	Email   *string       `json:"email" validate:"omitempty,email"`
	Tel     string        `json:"tel" validate:"required"`
	CPF     *string       `json:"cpf"`
	Address *AddressInput `json:"address"`
}

// UpdateClientInput captures the payload for mutating a client. The stored
// address is replaced on every update; omitting or emptying it clears the row.
type UpdateClientInput struct {
	Name    *string       `json:"name"`
	Email   *string       `json:"email" validate:"omitempty,email"`
	Tel     *string       `json:"tel"`
	CPF     *string       `json:"cpf"`
	Address *AddressInput `json:"address"`
}

// ListClientsInput bundles the filter and paging knobs for the list endpoint.
type ListClientsInput struct {
	Query string
	Take  int
	Skip  int
}

// AddressDTO is the public shape of a client address.
type AddressDTO struct {
	ID           uuid.UUID `json:"id"`
	Street       string    `json:"street"`
	StreetNumber int       `json:"streetNumber"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	Zipcode      *string   `json:"zipcode"`
	Country      *string   `json:"country"`
}

// ClientDTO is the public shape of a client record.
type ClientDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     *string     `json:"email"`
	Tel       string      `json:"tel"`
	CPF       *string     `json:"cpf"`
	Address   *AddressDTO `json:"address"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FromModel maps a persisted client onto its public DTO.
func FromModel(client *models.Client) *ClientDTO {
	dto := &ClientDTO{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Tel:       client.Tel,
		CPF:       client.CPF,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
	if client.Address != nil {
		dto.Address = &AddressDTO{
			ID:           client.Address.ID,
			Street:       client.Address.Street,
			StreetNumber: client.Address.StreetNumber,
			City:         client.Address.City,
			State:        client.Address.State,
			Zipcode:      client.Address.Zipcode,
			Country:      client.Address.Country,
		}
	}
	return dto
}

func (a AddressInput) toModel(clientID uuid.UUID) models.Address {
	return models.Address{
		ClientID:     clientID,
		Street:       a.Street,
		StreetNumber: a.StreetNumber,
		City:         a.City,
		State:        a.State,
		Zipcode:      a.Zipcode,
		Country:      a.Country,
	}
}

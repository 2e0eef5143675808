package auth

import (
	"github.com/JojoFlex1/done/internal/identity"
	"github.com/JojoFlex1/done/internal/types"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

func userToTypes(p *identity.Profile) *types.User {
	return &types.User{
		ID:            (*strfmt.UUID)(swag.String(p.ID)),
		Email:         swag.String(p.Email),
		Username:      p.Username,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		WalletAddress: swag.String(p.WalletAddress),
		RewardAddress: p.RewardAddress,
		TotalPoints:   swag.Int64(p.TotalPoints),
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

// SeedUser is a demo account created by the seeder.
type SeedUser struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// SeedProperty is a demo listing. HostEmail names its owner.
type SeedProperty struct {
	Name          string
	PricePerNight float64
	Description   string
	Location      string
	HostEmail     string
}

// DemoUsers and DemoProperties are the fixtures loaded by cmd/seed.
var (
	DemoUsers = []SeedUser{
		{Username: "john_doe_2", Email: "john.doe@example.com", Password: "password123", Role: domain.RoleGuest},
		{Username: "jane_doe_1", Email: "jane.doe@example.com", Password: "password456", Role: domain.RoleHost},
		{Username: "anique_petit", Email: "aniquepetit@hotmail.com", Password: "Winc123", Role: domain.RoleAdmin},
	}
	DemoProperties = []SeedProperty{
		{Name: "Luxury Apartment", PricePerNight: 120.5, Description: "A luxurious apartment in the city center", Location: "City Center", HostEmail: "jane.doe@example.com"},
		{Name: "Cozy Cottage", PricePerNight: 75.0, Description: "A cozy cottage in the countryside", Location: "Countryside", HostEmail: "aniquepetit@hotmail.com"},
	}
)

// Seeder loads fixtures. Running it twice leaves the data unchanged.
type Seeder struct {
	auth       ports.AuthService
	users      ports.UserRepository
	properties ports.PropertyRepository
	log        zerolog.Logger
}

func NewSeeder(auth ports.AuthService, users ports.UserRepository, properties ports.PropertyRepository, log zerolog.Logger) *Seeder {
	return &Seeder{auth: auth, users: users, properties: properties, log: log}
}

// Seed registers users and then properties, skipping whatever already exists.
func (s *Seeder) Seed(ctx context.Context, users []SeedUser, properties []SeedProperty) error {
	for _, u := range users {
		_, err := s.auth.Register(ctx, ports.RegisterInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Role:     string(u.Role),
		})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			s.log.Info().Str("email", u.Email).Msg("seed user exists, skipping")
		case err != nil:
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		default:
			s.log.Info().Str("email", u.Email).Str("role", string(u.Role)).Msg("seed user created")
		}
	}

	for _, p := range properties {
		existing, err := s.properties.FindByName(ctx, p.Name)
		if err != nil {
			return fmt.Errorf("seed property %s: %w", p.Name, err)
		}
		if existing != nil {
			s.log.Info().Str("name", p.Name).Msg("seed property exists, skipping")
			continue
		}

		host, err := s.users.FindByEmail(ctx, p.HostEmail)
		if err != nil {
			return fmt.Errorf("seed property %s host: %w", p.Name, err)
		}

		prop := &domain.Property{
			Name:          p.Name,
			PricePerNight: p.PricePerNight,
			Description:   p.Description,
			Location:      p.Location,
			HostID:        host.ID,
		}
		if err := s.properties.Create(ctx, prop); err != nil {
			return fmt.Errorf("seed property %s: %w", p.Name, err)
		}
		s.log.Info().Str("name", p.Name).Int64("id", prop.ID).Msg("seed property created")
	}
	return nil
}

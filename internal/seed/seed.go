// Package seed loads catalog fixtures and demo accounts from YAML.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
	"github.com/mgluxury/boutique/internal/core/service"
)

//go:embed default.yaml
var defaultFile []byte

type Category struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type Product struct {
	Name        string `yaml:"name"`
	Price       int64  `yaml:"price"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Composition string `yaml:"composition"`
	Image       string `yaml:"image"`
	Stock       int    `yaml:"stock"`
	Featured    bool   `yaml:"featured"`
	IsNew       bool   `yaml:"is_new"`
}

type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Phone    string `yaml:"phone"`
	Address  string `yaml:"address"`
}

// File is the seed document.
type File struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
	Users      []User     `yaml:"users"`
}

// Default returns the embedded demo catalog.
func Default() (*File, error) {
	return Parse(defaultFile)
}

// Load reads a seed file; an empty path yields the embedded default.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Role != domain.RoleAdmin && u.Role != domain.RoleCustomer {
			return nil, fmt.Errorf("parse seed file: user %d (%s): unknown role %q", i, u.Email, u.Role)
		}
	}
	return &f, nil
}

// Identities returns the users for the static provider, with plaintext
// passwords and ids numbered from 1.
func (f *File) Identities() []domain.Identity {
	out := make([]domain.Identity, len(f.Users))
	for i, u := range f.Users {
		out[i] = domain.Identity{
			ID:       fmt.Sprint(i + 1),
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			Role:     u.Role,
			Phone:    u.Phone,
			Address:  u.Address,
		}
	}
	return out
}

// Targets are the stores a seed is written into. Users may be nil when the
// identities stay in the static list.
type Targets struct {
	Categories ports.CategoryRepository
	Products   ports.ProductRepository
	Users      ports.UserRepository
}

// Apply writes the seed. Categories, products (by name) and users (by
// email) already present are skipped, so a seed can be applied twice.
// Products are listed oldest first in the file, so the last one comes out
// newest.
func Apply(ctx context.Context, f *File, t Targets, log zerolog.Logger) error {
	now := time.Now().UTC()
	for _, c := range f.Categories {
		err := t.Categories.Create(ctx, &domain.Category{
			Name: c.Name, Label: c.Label, Description: c.Description, Image: c.Image,
			CreatedAt: now, UpdatedAt: now,
		})
		if errors.Is(err, domain.ErrDuplicateCategory) {
			log.Debug().Str("category", c.Name).Msg("category exists, skipped")
			continue
		}
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
	}

	existing, err := t.Products.List(ctx, ports.ProductFilter{})
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Name] = true
	}
	for i, p := range f.Products {
		if have[p.Name] {
			log.Debug().Str("product", p.Name).Msg("product exists, skipped")
			continue
		}
		ts := now.Add(time.Duration(i) * time.Millisecond)
		err := t.Products.Create(ctx, &domain.Product{
			Name: p.Name, Price: p.Price, Category: p.Category, Description: p.Description,
			Composition: p.Composition, Image: p.Image, Stock: p.Stock,
			Featured: p.Featured, IsNew: p.IsNew, CreatedAt: ts, UpdatedAt: ts,
		})
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		have[p.Name] = true
	}

	if t.Users != nil {
		for _, u := range f.Users {
			_, err := t.Users.FindByEmail(ctx, u.Email)
			if err == nil {
				log.Debug().Str("email", u.Email).Msg("user exists, skipped")
				continue
			}
			if !errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			hash, err := service.HashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			err = t.Users.Create(ctx, &domain.Identity{
				Name: u.Name, Email: u.Email, PasswordHash: hash,
				Role: u.Role, Phone: u.Phone, Address: u.Address,
			})
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
		}
	}

	log.Info().
		Int("categories", len(f.Categories)).
		Int("products", len(f.Products)).
		Int("users", len(f.Users)).
		Msg("seed applied")
	return nil
}

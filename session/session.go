// Package session is the explicit client state: the cart, the theme
// preference and the session token, loaded from and saved to a Storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/infpro/storefront-api/cart"
	"github.com/infpro/storefront-api/models"
)

const (
	CartKey  = "infpro_cart_v2"
	ThemeKey = "infpro_theme"
	TokenKey = "infpro_token"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Session struct {
	storage Storage

	Cart  *cart.Cart
	Theme Theme
	Token string
}

// Load reads the session from storage. An unreadable cart value is treated
// as an empty cart and an unknown theme as light.
func Load(ctx context.Context, st Storage) (*Session, error) {
	s := &Session{storage: st, Cart: cart.New(), Theme: ThemeLight}

	raw, ok, err := st.Get(ctx, CartKey)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if ok {
		var items []models.CartItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			s.Cart = cart.FromItems(items)
		}
	}

	theme, ok, err := st.Get(ctx, ThemeKey)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if ok && Theme(theme) == ThemeDark {
		s.Theme = ThemeDark
	}

	token, _, err := st.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	s.Token = token

	return s, nil
}

// Save writes every part of the session.
func (s *Session) Save(ctx context.Context) error {
	if err := s.SaveCart(ctx); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, ThemeKey, string(s.Theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return s.saveToken(ctx)
}

// SaveCart persists the cart as a JSON array. An empty cart removes the key.
func (s *Session) SaveCart(ctx context.Context) error {
	if s.Cart.IsEmpty() {
		if err := s.storage.Delete(ctx, CartKey); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(s.Cart.Items())
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, CartKey, string(data)); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Session) AddToCart(ctx context.Context, p models.Product) error {
	s.Cart.Add(p)
	return s.SaveCart(ctx)
}

func (s *Session) RemoveFromCart(ctx context.Context, id string) error {
	s.Cart.Remove(id)
	return s.SaveCart(ctx)
}

func (s *Session) SetQuantity(ctx context.Context, id string, qty int) error {
	s.Cart.SetQuantity(id, qty)
	return s.SaveCart(ctx)
}

func (s *Session) ClearCart(ctx context.Context) error {
	s.Cart.Clear()
	return s.SaveCart(ctx)
}

// ToggleTheme flips between light and dark and persists the choice.
func (s *Session) ToggleTheme(ctx context.Context) (Theme, error) {
	next := ThemeDark
	if s.Theme == ThemeDark {
		next = ThemeLight
	}
	if err := s.storage.Set(ctx, ThemeKey, string(next)); err != nil {
		return s.Theme, fmt.Errorf("save theme: %w", err)
	}
	s.Theme = next
	return next, nil
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	s.Token = token
	return s.saveToken(ctx)
}

func (s *Session) Logout(ctx context.Context) error {
	return s.SetToken(ctx, "")
}

func (s *Session) saveToken(ctx context.Context) error {
	var err error
	if s.Token == "" {
		err = s.storage.Delete(ctx, TokenKey)
	} else {
		err = s.storage.Set(ctx, TokenKey, s.Token)
	}
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

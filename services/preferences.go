package services

import (
	"context"
	"fmt"

	"furuth/database"
	"furuth/models"
)

// Preferences stores the shopper's display currency and theme as raw
// strings. Unknown stored values read as the defaults.
type Preferences struct {
	storage database.Storage
}

func NewPreferences(storage database.Storage) *Preferences {
	return &Preferences{storage: storage}
}

func (p *Preferences) Currency(ctx context.Context) (models.Currency, error) {
	raw, ok, err := p.storage.Get(ctx, database.CurrencyKey)
	if err != nil {
		return models.CurrencyUSD, fmt.Errorf("read currency: %w", err)
	}
	if !ok {
		return models.CurrencyUSD, nil
	}
	currency, ok := models.ParseCurrency(raw)
	if !ok {
		return models.CurrencyUSD, nil
	}
	return currency, nil
}

func (p *Preferences) SetCurrency(ctx context.Context, s string) (models.Currency, error) {
	currency, ok := models.ParseCurrency(s)
	if !ok {
		return "", &models.ValidationError{Field: "currency", Reason: "currency must be USD or BDT"}
	}
	if err := p.storage.Set(ctx, database.CurrencyKey, string(currency)); err != nil {
		return "", &SaveError{Key: database.CurrencyKey, Err: err}
	}
	return currency, nil
}

func (p *Preferences) Theme(ctx context.Context) (models.Theme, error) {
	raw, ok, err := p.storage.Get(ctx, database.ThemeKey)
	if err != nil {
		return models.ThemeLight, fmt.Errorf("read theme: %w", err)
	}
	if !ok {
		return models.ThemeLight, nil
	}
	theme, ok := models.ParseTheme(raw)
	if !ok {
		return models.ThemeLight, nil
	}
	return theme, nil
}

func (p *Preferences) SetTheme(ctx context.Context, s string) (models.Theme, error) {
	theme, ok := models.ParseTheme(s)
	if !ok {
		return "", &models.ValidationError{Field: "theme", Reason: "theme must be light or dark"}
	}
	if err := p.storage.Set(ctx, database.ThemeKey, string(theme)); err != nil {
		return "", &SaveError{Key: database.ThemeKey, Err: err}
	}
	return theme, nil
}

package provider

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrUnknownBundleSize indicates the bundle size label has no numeric prefix.
	ErrUnknownBundleSize = errors.New("unknown bundle size")
	// ErrInvalidPhone indicates the beneficiary number cannot be put in local format.
	ErrInvalidPhone = errors.New("invalid beneficiary phone number")
)

// Catalog holds the provider specific lookup data.
type Catalog struct {
	Version           int            `yaml:"version"`
	FallbackNetworkID int            `yaml:"fallback_network_id"`
	BundleUnitScale   int64          `yaml:"bundle_unit_scale"`
	Phone             PhoneFormat    `yaml:"phone"`
	Networks          map[string]int `yaml:"networks"`
}

// PhoneFormat describes the local number format the provider expects.
type PhoneFormat struct {
	CountryCode string `yaml:"country_code"`
	LocalLength int    `yaml:"local_length"`
}

// LoadCatalog reads the catalog from path, or the embedded copy when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read provider catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse provider catalog: %w", err)
	}
	if c.BundleUnitScale <= 0 {
		return nil, fmt.Errorf("provider catalog: bundle_unit_scale must be positive")
	}
	if c.Phone.LocalLength <= 1 {
		return nil, fmt.Errorf("provider catalog: phone.local_length must be greater than 1")
	}

	networks := make(map[string]int, len(c.Networks))
	for name, id := range c.Networks {
		networks[model.NormalizeNetwork(name)] = id
	}
	c.Networks = networks
	return &c, nil
}

// NetworkID maps a network name to the provider id. Unknown names get the fallback id and known=false.
func (c *Catalog) NetworkID(network string) (id int, known bool) {
	if id, ok := c.Networks[model.NormalizeNetwork(network)]; ok {
		return id, true
	}
	return c.FallbackNetworkID, false
}

// BundleUnits converts a size label like "2GB" or "1.5GB" into provider units.
func (c *Catalog) BundleUnits(size string) (int64, error) {
	size = strings.TrimSpace(size)
	end := 0
	for end < len(size) && (unicode.IsDigit(rune(size[end])) || size[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBundleSize, size)
	}
	amount, err := decimal.NewFromString(size[:end])
	if err != nil || !amount.IsPositive() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBundleSize, size)
	}
	return amount.Mul(decimal.NewFromInt(c.BundleUnitScale)).IntPart(), nil
}

// NormalizePhone converts international or bare numbers into the local format with a leading zero.
func (c *Catalog) NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
		}
	}

	number := digits.String()
	subscriber := c.Phone.LocalLength - 1
	switch {
	case c.Phone.CountryCode != "" && strings.HasPrefix(number, c.Phone.CountryCode) && len(number) == len(c.Phone.CountryCode)+subscriber:
		number = "0" + number[len(c.Phone.CountryCode):]
	case len(number) == subscriber:
		number = "0" + number
	}

	if len(number) != c.Phone.LocalLength || number[0] != '0' {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return number, nil
}

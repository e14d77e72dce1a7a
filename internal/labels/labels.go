// Package labels holds display-only translation tables for listing
// attributes and formats prices for the player.
package labels

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var embedded []byte

// Tables maps raw dataset codes to display strings.
type Tables struct {
	HouseTypes map[string]string `yaml:"house_types" json:"houseTypes"`
	Conditions map[string]string `yaml:"conditions" json:"conditions"`
}

var tables = mustParse(embedded)

func mustParse(b []byte) Tables {
	t, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes a YAML translation table.
func Parse(b []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Tables{}, fmt.Errorf("labels: %w", err)
	}
	if t.HouseTypes == nil {
		t.HouseTypes = map[string]string{}
	}
	if t.Conditions == nil {
		t.Conditions = map[string]string{}
	}
	return t, nil
}

// All returns the embedded tables.
func All() Tables { return tables }

// HouseType translates a house type code, or returns it unchanged.
func HouseType(code string) string { return lookup(tables.HouseTypes, code) }

// Condition translates a condition code, or returns it unchanged.
func Condition(code string) string { return lookup(tables.Conditions, code) }

func lookup(m map[string]string, code string) string {
	if v, ok := m[code]; ok {
		return v
	}
	return code
}

// Formatter renders amounts with the locale's digit grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 tag such as "lv" or "en".
// Unparseable tags fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// EUR formats a whole-euro amount, e.g. "89,000 EUR".
func (f *Formatter) EUR(v float64) string {
	return f.p.Sprintf("%.0f EUR", v)
}

// Percent formats an error percentage with one decimal, e.g. "12.5%".
func (f *Formatter) Percent(v float64) string {
	return f.p.Sprintf("%.1f%%", v)
}

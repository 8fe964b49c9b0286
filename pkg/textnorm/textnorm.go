// Package textnorm normaliza entradas de texto antes de compararlas o persistirlas.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// Enum normaliza valores de enumeración ("electricity " → "ELECTRICITY").
func Enum(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// Email normaliza un email para comparaciones de unicidad.
func Email(s string) string {
	return lower.String(strings.TrimSpace(s))
}

// Code normaliza códigos de negocio (plan_code): sin espacios y en mayúsculas.
func Code(s string) string {
	return strings.ReplaceAll(Enum(s), " ", "_")
}

package prefs

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts exactly "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeDark, ThemeLight:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTheme, s)
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == ThemeDark }

func (t Theme) String() string { return string(t) }

// Language is a supported interface language.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// DefaultLanguage is the language every session starts with.
const DefaultLanguage = English

// Languages lists the supported languages, default first.
var Languages = []Language{English, Arabic}

// ParseLanguage accepts exactly the supported language codes.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.TrimSpace(s))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == English || l == Arabic
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}

// Direction returns the text direction of the language's script.
func (l Language) Direction() Direction {
	script, _ := l.Tag().Script()
	if _, ok := rtlScripts[script.String()]; ok {
		return RTL
	}
	return LTR
}

func (l Language) String() string { return string(l) }

// Direction is the text direction of a wrapper element.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

func (d Direction) String() string { return string(d) }

// ISO 15924 codes of right-to-left scripts.
var rtlScripts = map[string]struct{}{
	"Arab": {},
	"Hebr": {},
	"Syrc": {},
	"Thaa": {},
	"Nkoo": {},
	"Adlm": {},
	"Rohg": {},
	"Mand": {},
	"Samr": {},
}

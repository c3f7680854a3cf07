package helper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 100

// SlugOptions menentukan cara cek keunikan slug di DB.
type SlugOptions struct {
	Table            string
	SlugColumn       string
	SoftDeleteColumn string         // kosongkan jika tidak pakai soft-delete
	Filters          map[string]any // scope tenant, misal {"class_school_id": schoolID}
	DefaultBase      string
}

// GenerateSlug menormalkan string menjadi slug:
// lower-case, non-alnum jadi "-", collapse "-", trim "-" ujung.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	return regexp.MustCompile(`-+`).ReplaceAllString(out, "-")
}

func slugTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return false, errors.New("slug options: table/slug column required")
	}
	q := db.Table(opts.Table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate)
	for k, v := range opts.Filters {
		q = q.Where(fmt.Sprintf("%s = ?", k), v)
	}
	if opts.SoftDeleteColumn != "" {
		q = q.Where(fmt.Sprintf("%s IS NULL", opts.SoftDeleteColumn))
	}
	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug membuat slug unik berbasis "base" dalam scope Filters:
// coba base, lalu base-2, base-3, ... sampai ketemu.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	base = GenerateSlug(base)
	if base == "" {
		base = GenerateSlug(opts.DefaultBase)
	}
	if base == "" {
		base = "x"
	}
	if len(base) > DefaultSlugMaxLen {
		base = strings.Trim(base[:DefaultSlugMaxLen], "-")
	}

	candidate := base
	for i := 2; i <= 1000; i++ {
		taken, err := slugTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errors.New("slug space exhausted")
}

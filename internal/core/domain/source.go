package domain

import (
	"fmt"
	"regexp"
)

// Source is a catalogue entry describing one statute and where it is published.
type Source struct {
	ID          string    `toml:"id" json:"id"`
	Zone        LegalZone `toml:"zone" json:"legal_zone"`
	URL         string    `toml:"url" json:"url"`
	Title       string    `toml:"title" json:"title"`
	TitleEn     string    `toml:"title_en" json:"title_en,omitempty"`
	ShortName   string    `toml:"short_name" json:"short_name,omitempty"`
	Status      Status    `toml:"status" json:"status"`
	IssuedDate  string    `toml:"issued_date" json:"issued_date,omitempty"`
	InForceDate string    `toml:"in_force_date" json:"in_force_date,omitempty"`
}

var (
	federalIDPattern = regexp.MustCompile(`^(fdl|fl|cd)-\d+-\d{4}$`)
	difcIDPattern    = regexp.MustCompile(`^difc-law-\d+-\d{4}$`)
	adgmIDPattern    = regexp.MustCompile(`^adgm-[a-z0-9]+(-[a-z0-9]+)*-\d{4}$`)
)

// ValidDocumentID reports whether id has the shape required by zone.
func ValidDocumentID(zone LegalZone, id string) bool {
	switch zone {
	case ZoneFederal:
		return federalIDPattern.MatchString(id)
	case ZoneDIFC:
		return difcIDPattern.MatchString(id)
	case ZoneADGM:
		return adgmIDPattern.MatchString(id)
	}
	return false
}

// Validate checks the fields ingestion depends on.
func (s Source) Validate() error {
	if !s.Zone.IsValid() {
		return fmt.Errorf("%w: source %q has unknown zone %q", ErrInvalidInput, s.ID, s.Zone)
	}
	if !ValidDocumentID(s.Zone, s.ID) {
		return fmt.Errorf("%w: id %q does not match the %s id format", ErrInvalidInput, s.ID, s.Zone)
	}
	if s.URL == "" {
		return fmt.Errorf("%w: source %q has no url", ErrInvalidInput, s.ID)
	}
	if s.Status != "" && !s.Status.IsValid() {
		return fmt.Errorf("%w: source %q has unknown status %q", ErrInvalidInput, s.ID, s.Status)
	}
	return nil
}

// Package catalog reads and writes the rooms and course sessions handed to
// the assignment engine.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hperssn/roomalloc/internal/domain"
)

type Catalog struct {
	Rooms    []domain.Room
	Sessions []domain.Session
}

type document struct {
	Rooms    []string          `json:"rooms"`
	Sessions []sessionDocument `json:"sessions"`
}

type sessionDocument struct {
	Course  string  `json:"course"`
	Weekday int     `json:"weekday"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Decode parses a catalog document and validates every room and period.
func Decode(r io.Reader) (Catalog, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.toCatalog()
}

func (d document) toCatalog() (Catalog, error) {
	c := Catalog{
		Rooms:    make([]domain.Room, 0, len(d.Rooms)),
		Sessions: make([]domain.Session, 0, len(d.Sessions)),
	}

	for _, code := range d.Rooms {
		room, err := domain.NewRoom(code)
		if err != nil {
			return Catalog{}, err
		}
		c.Rooms = append(c.Rooms, room)
	}
	if err := domain.ValidateRooms(c.Rooms); err != nil {
		return Catalog{}, err
	}

	for _, s := range d.Sessions {
		period, err := domain.NewPeriod(s.Weekday, s.Start, s.End)
		if err != nil {
			return Catalog{}, fmt.Errorf("course %s: %w", s.Course, err)
		}
		session, err := domain.NewSession(s.Course, period)
		if err != nil {
			return Catalog{}, err
		}
		c.Sessions = append(c.Sessions, session)
	}

	return c, nil
}

func Encode(w io.Writer, c Catalog) error {
	doc := document{
		Rooms:    make([]string, len(c.Rooms)),
		Sessions: make([]sessionDocument, len(c.Sessions)),
	}
	for i, r := range c.Rooms {
		doc.Rooms[i] = r.Code
	}
	for i, s := range c.Sessions {
		doc.Sessions[i] = sessionDocument{
			Course:  s.ID,
			Weekday: s.Period.Weekday,
			Start:   s.Period.Start,
			End:     s.Period.End,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Sample returns the reference establishment: four rooms and five course
// meetings spread over three days.
func Sample() Catalog {
	return Catalog{
		Rooms: []domain.Room{
			{Code: "C205"},
			{Code: "C209"},
			{Code: "C210"},
			{Code: "C211"},
		},
		Sessions: []domain.Session{
			{ID: "420-1D6-VI", Period: domain.Period{Weekday: 1, Start: 8.25, End: 10.08}},
			{ID: "420-1D6-VI", Period: domain.Period{Weekday: 2, Start: 11.25, End: 13.08}},
			{ID: "201-1A3-VI", Period: domain.Period{Weekday: 1, Start: 9.25, End: 11.08}},
			{ID: "420-1B4-VI", Period: domain.Period{Weekday: 1, Start: 13.25, End: 16.08}},
			{ID: "420-1B4-VI", Period: domain.Period{Weekday: 3, Start: 14.25, End: 17.08}},
		},
	}
}

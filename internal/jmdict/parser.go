package jmdict

import (
	"encoding/xml"
	"fmt"

	"github.com/samber/lo"

	"github.com/eslsoft/jmdictdb/internal/entity"
)

// Parser turns entity-free dictionary XML into a typed document. Kept as a
// narrow function type so the structural decoder can be swapped without
// touching the resolver or the store.
type Parser func(doc string) (*entity.Document, error)

// Wire structs mirroring the JMdict element layout.
type xmlDocument struct {
	XMLName xml.Name   `xml:"JMdict"`
	Entries []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Seq    string     `xml:"ent_seq"`
	REle   []xmlREle  `xml:"r_ele"`
	KEle   []xmlKEle  `xml:"k_ele"`
	Senses []xmlSense `xml:"sense"`
}

type xmlREle struct {
	Reb string `xml:"reb"`
}

type xmlKEle struct {
	Keb string `xml:"keb"`
}

type xmlSense struct {
	Pos   []string `xml:"pos"`
	Xref  []string `xml:"xref"`
	Gloss []string `xml:"gloss"`
}

// ParseDocument decodes doc into the dictionary document tree. Any structural
// violation, including an entry without readings, aborts the whole parse; no
// partial document is ever returned.
func ParseDocument(doc string) (*entity.Document, error) {
	var wire xmlDocument
	if err := xml.Unmarshal([]byte(doc), &wire); err != nil {
		return nil, fmt.Errorf("decode dictionary xml: %w", err)
	}

	entries := make([]entity.Entry, 0, len(wire.Entries))
	for i, we := range wire.Entries {
		if len(we.REle) == 0 {
			return nil, fmt.Errorf("entry %d (ent_seq %q): %w", i, we.Seq, entity.ErrMissingReading)
		}
		e := entity.Entry{
			Seq:      we.Seq,
			Readings: lo.Map(we.REle, func(r xmlREle, _ int) string { return r.Reb }),
			Senses:   make([]entity.Sense, 0, len(we.Senses)),
		}
		if len(we.KEle) > 0 {
			e.KanjiForms = lo.Map(we.KEle, func(k xmlKEle, _ int) string { return k.Keb })
		}
		for order, ws := range we.Senses {
			e.Senses = append(e.Senses, entity.Sense{
				Order:           order,
				PartsOfSpeech:   ws.Pos,
				CrossReferences: ws.Xref,
				Glosses:         ws.Gloss,
			})
		}
		entries = append(entries, e)
	}
	return &entity.Document{Entries: entries}, nil
}

package entity

// Document is the parsed form of one JMdict XML file. It only lives for the
// duration of an ingestion pass and is never persisted as-is.
type Document struct {
	Entries []Entry
}

// Entry is one dictionary headword group. Seq carries the textual ent_seq from
// the source document; it is parsed into an integer key at ingestion time.
type Entry struct {
	Seq        string
	Readings   []string // kana readings, at least one per entry
	KanjiForms []string // nil when the word has no kanji spelling
	Senses     []Sense
}

// Sense is one meaning/usage unit of an Entry. Order is the zero-based position
// within the parent entry; it is stored explicitly because sense order is part
// of the dictionary semantics.
type Sense struct {
	Order           int
	PartsOfSpeech   []string
	CrossReferences []string
	Glosses         []string
}

// ParsedEntry is an Entry reconstructed from the store, senses in order.
type ParsedEntry struct {
	Seq        int64
	Readings   []string
	KanjiForms []string
	Senses     []Sense
}

// ContainsKanji reports whether s contains any CJK unified ideograph. Queries
// without kanji go to the reading index instead.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

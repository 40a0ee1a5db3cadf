package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsKanji(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"食べる", true},
		{"する", false},
		{"タベル", false},
		{"taberu", false},
		{"お茶", true},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ContainsKanji(c.in), "input %q", c.in)
	}
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchPattern(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"розы", "%розы%"},
		{"роз*", "роз%"},
		{"ро*зы", "ро%зы"},
		{"*красн*", "%красн%"},
		{"*", "%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, searchPattern(tt.search), "search %q", tt.search)
	}
}

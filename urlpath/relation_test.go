package urlpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	const initial = "https://www.example.com/"
	tests := []struct {
		name   string
		base   string
		target string
		exp    Relation
	}{
		{"identical", initial, initial, SameInitialSameBase},
		{"relative target", "https://www.example.com/docs/", "../img/a.png", SameInitialSameBase},
		{"case and port are ignored", "https://WWW.example.com:8443/a", "http://www.EXAMPLE.com/b", SameInitialSameBase},
		{"back home from cdn", "https://cdn.example.net/a.css", "https://www.example.com/x.png", SameInitialDifferentBase},
		{"external from external", "https://cdn.example.net/a.css", "font.woff2", DifferentInitialSameBase},
		{"external from home", initial, "https://cdn.example.net/a.js", DifferentInitialDifferentBase},
		{"malformed target", initial, "http://[::1", DifferentInitialDifferentBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, Classify(initial, tt.base, tt.target))
		})
	}
}

func TestClassifySelf(t *testing.T) {
	for _, u := range []string{"https://a.com", "http://b.org/x?y=1", "https://C.de:9000/"} {
		assert.Equal(t, SameInitialSameBase, Classify(u, u, u), u)
	}
}

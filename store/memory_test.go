package store

import (
	"testing"

	"github.com/foomo/exporter/vo"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	s.Add(vo.VisitedResource{UqID: "a", URL: "https://example.com/"}, "<html></html>", true)
	s.Add(vo.VisitedResource{UqID: "b", URL: "https://example.com/img.png"}, "", false)
	s.Add(vo.VisitedResource{UqID: "a", URL: "https://example.com/index"}, "<p>new</p>", true)

	all := s.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "https://example.com/index", all[0].URL)
	assert.Equal(t, "b", all[1].UqID)

	body, ok := s.Body("a")
	assert.True(t, ok)
	assert.Equal(t, "<p>new</p>", body)
	_, ok = s.Body("b")
	assert.False(t, ok)

	u, ok := s.URLByID("b")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/img.png", u)
	_, ok = s.URLByID("missing")
	assert.False(t, ok)
}

func TestMemoryStoreAllIsACopy(t *testing.T) {
	s := NewMemoryStore()
	s.Add(vo.VisitedResource{UqID: "a", URL: "https://example.com/"}, "", false)
	all := s.All()
	all[0].URL = "changed"
	assert.Equal(t, "https://example.com/", s.All()[0].URL)
}

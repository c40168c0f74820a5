package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	s := NewMediaStore("proj", "key", "report-media")

	key := s.objectKey("user-1", "dump site.JPG")
	assert.True(t, strings.HasPrefix(key, "user-1/"))
	assert.True(t, strings.HasSuffix(key, ".JPG"))

	// Anonymous uploads share a namespace but still get unique keys.
	anon := s.objectKey("", "photo.png")
	assert.True(t, strings.HasPrefix(anon, "anonymous/"))
	assert.NotEqual(t, s.objectKey("", "photo.png"), anon)
}

func TestPublicURL(t *testing.T) {
	s := NewMediaStore("proj", "key", "report-media")

	url := s.PublicURL("user-1/123-abc.jpg")
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/report-media/user-1/123-abc.jpg", url)
}

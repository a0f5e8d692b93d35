package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedia_ToMap(t *testing.T) {
	uploaded := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	m := &Media{
		ID:         7,
		UserID:     3,
		PostID:     11,
		MediaType:  "image/png",
		MediaURL:   "http://x/1.png",
		UploadDate: uploaded,
		User:       &User{ID: 3, Username: "alice"},
	}

	got := m.ToMap()

	assert.Equal(t, map[string]any{
		"media_id":    uint64(7),
		"user_id":     uint64(3),
		"post_id":     uint64(11),
		"media_type":  "image/png",
		"media_url":   "http://x/1.png",
		"upload_date": uploaded,
	}, got)
}

func TestMedia_MarshalJSON(t *testing.T) {
	m := Media{ID: 1, UserID: 2, PostID: 3, MediaType: "video/mp4", MediaURL: "http://x/v.mp4"}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 6)
	assert.ElementsMatch(t,
		[]string{"media_id", "user_id", "post_id", "media_type", "media_url", "upload_date"},
		keys(decoded))
	assert.Equal(t, "video/mp4", decoded["media_type"])
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "posts", Post{}.TableName())
	assert.Equal(t, "comments", Comment{}.TableName())
	assert.Equal(t, "follows", Follow{}.TableName())
	assert.Equal(t, "likes", Like{}.TableName())
	assert.Equal(t, "media", Media{}.TableName())
}

func TestAll_ParentsFirst(t *testing.T) {
	all := All()
	require.Len(t, all, 6)
	assert.IsType(t, &User{}, all[0])
	assert.IsType(t, &Post{}, all[1])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

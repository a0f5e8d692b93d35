package erd

import (
	"Picgram/internal/model"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findTable(t *testing.T, d *Diagram, name string) Table {
	t.Helper()
	for _, tb := range d.Tables {
		if tb.Name == name {
			return tb
		}
	}
	t.Fatalf("table %s not found", name)
	return Table{}
}

func findColumn(t *testing.T, tb Table, name string) Column {
	t.Helper()
	for _, c := range tb.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %s.%s not found", tb.Name, name)
	return Column{}
}

func TestBuild_Tables(t *testing.T) {
	d, err := Build(model.All()...)
	require.NoError(t, err)

	names := make([]string, 0, len(d.Tables))
	for _, tb := range d.Tables {
		names = append(names, tb.Name)
	}
	assert.Equal(t, []string{"users", "posts", "comments", "follows", "likes", "media"}, names)

	users := findTable(t, d, "users")
	id := findColumn(t, users, "user_id")
	assert.True(t, id.PrimaryKey)
	assert.False(t, id.Nullable)

	username := findColumn(t, users, "username")
	assert.Equal(t, "varchar(50)", username.Type)
	assert.True(t, username.Unique)
	assert.False(t, username.Nullable)

	bio := findColumn(t, users, "bio")
	assert.True(t, bio.Nullable)
	assert.False(t, bio.Unique)

	posts := findTable(t, d, "posts")
	owner := findColumn(t, posts, "user_id")
	assert.True(t, owner.ForeignKey)
	assert.Equal(t, "bigint", owner.Type)
	assert.Equal(t, "datetime", findColumn(t, posts, "post_date").Type)
}

func TestBuild_Relations(t *testing.T) {
	d, err := Build(model.All()...)
	require.NoError(t, err)

	byKey := make(map[string]Relation)
	for _, r := range d.Relations {
		byKey[r.From+"."+r.FromColumn] = r
	}
	assert.Len(t, d.Relations, 9)

	follower, ok := byKey["follows.follower_id"]
	require.True(t, ok)
	assert.Equal(t, "users", follower.To)
	assert.Equal(t, "user_id", follower.ToColumn)
	assert.False(t, follower.OneToOne)

	media, ok := byKey["media.post_id"]
	require.True(t, ok)
	assert.Equal(t, "posts", media.To)
	assert.True(t, media.OneToOne)

	like, ok := byKey["likes.post_id"]
	require.True(t, ok)
	assert.False(t, like.OneToOne)
}

func TestRender(t *testing.T) {
	var dot bytes.Buffer
	require.NoError(t, Render(&dot, FormatDOT, model.All()...))
	assert.Contains(t, dot.String(), "digraph schema {")
	assert.Contains(t, dot.String(), "comments -> posts")
	assert.Contains(t, dot.String(), `username : varchar(50) [UK]\l`)

	var mermaid bytes.Buffer
	require.NoError(t, Render(&mermaid, FormatMermaid, model.All()...))
	assert.Contains(t, mermaid.String(), "erDiagram")
	assert.Contains(t, mermaid.String(), `users ||--o{ posts : "user_id"`)
	assert.Contains(t, mermaid.String(), `posts ||--o| media : "post_id"`)
	assert.Contains(t, mermaid.String(), "bigint post_id PK")

	err := Render(&bytes.Buffer{}, "png", model.All()...)
	assert.Error(t, err)
}

func TestDotEscape(t *testing.T) {
	assert.Equal(t, `a\|b\{c\}\"d\"`, dotEscape(`a|b{c}"d"`))
}

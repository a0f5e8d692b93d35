package repository_test

import (
	"Picgram/internal/model"
	"Picgram/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLikeRepo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	p := f.post(t, alice, "http://x/1.jpg")

	like := &model.Like{UserID: bob.ID, PostID: p.ID}
	require.NoError(t, f.likes.CreateLike(ctx, like))
	assert.False(t, like.LikeDate.IsZero())

	err := f.likes.CreateLike(ctx, &model.Like{UserID: bob.ID, PostID: p.ID})
	require.ErrorIs(t, err, repository.ErrUniquenessViolation)

	err = f.likes.CreateLike(ctx, &model.Like{UserID: bob.ID, PostID: 404})
	require.ErrorIs(t, err, repository.ErrReferentialIntegrity)

	exists, err := f.likes.CheckLikeExists(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	likes, err := f.likes.GetLikesByPost(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, bob.ID, likes[0].UserID)

	ids, err := f.likes.GetLikedPostIDs(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{p.ID}, ids)

	count, err := f.likes.GetLikeCountByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	n, err := f.likes.DeleteLike(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = f.likes.DeleteLike(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommentRepo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	p := f.post(t, alice, "http://x/1.jpg")

	c1 := &model.Comment{UserID: bob.ID, PostID: p.ID, Text: "first"}
	require.NoError(t, f.comments.CreateComment(ctx, c1))
	assert.False(t, c1.CommentDate.IsZero())
	c2 := &model.Comment{UserID: alice.ID, PostID: p.ID, Text: "second"}
	require.NoError(t, f.comments.CreateComment(ctx, c2))

	list, err := f.comments.GetCommentsByPost(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c1.ID, list[0].ID)

	byUser, err := f.comments.GetCommentsByUser(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "first", byUser[0].Text)

	got, err := f.comments.GetComment(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Text)

	err = f.comments.CreateComment(ctx, &model.Comment{UserID: bob.ID, PostID: p.ID, Text: strings.Repeat("t", 501)})
	require.ErrorIs(t, err, repository.ErrValidation)
	err = f.comments.CreateComment(ctx, &model.Comment{UserID: bob.ID, PostID: p.ID})
	require.ErrorIs(t, err, repository.ErrValidation)
	err = f.comments.CreateComment(ctx, &model.Comment{UserID: 404, PostID: p.ID, Text: "ghost"})
	require.ErrorIs(t, err, repository.ErrReferentialIntegrity)

	n, err := f.comments.DeleteComment(ctx, c1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	missing, err := f.comments.GetComment(ctx, c1.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := f.comments.GetCommentCountByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCommentRepo_WithTxRollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	p := f.post(t, alice, "http://x/1.jpg")

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := f.comments.WithTx(tx).CreateComment(ctx, &model.Comment{UserID: alice.ID, PostID: p.ID, Text: "tmp"}); err != nil {
			return err
		}
		_, err := f.posts.WithTx(tx).AddCommentsCount(ctx, p.ID, 1)
		require.NoError(t, err)
		return gorm.ErrInvalidTransaction
	})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	count, err := f.comments.GetCommentCountByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	got, err := f.posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CommentsCount)
}

func TestFollowRepo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")

	require.NoError(t, f.follows.CreateFollow(ctx, &model.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, f.follows.CreateFollow(ctx, &model.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))
	// 反方向是另一条关系
	require.NoError(t, f.follows.CreateFollow(ctx, &model.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	err := f.follows.CreateFollow(ctx, &model.Follow{FollowerID: bob.ID, FollowingID: alice.ID})
	require.ErrorIs(t, err, repository.ErrUniquenessViolation)
	var cErr *repository.ConstraintError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "follower_id,following_id", cErr.Field)

	err = f.follows.CreateFollow(ctx, &model.Follow{FollowerID: bob.ID, FollowingID: 404})
	require.ErrorIs(t, err, repository.ErrReferentialIntegrity)

	followers, err := f.follows.GetFollowers(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, followers, 2)
	following, err := f.follows.GetFollowing(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].FollowingID)

	cnt, err := f.follows.GetFollowerCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cnt)
	cnt, err = f.follows.GetFollowingCount(ctx, carol.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cnt)

	got, err := f.follows.GetFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.FollowDate.IsZero())

	n, err := f.follows.DeleteFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	got, err = f.follows.GetFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMediaRepo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	p := f.post(t, alice, "http://x/1.jpg")

	m := &model.Media{UserID: alice.ID, PostID: p.ID, MediaType: "image/jpeg", MediaURL: "http://x/1.jpg"}
	require.NoError(t, f.media.CreateMedia(ctx, m))
	assert.False(t, m.UploadDate.IsZero())

	err := f.media.CreateMedia(ctx, &model.Media{UserID: alice.ID, PostID: p.ID, MediaType: "image/png", MediaURL: "http://x/2.png"})
	require.ErrorIs(t, err, repository.ErrUniquenessViolation)
	var cErr *repository.ConstraintError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "post_id", cErr.Field)

	err = f.media.CreateMedia(ctx, &model.Media{UserID: alice.ID, PostID: 404, MediaType: "image/png", MediaURL: "http://x/3.png"})
	require.ErrorIs(t, err, repository.ErrReferentialIntegrity)

	err = f.media.CreateMedia(ctx, &model.Media{UserID: alice.ID, PostID: p.ID, MediaType: strings.Repeat("m", 51), MediaURL: "http://x/4.png"})
	require.ErrorIs(t, err, repository.ErrValidation)

	byPost, err := f.media.GetMediaByPost(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, byPost)
	assert.Equal(t, m.ID, byPost.ID)
	assert.Equal(t, m.ID, byPost.ToMap()["media_id"])

	byUser, err := f.media.GetMediaByUser(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	exists, err := f.media.ExistsMediaURL(ctx, "http://x/1.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := f.media.DeleteMedia(ctx, m.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	gone, err := f.media.GetMedia(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

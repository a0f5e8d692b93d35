package repository_test

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice")
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.RegistrationDate.IsZero())

	got, err := f.users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.ProfilePicture)
	assert.Nil(t, got.Bio)

	byName, err := f.users.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)

	byEmail, err := f.users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	missing, err := f.users.GetUserByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_Uniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")

	err := f.users.CreateUser(ctx, &model.User{Username: "alice", Email: "other@example.com", Password: "x"})
	require.ErrorIs(t, err, repository.ErrUniquenessViolation)
	var cErr *repository.ConstraintError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "username", cErr.Field)

	err = f.users.CreateUser(ctx, &model.User{Username: "bob", Email: "alice@example.com", Password: "x"})
	require.ErrorIs(t, err, repository.ErrUniquenessViolation)
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "email", cErr.Field)
}

func TestUserRepo_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		user  *model.User
		field string
	}{
		{"username too long", &model.User{Username: strings.Repeat("a", 51), Email: "a@example.com", Password: "x"}, "username"},
		{"missing email", &model.User{Username: "carol", Password: "x"}, "email"},
		{"missing password", &model.User{Username: "carol", Email: "c@example.com"}, "password"},
		{"bio too long", &model.User{Username: "carol", Email: "c@example.com", Password: "x", Bio: util.Ptr(strings.Repeat("b", 501))}, "bio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.users.CreateUser(ctx, tt.user)
			require.ErrorIs(t, err, repository.ErrValidation)
			var cErr *repository.ConstraintError
			require.ErrorAs(t, err, &cErr)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}

	ok := &model.User{Username: strings.Repeat("a", 50), Email: "max@example.com", Password: "x"}
	assert.NoError(t, f.users.CreateUser(ctx, ok))
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	n, err := f.users.UpdateUserProfile(ctx, alice.ID, util.Ptr("http://img/a.png"), util.Ptr("hi"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := f.users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProfilePicture)
	assert.Equal(t, "http://img/a.png", *got.ProfilePicture)
	assert.Equal(t, "hi", *got.Bio)
	assert.True(t, got.RegistrationDate.Equal(alice.RegistrationDate))

	_, err = f.users.UpdateUserProfile(ctx, alice.ID, nil, util.Ptr(""))
	require.NoError(t, err)
	got, err = f.users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Bio)
	assert.NotNil(t, got.ProfilePicture)

	_, err = f.users.UpdateUserProfile(ctx, alice.ID, util.Ptr(strings.Repeat("p", 201)), nil)
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestUserRepo_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	alicePost := f.post(t, alice, "http://img/1.png")
	bobPost := f.post(t, bob, "http://img/2.png")

	require.NoError(t, f.likes.CreateLike(ctx, &model.Like{UserID: alice.ID, PostID: bobPost.ID}))
	require.NoError(t, f.comments.CreateComment(ctx, &model.Comment{UserID: alice.ID, PostID: bobPost.ID, Text: "nice"}))
	require.NoError(t, f.comments.CreateComment(ctx, &model.Comment{UserID: bob.ID, PostID: alicePost.ID, Text: "cool"}))
	require.NoError(t, f.follows.CreateFollow(ctx, &model.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, f.media.CreateMedia(ctx, &model.Media{UserID: alice.ID, PostID: alicePost.ID, MediaType: "image/png", MediaURL: "http://img/1.png"}))

	touched, err := f.users.GetPostIDsTouchedBy(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{bobPost.ID}, touched)

	n, err := f.users.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	gone, err := f.posts.GetPost(ctx, alicePost.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	for _, table := range []any{&model.Like{}, &model.Comment{}, &model.Media{}} {
		var count int64
		require.NoError(t, f.db.Model(table).Where("user_id = ?", alice.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
	var follows int64
	require.NoError(t, f.db.Model(&model.Follow{}).Count(&follows).Error)
	assert.Zero(t, follows)

	liked, err := f.likes.CheckLikeExists(ctx, alice.ID, bobPost.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	still, err := f.users.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestUserRepo_GetUserByIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice")
	b := f.user(t, "bob")

	users, err := f.users.GetUserByIDs(ctx, []uint64{a.ID, b.ID, 404})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	empty, err := f.users.GetUserByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

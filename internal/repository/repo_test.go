package repository_test

import (
	"Picgram/internal/model"
	"Picgram/internal/pkg/dbtest"
	"Picgram/internal/pkg/util"
	"Picgram/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    repository.UserRepo
	posts    repository.PostRepo
	comments repository.CommentRepo
	follows  repository.FollowRepo
	likes    repository.LikeRepo
	media    repository.MediaRepo
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.New(t)
	return &fixture{
		db:       db,
		users:    repository.NewUserRepo(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepo(db),
		follows:  repository.NewFollowRepo(db),
		likes:    repository.NewLikeRepo(db),
		media:    repository.NewMediaRepo(db),
	}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Password: "hashed"}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) post(t *testing.T, owner *model.User, url string) *model.Post {
	t.Helper()
	p := &model.Post{UserID: owner.ID, ImageURL: url, Caption: util.Ptr("hello")}
	require.NoError(t, f.posts.CreatePost(context.Background(), p))
	return p
}

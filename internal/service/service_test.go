package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/db"
	"github.com/Skotchmaster/post_shop/internal/events"
	pkg_hash "github.com/Skotchmaster/post_shop/internal/hash"
	"github.com/Skotchmaster/post_shop/internal/models"
	"github.com/Skotchmaster/post_shop/internal/repo"
	"github.com/Skotchmaster/post_shop/internal/tokens"
)

func TestMain(m *testing.M) {
	pkg_hash.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testEnv struct {
	repo   *repo.GormRepo
	events *events.Memory
	auth   *AuthService
	posts  *PostService
	goods  *GoodsService
	cart   *CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	rp := repo.New(gdb)
	mem := &events.Memory{}

	return &testEnv{
		repo:   rp,
		events: mem,
		auth:   &AuthService{Repo: rp, Signer: tokens.NewSigner([]byte("test-jwt-secret"), time.Hour), Events: mem},
		posts:  &PostService{Repo: rp},
		goods:  &GoodsService{Repo: rp},
		cart:   &CartService{Repo: rp, Events: mem},
	}
}

func countUsers(t *testing.T, env *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.repo.DB.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestAuthService_Signup_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name                        string
		nickname, password, confirm string
		kind                        apperr.Kind
	}{
		{name: "empty nickname", nickname: "", password: "pw", confirm: "pw", kind: apperr.KindValidation},
		{name: "empty confirm", nickname: "a", password: "pw", confirm: "", kind: apperr.KindValidation},
		{name: "mismatch", nickname: "a", password: "pw", confirm: "pw2", kind: apperr.KindBusiness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.auth.Signup(ctx, tt.nickname, tt.password, tt.confirm)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, tt.kind))
		})
	}
	assert.Zero(t, countUsers(t, env))
}

func TestAuthService_Signup_SuccessAndConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Signup(ctx, "alice", "Secret123", "Secret123"))

	err := env.auth.Signup(ctx, "alice", "Other", "Other")
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, MsgNicknameTaken, appErr.Message)
	assert.EqualValues(t, 1, countUsers(t, env))

	user, err := env.repo.GetUserByNickname(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", user.Password)

	assert.Equal(t, []string{"user_signed_up"}, env.events.Types())
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.auth.Signup(ctx, "alice", "Secret123", "Secret123"))

	token, err := env.auth.Login(ctx, "alice", "Secret123")
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(token, env.auth.Signer.Secret)
	require.NoError(t, err)
	user, err := env.auth.Authenticate(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Nickname)

	for _, tc := range []struct{ nickname, password string }{
		{"alice", "wrong"},
		{"nobody", "Secret123"},
	} {
		token, err := env.auth.Login(ctx, tc.nickname, tc.password)
		require.Error(t, err)
		assert.Empty(t, token)
		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperr.KindAuth, appErr.Kind)
		assert.Equal(t, 400, appErr.StatusCode())
	}

	_, err = env.auth.Login(ctx, "", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Authenticate(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
}

func TestAuthService_PublishFailureDoesNotFailSignup(t *testing.T) {
	env := newTestEnv(t)
	env.events.Err = errors.New("broker down")

	require.NoError(t, env.auth.Signup(context.Background(), "bob", "pw", "pw"))
	assert.EqualValues(t, 1, countUsers(t, env))
}

func TestPostService_SeedListGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seeded, err := env.posts.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 4)

	_, err = env.posts.Seed(ctx)
	require.NoError(t, err)

	posts, err := env.posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 8)
	assert.Equal(t, "title D", posts[0].Title)
	assert.Equal(t, 0, posts[0].Like)

	got, err := env.posts.Get(ctx, seeded[1].PostID)
	require.NoError(t, err)
	assert.Equal(t, "title B", got.Title)

	_, err = env.posts.Get(ctx, 9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

type fakeIndex struct {
	indexed []models.Post
	ids     []uint
	err     error
}

func (f *fakeIndex) IndexPosts(_ context.Context, posts []models.Post) error {
	f.indexed = append(f.indexed, posts...)
	return f.err
}

func (f *fakeIndex) SearchPostIDs(context.Context, string) ([]uint, error) {
	return f.ids, f.err
}

func TestPostService_SearchWithIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	idx := &fakeIndex{}
	env.posts.Index = idx

	seeded, err := env.posts.Seed(ctx)
	require.NoError(t, err)
	assert.Len(t, idx.indexed, 4)

	idx.ids = []uint{seeded[2].PostID, 9999, seeded[0].PostID}
	posts, err := env.posts.Search(ctx, "title")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "title C", posts[0].Title)
	assert.Equal(t, "title A", posts[1].Title)
}

func TestPostService_SeedSurvivesIndexFailure(t *testing.T) {
	env := newTestEnv(t)
	env.posts.Index = &fakeIndex{err: errors.New("es down")}

	posts, err := env.posts.Seed(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 4)
}

func TestPostService_SearchFallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.posts.Seed(ctx)
	require.NoError(t, err)

	posts, err := env.posts.Search(ctx, "Title d")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "title D", posts[0].Title)

	_, err = env.posts.Search(ctx, "   ")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGoodsService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seeded, err := env.goods.Seed(ctx)
	require.NoError(t, err)

	drinks, err := env.goods.List(ctx, "drink")
	require.NoError(t, err)
	assert.Len(t, drinks, 2)

	got, err := env.goods.Get(ctx, seeded[2].GoodsID)
	require.NoError(t, err)
	assert.Equal(t, "Potato chips", got.Name)

	_, err = env.goods.Get(ctx, 9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCartService_UpsertTwiceKeepsOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goods, err := env.goods.Seed(ctx)
	require.NoError(t, err)
	gid := goods[0].GoodsID

	require.NoError(t, env.cart.AddToCart(ctx, 1, gid, 2))
	require.NoError(t, env.cart.AddToCart(ctx, 1, gid, 7))

	lines, err := env.cart.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
	require.NotNil(t, lines[0].Goods)
	assert.Equal(t, gid, lines[0].Goods.GoodsID)

	assert.Equal(t, []string{"cart_item_upserted", "cart_item_upserted"}, env.events.Types())
}

func TestCartService_AddToCart_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goods, err := env.goods.Seed(ctx)
	require.NoError(t, err)

	err = env.cart.AddToCart(ctx, 1, goods[0].GoodsID, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = env.cart.AddToCart(ctx, 1, goods[0].GoodsID, -3)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = env.cart.AddToCart(ctx, 1, 9999, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindBusiness))

	lines, err := env.cart.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_DeleteMissingIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goods, err := env.goods.Seed(ctx)
	require.NoError(t, err)
	require.NoError(t, env.cart.AddToCart(ctx, 1, goods[0].GoodsID, 1))

	require.NoError(t, env.cart.DeleteFromCart(ctx, 1, goods[1].GoodsID))
	lines, err := env.cart.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, env.cart.DeleteFromCart(ctx, 1, goods[0].GoodsID))
	lines, err = env.cart.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.Equal(t, []string{"cart_item_upserted", "cart_item_removed"}, env.events.Types())
}

func TestCartService_MissingGoodsYieldsNil(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goods, err := env.goods.Seed(ctx)
	require.NoError(t, err)

	require.NoError(t, env.cart.AddToCart(ctx, 1, goods[0].GoodsID, 3))
	// a row whose goods were never created, written behind the service's back
	require.NoError(t, env.repo.UpsertCart(ctx, &models.Cart{UserID: 1, GoodsID: 9999, Quantity: 1}))

	lines, err := env.cart.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, goods[0].GoodsID, lines[0].Goods.GoodsID)
	assert.Nil(t, lines[1].Goods)
	assert.Equal(t, 1, lines[1].Quantity)
}

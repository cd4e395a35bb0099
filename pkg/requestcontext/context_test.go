package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "screenboard/pkg/domain"
)

func TestPrincipal(t *testing.T) {
	t.Run("absent on a bare context", func(t *testing.T) {
		p, ok := Principal(context.Background())
		assert.False(t, ok)
		assert.Nil(t, p)
		assert.True(t, UserID(context.Background()).IsNil())
	})

	t.Run("derived contexts do not leak into the parent", func(t *testing.T) {
		parent := context.Background()
		alice := &id.Principal{ID: id.NewUserID(), Email: "alice@example.com"}
		bob := &id.Principal{ID: id.NewUserID(), Email: "bob@example.com"}

		ctxA := WithPrincipal(parent, alice)
		ctxB := WithPrincipal(parent, bob)

		gotA, ok := Principal(ctxA)
		require.True(t, ok)
		gotB, ok := Principal(ctxB)
		require.True(t, ok)
		assert.Equal(t, alice.ID, gotA.ID)
		assert.Equal(t, bob.ID, gotB.ID)

		_, ok = Principal(parent)
		assert.False(t, ok)
	})

	t.Run("typed nil is treated as unauthenticated", func(t *testing.T) {
		ctx := WithPrincipal(context.Background(), nil)
		_, ok := Principal(ctx)
		assert.False(t, ok)
	})
}

func TestNow(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithTime(context.Background(), fixed)
	assert.Equal(t, fixed, Now(ctx))
}

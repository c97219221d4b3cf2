package reference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerFunc func(ctx context.Context) (draw.Draw, error)

func (f providerFunc) Fetch(ctx context.Context) (draw.Draw, error) { return f(ctx) }

func TestRefresh_Remote(t *testing.T) {
	want := testDraw(t, []int{5, 15, 25, 35, 45}, 9)
	cell := NewCell()
	r := NewRefresher(cell, providerFunc(func(context.Context) (draw.Draw, error) { return want, nil }), nil, time.Second)

	got, origin, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OriginRemote, origin)
	assert.Equal(t, want, got)

	cur, ok := cell.Current()
	require.True(t, ok)
	assert.Equal(t, want, cur)
}

func TestRefresh_FallbackOnError(t *testing.T) {
	cell := NewCell()
	failing := providerFunc(func(context.Context) (draw.Draw, error) { return draw.Draw{}, errors.New("upstream down") })
	r := NewRefresher(cell, failing, draw.NewSeededSource(11), time.Second)

	got, origin, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, origin)
	assert.NoError(t, got.Validate())

	cur, ok := cell.Current()
	require.True(t, ok)
	assert.Equal(t, got, cur)
}

func TestRefresh_FallbackOnMalformedDraw(t *testing.T) {
	bad := providerFunc(func(context.Context) (draw.Draw, error) {
		return draw.Draw{Primary: [draw.PrimaryCount]int{1, 2, 3, 4, 99}, Bonus: 1}, nil
	})
	_, origin, err := NewRefresher(NewCell(), bad, nil, time.Second).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, origin)
}

func TestRefresh_FallbackOnTimeout(t *testing.T) {
	slow := providerFunc(func(ctx context.Context) (draw.Draw, error) {
		<-ctx.Done()
		return draw.Draw{}, ctx.Err()
	})
	_, origin, err := NewRefresher(NewCell(), slow, nil, 10*time.Millisecond).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, origin)
}

func TestRefresh_NilProvider(t *testing.T) {
	_, origin, err := NewRefresher(NewCell(), nil, draw.NewSeededSource(1), 0).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, origin)
}

func TestRefresh_SupersededDoesNotOverwrite(t *testing.T) {
	cell := NewCell()
	older := testDraw(t, []int{1, 2, 3, 4, 5}, 1)
	newer := testDraw(t, []int{60, 61, 62, 63, 64}, 26)

	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	provider := providerFunc(func(ctx context.Context) (draw.Draw, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return older, nil
		}
		return newer, nil
	})
	r := NewRefresher(cell, provider, nil, time.Second)

	type result struct {
		err error
	}
	done := make(chan result, 1)
	go func() {
		_, _, err := r.Refresh(context.Background())
		done <- result{err: err}
	}()

	<-started
	_, _, err := r.Refresh(context.Background())
	require.NoError(t, err)
	close(release)

	res := <-done
	assert.ErrorIs(t, res.err, ErrSuperseded)
	cur, ok := cell.Current()
	require.True(t, ok)
	assert.Equal(t, newer, cur)
}

func TestFill_CompletesHeldTicket(t *testing.T) {
	cell := NewCell()
	want := testDraw(t, []int{7, 14, 21, 28, 35}, 3)
	r := NewRefresher(cell, providerFunc(func(context.Context) (draw.Draw, error) { return want, nil }), nil, time.Second)

	ticket, ok := cell.TryBegin()
	require.True(t, ok)
	got, origin, err := r.Fill(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, OriginRemote, origin)
	assert.Equal(t, want, got)
	assert.False(t, cell.Loading())
}

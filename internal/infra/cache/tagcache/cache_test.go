package tagcache

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis хранит строки и множества в памяти
type fakeRedis struct {
	values  map[string]string
	sets    map[string]map[string]struct{}
	delErr  error
	deleted int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	set, ok := f.sets[key]
	if !ok {
		set = make(map[string]struct{})
		f.sets[key] = set
	}
	for _, m := range members {
		set[m.(string)] = struct{}{}
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	members := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		members = append(members, m)
	}
	sort.Strings(members)
	return redis.NewStringSliceResult(members, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
		if _, ok := f.sets[k]; ok {
			delete(f.sets, k)
			n++
		}
	}
	f.deleted += int(n)
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeRedis(), "test")

	_, found, err := c.Get(ctx, "availability:1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "availability:1", []byte(`{"ok":true}`), time.Minute, []string{"timeslots-1"}))

	value, found, err := c.Get(ctx, "availability:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"ok":true}`, string(value))
}

func TestCache_InvalidateRemovesTaggedKeysOnly(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeRedis(), "test")

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute, []string{"timeslots-1", "timeslots"}))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute, []string{"timeslots-2", "timeslots"}))

	require.NoError(t, c.Invalidate(ctx, "timeslots-1"))

	_, foundA, _ := c.Get(ctx, "a")
	_, foundB, _ := c.Get(ctx, "b")
	assert.False(t, foundA)
	assert.True(t, foundB)
}

func TestCache_InvalidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := New(fake, "test")

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute, []string{"reservations"}))

	require.NoError(t, c.Invalidate(ctx, "reservations"))
	deletedAfterFirst := fake.deleted

	require.NoError(t, c.Invalidate(ctx, "reservations"))
	assert.Equal(t, deletedAfterFirst, fake.deleted)

	_, found, _ := c.Get(ctx, "a")
	assert.False(t, found)
}

func TestCache_InvalidateError(t *testing.T) {
	fake := newFakeRedis()
	fake.delErr = errors.New("connection refused")
	c := New(fake, "test")

	err := c.Invalidate(context.Background(), "reservations")
	assert.ErrorIs(t, err, ErrInvalidate)
}

func TestCache_InvalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeRedis(), "test")

	gen, err := c.Generation(ctx, "timeslots-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Invalidate(ctx, "timeslots-1"))
	require.NoError(t, c.Invalidate(ctx, "timeslots-1"))

	gen, err = c.Generation(ctx, "timeslots-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	other, err := c.Generation(ctx, "timeslots-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeRedis(), "test")

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute, []string{"timeslots-1"}))
	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))

	_, found, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
}

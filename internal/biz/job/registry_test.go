package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopSync(ctx context.Context, targetDate time.Time) (*SyncResult, error) {
	return SuccessResult("ok", 0), nil
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("zt_pool", "涨停池数据同步", noopSync))
	require.NoError(t, r.Register("index", "大盘指数数据同步", noopSync))

	def, err := r.Resolve("zt_pool")
	require.NoError(t, err)
	assert.Equal(t, "zt_pool", def.Type)
	assert.Equal(t, "涨停池数据同步", def.Name)

	_, err = r.Resolve("nope")
	assert.ErrorIs(t, err, ErrUnknownTaskType)
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("zt_pool", "涨停池数据同步", noopSync))
	assert.Error(t, r.Register("zt_pool", "重复注册", noopSync))

	assert.Panics(t, func() {
		r.MustRegister("zt_pool", "重复注册", noopSync)
	})
}

func TestRegistryListKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("b", "B", noopSync)
	r.MustRegister("a", "A", noopSync)
	r.MustRegister("c", "C", noopSync)

	defs := r.List()
	require.Len(t, defs, 3)
	assert.Equal(t, "b", defs[0].Type)
	assert.Equal(t, "a", defs[1].Type)
	assert.Equal(t, "c", defs[2].Type)

	names := r.Names()
	assert.Equal(t, map[string]string{"a": "A", "b": "B", "c": "C"}, names)
}

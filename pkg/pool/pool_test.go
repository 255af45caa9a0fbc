package pool

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsutils/tsutils/pkg/errors"
)

func TestMapSequential(t *testing.T) {
	p := New(Options{Workers: 1})

	out, err := p.Map(context.Background(),
		func(_ context.Context, arg any) (any, error) {
			return arg.(int) * 2, nil
		},
		[]any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4, 6}, out)
}

func TestMapParallelKeepsOrder(t *testing.T) {
	p := New(Options{Workers: 4})

	args := make([]any, 50)
	for i := range args {
		args[i] = i
	}
	out, err := p.Map(context.Background(),
		func(_ context.Context, arg any) (any, error) {
			return arg.(int) * 2, nil
		},
		args)
	require.NoError(t, err)
	require.Len(t, out, 50)
	for i, v := range out {
		assert.Equal(t, i*2, v)
	}
}

func TestRaiseErrsAborts(t *testing.T) {
	p := New(Options{Workers: 1, RaiseErrs: true})
	boom := fmt.Errorf("boom")

	p.Submit(func(context.Context) (any, error) { return 1, nil })
	p.Submit(func(context.Context) (any, error) { return nil, boom })
	p.Submit(func(context.Context) (any, error) { return 3, nil })

	out, err := p.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []any{1}, out)
}

func TestErrorsLoggedNotRaised(t *testing.T) {
	p := New(Options{Workers: 1})

	p.Submit(func(context.Context) (any, error) { return 1, nil })
	p.Submit(func(context.Context) (any, error) { return nil, fmt.Errorf("minor") })
	p.Submit(func(context.Context) (any, error) { return 3, nil })

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{1, nil, 3}, out)
}

func TestStopEarlySequential(t *testing.T) {
	var calls atomic.Int32
	p := New(Options{Workers: 1, StopEarly: true})

	for i := 0; i < 5; i++ {
		i := i
		p.Submit(func(context.Context) (any, error) {
			calls.Add(1)
			if i < 2 {
				return nil, fmt.Errorf("attempt %d failed", i)
			}
			return "winner", nil
		})
	}

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{"winner"}, out)
	assert.Equal(t, int32(3), calls.Load(), "stops after the first success")
}

func TestStopEarlyParallel(t *testing.T) {
	p := New(Options{Workers: 4, StopEarly: true})

	for i := 0; i < 8; i++ {
		p.Submit(func(context.Context) (any, error) {
			return "done", nil
		})
	}
	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{"done"}, out)
}

// A StopEarly run that never finds a success is a failure, not an empty
// success, in both execution modes.
// StopEarly 运行若始终没有成功，则视为失败而非空成功，两种执行模式一致。
func TestStopEarlyAllFail(t *testing.T) {
	for name, workers := range map[string]int{"sequential": 1, "parallel": 4} {
		t.Run(name, func(t *testing.T) {
			p := New(Options{Workers: workers, StopEarly: true})
			for i := 0; i < 3; i++ {
				i := i
				p.Submit(func(context.Context) (any, error) {
					return nil, fmt.Errorf("attempt %d failed", i)
				})
			}
			out, err := p.Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed")
			assert.Nil(t, out)
		})
	}
}

func TestStopPoolSentinel(t *testing.T) {
	p := New(Options{Workers: 1})

	p.Submit(func(context.Context) (any, error) { return 1, nil })
	p.Submit(func(context.Context) (any, error) { return nil, errors.ErrStopPool })
	p.Submit(func(context.Context) (any, error) {
		t.Error("task after stop must not run")
		return nil, nil
	})

	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{1}, out)
}

func TestDebugForcesSequential(t *testing.T) {
	t.Setenv("TSUTILS_DEBUG", "true")
	p := New(Options{Workers: 8})
	assert.Equal(t, 1, p.opts.Workers)
}

func TestEmptyPool(t *testing.T) {
	p := New(Options{})
	out, err := p.Execute(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRateLimitConfigured(t *testing.T) {
	p := New(Options{Workers: 2, Rate: 100})
	require.NotNil(t, p.limiter)

	out, err := p.Map(context.Background(),
		func(_ context.Context, arg any) (any, error) { return arg, nil },
		[]any{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

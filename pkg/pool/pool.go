// Package pool runs batches of tasks with optional concurrency, rate
// limiting and standardised progress logging.
// pool 包以可选的并发、限速和标准化的进度日志来批量执行任务。
package pool

import (
	"context"
	stderrors "errors"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tsutils/tsutils/pkg/errors"
)

// Task is one unit of work. Returning errors.ErrStopPool stops the whole
// run without failing it.
// Task 是一个工作单元。返回 errors.ErrStopPool 会停止整个运行但不视为失败。
type Task func(ctx context.Context) (any, error)

// Options configures a Pool.
type Options struct {
	// Workers is the concurrency limit; 1 runs tasks sequentially.
	// Workers 是并发上限；1 表示顺序执行。
	Workers int

	// RaiseErrs aborts the run on the first task error. When false the
	// error is logged and the run continues.
	// RaiseErrs 在第一个任务出错时中止运行。为 false 时仅记录错误并继续。
	RaiseErrs bool

	// StopEarly stops after the first successful task and returns only
	// its result.
	// StopEarly 在第一个任务成功后停止，只返回该结果。
	StopEarly bool

	// LogStep logs progress every N completed tasks; 0 disables it.
	// LogStep 每完成 N 个任务记录一次进度；0 表示关闭。
	LogStep int

	// Rate caps task starts per second; 0 means unlimited.
	// Rate 限制每秒启动的任务数；0 表示不限。
	Rate float64

	Logger *zap.Logger
}

// Pool collects tasks and executes them with the preset configuration.
type Pool struct {
	opts    Options
	limiter *rate.Limiter
	log     *zap.Logger

	mu    sync.Mutex
	tasks []Task

	completed atomic.Int64
	total     int64
}

// New builds a Pool. Worker count is forced to 1 when TSUTILS_DEBUG=true
// so task ordering stays deterministic under a debugger.
// New 构建一个 Pool。当 TSUTILS_DEBUG=true 时并发数强制为 1，
// 使任务顺序在调试时保持确定。
func New(opts Options) *Pool {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if os.Getenv("TSUTILS_DEBUG") == "true" {
		opts.Workers = 1
	}
	p := &Pool{opts: opts, log: opts.Logger}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if opts.Rate > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}
	return p
}

// Submit adds a task to the run list.
func (p *Pool) Submit(t Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = append(p.tasks, t)
}

// Map submits fn once per argument and executes the batch.
// Map 为每个参数提交一次 fn 并执行整个批次。
func (p *Pool) Map(ctx context.Context, fn func(ctx context.Context, arg any) (any, error), args []any) ([]any, error) {
	for _, arg := range args {
		arg := arg
		p.Submit(func(ctx context.Context) (any, error) {
			return fn(ctx, arg)
		})
	}
	return p.Execute(ctx)
}

// Execute runs the submitted tasks. Results keep submission order; with
// StopEarly the slice holds only the first successful result.
// Execute 运行已提交的任务。结果保持提交顺序；StopEarly 时切片仅包含
// 第一个成功的结果。
func (p *Pool) Execute(ctx context.Context) ([]any, error) {
	p.mu.Lock()
	tasks := p.tasks
	p.tasks = nil
	p.mu.Unlock()

	p.completed.Store(0)
	p.total = int64(len(tasks))
	if len(tasks) == 0 {
		return nil, nil
	}
	if p.opts.Workers == 1 {
		return p.runSequential(ctx, tasks)
	}
	return p.runParallel(ctx, tasks)
}

func (p *Pool) runSequential(ctx context.Context, tasks []Task) ([]any, error) {
	out := make([]any, 0, len(tasks))
	var lastErr error
	for _, t := range tasks {
		if err := p.wait(ctx); err != nil {
			return out, err
		}
		res, err := p.runOne(ctx, t)
		switch {
		case err == nil && p.opts.StopEarly:
			return []any{res}, nil
		case err == nil:
			out = append(out, res)
		case stderrors.Is(err, errors.ErrStopPool):
			return out, nil
		case p.opts.RaiseErrs:
			return out, err
		default:
			p.logError(err)
			lastErr = err
			out = append(out, nil)
		}
	}
	// StopEarly was looking for one success; if every task failed the run
	// itself failed and the final error is reported.
	// StopEarly 寻找一次成功；若所有任务都失败，则整个运行视为失败，
	// 并报告最后一个错误。
	if p.opts.StopEarly && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

// errEarlyStop aborts the errgroup without marking the run failed.
var errEarlyStop = stderrors.New("pool: early stop")

func (p *Pool) runParallel(ctx context.Context, tasks []Task) ([]any, error) {
	out := make([]any, len(tasks))
	var firstSuccess atomic.Pointer[any]
	var lastErr atomic.Pointer[error]

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			if err := p.wait(gctx); err != nil {
				return err
			}
			res, err := p.runOne(gctx, t)
			switch {
			case err == nil && p.opts.StopEarly:
				v := res
				firstSuccess.CompareAndSwap(nil, &v)
				return errEarlyStop
			case err == nil:
				out[i] = res
				return nil
			case stderrors.Is(err, errors.ErrStopPool):
				return errEarlyStop
			case p.opts.RaiseErrs:
				return err
			default:
				p.logError(err)
				e := err
				lastErr.Store(&e)
				return nil
			}
		})
	}

	err := g.Wait()
	if err != nil && !stderrors.Is(err, errEarlyStop) {
		return nil, err
	}
	if p.opts.StopEarly {
		if v := firstSuccess.Load(); v != nil {
			return []any{*v}, nil
		}
		// No task succeeded: the run failed, same contract as the
		// sequential mode.
		// 没有任务成功：运行失败，与顺序模式的契约一致。
		if e := lastErr.Load(); e != nil {
			return nil, *e
		}
		return nil, nil
	}
	return out, nil
}

func (p *Pool) runOne(ctx context.Context, t Task) (any, error) {
	res, err := t(ctx)
	done := p.completed.Add(1)
	if p.opts.LogStep > 0 && done%int64(p.opts.LogStep) == 0 {
		p.log.Info("processing", zap.Int64("done", done), zap.Int64("total", p.total))
	}
	return res, err
}

func (p *Pool) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

func (p *Pool) logError(err error) {
	p.log.Info("task error, continuing", zap.Error(err))
	p.log.Debug("task error detail", zap.Error(err))
}

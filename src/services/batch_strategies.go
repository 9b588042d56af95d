package services

import (
	"context"
	"errors"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// batchTask is one account's mutation within a batch
type batchTask struct {
	receivable models.Receivable
	amount     decimal.Decimal
	run        func(ctx context.Context) error
}

// dispatchStrategy runs a batch's tasks and returns one item per task, in
// task order. A strategy never aborts on a failed task.
type dispatchStrategy func(ctx context.Context, tasks []batchTask) []models.BatchItem

// runSequential awaits each task before starting the next. Once ctx is done
// the remaining tasks are skipped, never dispatched.
func runSequential(ctx context.Context, tasks []batchTask) []models.BatchItem {
	items := make([]models.BatchItem, len(tasks))
	for i, task := range tasks {
		if ctx.Err() != nil {
			items[i] = skippedItem(task)
			continue
		}
		items[i] = runTask(ctx, task)
	}
	return items
}

// runConcurrentAllSettled dispatches every task concurrently, at most limit at
// a time (limit <= 0 means unbounded), and waits for all of them to settle.
// One task's failure never cancels the others.
func runConcurrentAllSettled(limit int) dispatchStrategy {
	return func(ctx context.Context, tasks []batchTask) []models.BatchItem {
		items := make([]models.BatchItem, len(tasks))

		var g errgroup.Group
		if limit > 0 {
			g.SetLimit(limit)
		}

		for i, task := range tasks {
			i, task := i, task
			g.Go(func() error {
				if ctx.Err() != nil {
					items[i] = skippedItem(task)
					return nil
				}
				items[i] = runTask(ctx, task)
				return nil
			})
		}

		_ = g.Wait()
		return items
	}
}

func runTask(ctx context.Context, task batchTask) models.BatchItem {
	start := time.Now()
	err := task.run(ctx)

	item := models.BatchItem{
		ReceivableID:  task.receivable.ID,
		ReferenceCode: task.receivable.ReferenceCode(),
		Amount:        task.amount,
		Result:        models.ItemSucceeded,
		Duration:      time.Since(start),
	}
	if err != nil {
		item.Result = models.ItemFailed
		item.Error = err.Error()
		item.Ambiguous = isAmbiguous(err)
	}
	return item
}

func skippedItem(task batchTask) models.BatchItem {
	return models.BatchItem{
		ReceivableID:  task.receivable.ID,
		ReferenceCode: task.receivable.ReferenceCode(),
		Amount:        task.amount,
		Result:        models.ItemSkipped,
		Error:         "batch cancelled before dispatch",
	}
}

// isAmbiguous reports whether a failed call may still have taken effect
func isAmbiguous(err error) bool {
	var remoteErr *models.RemoteCallError
	if errors.As(err, &remoteErr) {
		return remoteErr.Ambiguous()
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

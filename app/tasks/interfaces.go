package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The scheduler owns a worker pool and a periodic ticker that
// enqueues maintenance work.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

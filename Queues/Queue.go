package Queues

// Queue is a FIFO.
type Queue[T any] interface {
	Push(item T)
	Pop() (T, error)
	Empty() bool
}

// ArrayQueue is a Queue backed by a circular array that grows on demand.
type ArrayQueue[T any] interface {
	Queue[T]
	Clear()
	resize(newLen uint)
}

type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "Queue is Empty: cannot Pop."
}

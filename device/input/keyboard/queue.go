package keyboard

// QueueCapacity is the number of events a Queue holds before it starts
// overwriting the oldest entry.
const QueueCapacity = 32

// Queue is a fixed-size ring buffer of key events. The interrupt handler
// pushes and ordinary kernel code pops; with a single producer and a single
// consumer on one CPU no locking is required.
type Queue struct {
	events [QueueCapacity]KeyEvent
	head   int
	count  int
}

// Push appends ev. When the queue is full the oldest event is dropped. Push
// never blocks and never allocates.
func (q *Queue) Push(ev KeyEvent) {
	q.events[(q.head+q.count)%QueueCapacity] = ev

	if q.count < QueueCapacity {
		q.count++
		return
	}

	q.head = (q.head + 1) % QueueCapacity
}

// Pop removes and returns the oldest event. It returns false if the queue
// is empty.
func (q *Queue) Pop() (KeyEvent, bool) {
	if q.count == 0 {
		return KeyEvent{}, false
	}

	ev := q.events[q.head]
	q.head = (q.head + 1) % QueueCapacity
	q.count--
	return ev, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return q.count
}

package history

// Buffer is a bounded FIFO. Pushing into a full buffer evicts the oldest element.
// Buffer is not safe for concurrent use; the owner serialises access.
type Buffer[T any] struct {
	items []T
	head  int // index of the oldest element
	size  int
}

// New returns an empty buffer. A capacity below 1 is clamped to 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Cap returns the maximum number of retained elements.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// Len returns the number of retained elements.
func (b *Buffer[T]) Len() int { return b.size }

// Push appends x, evicting the oldest element when the buffer is full.
func (b *Buffer[T]) Push(x T) {
	c := len(b.items)
	if b.size < c {
		b.items[(b.head+b.size)%c] = x
		b.size++
		return
	}
	b.items[b.head] = x
	b.head = (b.head + 1) % c
}

// At returns the i-th element, oldest first. It panics when i is out of range.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.size {
		panic("history: index out of range")
	}
	return b.items[(b.head+i)%len(b.items)]
}

// Last returns the newest element.
func (b *Buffer[T]) Last() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.At(b.size - 1), true
}

// Items returns a copy of the contents, oldest first.
func (b *Buffer[T]) Items() []T {
	out := make([]T, b.size)
	for i := range out {
		out[i] = b.items[(b.head+i)%len(b.items)]
	}
	return out
}

// Resize changes the capacity, keeping the newest min(Len, n) elements.
func (b *Buffer[T]) Resize(n int) {
	if n < 1 {
		n = 1
	}
	kept := b.Items()
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	items := make([]T, n)
	copy(items, kept)
	b.items = items
	b.head = 0
	b.size = len(kept)
}

// Clear drops every element and keeps the capacity.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head = 0
	b.size = 0
}

// Package list provides a generic circular doubly linked list with a sentinel.
//
// Elements are handed out to callers as stable handles: any element can be
// unlinked in O(1) without searching, which is what the adjacency store and
// the hash index chains rely on. A List is not safe for concurrent use.
package list

import "iter"

// Element is a node of a List. The zero value is not usable; elements are
// created by [List.PushFront].
type Element[T any] struct {
	Value T

	prev, next *Element[T]
	list       *List[T]
}

// List is a circular doubly linked list anchored at a sentinel element.
// The zero value is an empty list ready to use.
type List[T any] struct {
	root Element[T]
	len  int
}

// New returns an initialized empty list.
func New[T any]() *List[T] {
	return new(List[T]).init()
}

func (l *List[T]) init() *List[T] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.init()
	}
}

// Len returns the number of elements in l. O(1).
func (l *List[T]) Len() int { return l.len }

// Front returns the first element of l or nil if l is empty.
func (l *List[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// Next returns the element after e or nil at the end of the list.
func (e *Element[T]) Next() *Element[T] {
	if e.list == nil || e.next == &e.list.root {
		return nil
	}
	return e.next
}

// PushFront inserts v at the front of l and returns its element.
func (l *List[T]) PushFront(v T) *Element[T] {
	l.lazyInit()
	e := &Element[T]{Value: v, list: l}
	e.prev = &l.root
	e.next = l.root.next
	l.root.next = e
	e.next.prev = e
	l.len++
	return e
}

// Remove unlinks e from l in O(1). It is a no-op if e does not belong to l,
// which makes removing an already-removed element harmless.
func (l *List[T]) Remove(e *Element[T]) {
	if e == nil || e.list != l {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	e.list = nil
	l.len--
}

// Owner returns the list e currently belongs to, or nil once it was removed.
func (e *Element[T]) Owner() *List[T] { return e.list }

// All iterates over the values of l from front to back.
// The list must not be modified during iteration.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Find returns the first element whose value satisfies match, or nil.
func (l *List[T]) Find(match func(T) bool) *Element[T] {
	for e := l.Front(); e != nil; e = e.Next() {
		if match(e.Value) {
			return e
		}
	}
	return nil
}

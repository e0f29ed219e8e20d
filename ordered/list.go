// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ordered

// node is an intrusive doubly-linked list node wrapping a Hashmap
// entry, letting Delete unlink in O(1) without a separate index.
type node[K comparable, V any] struct {
	entry      *entry[K, V]
	prev, next *node[K, V]
}

type list[K comparable, V any] struct {
	front, back *node[K, V]
	size        int
}

func newList[K comparable, V any]() *list[K, V] {
	return &list[K, V]{}
}

func (l *list[K, V]) pushBack(e *entry[K, V]) *node[K, V] {
	n := &node[K, V]{entry: e}
	if l.back == nil {
		l.front = n
		l.back = n
	} else {
		n.prev = l.back
		l.back.next = n
		l.back = n
	}
	l.size++
	return n
}

func (l *list[K, V]) remove(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.back = n.prev
	}
	n.prev = nil
	n.next = nil
	l.size--
}

package undo

import (
	"indoor-editor/internal/editor/models"
)

// DefaultCapacity: сколько шагов отмены хранится.
const DefaultCapacity = 50

// Entry: снимок объектов этажа, снятый до изменения.
type Entry struct {
	FloorIdx int
	Snapshot []*models.IndoorObject
}

// Log is a bounded LIFO of entries backed by a ring buffer.
// Pushing onto a full log overwrites the oldest entry.
type Log struct {
	entries  []Entry
	head     int // next write position
	size     int
	capacity int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// Push сохраняет запись; при переполнении старейшая отбрасывается.
func (l *Log) Push(e Entry) {
	l.entries[l.head] = e
	l.head = (l.head + 1) % l.capacity
	if l.size < l.capacity {
		l.size++
	}
}

// Pop removes and returns the newest entry.
func (l *Log) Pop() (Entry, bool) {
	if l.size == 0 {
		return Entry{}, false
	}
	l.head = (l.head - 1 + l.capacity) % l.capacity
	e := l.entries[l.head]
	l.entries[l.head] = Entry{}
	l.size--
	return e, true
}

// Peek returns the newest entry without removing it.
func (l *Log) Peek() (Entry, bool) {
	if l.size == 0 {
		return Entry{}, false
	}
	return l.entries[(l.head-1+l.capacity)%l.capacity], true
}

func (l *Log) Len() int { return l.size }

func (l *Log) Cap() int { return l.capacity }

// Clear drops every entry.
func (l *Log) Clear() {
	for i := range l.entries {
		l.entries[i] = Entry{}
	}
	l.head = 0
	l.size = 0
}

package buffer

// observerList keeps subscribers in registration order and supports
// removal through the cancel function returned by add.
type observerList[T any] struct {
	next  int
	ids   []int
	items map[int]T
}

func (l *observerList[T]) add(o T) func() {
	if l.items == nil {
		l.items = make(map[int]T)
	}
	id := l.next
	l.next++
	l.ids = append(l.ids, id)
	l.items[id] = o
	return func() { l.remove(id) }
}

func (l *observerList[T]) remove(id int) {
	if _, ok := l.items[id]; !ok {
		return
	}
	delete(l.items, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
}

// each calls fn for every subscriber present when the call starts.
func (l *observerList[T]) each(fn func(T)) {
	ids := append([]int(nil), l.ids...)
	for _, id := range ids {
		if o, ok := l.items[id]; ok {
			fn(o)
		}
	}
}

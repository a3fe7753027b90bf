package list

// sort relinks the chain in the order given by cmp using a
// bottom-up merge sort: O(n log n) comparisons, no extra storage,
// and stable because ties are taken from the left run.
func (l *List[T]) sort(cmp func(a, b T) int) {
	if l.n < 2 {
		return
	}
	head := l.head
	for k := 1; ; k *= 2 {
		p := head
		head = nilIndex
		tail := nilIndex
		merges := 0
		for p != nilIndex {
			merges++
			q := p
			psize := 0
			for psize < k && q != nilIndex {
				psize++
				q = l.nodes[q].next
			}
			qsize := k
			for psize > 0 || (qsize > 0 && q != nilIndex) {
				var e int
				switch {
				case psize == 0:
					e, q = q, l.nodes[q].next
					qsize--
				case qsize == 0 || q == nilIndex:
					e, p = p, l.nodes[p].next
					psize--
				case cmp(l.value(p), l.value(q)) <= 0:
					e, p = p, l.nodes[p].next
					psize--
				default:
					e, q = q, l.nodes[q].next
					qsize--
				}
				if tail == nilIndex {
					head = e
				} else {
					l.nodes[tail].next = e
				}
				l.nodes[e].prev = tail
				tail = e
			}
			p = q
		}
		l.nodes[tail].next = nilIndex
		if merges <= 1 {
			l.head, l.tail = head, tail
			break
		}
	}
	l.version++
}

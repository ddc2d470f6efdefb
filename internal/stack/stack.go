// Package stack provides the LIFO used to reverse a string while it is
// rebuilt from its prefix chain.
package stack

// Stack is a LIFO of bytes backed by a slice that is reused across Reset.
//
// The zero value is an empty stack.
type Stack struct {
	data []byte
}

// New returns an empty stack with room for capacity bytes.
func New(capacity int) *Stack {
	return &Stack{data: make([]byte, 0, capacity)}
}

// Push places b on top of the stack.
func (s *Stack) Push(b byte) {
	s.data = append(s.data, b)
}

// Pop removes and returns the top byte. ok is false if the stack is empty.
func (s *Stack) Pop() (b byte, ok bool) {
	n := len(s.data)
	if n == 0 {
		return 0, false
	}
	b = s.data[n-1]
	s.data = s.data[:n-1]

	return b, true
}

// Len returns the number of bytes on the stack.
func (s *Stack) Len() int {
	return len(s.data)
}

// Reset empties the stack and keeps its storage.
func (s *Stack) Reset() {
	s.data = s.data[:0]
}

// AppendReversed pops every byte onto dst in pop order, leaving the stack
// empty, and returns the extended slice.
func (s *Stack) AppendReversed(dst []byte) []byte {
	for i := len(s.data) - 1; i >= 0; i-- {
		dst = append(dst, s.data[i])
	}
	s.data = s.data[:0]

	return dst
}

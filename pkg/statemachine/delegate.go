package statemachine

// SetDelegate installs a single transition callback, replacing any previous
// one. Passing nil removes the current delegate.
//
// The delegate is an ordinary subscription managed by the machine: it keeps
// the same ordering guarantees and, once replaced, is notified after every
// subscriber registered before the replacement.
func (m *Machine[S]) SetDelegate(fn Handler[S]) {
	m.mu.Lock()
	prev := m.delegate
	m.delegate = nil
	m.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	if fn == nil {
		return
	}

	sub := m.Subscribe(fn)
	if !sub.Active() {
		return
	}

	m.mu.Lock()
	m.delegate = sub
	m.mu.Unlock()
}

// HasDelegate reports whether a delegate callback is installed.
func (m *Machine[S]) HasDelegate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delegate != nil
}

package value

import "sync"

// LazyStringSequence is a string sequence produced on first demand by a
// pure supplier function and cached for the lifetime of the value. The
// supplier must not capture references that outlive the enclosing feature
// configuration.
type LazyStringSequence struct {
	once     sync.Once
	supplier func() ([]string, error)
	cached   []string
	err      error
}

func NewLazyStringSequence(supplier func() ([]string, error)) *LazyStringSequence {
	return &LazyStringSequence{supplier: supplier}
}

func (l *LazyStringSequence) resolve() ([]string, error) {
	l.once.Do(func() {
		l.cached, l.err = l.supplier()
	})
	return l.cached, l.err
}

func (l *LazyStringSequence) IsTruthy() bool {
	xs, err := l.resolve()
	return err == nil && len(xs) > 0
}

func (l *LazyStringSequence) TypeName() string { return "lazy_string_sequence" }

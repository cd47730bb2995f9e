package store

// SetupTestStore creates a fresh seeded store for tests. Each caller gets
// an isolated instance, so tests never share state.
func SetupTestStore() *Store {
	s := Open()
	_ = s.Seed()
	return s
}

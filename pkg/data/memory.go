package data

// MemoryStorage holds the snapshot in memory only. It backs dry runs and
// tests; nothing survives the process.
type MemoryStorage struct {
	books   []Book
	saved   bool
	SaveErr error
	Saves   int
}

// NewMemoryStorage returns a storage that already holds books. With no books
// it behaves like a missing file on the first Load.
func NewMemoryStorage(books ...Book) *MemoryStorage {
	m := &MemoryStorage{}
	if len(books) > 0 {
		m.books = append([]Book(nil), books...)
		m.saved = true
	}
	return m
}

func (m *MemoryStorage) Load() ([]Book, error) {
	if !m.saved {
		return nil, ErrStorageMissing
	}
	return append([]Book(nil), m.books...), nil
}

func (m *MemoryStorage) Save(books []Book) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.books = append([]Book(nil), books...)
	m.saved = true
	m.Saves++
	return nil
}

// Snapshot returns what the last successful Save stored.
func (m *MemoryStorage) Snapshot() []Book {
	return append([]Book(nil), m.books...)
}

func (m *MemoryStorage) Close() error {
	return nil
}

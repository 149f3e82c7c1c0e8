package users

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"
)

const separator = ';'

var header = []string{"Id", "Name", "Surname", "Email", "DateAdding", "DateEdit"}

// Repository is the storage the view-models talk to.
type Repository interface {
	All(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id int) error
}

// CSVRepository stores users in a ';'-separated file with a header row.
// Safe for concurrent use within one process.
type CSVRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

var _ Repository = (*CSVRepository)(nil)

// CSVOption configures a CSVRepository.
type CSVOption func(*CSVRepository)

// WithClock overrides the time source for the added/edited stamps.
func WithClock(now func() time.Time) CSVOption {
	return func(r *CSVRepository) {
		r.now = now
	}
}

// NewCSVRepository opens path, creating it with only a header row if missing.
func NewCSVRepository(path string, opts ...CSVOption) (*CSVRepository, error) {
	r := &CSVRepository{path: path, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := r.writeAll(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat users file: %w", err)
	}
	return r, nil
}

// Path returns the backing file.
func (r *CSVRepository) Path() string {
	return r.path
}

// All returns every user in file order.
func (r *CSVRepository) All(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

// Get returns the user with id or ErrNotFound.
func (r *CSVRepository) Get(ctx context.Context, id int) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return User{}, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Create validates u, assigns the next id (max+1) and appends it.
func (r *CSVRepository) Create(ctx context.Context, u User) (User, error) {
	if err := Validate(u); err != nil {
		return User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return User{}, err
	}
	next := 1
	for _, existing := range all {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}
	u.ID = next
	u.Added = r.now()
	u.Edited = nil

	if err := r.writeAll(append(all, u)); err != nil {
		return User{}, err
	}
	return u, nil
}

// Update replaces the editable fields of the user with u.ID.
// The added stamp is kept; the edited stamp is set to now.
func (r *CSVRepository) Update(ctx context.Context, u User) error {
	if err := Validate(u); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID != u.ID {
			continue
		}
		edited := r.now()
		u.Added = all[i].Added
		u.Edited = &edited
		all[i] = u
		return r.writeAll(all)
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, u.ID)
}

// Delete removes the user with id.
func (r *CSVRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			return r.writeAll(append(all[:i], all[i+1:]...))
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

func (r *CSVRepository) readAll() ([]User, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open users file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = separator
	reader.FieldsPerRecord = len(header)

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read users header: %w", err)
	}

	var out []User
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read users file: %w", err)
		}
		u, err := parseRecord(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("users file line %d: %w", line, err)
		}
		out = append(out, u)
	}
}

func (r *CSVRepository) writeAll(all []User) error {
	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = separator
	records := make([][]string, 0, len(all)+1)
	records = append(records, header)
	for _, u := range all {
		records = append(records, formatRecord(u))
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write users file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// parseRecord accepts an unparsable added stamp by falling back to the edited one.
func parseRecord(rec []string) (User, error) {
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return User{}, fmt.Errorf("invalid id %q", rec[0])
	}
	u := User{ID: id, Name: rec[1], Surname: rec[2], Email: rec[3]}

	added, addedErr := time.Parse(time.RFC3339, rec[4])
	if edited, err := time.Parse(time.RFC3339, rec[5]); err == nil {
		u.Edited = &edited
		if addedErr != nil {
			added = edited
		}
	}
	u.Added = added
	return u, nil
}

func formatRecord(u User) []string {
	edited := ""
	if u.Edited != nil {
		edited = u.Edited.Format(time.RFC3339)
	}
	return []string{
		strconv.Itoa(u.ID),
		u.Name,
		u.Surname,
		u.Email,
		u.Added.Format(time.RFC3339),
		edited,
	}
}

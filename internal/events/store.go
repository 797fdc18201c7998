package events

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

var (
	// ErrEventExists is returned when an identical (date, name) event is
	// already stored.
	ErrEventExists = errors.New("event already exists")
	// ErrNoSuchEvent is returned for an ID that does not select an event on
	// the given date.
	ErrNoSuchEvent = errors.New("no such event")
	// ErrUnstorableDate is returned for dates the file format cannot read
	// back.
	ErrUnstorableDate = errors.New("date out of storable range")
)

const (
	DateKey = "date"
	NameKey = "name"
)

// Header is the expected first record of the events file.
var Header = []string{DateKey, NameKey}

// Store is a CSV file of events, one "date,name" record per line.
type Store struct {
	path string
}

// NewStore returns a store backed by the CSV file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Ensure creates the events file if it is missing, or rewrites it empty if
// its header is not "date,name". It reports whether the file was
// (re)created.
func (s *Store) Ensure() (bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, s.ReplaceAll(nil)
		}
		return false, err
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err == nil && slices.Equal(header, Header) {
		return false, nil
	}
	appLog.Warn("events file header mismatch; recreating", "file", s.path, "header", strings.Join(header, ","))
	return true, s.ReplaceAll(nil)
}

// All returns every stored event in file order.
func (s *Store) All() ([]model.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var out []model.Event
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		d, err := model.ParseDate(rec[0])
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%s:%d: bad date %q: %w", s.path, line, rec[0], err)
		}
		out = append(out, model.Event{Date: d, Name: rec[1]})
	}
	return out, nil
}

// On returns the events on d, in file order.
func (s *Store) On(d model.Date) ([]model.Event, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	var out []model.Event
	for _, ev := range all {
		if ev.Date == d {
			out = append(out, ev)
		}
	}
	return out, nil
}

// MonthIndex loads the events for a month once, for use as a grid lookup.
func (s *Store) MonthIndex(year int, month time.Month) (Index, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	idx := make(Index)
	for _, ev := range all {
		if ev.Date.Year == year && ev.Date.Month == month {
			idx[ev.Date] = append(idx[ev.Date], ev.Name)
		}
	}
	appLog.Debug("month index loaded", "year", year, "month", int(month), "days_with_events", len(idx))
	return idx, nil
}

// Append adds ev to the end of the file. An event with the same date and
// name already in the store yields ErrEventExists.
func (s *Store) Append(ev model.Event) error {
	if strings.TrimSpace(ev.Name) == "" {
		return errors.New("event name must not be blank")
	}
	if !ev.Date.Storable() {
		return fmt.Errorf("%w: %s", ErrUnstorableDate, ev.Date)
	}
	all, err := s.All()
	if err != nil {
		return err
	}
	if slices.Contains(all, ev) {
		return fmt.Errorf("%w: %s on %s", ErrEventExists, ev.Name, ev.Date)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(record(ev)); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReplaceAll rewrites the whole file with the header followed by evs.
// The write goes through a temp file and a rename.
func (s *Store) ReplaceAll(evs []model.Event) error {
	for _, ev := range evs {
		if !ev.Date.Storable() {
			return fmt.Errorf("%w: %s", ErrUnstorableDate, ev.Date)
		}
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".termcal-events-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		tmp.Close()
		return err
	}
	for _, ev := range evs {
		if err := w.Write(record(ev)); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Delete removes the id-th event on d, where id indexes the list returned
// by On.
func (s *Store) Delete(d model.Date, id int) (model.Event, error) {
	all, err := s.All()
	if err != nil {
		return model.Event{}, err
	}
	pos, err := positionOf(all, d, id)
	if err != nil {
		return model.Event{}, err
	}
	removed := all[pos]
	all = slices.Delete(all, pos, pos+1)
	if err := s.ReplaceAll(all); err != nil {
		return model.Event{}, err
	}
	return removed, nil
}

// Change describes an edit of a stored event. Exactly one of the fields is
// usually set; unset fields keep their value.
type Change struct {
	Date *model.Date
	Name *string
}

// Update applies change to the id-th event on d and returns the result.
func (s *Store) Update(d model.Date, id int, change Change) (model.Event, error) {
	all, err := s.All()
	if err != nil {
		return model.Event{}, err
	}
	pos, err := positionOf(all, d, id)
	if err != nil {
		return model.Event{}, err
	}
	ev := all[pos]
	if change.Date != nil {
		if !change.Date.Storable() {
			return model.Event{}, fmt.Errorf("%w: %s", ErrUnstorableDate, *change.Date)
		}
		ev.Date = *change.Date
	}
	if change.Name != nil {
		if strings.TrimSpace(*change.Name) == "" {
			return model.Event{}, errors.New("event name must not be blank")
		}
		ev.Name = *change.Name
	}
	all[pos] = ev
	if err := s.ReplaceAll(all); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// positionOf maps the id-th event on d to its index in all.
func positionOf(all []model.Event, d model.Date, id int) (int, error) {
	n := 0
	for i, ev := range all {
		if ev.Date != d {
			continue
		}
		if n == id {
			return i, nil
		}
		n++
	}
	return -1, fmt.Errorf("%w: id %d on %s", ErrNoSuchEvent, id, d)
}

func record(ev model.Event) []string {
	return []string{ev.Date.String(), ev.Name}
}

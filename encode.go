package fstree

import (
	"log/slog"
	"strconv"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/value"
)

// Encoder writes values into a directory tree.
type Encoder struct {
	cur *cursor
	cfg *config
	log *slog.Logger
}

// NewEncoder returns an Encoder that writes below root in fsys.
func NewEncoder(fsys TreeFS, root string, opts ...Option) *Encoder {
	cfg := newConfig(opts)
	return &Encoder{
		cur: newCursor(fsys, fsys, root, cfg),
		cfg: cfg,
		log: cfg.logger,
	}
}

// Encode writes v below root in fsys.
//
// Scalars become files, sequences, tuples, maps and records become
// directories, and variants become a file holding the case name or a
// directory named after the case. A scalar or an option at the root cannot be
// stored and fails with errors.CodeUnsupportedAtRoot.
//
// Writes are not rolled back: on error the tree holds whatever was written
// before the failure.
func Encode(fsys TreeFS, root string, v value.Value, opts ...Option) error {
	return NewEncoder(fsys, root, opts...).Encode(v)
}

// Encode writes v at the root of the encoder's tree.
func (e *Encoder) Encode(v value.Value) error {
	if err := value.Walk(v, e.cfg.shape, e.Sink()); err != nil {
		return errors.WithPath(err, e.cur.path())
	}
	return nil
}

// Sink returns the value.Sink that writes at the encoder's current location.
// Driving it by hand writes values without building them first.
func (e *Encoder) Sink() value.Sink {
	return sink{e: e}
}

// subdoc captures the value written by fn and stores it as a single
// sub-document named seg.
func (e *Encoder) subdoc(seg string, fn func(value.Sink) error) error {
	return e.cur.within(seg, func() error {
		b := value.NewBuilder()
		if err := fn(b); err != nil {
			return err
		}
		v := b.Value()
		if v == nil {
			return nil
		}

		e.log.Debug("writing sub-document", "path", e.cur.path(), "format", e.cfg.codec.Name())
		data, err := e.cfg.codec.Encode(v)
		if err != nil {
			return err
		}
		return e.cur.write(data)
	})
}

// sink writes at the encoder's current location.
type sink struct {
	e *Encoder
}

func (s sink) Scalar(v value.Value) error {
	data, err := encodeScalar(v)
	if err != nil {
		return errors.WithPath(err, s.e.cur.path())
	}
	return s.e.cur.write(data)
}

// None writes nothing: an absent option is an absent entry. The root has
// no entry to leave out.
func (s sink) None() error {
	if s.e.cur.depth() == 0 {
		return errors.NewAt(errors.CodeUnsupportedAtRoot, "an option cannot be encoded at the root of the tree", s.e.cur.path())
	}
	return nil
}

// Some writes the inner value in place, so Some(None) is stored as None.
func (s sink) Some(fn func(value.Sink) error) error {
	return fn(s)
}

func (s sink) Seq(fn func(value.SeqSink) error) error {
	if err := s.e.cur.mkdir(); err != nil {
		return err
	}
	return fn(&elements{e: s.e})
}

func (s sink) Tuple(fn func(value.SeqSink) error) error {
	return s.Seq(fn)
}

func (s sink) Map(fn func(value.MapSink) error) error {
	if err := s.e.cur.mkdir(); err != nil {
		return err
	}
	return fn(entries{e: s.e})
}

func (s sink) Record(fn func(value.RecordSink) error) error {
	if err := s.e.cur.mkdir(); err != nil {
		return err
	}
	return fn(fields{e: s.e})
}

func (s sink) UnitVariant(name string) error {
	return s.e.cur.write([]byte(name))
}

func (s sink) Variant(name string, fn func(value.Sink) error) error {
	if err := s.e.cur.mkdir(); err != nil {
		return err
	}
	return s.e.cur.within(name, func() error {
		s.e.log.Debug("writing variant payload", "path", s.e.cur.path())
		return fn(s)
	})
}

// elements writes sequence elements as entries named by their index.
type elements struct {
	e *Encoder
	n int
}

func (el *elements) Element(fn func(value.Sink) error) error {
	seg := strconv.Itoa(el.n)
	el.n++
	return el.e.cur.within(seg, func() error {
		return fn(sink{e: el.e})
	})
}

type entries struct {
	e *Encoder
}

func (en entries) Entry(key value.Value, fn func(value.Sink) error) error {
	seg, err := formatKey(key)
	if err != nil {
		return errors.WithPath(err, en.e.cur.path())
	}
	if en.e.cfg.isSubdoc(seg) {
		return en.e.subdoc(seg, fn)
	}
	return en.e.cur.within(seg, func() error {
		return fn(sink{e: en.e})
	})
}

type fields struct {
	e *Encoder
}

func (f fields) Field(name string, fn func(value.Sink) error) error {
	if f.e.cfg.isSubdoc(name) {
		return f.e.subdoc(name, fn)
	}
	return f.e.cur.within(name, func() error {
		return fn(sink{e: f.e})
	})
}

func (f fields) Subdoc(name string, fn func(value.Sink) error) error {
	return f.e.subdoc(name, fn)
}

package fstree

import (
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/fs/core"
	"github.com/jmgilman/go/fstree/value"
)

// Decoder reads values from a directory tree.
type Decoder struct {
	cur *cursor
	cfg *config
	log *slog.Logger
}

// NewDecoder returns a Decoder that reads below root in fsys.
func NewDecoder(fsys core.ReadFS, root string, opts ...Option) *Decoder {
	cfg := newConfig(opts)
	return &Decoder{
		cur: newCursor(fsys, nil, root, cfg),
		cfg: cfg,
		log: cfg.logger,
	}
}

// Decode reads a value of shape s from below root in fsys. A nil shape reads
// whatever is stored: files become strings and directories become maps.
func Decode(fsys core.ReadFS, root string, s *value.Shape, opts ...Option) (value.Value, error) {
	return NewDecoder(fsys, root, opts...).Decode(s)
}

// Decode reads a value of shape s from the root of the decoder's tree.
func (d *Decoder) Decode(s *value.Shape) (value.Value, error) {
	if s == nil {
		s = &value.Shape{Kind: value.KindAny}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	v, err := value.Read(s, d.Source())
	if err != nil {
		return nil, errors.WithPath(err, d.cur.path())
	}
	return v, nil
}

// Source returns the value.Source that reads at the decoder's current
// location.
func (d *Decoder) Source() value.Source {
	return &source{d: d}
}

// readSubdoc reads the sub-document stored at the current location. A
// missing file yields a Source for an absent value.
func (d *Decoder) readSubdoc(s *value.Shape) (value.Source, error) {
	m, err := d.cur.probe()
	if err != nil {
		return nil, err
	}
	if !m.exists {
		return value.NewReader(nil), nil
	}
	if !m.isFile {
		return nil, errors.NewAt(errors.CodeParse, "sub-document must be a file", d.cur.path())
	}

	data, err := d.cur.read()
	if err != nil {
		return nil, err
	}
	d.log.Debug("reading sub-document", "path", d.cur.path(), "format", d.cfg.codec.Name())
	v, err := d.cfg.codec.Decode(data, s)
	if err != nil {
		return nil, err
	}
	return value.NewReader(v), nil
}

// readAny reads the current location without an expected shape.
func (d *Decoder) readAny() (value.Value, error) {
	m, err := d.cur.probe()
	if err != nil {
		return nil, err
	}
	switch {
	case !m.exists:
		return nil, errors.New(errors.CodeParse, "no value stored")
	case m.isFile:
		data, err := d.cur.read()
		if err != nil {
			return nil, err
		}
		return decodeUntyped(data), nil
	}

	names, err := d.cur.list()
	if err != nil {
		return nil, err
	}
	out := make(value.Map, 0, len(names))
	for _, name := range names {
		var v value.Value
		err := d.cur.within(name, func() error {
			var err error
			if d.cfg.isSubdoc(name) {
				var src value.Source
				if src, err = d.readSubdoc(nil); err != nil {
					return err
				}
				v, err = src.Any()
				return err
			}
			v, err = d.readAny()
			return err
		})
		if err != nil {
			return nil, err
		}
		out = append(out, value.Entry{Key: value.String(name), Value: v})
	}
	return out, nil
}

// dir checks that the current location holds a directory.
func (d *Decoder) dir(want string) error {
	m, err := d.cur.probe()
	if err != nil {
		return err
	}
	switch {
	case !m.exists:
		return errors.Newf(errors.CodeParse, "no %s stored", want)
	case !m.isDir:
		return errors.Newf(errors.CodeParse, "expected a directory holding a %s, found a file", want)
	}
	return nil
}

// source reads at a location relative to the decoder's cursor. rel holds the
// segments below the cursor, used for variant payloads handed out before
// they are read.
type source struct {
	d   *Decoder
	rel []string
}

// enter runs fn with the cursor moved to the source's location.
func (s *source) enter(fn func() error) error {
	cur := s.d.cur
	for i, seg := range s.rel {
		if err := cur.descend(seg); err != nil {
			for ; i > 0; i-- {
				cur.ascend()
			}
			return err
		}
	}

	err := fn()
	if err != nil {
		err = errors.WithPath(err, cur.path())
	}
	for range s.rel {
		cur.ascend()
	}
	return err
}

func (s *source) Scalar(sh *value.Shape) (value.Value, error) {
	var v value.Value
	err := s.enter(func() error {
		m, err := s.d.cur.probe()
		if err != nil {
			return err
		}
		switch {
		case !m.exists:
			return errors.Newf(errors.CodeParse, "no %s stored", sh)
		case !m.isFile:
			return errors.Newf(errors.CodeParse, "expected a file holding %s, found a directory", sh)
		}

		data, err := s.d.cur.read()
		if err != nil {
			return err
		}
		v, err = decodeScalar(data, sh)
		return err
	})
	return v, err
}

func (s *source) Any() (value.Value, error) {
	var v value.Value
	err := s.enter(func() error {
		var err error
		v, err = s.d.readAny()
		return err
	})
	return v, err
}

// Option reports a value as present when anything is stored at the
// location.
func (s *source) Option() (value.Source, error) {
	var m meta
	err := s.enter(func() error {
		var err error
		m, err = s.d.cur.probe()
		return err
	})
	if err != nil || !m.exists {
		return nil, err
	}
	return s, nil
}

// Seq reads entries named 0, 1, 2, ... up to the first missing index.
func (s *source) Seq(limit int, fn func(int, value.Source) error) error {
	return s.enter(func() error {
		if err := s.d.dir("sequence"); err != nil {
			return err
		}
		for i := 0; limit < 0 || i < limit; i++ {
			stop := false
			err := s.d.cur.within(strconv.Itoa(i), func() error {
				m, err := s.d.cur.probe()
				if err != nil {
					return err
				}
				if !m.exists {
					stop = true
					return nil
				}
				return fn(i, &source{d: s.d})
			})
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
		return nil
	})
}

// Map reads every entry of the directory in storage order.
func (s *source) Map(key, elem *value.Shape, fn func(value.Value, value.Source) error) error {
	return s.enter(func() error {
		if err := s.d.dir("map"); err != nil {
			return err
		}
		names, err := s.d.cur.list()
		if err != nil {
			return err
		}

		for _, name := range names {
			err := s.d.cur.within(name, func() error {
				k, err := parseKey(name, key)
				if err != nil {
					return err
				}
				if s.d.cfg.isSubdoc(name) {
					src, err := s.d.readSubdoc(elem)
					if err != nil {
						return err
					}
					return fn(k, src)
				}
				return fn(k, &source{d: s.d})
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *source) Record(fn func(value.RecordSource) error) error {
	return s.enter(func() error {
		if err := s.d.dir("record"); err != nil {
			return err
		}
		return fn(fieldSource{d: s.d})
	})
}

// Variant reads a case name from a file, or takes it from the first entry of
// a directory. A directory holding more than one entry is read by its first
// entry only.
func (s *source) Variant() (string, value.Source, error) {
	var (
		name    string
		payload value.Source
	)
	err := s.enter(func() error {
		m, err := s.d.cur.probe()
		if err != nil {
			return err
		}
		switch {
		case !m.exists:
			return errors.New(errors.CodeParse, "no variant stored")
		case m.isFile:
			data, err := s.d.cur.read()
			if err != nil {
				return err
			}
			if !utf8.Valid(data) {
				return errors.New(errors.CodeInvalidUnicode, "variant name is not valid UTF-8")
			}
			name = string(data)
			return nil
		}

		names, err := s.d.cur.list()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return errors.New(errors.CodeEmptyDirectory, "variant directory has no entries")
		}
		name = names[0]

		rel := make([]string, len(s.rel), len(s.rel)+1)
		copy(rel, s.rel)
		payload = &source{d: s.d, rel: append(rel, name)}
		s.d.log.Debug("reading variant payload", "path", s.d.cur.path(), "variant", name)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return name, payload, nil
}

type fieldSource struct {
	d *Decoder
}

func (f fieldSource) Field(name string, s *value.Shape, fn func(value.Source) error) error {
	if f.d.cfg.isSubdoc(name) {
		return f.Subdoc(name, s, fn)
	}
	return f.d.cur.within(name, func() error {
		return fn(&source{d: f.d})
	})
}

func (f fieldSource) Subdoc(name string, s *value.Shape, fn func(value.Source) error) error {
	return f.d.cur.within(name, func() error {
		src, err := f.d.readSubdoc(s)
		if err != nil {
			return err
		}
		return fn(src)
	})
}

package fstree_test

import (
	"embed"
	"math"
	"math/rand/v2"
	"path"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fstree"
	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/fs/billy"
	"github.com/jmgilman/go/fstree/fs/core"
	"github.com/jmgilman/go/fstree/subdoc"
	"github.com/jmgilman/go/fstree/value"
	"github.com/jmgilman/go/fstree/value/shape"
)

//go:embed testdata
var fixtures embed.FS

// providers returns a constructor for every filesystem the codec is tested
// against.
func providers(t *testing.T) map[string]func() *billy.FS {
	return map[string]func() *billy.FS{
		"memory": billy.NewMemory,
		"local":  func() *billy.FS { return billy.NewLocal(t.TempDir()) },
	}
}

// readTree returns the content of every file below root keyed by its path
// relative to root.
func readTree(t *testing.T, fsys core.ReadFS, root string) map[string]string {
	t.Helper()

	out := map[string]string{}
	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := fsys.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			p, r := path.Join(dir, e.Name()), path.Join(rel, e.Name())
			if e.IsDir() {
				walk(p, r)
				continue
			}
			data, err := fsys.ReadFile(p)
			require.NoError(t, err)
			out[r] = string(data)
		}
	}
	walk(root, "")
	return out
}

func writeFiles(t *testing.T, fsys core.FS, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, fsys.MkdirAll(path.Dir(name), 0o755))
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}
}

func assertValue(t *testing.T, want, got value.Value) {
	t.Helper()
	assert.True(t, value.Equal(want, got), "want %#v\ngot  %#v", want, got)
}

func variantShape() *value.Shape {
	return shape.Variant(
		shape.Case("Unit", nil),
		shape.Case("Newtype", shape.Uint(8)),
		shape.Case("Struct", shape.Record(shape.Field("a", shape.Int(32)))),
	)
}

func TestScenarioA_RecordWithSequence(t *testing.T) {
	s := shape.Record(
		shape.Field("int", shape.Int(32)),
		shape.Field("seq", shape.Seq(shape.String())),
	)
	v := value.NewRecord(
		"int", value.Int(7),
		"seq", value.Seq{value.String("a"), value.String("b")},
	)

	for name, newFS := range providers(t) {
		t.Run(name, func(t *testing.T) {
			fsys := newFS()
			require.NoError(t, fstree.Encode(fsys, "tree", v, fstree.WithShape(s)))

			assert.Equal(t, map[string]string{
				"int":   "7",
				"seq/0": "a",
				"seq/1": "b",
			}, readTree(t, fsys, "tree"))

			got, err := fstree.Decode(fsys, "tree", s)
			require.NoError(t, err)
			assertValue(t, v, got)
		})
	}
}

func TestScenarioB_UnitVariantField(t *testing.T) {
	s := shape.Record(shape.Field("e", variantShape()))
	v := value.NewRecord("e", value.Variant{Name: "Unit"})

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v, fstree.WithShape(s)))
	assert.Equal(t, map[string]string{"e": "Unit"}, readTree(t, fsys, "tree"))

	got, err := fstree.Decode(fsys, "tree", s)
	require.NoError(t, err)
	assertValue(t, v, got)
}

func TestScenarioC_PayloadVariantAtRoot(t *testing.T) {
	v := value.Variant{Name: "Struct", Payload: value.NewRecord("a", value.Int(14))}

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v))
	assert.Equal(t, map[string]string{"Struct/a": "14"}, readTree(t, fsys, "tree"))

	got, err := fstree.Decode(fsys, "tree", variantShape())
	require.NoError(t, err)
	assertValue(t, v, got)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		shape *value.Shape
		value value.Value
	}{
		{
			name: "scalars",
			shape: shape.Record(
				shape.Field("unit", shape.Unit()),
				shape.Field("bool", shape.Bool()),
				shape.Field("i8", shape.Int(8)),
				shape.Field("u64", shape.Uint(64)),
				shape.Field("float", shape.Float()),
				shape.Field("char", shape.Char()),
				shape.Field("string", shape.String()),
				shape.Field("empty", shape.String()),
				shape.Field("bytes", shape.Bytes()),
			),
			value: value.NewRecord(
				"unit", value.Unit{},
				"bool", value.Bool(true),
				"i8", value.Int(-128),
				"u64", value.Uint(18446744073709551615),
				"float", value.Float(-0.1),
				"char", value.Char('漢'),
				"string", value.String("hello, world\n"),
				"empty", value.String(""),
				"bytes", value.Bytes{0xff, 0x00, 0xfe},
			),
		},
		{
			name: "nested composites",
			shape: shape.Record(
				shape.Field("matrix", shape.Seq(shape.Seq(shape.Int(64)))),
				shape.Field("pair", shape.Tuple(shape.Char(), shape.Float())),
				shape.Field("counts", shape.Map(shape.Uint(16), shape.Int(64))),
				shape.Field("names", shape.Map(shape.String(), shape.Record(shape.Field("id", shape.Int(64))))),
			),
			value: value.NewRecord(
				"matrix", value.Seq{
					value.Seq{value.Int(1), value.Int(2)},
					value.Seq{},
					value.Seq{value.Int(3)},
				},
				"pair", value.Tuple{value.Char('x'), value.Float(1.5)},
				"counts", value.Map{
					{Key: value.Uint(1), Value: value.Int(-1)},
					{Key: value.Uint(2), Value: value.Int(4)},
				},
				"names", value.Map{
					{Key: value.String("alice"), Value: value.NewRecord("id", value.Int(1))},
					{Key: value.String("bob"), Value: value.NewRecord("id", value.Int(2))},
				},
			),
		},
		{
			name: "options",
			shape: shape.Record(
				shape.Field("present", shape.Option(shape.String())),
				shape.Field("absent", shape.Option(shape.String())),
				shape.Field("list", shape.Option(shape.Seq(shape.Bool()))),
			),
			value: value.NewRecord(
				"present", value.Some(value.String("yes")),
				"absent", value.None(),
				"list", value.Some(value.Seq{}),
			),
		},
		{
			name: "variants",
			shape: shape.Record(
				shape.Field("unit", variantShape()),
				shape.Field("newtype", variantShape()),
				shape.Field("struct", variantShape()),
				shape.Field("many", shape.Seq(variantShape())),
			),
			value: value.NewRecord(
				"unit", value.Variant{Name: "Unit"},
				"newtype", value.Variant{Name: "Newtype", Payload: value.Uint(200)},
				"struct", value.Variant{Name: "Struct", Payload: value.NewRecord("a", value.Int(-3))},
				"many", value.Seq{
					value.Variant{Name: "Newtype", Payload: value.Uint(1)},
					value.Variant{Name: "Unit"},
				},
			),
		},
	}

	for name, newFS := range providers(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				fsys := newFS()
				require.NoError(t, fstree.Encode(fsys, "tree", tt.value, fstree.WithShape(tt.shape)))

				got, err := fstree.Decode(fsys, "tree", tt.shape)
				require.NoError(t, err)
				assertValue(t, tt.value, got)
			})
		}
	}
}

func TestOptionCollision(t *testing.T) {
	s := shape.Record(shape.Field("x", shape.Option(shape.Option(shape.Int(64)))))

	tests := []struct {
		name string
		in   value.Value
		want value.Value
	}{
		{
			name: "some none reads as none",
			in:   value.Some(value.None()),
			want: value.None(),
		},
		{
			name: "none",
			in:   value.None(),
			want: value.None(),
		},
		{
			name: "some some",
			in:   value.Some(value.Some(value.Int(3))),
			want: value.Some(value.Some(value.Int(3))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := billy.NewMemory()
			require.NoError(t, fstree.Encode(fsys, "tree", value.NewRecord("x", tt.in)))

			got, err := fstree.Decode(fsys, "tree", s)
			require.NoError(t, err)
			assertValue(t, value.NewRecord("x", tt.want), got)
		})
	}
}

func TestOptionCollision_EmptyString(t *testing.T) {
	s := shape.Record(shape.Field("x", shape.Option(shape.String())))

	tests := []struct {
		name   string
		in     value.Value
		exists bool
	}{
		{name: "none writes nothing", in: value.None(), exists: false},
		{name: "some empty writes an empty file", in: value.Some(value.String("")), exists: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := billy.NewMemory()
			require.NoError(t, fstree.Encode(fsys, "tree", value.NewRecord("x", tt.in), fstree.WithShape(s)))

			ok, err := fsys.Exists("tree/x")
			require.NoError(t, err)
			assert.Equal(t, tt.exists, ok)

			got, err := fstree.Decode(fsys, "tree", s)
			require.NoError(t, err)
			assertValue(t, value.NewRecord("x", tt.in), got)
		})
	}
}

func TestSequenceGapTruncates(t *testing.T) {
	fsys := billy.NewMemory()
	writeFiles(t, fsys, map[string]string{
		"tree/seq/0": "a",
		"tree/seq/1": "b",
		"tree/seq/3": "d",
	})

	s := shape.Record(shape.Field("seq", shape.Seq(shape.String())))
	got, err := fstree.Decode(fsys, "tree", s)
	require.NoError(t, err)
	assertValue(t, value.NewRecord("seq", value.Seq{value.String("a"), value.String("b")}), got)
}

func TestTupleTooShort(t *testing.T) {
	fsys := billy.NewMemory()
	writeFiles(t, fsys, map[string]string{"tree/pair/0": "1"})

	s := shape.Record(shape.Field("pair", shape.Tuple(shape.Int(64), shape.Int(64))))
	_, err := fstree.Decode(fsys, "tree", s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParse, errors.GetCode(err))
	assert.Equal(t, "tree/pair", errors.PathOf(err))
}

func TestTupleIgnoresExtraEntries(t *testing.T) {
	fsys := billy.NewMemory()
	writeFiles(t, fsys, map[string]string{
		"tree/pair/0": "1",
		"tree/pair/1": "2",
		"tree/pair/2": "3",
	})

	s := shape.Record(shape.Field("pair", shape.Tuple(shape.Int(64), shape.Int(64))))
	got, err := fstree.Decode(fsys, "tree", s)
	require.NoError(t, err)
	assertValue(t, value.NewRecord("pair", value.Tuple{value.Int(1), value.Int(2)}), got)
}

func TestMapSetEquality(t *testing.T) {
	s := shape.Map(shape.String(), shape.Int(64))
	v := value.Map{
		{Key: value.String("zeta"), Value: value.Int(26)},
		{Key: value.String("alpha"), Value: value.Int(1)},
		{Key: value.String("mu"), Value: value.Int(12)},
	}

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v))

	got, err := fstree.Decode(fsys, "tree", s)
	require.NoError(t, err)
	assertValue(t, v, got)
	assert.Len(t, got, 3)
}

func TestDecode_Any(t *testing.T) {
	fsys := billy.NewMemory()
	writeFiles(t, fsys, map[string]string{
		"tree/name":     "api",
		"tree/blob":     "\xff\xfe",
		"tree/nested/x": "1",
		"tree/jsonMeta": `{"b": 2, "a": [true]}`,
	})

	got, err := fstree.Decode(fsys, "tree", nil)
	require.NoError(t, err)

	want := value.Map{
		{Key: value.String("blob"), Value: value.Bytes{0xff, 0xfe}},
		{Key: value.String("jsonMeta"), Value: value.NewRecord(
			"a", value.Seq{value.Bool(true)},
			"b", value.Int(2),
		)},
		{Key: value.String("name"), Value: value.String("api")},
		{Key: value.String("nested"), Value: value.Map{
			{Key: value.String("x"), Value: value.String("1")},
		}},
	}
	assertValue(t, want, got)
}

func TestDecode_Fixture(t *testing.T) {
	fsys := billy.NewMemory()
	require.NoError(t, core.CopyFrom(fixtures, fsys, "testdata"))

	s := shape.Record(
		shape.Field("name", shape.String()),
		shape.Field("port", shape.Uint(16)),
		shape.Field("debug", shape.Bool()),
		shape.Field("replicas", shape.Option(shape.Int(32))),
		shape.Field("tags", shape.Seq(shape.String())),
		shape.Field("limits", shape.Map(shape.String(), shape.Int(32))),
		shape.Field("mode", shape.Variant(
			shape.Case("Off", nil),
			shape.Case("Listen", shape.Record(shape.Field("addr", shape.String()))),
		)),
		shape.Field("jsonLabels", shape.Map(shape.String(), shape.String())),
	)

	got, err := fstree.Decode(fsys, "service", s)
	require.NoError(t, err)

	want := value.NewRecord(
		"name", value.String("api"),
		"port", value.Uint(8080),
		"debug", value.Bool(false),
		"replicas", value.None(),
		"tags", value.Seq{value.String("web"), value.String("public")},
		"limits", value.Map{
			{Key: value.String("cpu"), Value: value.Int(2)},
			{Key: value.String("memory"), Value: value.Int(512)},
		},
		"mode", value.Variant{Name: "Listen", Payload: value.NewRecord("addr", value.String("0.0.0.0"))},
		"jsonLabels", value.Map{
			{Key: value.String("team"), Value: value.String("core")},
			{Key: value.String("tier"), Value: value.String("1")},
		},
	)
	assertValue(t, want, got)
}

func TestSubdocuments(t *testing.T) {
	s := shape.Record(
		shape.Field("name", shape.String()),
		shape.Field("jsonMeta", shape.Map(shape.String(), shape.Int(64))),
		shape.Subdoc("settings", shape.Record(
			shape.Field("debug", shape.Bool()),
			shape.Field("level", shape.Option(shape.String())),
		)),
	)
	v := value.NewRecord(
		"name", value.String("svc"),
		"jsonMeta", value.Map{{Key: value.String("replicas"), Value: value.Int(3)}},
		"settings", value.NewRecord("debug", value.Bool(true), "level", value.Some(value.String("info"))),
	)

	for _, codec := range []subdoc.Codec{subdoc.JSON(), subdoc.YAML(), subdoc.CBOR(), subdoc.CUE()} {
		t.Run(codec.Name(), func(t *testing.T) {
			fsys := billy.NewMemory()
			opts := []fstree.Option{fstree.WithShape(s), fstree.WithSubdocCodec(codec)}
			require.NoError(t, fstree.Encode(fsys, "tree", v, opts...))

			files := readTree(t, fsys, "tree")
			assert.Len(t, files, 3)
			assert.Contains(t, files, "jsonMeta")
			assert.Contains(t, files, "settings")

			got, err := fstree.Decode(fsys, "tree", s, opts...)
			require.NoError(t, err)
			assertValue(t, v, got)
		})
	}
}

func TestSubdocuments_JSONContent(t *testing.T) {
	v := value.NewRecord("jsonMeta", value.Map{
		{Key: value.String("k2"), Value: value.String("v2")},
		{Key: value.String("k1"), Value: value.String("v1")},
	})

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v))

	data, err := fsys.ReadFile("tree/jsonMeta")
	require.NoError(t, err)
	assert.Equal(t, `{"k1":"v1","k2":"v2"}`, string(data))
}

func TestSubdocuments_MapKeys(t *testing.T) {
	s := shape.Map(shape.String(), shape.Seq(shape.Int(64)))
	v := value.Map{
		{Key: value.String("plain"), Value: value.Seq{value.Int(1)}},
		{Key: value.String("json-doc"), Value: value.Seq{value.Int(2), value.Int(3)}},
	}

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v))
	assert.Equal(t, map[string]string{
		"plain/0":  "1",
		"json-doc": "[2,3]",
	}, readTree(t, fsys, "tree"))

	got, err := fstree.Decode(fsys, "tree", s)
	require.NoError(t, err)
	assertValue(t, v, got)
}

func TestSubdocuments_MarkerDisabled(t *testing.T) {
	v := value.NewRecord("jsonMeta", value.Map{{Key: value.String("k"), Value: value.String("v")}})

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v, fstree.WithSubdocMarker("")))
	assert.Equal(t, map[string]string{"jsonMeta/k": "v"}, readTree(t, fsys, "tree"))
}

func TestSubdocuments_CustomMarker(t *testing.T) {
	v := value.NewRecord(
		"jsonMeta", value.Map{{Key: value.String("k"), Value: value.String("v")}},
		"x-doc", value.Seq{value.Bool(false)},
	)

	fsys := billy.NewMemory()
	require.NoError(t, fstree.Encode(fsys, "tree", v,
		fstree.WithSubdocMarker("x-"),
		fstree.WithSubdocCodec(subdoc.YAML()),
	))
	assert.Equal(t, map[string]string{
		"jsonMeta/k": "v",
		"x-doc":      "- false\n",
	}, readTree(t, fsys, "tree"))
}

func TestSubdocuments_InvalidDocument(t *testing.T) {
	fsys := billy.NewMemory()
	writeFiles(t, fsys, map[string]string{"tree/jsonMeta": "{not json"})

	s := shape.Record(shape.Field("jsonMeta", shape.Map(shape.String(), shape.String())))
	_, err := fstree.Decode(fsys, "tree", s)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSubdocument, errors.GetCode(err))
	assert.Equal(t, "tree/jsonMeta", errors.PathOf(err))
}

func TestSymlinkRejection(t *testing.T) {
	s := shape.Record(shape.Field("a", shape.Record(shape.Field("b", shape.Int(64)))))
	v := value.NewRecord("a", value.NewRecord("b", value.Int(1)))

	for name, newFS := range providers(t) {
		t.Run(name+"/decode through directory link", func(t *testing.T) {
			fsys := newFS()
			writeFiles(t, fsys, map[string]string{"elsewhere/b": "1"})
			require.NoError(t, fsys.MkdirAll("tree", 0o755))
			require.NoError(t, fsys.Symlink("../elsewhere", "tree/a"))

			_, err := fstree.Decode(fsys, "tree", s)
			require.Error(t, err)
			assert.Equal(t, errors.CodeSymlink, errors.GetCode(err))
			assert.Equal(t, "tree/a", errors.PathOf(err))
		})

		t.Run(name+"/decode linked leaf", func(t *testing.T) {
			fsys := newFS()
			writeFiles(t, fsys, map[string]string{"target": "1"})
			require.NoError(t, fsys.MkdirAll("tree/a", 0o755))
			require.NoError(t, fsys.Symlink("../../target", "tree/a/b"))

			_, err := fstree.Decode(fsys, "tree", s)
			require.Error(t, err)
			assert.Equal(t, errors.CodeSymlink, errors.GetCode(err))
			assert.Equal(t, "tree/a/b", errors.PathOf(err))
		})

		t.Run(name+"/encode through directory link", func(t *testing.T) {
			fsys := newFS()
			require.NoError(t, fsys.MkdirAll("elsewhere", 0o755))
			require.NoError(t, fsys.MkdirAll("tree", 0o755))
			require.NoError(t, fsys.Symlink("../elsewhere", "tree/a"))

			err := fstree.Encode(fsys, "tree", v)
			require.Error(t, err)
			assert.Equal(t, errors.CodeSymlink, errors.GetCode(err))

			exists, err := fsys.Exists("elsewhere/b")
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run(name+"/any", func(t *testing.T) {
			fsys := newFS()
			writeFiles(t, fsys, map[string]string{"tree/x": "1", "target": "2"})
			require.NoError(t, fsys.Symlink("../target", "tree/y"))

			_, err := fstree.Decode(fsys, "tree", nil)
			require.Error(t, err)
			assert.Equal(t, errors.CodeSymlink, errors.GetCode(err))
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		dirs  []string
		shape *value.Shape
		code  errors.ErrorCode
		path  string
	}{
		{
			name:  "invalid bool",
			files: map[string]string{"tree/flag": "yes"},
			shape: shape.Record(shape.Field("flag", shape.Bool())),
			code:  errors.CodeInvalidBool,
			path:  "tree/flag",
		},
		{
			name:  "bool with whitespace",
			files: map[string]string{"tree/flag": "true\n"},
			shape: shape.Record(shape.Field("flag", shape.Bool())),
			code:  errors.CodeInvalidBool,
			path:  "tree/flag",
		},
		{
			name:  "invalid integer",
			files: map[string]string{"tree/n": "seven"},
			shape: shape.Record(shape.Field("n", shape.Int(64))),
			code:  errors.CodeParse,
			path:  "tree/n",
		},
		{
			name:  "integer out of range",
			files: map[string]string{"tree/n": "300"},
			shape: shape.Record(shape.Field("n", shape.Int(8))),
			code:  errors.CodeParse,
			path:  "tree/n",
		},
		{
			name:  "negative unsigned",
			files: map[string]string{"tree/n": "-1"},
			shape: shape.Record(shape.Field("n", shape.Uint(32))),
			code:  errors.CodeParse,
			path:  "tree/n",
		},
		{
			name:  "empty char",
			files: map[string]string{"tree/c": ""},
			shape: shape.Record(shape.Field("c", shape.Char())),
			code:  errors.CodeEmptyFile,
			path:  "tree/c",
		},
		{
			name:  "invalid unicode string",
			files: map[string]string{"tree/s": "\xff"},
			shape: shape.Record(shape.Field("s", shape.String())),
			code:  errors.CodeInvalidUnicode,
			path:  "tree/s",
		},
		{
			name:  "invalid unicode number",
			files: map[string]string{"tree/n": "1\xff"},
			shape: shape.Record(shape.Field("n", shape.Int(64))),
			code:  errors.CodeInvalidUnicode,
			path:  "tree/n",
		},
		{
			name:  "empty variant directory",
			dirs:  []string{"tree/e"},
			shape: shape.Record(shape.Field("e", variantShape())),
			code:  errors.CodeEmptyDirectory,
			path:  "tree/e",
		},
		{
			name:  "unknown variant",
			files: map[string]string{"tree/e": "Missing"},
			shape: shape.Record(shape.Field("e", variantShape())),
			code:  errors.CodeParse,
			path:  "tree/e",
		},
		{
			name:  "unit variant stored as directory",
			files: map[string]string{"tree/e/Unit/x": "1"},
			shape: shape.Record(shape.Field("e", variantShape())),
			code:  errors.CodeParse,
			path:  "tree/e",
		},
		{
			name:  "payload variant stored as file",
			files: map[string]string{"tree/e": "Newtype"},
			shape: shape.Record(shape.Field("e", variantShape())),
			code:  errors.CodeParse,
			path:  "tree/e",
		},
		{
			name:  "missing field",
			files: map[string]string{"tree/a": "1"},
			shape: shape.Record(shape.Field("a", shape.Int(64)), shape.Field("b", shape.Int(64))),
			code:  errors.CodeParse,
			path:  "tree/b",
		},
		{
			name:  "file where a record is expected",
			files: map[string]string{"tree/r": "1"},
			shape: shape.Record(shape.Field("r", shape.Record())),
			code:  errors.CodeParse,
			path:  "tree/r",
		},
		{
			name:  "directory where a scalar is expected",
			files: map[string]string{"tree/n/x": "1"},
			shape: shape.Record(shape.Field("n", shape.Int(64))),
			code:  errors.CodeParse,
			path:  "tree/n",
		},
		{
			name:  "invalid map key",
			files: map[string]string{"tree/m/abc": "1"},
			shape: shape.Record(shape.Field("m", shape.Map(shape.Int(64), shape.Int(64)))),
			code:  errors.CodeParse,
			path:  "tree/m/abc",
		},
		{
			name:  "missing root",
			shape: shape.Record(),
			code:  errors.CodeParse,
			path:  "tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := billy.NewMemory()
			writeFiles(t, fsys, tt.files)
			for _, dir := range tt.dirs {
				require.NoError(t, fsys.MkdirAll(dir, 0o755))
			}

			_, err := fstree.Decode(fsys, "tree", tt.shape)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
			assert.Equal(t, tt.path, errors.PathOf(err))
			assert.False(t, errors.IsFatal(err))
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value value.Value
		shape *value.Shape
		code  errors.ErrorCode
		path  string
	}{
		{
			name:  "scalar at root",
			value: value.Int(1),
			code:  errors.CodeUnsupportedAtRoot,
			path:  "tree",
		},
		{
			name:  "none at root",
			value: value.None(),
			code:  errors.CodeUnsupportedAtRoot,
			path:  "tree",
		},
		{
			name:  "some none at root",
			value: value.Some(value.None()),
			code:  errors.CodeUnsupportedAtRoot,
			path:  "tree",
		},
		{
			name:  "unit variant at root",
			value: value.Variant{Name: "Unit"},
			code:  errors.CodeUnsupportedAtRoot,
			path:  "tree",
		},
		{
			name:  "key with separator",
			value: value.Map{{Key: value.String("a/b"), Value: value.Int(1)}},
			code:  errors.CodeInvalidInput,
			path:  "tree",
		},
		{
			name:  "reserved key",
			value: value.Map{{Key: value.String(".."), Value: value.Int(1)}},
			code:  errors.CodeInvalidInput,
			path:  "tree",
		},
		{
			name:  "empty key",
			value: value.Map{{Key: value.String(""), Value: value.Int(1)}},
			code:  errors.CodeInvalidInput,
			path:  "tree",
		},
		{
			name:  "invalid character",
			value: value.NewRecord("c", value.Char(0xD800)),
			code:  errors.CodeInvalidUnicode,
			path:  "tree/c",
		},
		{
			name:  "shape mismatch",
			value: value.NewRecord("n", value.String("x")),
			shape: shape.Record(shape.Field("n", shape.Int(64))),
			code:  errors.CodeUnsupportedType,
			path:  "tree/n",
		},
		{
			name:  "unencodable sub-document",
			value: value.NewRecord("jsonF", value.Float(math.NaN())),
			code:  errors.CodeSubdocument,
			path:  "tree/jsonF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fstree.Encode(billy.NewMemory(), "tree", tt.value, fstree.WithShape(tt.shape))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
			assert.Equal(t, tt.path, errors.PathOf(err))
		})
	}
}

func TestEncode_ContractViolation(t *testing.T) {
	fsys := billy.NewMemory()
	enc := fstree.NewEncoder(fsys, "tree")

	err := enc.Sink().Record(func(rs value.RecordSink) error {
		return rs.Field("a", func(s value.Sink) error {
			if err := s.Scalar(value.Int(1)); err != nil {
				return err
			}
			return s.Scalar(value.Int(2))
		})
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeContractViolation, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
	assert.Equal(t, "tree/a", errors.PathOf(err))

	data, err := fsys.ReadFile("tree/a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestEncode_SinkByHand(t *testing.T) {
	fsys := billy.NewMemory()
	enc := fstree.NewEncoder(fsys, "tree")

	err := enc.Sink().Record(func(rs value.RecordSink) error {
		if err := rs.Field("name", func(s value.Sink) error {
			return s.Scalar(value.String("api"))
		}); err != nil {
			return err
		}
		return rs.Subdoc("meta", func(s value.Sink) error {
			return s.Seq(func(ss value.SeqSink) error {
				return ss.Element(func(s value.Sink) error { return s.Scalar(value.Int(1)) })
			})
		})
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "api", "meta": "[1]"}, readTree(t, fsys, "tree"))
}

func TestEncode_OverwritesExistingTree(t *testing.T) {
	fsys := billy.NewMemory()
	s := shape.Record(shape.Field("n", shape.Int(64)))

	require.NoError(t, fstree.Encode(fsys, "tree", value.NewRecord("n", value.Int(1))))
	require.NoError(t, fstree.Encode(fsys, "tree", value.NewRecord("n", value.Int(22))))

	got, err := fstree.Decode(fsys, "tree", s)
	require.NoError(t, err)
	assertValue(t, value.NewRecord("n", value.Int(22)), got)
}

func TestEncode_Modes(t *testing.T) {
	fsys := billy.NewLocal(t.TempDir())
	v := value.NewRecord("sub", value.NewRecord("n", value.Int(1)))

	require.NoError(t, fstree.Encode(fsys, "tree", v,
		fstree.WithFileMode(0o600),
		fstree.WithDirMode(0o700),
	))

	info, err := fsys.Lstat("tree/sub/n")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	info, err = fsys.Lstat("tree/sub")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "-rwx------", info.Mode().Perm().String())
}

func TestDecode_InvalidShape(t *testing.T) {
	_, err := fstree.Decode(billy.NewMemory(), "tree", &value.Shape{Kind: value.KindSeq})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

// TestRandomRoundTrip encodes randomly generated values of randomly generated
// shapes and checks that decoding returns the same value.
func TestRandomRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for i := range 200 {
		s := randomRecordShape(r, 3)
		v := randomValue(r, s)

		fsys := billy.NewMemory()
		require.NoError(t, fstree.Encode(fsys, "tree", v, fstree.WithShape(s)), "case %d: %s", i, s)

		got, err := fstree.Decode(fsys, "tree", s)
		require.NoError(t, err, "case %d: %s", i, s)
		require.True(t, value.Equal(v, got), "case %d: %s\nwant %#v\ngot  %#v", i, s, v, got)
	}
}

// randomShape generates shapes whose values survive a round trip: options
// only appear as record fields, where absence is unambiguous.
func randomShape(r *rand.Rand, depth int) *value.Shape {
	if depth <= 0 || r.IntN(3) == 0 {
		return randomScalarShape(r)
	}

	switch r.IntN(5) {
	case 0:
		return shape.Seq(randomShape(r, depth-1))
	case 1:
		elems := make([]*value.Shape, 1+r.IntN(3))
		for i := range elems {
			elems[i] = randomShape(r, depth-1)
		}
		return shape.Tuple(elems...)
	case 2:
		keys := []*value.Shape{shape.String(), shape.Int(64), shape.Uint(32)}
		return shape.Map(keys[r.IntN(len(keys))], randomShape(r, depth-1))
	case 3:
		return randomRecordShape(r, depth-1)
	default:
		cases := make([]value.CaseShape, 1+r.IntN(3))
		for i := range cases {
			var payload *value.Shape
			if r.IntN(2) == 0 {
				payload = randomShape(r, depth-1)
			}
			cases[i] = shape.Case("C"+strconv.Itoa(i), payload)
		}
		return shape.Variant(cases...)
	}
}

func randomRecordShape(r *rand.Rand, depth int) *value.Shape {
	fields := make([]value.FieldShape, r.IntN(5))
	for i := range fields {
		fs := randomShape(r, depth)
		if r.IntN(3) == 0 {
			fs = shape.Option(fs)
		}
		fields[i] = shape.Field("f"+strconv.Itoa(i), fs)
	}
	return shape.Record(fields...)
}

func randomScalarShape(r *rand.Rand) *value.Shape {
	scalars := []*value.Shape{
		shape.Unit(), shape.Bool(), shape.Int(64), shape.Int(16), shape.Uint(64),
		shape.Float(), shape.Char(), shape.String(), shape.Bytes(),
	}
	return scalars[r.IntN(len(scalars))]
}

var runes = []rune("aZ9 -_.é漢🙂\n")

func randomValue(r *rand.Rand, s *value.Shape) value.Value {
	switch s.Kind {
	case value.KindUnit:
		return value.Unit{}
	case value.KindBool:
		return value.Bool(r.IntN(2) == 0)
	case value.KindInt:
		if s.IntBits() < 64 {
			return value.Int(r.Int64N(1<<(s.IntBits()-1)) - r.Int64N(1<<(s.IntBits()-1)))
		}
		return value.Int(int64(r.Uint64()))
	case value.KindUint:
		if s.IntBits() < 64 {
			return value.Uint(r.Uint64N(1 << s.IntBits()))
		}
		return value.Uint(r.Uint64())
	case value.KindFloat:
		return value.Float(r.NormFloat64() * 1e6)
	case value.KindChar:
		return value.Char(runes[r.IntN(len(runes))])
	case value.KindString:
		out := make([]rune, r.IntN(8))
		for i := range out {
			out[i] = runes[r.IntN(len(runes))]
		}
		return value.String(out)
	case value.KindBytes:
		out := make([]byte, r.IntN(8))
		for i := range out {
			out[i] = byte(r.UintN(256))
		}
		return value.Bytes(out)
	case value.KindOption:
		if r.IntN(2) == 0 {
			return value.None()
		}
		return value.Some(randomValue(r, s.Elem))
	case value.KindSeq:
		out := make(value.Seq, r.IntN(4))
		for i := range out {
			out[i] = randomValue(r, s.Elem)
		}
		return out
	case value.KindTuple:
		out := make(value.Tuple, len(s.Elems))
		for i, es := range s.Elems {
			out[i] = randomValue(r, es)
		}
		return out
	case value.KindMap:
		return randomMap(r, s)
	case value.KindRecord:
		out := value.Record{}
		for _, f := range s.Fields {
			out.Fields = append(out.Fields, value.Field{Name: f.Name, Value: randomValue(r, f.Shape)})
		}
		return out
	case value.KindVariant:
		c := s.Cases[r.IntN(len(s.Cases))]
		if c.Payload == nil {
			return value.Variant{Name: c.Name}
		}
		return value.Variant{Name: c.Name, Payload: randomValue(r, c.Payload)}
	default:
		panic("unexpected shape " + s.String())
	}
}

func randomMap(r *rand.Rand, s *value.Shape) value.Map {
	n := r.IntN(4)
	seen := map[string]bool{}
	out := value.Map{}
	for len(out) < n {
		var k value.Value
		switch s.Key.Kind {
		case value.KindString:
			k = value.String("k" + strconv.Itoa(r.IntN(100)))
		case value.KindInt:
			k = value.Int(r.Int64N(2000) - 1000)
		default:
			k = value.Uint(r.Uint64N(1000))
		}
		text, _ := value.FormatText(k)
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, value.Entry{Key: k, Value: randomValue(r, s.Elem)})
	}
	return out
}

package replace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitreplace/internal/domain"
	"gitreplace/internal/fsio"
)

func match(file string, line, column int) *domain.SearchMatch {
	return &domain.SearchMatch{File: file, Line: line, Column: column, Selected: true}
}

func memStore(t *testing.T, files map[string]string) (afero.Fs, *fsio.Store) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs, fsio.New(fs)
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

func TestLiteralReplaceCountsPerLine(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "foo foo\nbaz\n"})

	res, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 1, 1)},
		Spec{Pattern: "foo", Replacement: "bar"})
	require.NoError(t, err)

	assert.Equal(t, "bar bar\nbaz\n", readFile(t, fs, "a.txt"))
	assert.Equal(t, 1, res.Occurrences, "counted once per line")
	assert.Equal(t, 1, res.FilesModified)
	assert.Empty(t, res.Errors)
}

func TestRegexReplace(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "foo foo\n"})

	res, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 1, 1)},
		Spec{Pattern: "f(o)+", Replacement: "F", Regex: true})
	require.NoError(t, err)

	assert.Equal(t, "F F\n", readFile(t, fs, "a.txt"))
	assert.Equal(t, 1, res.Occurrences)
}

func TestRegexCaptureReferences(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "user@example\n"})

	_, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 1, 1)},
		Spec{Pattern: `(\w+)@(\w+)`, Replacement: "$2_$1", Regex: true})
	require.NoError(t, err)

	assert.Equal(t, "example_user\n", readFile(t, fs, "a.txt"))
}

func TestCompilePatternFollowsGrepDialect(t *testing.T) {
	re, err := CompilePattern("a|ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", re.FindString("abc"), "leftmost-longest like ERE")

	_, err = CompilePattern(`(a)\1`)
	assert.True(t, errors.Is(err, ErrInvalidPattern), "backreferences are rejected")

	_, err = CompilePattern("")
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

func TestRegexAlternationReplacesLongest(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "abc\n"})

	_, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 1, 1)},
		Spec{Pattern: "a|ab", Replacement: "X", Regex: true})
	require.NoError(t, err)

	assert.Equal(t, "Xc\n", readFile(t, fs, "a.txt"))
}

func TestNormalizeTemplate(t *testing.T) {
	assert.Equal(t, "${1}abc", NormalizeTemplate("$1abc"))
	assert.Equal(t, "${0}!", NormalizeTemplate("$&!"))
	assert.Equal(t, "$$5", NormalizeTemplate("$$5"))
	assert.Equal(t, "${name}", NormalizeTemplate("${name}"))
	assert.Equal(t, "plain", NormalizeTemplate("plain"))
}

func TestUnreferencedLinesUntouched(t *testing.T) {
	original := "foo\r\nkeep foo\r\n\tfoo\r\nlast"
	fs, store := memStore(t, map[string]string{"a.txt": original})

	res, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 3, 2), match("a.txt", 1, 1)},
		Spec{Pattern: "foo", Replacement: "qux"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Occurrences)

	got := strings.Split(readFile(t, fs, "a.txt"), "\n")
	want := strings.Split(original, "\n")
	require.Len(t, got, len(want))
	assert.Equal(t, "qux\r", got[0])
	assert.Equal(t, want[1], got[1], "line 2 was not selected")
	assert.Equal(t, "\tqux\r", got[2])
	assert.Equal(t, want[3], got[3])
}

func TestDeletionWithEmptyReplacement(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "a-foo-b\n"})

	_, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 1, 3)},
		Spec{Pattern: "foo", Replacement: ""})
	require.NoError(t, err)
	assert.Equal(t, "a--b\n", readFile(t, fs, "a.txt"))
}

func TestOutOfRangeLinesAreSkipped(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "foo\n"})

	res, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 40, 1), match("a.txt", 1, 1)},
		Spec{Pattern: "foo", Replacement: "bar"})
	require.NoError(t, err)

	assert.Equal(t, "bar\n", readFile(t, fs, "a.txt"))
	assert.Equal(t, 1, res.Occurrences)
	assert.Equal(t, 1, res.FilesModified)
}

func TestReadFailureDoesNotAbort(t *testing.T) {
	fs, store := memStore(t, map[string]string{"b.txt": "foo\n"})

	res, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("missing.txt", 1, 1), match("b.txt", 1, 1)},
		Spec{Pattern: "foo", Replacement: "bar"})
	require.NoError(t, err)

	require.Len(t, res.Errors, 1)
	assert.True(t, strings.HasPrefix(res.Errors[0], "missing.txt: "))
	assert.Equal(t, 1, res.FilesModified)
	assert.Equal(t, "bar\n", readFile(t, fs, "b.txt"))
}

func TestWriteFailureIsRecorded(t *testing.T) {
	fs, _ := memStore(t, map[string]string{"a.txt": "foo\n", "b.txt": "foo\n"})
	store := fsio.New(afero.NewReadOnlyFs(fs))

	res, err := NewEngine(store).Apply(context.Background(),
		[]*domain.SearchMatch{match("a.txt", 1, 1), match("b.txt", 1, 1)},
		Spec{Pattern: "foo", Replacement: "bar"})
	require.NoError(t, err)

	assert.Len(t, res.Errors, 2)
	assert.Equal(t, 0, res.FilesModified)
	assert.Equal(t, 2, res.Occurrences)
	assert.Equal(t, "foo\n", readFile(t, fs, "a.txt"))
}

func TestContractViolations(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "foo\n"})
	engine := NewEngine(store)

	_, err := engine.Apply(context.Background(), nil, Spec{Pattern: "foo"})
	assert.True(t, errors.Is(err, ErrNoSelection))

	_, err = engine.Apply(context.Background(), []*domain.SearchMatch{match("a.txt", 1, 1)},
		Spec{Pattern: "f(o", Regex: true})
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	_, err = engine.Apply(context.Background(), []*domain.SearchMatch{match("a.txt", 1, 1)}, Spec{})
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	assert.Equal(t, "foo\n", readFile(t, fs, "a.txt"), "nothing touched")
}

func TestCancelledContextSkipsRemainingFiles(t *testing.T) {
	fs, store := memStore(t, map[string]string{"a.txt": "foo\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewEngine(store).Apply(ctx,
		[]*domain.SearchMatch{match("a.txt", 1, 1)},
		Spec{Pattern: "foo", Replacement: "bar"})
	require.NoError(t, err)
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, "foo\n", readFile(t, fs, "a.txt"))
}

func TestSortDescending(t *testing.T) {
	sorted := sortDescending([]*domain.SearchMatch{
		match("a", 1, 5), match("a", 3, 1), match("a", 1, 9), match("a", 2, 2),
	})
	var got [][2]int
	for _, m := range sorted {
		got = append(got, [2]int{m.Line, m.Column})
	}
	assert.Equal(t, [][2]int{{3, 1}, {2, 2}, {1, 9}, {1, 5}}, got)
}

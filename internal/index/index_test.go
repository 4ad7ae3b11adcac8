package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagerenn/vortaro/internal/lexicon"
	"github.com/sagerenn/vortaro/internal/morph"
)

const corpus = `kato : cat, tomcat
hundo : dog
ĉevalo : horse
kuri : (to) run, flee
fuĝi : flee, escape
aŭto : car, auto
Zamenhof : Zamenhof
`

func buildCorpus(t *testing.T, opts ...Option) *Index {
	t.Helper()
	res := lexicon.ParseString(corpus)
	require.Empty(t, res.Skipped)
	return Build(res.Entries, opts...)
}

func TestBidirectionalConsistency(t *testing.T) {
	ix := buildCorpus(t)
	require.Equal(t, 7, ix.Len())
	for _, e := range ix.Entries() {
		assert.Equal(t, e.Ens, ix.Glosses(e.Eo))
		for _, en := range e.Ens {
			assert.Contains(t, ix.Headwords(en), e.Eo, en)
		}
	}
	for _, en := range ix.EnWords() {
		for _, eo := range ix.Headwords(en) {
			assert.Contains(t, ix.Glosses(eo), en)
		}
	}
	assert.Equal(t, []string{"kuri", "fuĝi"}, ix.Headwords("flee"))
	assert.Empty(t, ix.Headwords("unicorn"))
	assert.Empty(t, ix.Glosses("unikorno"))
}

func TestBuildIdempotent(t *testing.T) {
	a := buildCorpus(t)
	b := buildCorpus(t)
	assert.Equal(t, a.EoWords(), b.EoWords())
	assert.Equal(t, a.EnWords(), b.EnWords())
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestWordListsAreCollated(t *testing.T) {
	ix := buildCorpus(t)
	// ĉ sorts after c and before d in Esperanto; case does not split words.
	assert.Equal(t, []string{"aŭto", "ĉevalo", "fuĝi", "hundo", "kato", "kuri", "Zamenhof"}, ix.EoWords())
	assert.Equal(t, strings.Join(ix.EoWords(), "\n"), ix.EoText())
	assert.Equal(t, strings.Join(ix.EnWords(), "\n"), ix.EnText())
	assert.Len(t, ix.EnWords(), 10)

	var eos []string
	for _, e := range ix.Entries() {
		eos = append(eos, e.Eo)
	}
	assert.Equal(t, ix.EoWords(), eos)
}

func TestBuildMergesAndDedupes(t *testing.T) {
	ix := Build([]lexicon.Entry{
		{Eo: "kato", Ens: []string{"cat", "cat"}},
		{Eo: " kato ", Ens: []string{"tomcat", " "}},
		{Eo: "hundo", Ens: []string{""}},
		{Eo: "", Ens: []string{"nothing"}},
	})
	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, []string{"cat", "tomcat"}, ix.Glosses("kato"))
	assert.Equal(t, []string{"kato"}, ix.Headwords("cat"))
	assert.Equal(t, []string{"cat", "tomcat"}, ix.EnWords())
	_, ok := ix.Entry("hundo")
	assert.False(t, ok)
}

func TestBuildEmpty(t *testing.T) {
	ix := Build(nil)
	assert.Zero(t, ix.Len())
	assert.Empty(t, ix.EoText())
	assert.Empty(t, ix.Entries())
}

func TestAnalyzeMemo(t *testing.T) {
	withMemo := buildCorpus(t, WithMemoSize(2))
	without := buildCorpus(t, WithMemoSize(0))
	for _, eo := range withMemo.EoWords() {
		assert.Equal(t, morph.Analyze(eo), withMemo.Analyze(eo))
		assert.Equal(t, morph.Analyze(eo), withMemo.Analyze(eo), "memoized")
		assert.Equal(t, morph.Analyze(eo), without.Analyze(eo))
	}

	a := withMemo.Analyze("kato")
	a.Parts[0] = "changed"
	assert.Equal(t, "kat", withMemo.Analyze("kato").Root)
	assert.Equal(t, []string{"kat", "o"}, withMemo.Analyze("kato").Parts)
}

func TestWarm(t *testing.T) {
	ix := buildCorpus(t)
	assert.Equal(t, ix.Len(), ix.Warm(2))
	assert.Equal(t, ix.Len(), ix.memo.Len())

	small := buildCorpus(t, WithMemoSize(3))
	assert.Equal(t, 3, small.Warm(0))

	assert.Zero(t, buildCorpus(t, WithMemoSize(0)).Warm(4))
}

func TestArtifactsRoundTrip(t *testing.T) {
	ix := buildCorpus(t)
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, ix.WriteArtifacts(dir))

	for _, name := range []string{EoToEnsFile, EnToEosFile, EoWordsFile, EnWordsFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
	eos, err := os.ReadFile(filepath.Join(dir, EoWordsFile))
	require.NoError(t, err)
	assert.Equal(t, ix.EoText()+"\n", string(eos))

	snap, err := ReadArtifacts(dir)
	require.NoError(t, err)
	assert.Equal(t, ix.Snapshot(), snap)

	back := FromSnapshot(snap)
	assert.Equal(t, ix.EoWords(), back.EoWords())
	assert.Equal(t, ix.EnWords(), back.EnWords())
	assert.Equal(t, ix.Headwords("flee"), back.Headwords("flee"))
	assert.Equal(t, ix.Glosses("kuri"), back.Glosses("kuri"))
}

func TestReadArtifactsMissing(t *testing.T) {
	_, err := ReadArtifacts(t.TempDir())
	assert.Error(t, err)
}

func TestFromSnapshotWithoutWordLists(t *testing.T) {
	snap := Snapshot{
		EoToEns: map[string][]string{"kato": {"cat"}, "hundo": {"dog", "cat"}},
		EnToEos: map[string][]string{"cat": {"kato", "ghost", "hundo"}},
	}
	ix := FromSnapshot(snap)
	assert.Equal(t, []string{"hundo", "kato"}, ix.EoWords())
	assert.Equal(t, []string{"kato", "hundo"}, ix.Headwords("cat"))
	assert.Equal(t, []string{"hundo"}, ix.Headwords("dog"))
}

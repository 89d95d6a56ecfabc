package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grimoire/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/normalisers/item"
)

const (
	armorDoc  = `{"armor":{"lightArmor":[{"name":"Hide Armor","level":1,"traits":["Comfort"]}],"heavyArmor":[{"name":"Battle Plate","level":"6"}]}}`
	spellsDoc = `{"spells":{"rank1":[{"name":"Mage Hand","rank":1,"traits":"Manipulate"}],"rank3":[{"name":"fireball","rank":3,"traits":["Fire"]}]}}`
	skillsDoc = `{"skills":[{"name":"Athletics","keyAttribute":"Str"}],"miscStuff":[{"name":"Widget"}]}`
)

func newTestLoader(src *fakeSource) (*Loader, *memory.RecordStore) {
	store := memory.NewRecordStore()
	return NewLoader(src, item.New(), store, domain.DefaultTaxonomy(), 2), store
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(map[string]string{
		"armor.json":  armorDoc,
		"spells.json": spellsDoc,
		"skills.json": skillsDoc,
	}, "armor.json", "spells.json", "skills.json")
	loader, store := newTestLoader(src)

	report, err := loader.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, 5, report.Records)
	assert.Equal(t, map[domain.MainType]int{
		domain.MainTypeEquipment: 2,
		domain.MainTypeSpells:    2,
		domain.MainTypeSkills:    1,
	}, report.Counts)
	assert.NotEmpty(t, report.LoadID)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.DiagUnmappedKey, report.Diagnostics[0].Kind)
	assert.Equal(t, "miscStuff", report.Diagnostics[0].Key)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Athletics", "Battle Plate", "fireball", "Hide Armor", "Mage Hand"}, names(all))
	for _, r := range all {
		assert.NotEmpty(t, r.MainType)
		assert.GreaterOrEqual(t, r.Level, 0)
		assert.NotNil(t, r.Traits)
	}
}

func TestLoader_ManifestUnavailableIsFatal(t *testing.T) {
	src := newFakeSource(nil)
	src.manifestErr = errors.New("connection refused")
	loader, store := newTestLoader(src)

	report, err := loader.Load(context.Background())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrManifestUnavailable)
	assert.False(t, store.Loaded(), "no partial catalog")
}

func TestLoader_DocumentFailuresAreDiagnostics(t *testing.T) {
	src := newFakeSource(map[string]string{
		"armor.json":  armorDoc,
		"broken.json": `{"armor": [`,
		"list.json":   `[1, 2, 3]`,
	}, "missing.json", "armor.json", "broken.json", "list.json")
	loader, store := newTestLoader(src)

	report, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Records)
	require.Len(t, report.Diagnostics, 3)
	assert.Equal(t, domain.DiagFetchFailed, report.Diagnostics[0].Kind)
	assert.Equal(t, "missing.json", report.Diagnostics[0].Document)
	assert.Equal(t, domain.DiagParseFailed, report.Diagnostics[1].Kind)
	assert.Equal(t, "broken.json", report.Diagnostics[1].Document)
	assert.Equal(t, domain.DiagParseFailed, report.Diagnostics[2].Kind)
	assert.True(t, store.Loaded())
}

func TestLoader_DiagnosticsFollowManifestOrder(t *testing.T) {
	docs := map[string]string{
		"a.json": `{"alpha":[{"name":"x"}]}`,
		"b.json": `{"beta":[{"name":"y"}]}`,
		"c.json": `{"gamma":[{"name":"z"}]}`,
	}
	for i := 0; i < 5; i++ {
		loader, _ := newTestLoader(newFakeSource(docs, "c.json", "a.json", "b.json"))
		report, err := loader.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Diagnostics, 3)
		assert.Equal(t, []string{"c.json", "a.json", "b.json"}, []string{
			report.Diagnostics[0].Document, report.Diagnostics[1].Document, report.Diagnostics[2].Document,
		})
	}
}

func TestLoader_ReloadReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(map[string]string{"armor.json": armorDoc, "skills.json": skillsDoc}, "armor.json")
	loader, store := newTestLoader(src)

	_, err := loader.Load(ctx)
	require.NoError(t, err)

	src.manifest = []string{"skills.json"}
	_, err = loader.Load(ctx)
	require.NoError(t, err)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Athletics"}, names(all))
}

func TestLoader_DuplicateManifestEntries(t *testing.T) {
	src := newFakeSource(map[string]string{"armor.json": armorDoc}, "armor.json", "armor.json", " ")
	loader, _ := newTestLoader(src)

	report, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"armor.json"}, report.Documents)
	assert.Equal(t, 2, report.Records)
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader, store := newTestLoader(newFakeSource(map[string]string{"armor.json": armorDoc}, "armor.json"))

	_, err := loader.Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, store.Loaded())
}

func TestSortByName_CaseInsensitiveStable(t *testing.T) {
	recs := []domain.Record{{Name: "beta", ID: "1"}, {Name: "Alpha"}, {Name: "Beta", ID: "2"}}

	SortByName(recs)

	assert.Equal(t, []string{"Alpha", "beta", "Beta"}, names(recs))
}

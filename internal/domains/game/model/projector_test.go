package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	for _, s := range []string{"1", "v1", "1.0"} {
		v, ok := ParseVersion(s)
		assert.True(t, ok, s)
		assert.Equal(t, V1, v)
	}
	for _, s := range []string{"2", "v2", "2.0"} {
		v, ok := ParseVersion(s)
		assert.True(t, ok, s)
		assert.Equal(t, V2, v)
	}

	_, ok := ParseVersion("3")
	assert.False(t, ok)
	assert.Equal(t, "v2", V2.String())
}

func TestProjectors(t *testing.T) {
	g := SeedGames()[0]

	v1, ok := V1Projector{}.Project(g).(GameV1)
	require.True(t, ok)
	assert.Equal(t, g.ID, v1.ID)
	assert.Equal(t, g.Name, v1.Name)
	assert.True(t, g.Price.Equal(v1.Price))

	v2, ok := V2Projector{}.Project(g).(GameV2)
	require.True(t, ok)
	assert.Equal(t, g.Genre, v2.Genre)
	assert.Equal(t, g.ImageURI, v2.ImageURI)
	assert.True(t, g.ReleaseDate.Equal(v2.ReleaseDate))
}

func TestProjectAllPreservesOrder(t *testing.T) {
	games := SeedGames()
	out := ProjectAll(V1Projector{}, games)
	require.Len(t, out, len(games))
	for i := range games {
		assert.Equal(t, games[i].ID, out[i].(GameV1).ID)
	}

	assert.Empty(t, ProjectAll(V2Projector{}, nil))
}

func TestGameV1JSONShape(t *testing.T) {
	raw, err := json.Marshal(V1Projector{}.Project(SeedGames()[0]))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"id", "name", "genre", "price", "releaseDate", "imageUri"} {
		assert.Contains(t, m, key)
	}
}

func TestV1InputDecode(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		req, err := V1Input{}.Decode([]byte(`{
			"name": "Celeste",
			"genre": "Platformer",
			"price": 19.99,
			"releaseDate": "2018-01-25T00:00:00Z",
			"imageUri": "https://placehold.co/100",
			"extra": true
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Celeste", req.Name)
		assert.Equal(t, "19.99", req.Price.String())
		assert.Equal(t, 2018, req.ReleaseDate.Year())
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := V1Input{}.Decode([]byte("  "))
		require.Error(t, err)
		assert.True(t, err.(*ValidationError).Has("body"))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := V1Input{}.Decode([]byte(`{"name":`))
		require.Error(t, err)
		assert.True(t, err.(*ValidationError).Has("body"))
	})

	t.Run("not an object", func(t *testing.T) {
		for _, body := range []string{`[1,2]`, `"game"`, `null`} {
			_, err := V1Input{}.Decode([]byte(body))
			require.Error(t, err, body)
			assert.True(t, err.(*ValidationError).Has("body"), body)
		}
	})

	t.Run("type errors are reported per field", func(t *testing.T) {
		_, err := V1Input{}.Decode([]byte(`{
			"name": 12,
			"genre": "Action",
			"price": "abc",
			"releaseDate": "yesterday",
			"imageUri": ["https://placehold.co/100"]
		}`))
		require.Error(t, err)
		verr := err.(*ValidationError)
		assert.Len(t, verr.Fields, 4)
		for _, field := range []string{"name", "price", "releaseDate", "imageUri"} {
			assert.True(t, verr.Has(field), field)
		}
		for _, msg := range verr.Fields {
			assert.NotContains(t, msg, "json:")
			assert.NotContains(t, msg, "2006-01-02")
		}
	})

	t.Run("date only release date", func(t *testing.T) {
		req, err := V1Input{}.Decode([]byte(`{"releaseDate": "2015-12-25"}`))
		require.NoError(t, err)
		assert.True(t, time.Date(2015, 12, 25, 0, 0, 0, 0, time.UTC).Equal(req.ReleaseDate))
	})

	t.Run("price as string", func(t *testing.T) {
		req, err := V1Input{}.Decode([]byte(`{"price": "59.99"}`))
		require.NoError(t, err)
		assert.Equal(t, "59.99", req.Price.String())
	})

	t.Run("case insensitive keys and nulls", func(t *testing.T) {
		req, err := V1Input{}.Decode([]byte(`{"Name": "Celeste", "GENRE": "Platformer", "imageUri": null}`))
		require.NoError(t, err)
		assert.Equal(t, "Celeste", req.Name)
		assert.Equal(t, "Platformer", req.Genre)
		assert.Empty(t, req.ImageURI)
	})
}

func TestStrategies(t *testing.T) {
	s1, ok := StrategyFor(V1)
	require.True(t, ok)
	assert.NotNil(t, s1.Input)
	assert.Equal(t, V1, s1.Projector.Version())

	s2, ok := StrategyFor(V2)
	require.True(t, ok)
	assert.Nil(t, s2.Input, "v2 does not accept writes")
	assert.Equal(t, V2, s2.Projector.Version())

	_, ok = StrategyFor(Version(9))
	assert.False(t, ok)
}

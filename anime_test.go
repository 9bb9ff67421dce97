package aniscrape_test

import (
	"testing"

	"aniscrape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnime_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid entry", func(t *testing.T) {
		t.Parallel()

		a := &aniscrape.Anime{Title: "Cowboy Bebop", URL: "https://example.com/anime/cowboy-bebop/"}
		assert.NoError(t, a.Validate())
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		a := &aniscrape.Anime{Title: "Cowboy Bebop"}
		err := a.Validate()

		require.Error(t, err)
		assert.Equal(t, aniscrape.EINVALID, aniscrape.ErrorCode(err))
	})

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		a := &aniscrape.Anime{URL: "https://example.com/anime/cowboy-bebop/"}
		err := a.Validate()

		require.Error(t, err)
		assert.Equal(t, aniscrape.EINVALID, aniscrape.ErrorCode(err))
	})
}

func TestAnimeRecord_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *aniscrape.AnimeRecord {
		return &aniscrape.AnimeRecord{
			Title:             "Cowboy Bebop",
			URL:               "https://example.com/anime/cowboy-bebop/",
			TotalEpisodes:     26,
			AvailableEpisodes: 26,
		}
	}

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, valid().Validate())
	})

	t.Run("available may not exceed total", func(t *testing.T) {
		t.Parallel()

		rec := valid()
		rec.AvailableEpisodes = 27
		err := rec.Validate()

		require.Error(t, err)
		assert.Equal(t, aniscrape.EINVALID, aniscrape.ErrorCode(err))
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		rec := valid()
		rec.URL = ""
		require.Error(t, rec.Validate())
	})
}

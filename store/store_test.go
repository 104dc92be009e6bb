// Copyright (C) 2026 The Podscribe Authors.
//
// This file is part of Podscribe.
//
// Podscribe is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Podscribe is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Podscribe.  If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/lib/date"
	"github.com/defsub/podscribe/lib/rss"
	"github.com/defsub/podscribe/podcast"
	"github.com/defsub/podscribe/transcribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testDocument(filename, text string) *podcast.Document {
	title := "Episode " + filename
	return podcast.NewDocument(filename, date.FromFilename(filename),
		transcribe.Transcript{
			"text":     text,
			"language": "en",
			"segments": []interface{}{map[string]interface{}{"id": 0.0, "text": text}},
		},
		rss.Metadata{Title: &title},
		time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
}

func testConfig(t *testing.T, driver string) *config.Config {
	var c config.Config
	c.Store.Driver = driver
	c.Store.Collection = "transcriptions_v2"
	c.Store.Database = "podscribe"
	c.Store.DB.Source = filepath.Join(t.TempDir(), "podscribe.db")
	c.Search.BleveDir = t.TempDir()
	return &c
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(context.Background(), testConfig(t, config.DriverBleve))
	require.NoError(t, err)
	assert.IsType(t, &Bleve{}, s)
	assert.NoError(t, s.Close())

	s, err = NewStore(context.Background(), testConfig(t, config.DriverSqlite))
	require.NoError(t, err)
	assert.IsType(t, &SQL{}, s)
	assert.NoError(t, s.Close())

	_, err = NewStore(context.Background(), testConfig(t, "elastic"))
	assert.Error(t, err)
}

func TestBleve(t *testing.T) {
	cfg := testConfig(t, config.DriverBleve)
	b := NewBleve(cfg)
	ctx := context.Background()

	id1, err := b.Index(ctx, "transcriptions_v2", testDocument("dv_010124_01.mp3", "in the beginning"))
	require.NoError(t, err)
	id2, err := b.Index(ctx, "transcriptions_v2", testDocument("dv_010224_01.mp3", "and then there was light"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.DirExists(t, filepath.Join(cfg.Search.BleveDir, "transcriptions_v2.bleve"))
	require.NoError(t, b.Close())

	s := NewSearch(cfg)
	require.NoError(t, s.Open("transcriptions_v2"))
	defer s.Close()

	hits, err := s.Search("light", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, id2, hits[0].ID)
	assert.Equal(t, "dv_010224_01.mp3", hits[0].Fields[podcast.FieldFilename])

	hits, err = s.Search(`filename:"dv_010124_01.mp3"`, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, id1, hits[0].ID)
}

func TestSQL(t *testing.T) {
	s, err := NewSQL(testConfig(t, config.DriverSqlite))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	doc := testDocument("dv_010124_01.mp3", "hello")
	id, err := s.Index(ctx, "transcriptions_v2", doc)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	bonus := testDocument("bonus.mp3", "extra")
	_, err = s.Index(ctx, "transcriptions_v2", bonus)
	require.NoError(t, err)

	got, err := s.Document(ctx, "transcriptions_v2", id)
	require.NoError(t, err)
	assert.Equal(t, doc.Filename, got.Filename)
	assert.Equal(t, "2024-01-01", *got.Date)
	assert.Equal(t, *doc.Title, *got.Title)
	assert.Nil(t, got.Subtitle)
	assert.Equal(t, "hello", got.Transcription.Text())
	assert.True(t, doc.Timestamp.Equal(got.Timestamp))
	require.Len(t, got.History, 1)
	assert.Equal(t, podcast.NoEdits, got.History[0].Text)
	assert.Equal(t, podcast.EditorSystem, got.History[0].EditedBy)

	var count int64
	require.NoError(t, s.db.Table("transcriptions_v2").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSQLCollections(t *testing.T) {
	s, err := NewSQL(testConfig(t, config.DriverSqlite))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.Index(ctx, "a", testDocument("dv_010124_01.mp3", "one"))
	require.NoError(t, err)
	_, err = s.Index(ctx, "b", testDocument("dv_010224_01.mp3", "two"))
	require.NoError(t, err)

	var count int64
	require.NoError(t, s.db.Table("a").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, s.db.Table("b").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		m := newMongo(mt.Client, "podscribe")
		id, err := m.Index(context.Background(), "transcriptions_v2", testDocument("dv_010124_01.mp3", "hello"))
		require.NoError(mt, err)
		assert.Len(mt, id, 24)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		m := newMongo(mt.Client, "podscribe")
		_, err := m.Index(context.Background(), "transcriptions_v2", testDocument("dv_010124_01.mp3", "hello"))
		assert.Error(mt, err)
	})
}

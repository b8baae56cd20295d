package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tradegrid/internal/module"
)

func TestRefString(t *testing.T) {
	ref := Ref{Stage: module.StageDataCollection, ID: "feed"}
	assert.Equal(t, "data_collection.feed", ref.String())
}

func TestDocumentValidate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := &Document{Descriptors: []Descriptor{
			{Stage: module.StageDataCollection, ID: "feed", Impl: "candlefeed"},
			{
				Stage: module.StageLevelIdentification,
				ID:    "levels",
				Impl:  "staticlevels",
				Dependencies: map[string]Ref{
					"price_data": {Stage: module.StageDataCollection, ID: "feed"},
				},
			},
		}}
		assert.NoError(t, doc.Validate())
	})

	t.Run("empty id is allowed", func(t *testing.T) {
		doc := &Document{Descriptors: []Descriptor{
			{Stage: module.StageDataCollection, Impl: "candlefeed"},
		}}
		assert.NoError(t, doc.Validate())
	})

	t.Run("missing stage fails", func(t *testing.T) {
		doc := &Document{Descriptors: []Descriptor{
			{ID: "feed", Impl: "candlefeed"},
		}}
		err := doc.Validate()
		require.Error(t, err)
		assert.ErrorContains(t, err, "descriptor 0")
	})

	t.Run("missing impl fails", func(t *testing.T) {
		doc := &Document{Descriptors: []Descriptor{
			{Stage: module.StageDataCollection, ID: "feed"},
		}}
		assert.Error(t, doc.Validate())
	})

	t.Run("incomplete dependency ref fails", func(t *testing.T) {
		doc := &Document{Descriptors: []Descriptor{
			{
				Stage: module.StageLevelIdentification,
				ID:    "levels",
				Impl:  "staticlevels",
				Dependencies: map[string]Ref{
					"price_data": {Stage: module.StageDataCollection}, // no id
				},
			},
		}}
		assert.Error(t, doc.Validate())
	})
}

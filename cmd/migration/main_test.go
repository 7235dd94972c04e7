package main

import (
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBookingIndexes(t *testing.T) {
	sets := bookingIndexes()
	require.Len(t, sets, 1)
	assert.Equal(t, constvars.MongoCollectionAppointments, sets[0].collection)
	require.Len(t, sets[0].models, 3)

	unique := sets[0].models[0]
	keys, ok := unique.Keys.(bson.D)
	require.True(t, ok)
	assert.Equal(t, []string{constvars.MongoFieldDocID, constvars.MongoFieldSlotDate, constvars.MongoFieldSlotTime},
		[]string{keys[0].Key, keys[1].Key, keys[2].Key})

	require.NotNil(t, unique.Options.Unique)
	assert.True(t, *unique.Options.Unique)
	assert.Equal(t, bson.M{constvars.MongoFieldState: models.StateBooked}, unique.Options.PartialFilterExpression)

	names := map[string]bool{}
	for _, model := range sets[0].models {
		require.NotNil(t, model.Options.Name)
		names[*model.Options.Name] = true
	}
	assert.Len(t, names, 3)
}

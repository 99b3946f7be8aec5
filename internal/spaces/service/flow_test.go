package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-market/internal/spaces/models"
	"venue-market/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_Shape(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 8)
	assert.Equal(t, "Basics", steps[0].Title)
	assert.Equal(t, "Review", steps[7].Title)

	// Every checklist key belongs to some step.
	owned := map[string]bool{}
	for _, s := range steps {
		for _, f := range s.Fields {
			owned[f] = true
		}
	}
	for _, item := range Checklist {
		assert.True(t, owned[item.Key], item.Key)
	}
	for key := range Defaults() {
		assert.True(t, owned[key], "default key %s has no step", key)
	}
}

func TestSteps_Completeness(t *testing.T) {
	steps := Steps()
	doc := Defaults()
	for i, s := range steps[:3] {
		assert.False(t, s.Complete(doc), "step %d on defaults", i)
	}

	doc.Merge(wizard.Document{"venue_name": "Loft", "venue_types": []any{"Studio"}, "space_type": "castle"})
	assert.False(t, steps[0].Complete(doc), "unknown space type")
	doc.Merge(wizard.Document{"space_type": "private_space"})
	assert.True(t, steps[0].Complete(doc))

	doc.Merge(wizard.Document{"address_line1": "1 Main St", "city": "Pune", "pincode": "41100"})
	assert.False(t, steps[1].Complete(doc), "short pincode")
	doc.Merge(wizard.Document{"pincode": "411001"})
	assert.True(t, steps[1].Complete(doc))

	doc.Merge(wizard.Document{"description": "Bright studio", "capacity": "0"})
	assert.False(t, steps[2].Complete(doc))
	doc.Merge(wizard.Document{"capacity": "40"})
	assert.True(t, steps[2].Complete(doc))

	assert.Nil(t, steps[3].Complete, "amenities are optional")

	doc.Merge(wizard.Document{"photos": []any{""}})
	assert.False(t, steps[4].Complete(doc))
	doc.Merge(wizard.Document{"photos": []any{"https://cdn.example.com/1.jpg"}})
	assert.True(t, steps[4].Complete(doc))

	doc.Merge(wizard.Document{"pricing": []any{map[string]any{"type": "per_hour", "price": "abc"}}})
	assert.False(t, steps[5].Complete(doc))
	doc.Merge(wizard.Document{"pricing": []any{map[string]any{"type": "per_hour", "price": "1200"}}})
	assert.True(t, steps[5].Complete(doc))

	doc.Merge(wizard.Document{"phone": "12345", "email": "owner@example.com"})
	assert.False(t, steps[6].Complete(doc))
	doc.Merge(wizard.Document{"phone": "+91 98450-12345"})
	assert.True(t, steps[6].Complete(doc))

	// Seating layouts and amenities are still empty: 11 of 13.
	assert.Equal(t, 85, wizard.Score(doc, Checklist).Percent)
}

func TestSteps_MalformedDocumentIsIncomplete(t *testing.T) {
	doc := Defaults()
	doc.Merge(wizard.Document{"venue_name": "Loft", "venue_types": map[string]any{"x": 1}, "space_type": "whole_venue"})
	assert.False(t, Steps()[0].Complete(doc))
}

type recordingCreator struct {
	payload models.Payload
	err     error
}

func (r *recordingCreator) CreateVenue(_ context.Context, p models.Payload) (*models.Created, error) {
	r.payload = p
	if r.err != nil {
		return nil, r.err
	}
	return &models.Created{ID: "v-1"}, nil
}

func TestSubmitter_TransformsAndCreates(t *testing.T) {
	creator := &recordingCreator{}
	sub := NewSubmitter(creator, time.Second, nil)

	doc := Defaults()
	doc.Merge(wizard.Document{"venue_name": "Loft", "capacity": "60"})
	require.NoError(t, sub.Submit(context.Background(), doc))

	assert.Equal(t, "Loft", creator.payload.VenueName)
	assert.Equal(t, 60, creator.payload.Capacity)
}

func TestSubmitter_Errors(t *testing.T) {
	sub := NewSubmitter(&recordingCreator{err: errors.New("boom")}, 0, nil)
	assert.ErrorContains(t, sub.Submit(context.Background(), Defaults()), "boom")

	bad := Defaults()
	bad["photos"] = map[string]any{"not": "a list"}
	var invalid *InvalidDraftError
	require.ErrorAs(t, sub.Submit(context.Background(), bad), &invalid)
	assert.NotEmpty(t, invalid.UserMessage())
}

func TestSimulatedCreator(t *testing.T) {
	created, err := (&SimulatedCreator{}).CreateVenue(context.Background(), models.Payload{})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = (&SimulatedCreator{Fail: true}).CreateVenue(context.Background(), models.Payload{})
	assert.ErrorIs(t, err, ErrSimulatedFailure)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&SimulatedCreator{Delay: time.Hour}).CreateVenue(ctx, models.Payload{})
	assert.ErrorIs(t, err, context.Canceled)
}

package service

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/util/survey"
)

type etlFixture struct {
	etl     *ETL
	store   *memStore
	records *staticRecords
	runs    *memRuns
	lock    *fakeLock
	pub     *recordingPublisher
	flushes int
}

func newETLFixture(records [][]string) *etlFixture {
	f := &etlFixture{
		store:   newMemStore(),
		records: &staticRecords{records: records},
		runs:    &memRuns{},
		lock:    &fakeLock{},
		pub:     &recordingPublisher{},
	}
	f.etl = &ETL{
		source:  "sheet.csv",
		picker:  survey.FirstPicker{},
		extract: f.records,
		loader:  NewLoaderWithStore(f.store, 100),
		runs:    f.runs,
		lock:    f.lock,
		js:      f.pub,
		flushFunc: func() error {
			f.flushes++
			return nil
		},
	}
	return f
}

func TestETLRun(t *testing.T) {
	f := newETLFixture([][]string{rawRow("a"), rawRow("b")})

	run, err := f.etl.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ETLRunStatusSucceeded, run.Status)
	assert.Equal(t, 2, run.Rows)
	assert.Equal(t, 4, run.Activities)
	assert.NotEmpty(t, run.RunID)
	assert.NotNil(t, run.FinishedAt)
	assert.Equal(t, []string{"sheet.csv"}, f.records.uris)

	assert.Len(t, f.store.students, 2)
	assert.InDelta(t, 0.95, f.store.foodWaste[1].EmissionMonday, 1e-9)
	// class and meal slots both run the facility
	assert.InDelta(t, 3.80, f.store.electronics[2].FacilityEmission, 1e-9)

	assert.Equal(t, 1, f.flushes)
	require.Len(t, f.pub.subjects, 1)
	assert.Equal(t, constant.ETLCompletedSubject, f.pub.subjects[0])
	var evt ETLCompleted
	require.NoError(t, json.Unmarshal(f.pub.payloads[0], &evt))
	assert.Equal(t, run.RunID, evt.RunID)

	require.Len(t, f.runs.finished, 1)
	assert.Equal(t, model.ETLRunStatusSucceeded, f.runs.finished[0].Status)
	assert.False(t, f.lock.held)
}

func TestETLSchemaErrorAbortsBeforeWriting(t *testing.T) {
	f := newETLFixture([][]string{rawRow("a"), make([]string, survey.ColumnCount-1)})

	run, err := f.etl.Run(context.Background())
	require.ErrorIs(t, err, survey.ErrSchemaMismatch)

	assert.Equal(t, model.ETLRunStatusFailed, run.Status)
	assert.True(t, run.Error.Valid)
	assert.Zero(t, f.store.cleared)
	assert.Empty(t, f.pub.subjects)
	assert.Zero(t, f.flushes)
}

func TestETLPartialRun(t *testing.T) {
	f := newETLFixture([][]string{rawRow("a"), rawRow("b")})
	f.store.failStudentsFrom = 1

	run, err := f.etl.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ETLRunStatusPartial, run.Status)
	assert.Equal(t, 1, run.FailedBatches)
}

func TestETLRejectsConcurrentRun(t *testing.T) {
	f := newETLFixture(nil)
	f.lock.held = true

	run, err := f.etl.Run(context.Background())
	assert.Nil(t, run)
	assert.ErrorIs(t, err, ErrETLRunning)
	assert.Empty(t, f.runs.created)
}

func TestETLExtractFailure(t *testing.T) {
	f := newETLFixture(nil)
	f.records.err = errBoom

	run, err := f.etl.RunSource(context.Background(), "other.csv")
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, model.ETLRunStatusFailed, run.Status)
	assert.Equal(t, "other.csv", run.Source)
	assert.Equal(t, 1, f.lock.unlocked)
}

package service

import (
	"context"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/util/stats"
	"emisi.dev/backend/internal/util/survey"
)

var errBoom = errors.New("boom")

// memStore is a Store keeping the last written state in memory.
type memStore struct {
	mu sync.Mutex

	cleared        int
	students       map[int]*model.Student
	transportation map[int]*model.Transportation
	electronics    map[int]*model.Electronics
	foodWaste      map[int]*model.FoodWaste
	activities     []*model.ActivityLog
	deleted        []int

	// failStudentsFrom makes every student batch containing this id or above fail.
	failStudentsFrom int
	failClear        bool
}

func newMemStore() *memStore {
	return &memStore{
		students:       map[int]*model.Student{},
		transportation: map[int]*model.Transportation{},
		electronics:    map[int]*model.Electronics{},
		foodWaste:      map[int]*model.FoodWaste{},
	}
}

func (m *memStore) ClearAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failClear {
		return errBoom
	}
	m.cleared++
	m.students = map[int]*model.Student{}
	m.transportation = map[int]*model.Transportation{}
	m.electronics = map[int]*model.Electronics{}
	m.foodWaste = map[int]*model.FoodWaste{}
	m.activities = nil
	return nil
}

func (m *memStore) UpsertStudents(_ context.Context, rows []*model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		if m.failStudentsFrom > 0 && r.ID >= m.failStudentsFrom {
			return errBoom
		}
	}
	for _, r := range rows {
		m.students[r.ID] = r
	}
	return nil
}

func (m *memStore) UpsertTransportation(_ context.Context, rows []*model.Transportation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.transportation[r.ID] = r
	}
	return nil
}

func (m *memStore) UpsertElectronics(_ context.Context, rows []*model.Electronics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.electronics[r.ID] = r
	}
	return nil
}

func (m *memStore) UpsertFoodWaste(_ context.Context, rows []*model.FoodWaste) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.foodWaste[r.ID] = r
	}
	return nil
}

func (m *memStore) DeleteActivities(_ context.Context, ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, ids...)
	return nil
}

func (m *memStore) InsertActivities(_ context.Context, rows []*model.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, rows...)
	return nil
}

// fakeSource serves fixed rows regardless of filter, recording the filters it saw.
type fakeSource struct {
	students       []*model.Student
	transportation []*model.Transportation
	electronics    []*model.Electronics
	foodWaste      []*model.FoodWaste
	activities     []*model.ActivityLog
	cells          []stats.Cell
	err            error
}

func (f *fakeSource) Students(context.Context, *types.DashboardFilter) ([]*model.Student, error) {
	return f.students, f.err
}

func (f *fakeSource) Transportation(context.Context, *types.DashboardFilter) ([]*model.Transportation, error) {
	return f.transportation, f.err
}

func (f *fakeSource) Electronics(context.Context, *types.DashboardFilter) ([]*model.Electronics, error) {
	return f.electronics, f.err
}

func (f *fakeSource) FoodWaste(context.Context, *types.DashboardFilter) ([]*model.FoodWaste, error) {
	return f.foodWaste, f.err
}

func (f *fakeSource) Activities(context.Context, *types.DashboardFilter) ([]*model.ActivityLog, error) {
	return f.activities, f.err
}

func (f *fakeSource) SlotEmissions(context.Context, *types.DashboardFilter) ([]stats.Cell, error) {
	return f.cells, f.err
}

// respondents builds n respondents whose category totals grow with their id.
func respondents(n int, faculty func(id int) string) *fakeSource {
	src := &fakeSource{}
	for id := 1; id <= n; id++ {
		src.students = append(src.students, &model.Student{ID: id, Name: "student", Faculty: faculty(id), DaysAttended: "Monday, Tuesday"})
		src.transportation = append(src.transportation, &model.Transportation{ID: id, DaysAttended: "Monday, Tuesday", Emission: float64(id)})
		src.electronics = append(src.electronics, &model.Electronics{ID: id, TotalEmission: float64(id) / 2})
		src.foodWaste = append(src.foodWaste, &model.FoodWaste{ID: id, EmissionMonday: 0.95})
	}
	return src
}

type staticRecords struct {
	records [][]string
	err     error
	uris    []string
}

func (s *staticRecords) Records(_ context.Context, uri string) ([][]string, error) {
	s.uris = append(s.uris, uri)
	return s.records, s.err
}

type memRuns struct {
	created  []*model.ETLRun
	finished []model.ETLRun
}

func (m *memRuns) Create(_ context.Context, run *model.ETLRun) error {
	m.created = append(m.created, run)
	return nil
}

func (m *memRuns) Finish(_ context.Context, run *model.ETLRun) error {
	m.finished = append(m.finished, *run)
	return nil
}

type fakeLock struct {
	held     bool
	unlocked int
}

func (l *fakeLock) LockContext(context.Context) error {
	if l.held {
		return errBoom
	}
	l.held = true
	return nil
}

func (l *fakeLock) UnlockContext(context.Context) (bool, error) {
	l.held = false
	l.unlocked++
	return true, nil
}

type recordingPublisher struct {
	subjects []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(subj string, data []byte, _ ...nats.PubOpt) (*nats.PubAck, error) {
	p.subjects = append(p.subjects, subj)
	p.payloads = append(p.payloads, data)
	return &nats.PubAck{}, nil
}

// rawRow is a full width survey row with a metadata set that maps to known factors.
func rawRow(name string) []string {
	raw := make([]string, survey.ColumnCount)
	raw[survey.ColName] = name
	raw[survey.ColProgram] = "Teknik Informatika"
	raw[survey.ColTransportMode] = "Motor"
	raw[survey.ColDistanceRange] = "1 - 3 km"
	raw[survey.ColFuelType] = "Pertalite (RON 90)"
	raw[survey.ColDeviceList] = "HP, Laptop"
	raw[survey.ColPhoneUsage] = "1 - 3 jam"
	raw[survey.ColLaptopUsage] = "< 1 jam"
	raw[survey.ColEatingPlace] = "Kantin"
	raw[survey.DayOffset(0)+1] = "Kelas Algoritma"
	raw[survey.DayOffset(0)+3] = "Makan Siang"
	raw[survey.DayOffset(0)+survey.SlotsPerDay] = "Gedung A"
	return raw
}

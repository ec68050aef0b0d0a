package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/providers"
	"github.com/Shamanth-8/drones/internal/recordstore"
)

func makeTable(name string, cols []string, rows ...[]string) entities.Table {
	t := entities.Table{Name: name, Columns: cols, Rows: []entities.Row{}}
	for _, values := range rows {
		row := entities.Row{}
		for i, c := range cols {
			row[c] = values[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func pilotTable(rows ...[]string) entities.Table {
	return makeTable(constants.TablePilots, constants.DefaultColumns[constants.TablePilots], rows...)
}

func droneTable(rows ...[]string) entities.Table {
	return makeTable(constants.TableDrones, constants.DefaultColumns[constants.TableDrones], rows...)
}

func missionTable(rows ...[]string) entities.Table {
	return makeTable(constants.TableMissions, constants.DefaultColumns[constants.TableMissions], rows...)
}

// fixturePilots: P001/P002 available, P003 on PRJ001 (over budget, lacks
// Thermal), P004 on leave, P005 on PRJ002 which has no drone.
func fixturePilots() entities.Table {
	return pilotTable(
		[]string{"P001", "Arjun", "Orthomosaic, Thermal", "DGCA", "Bangalore", "Available", "-", "2024-01-01", "1000"},
		[]string{"P002", "Neha", "Videography", "DGCA, Night Ops", "Mumbai", "Available", "-", "2024-02-01", "1500"},
		[]string{"P003", "Rohit", "Mapping", "DGCA", "Bangalore", "Assigned", "PRJ001", "2024-01-01", "5000"},
		[]string{"P004", "Sneha", "Thermal, Inspection", "DGCA, Thermal", "Mumbai", "On Leave", "-", "2024-01-10", "2000"},
		[]string{"P005", "Kiran", "Survey", "DGCA", "Pune", "Assigned", "PRJ002", "2024-01-01", "1000"},
	)
}

func fixtureDrones() entities.Table {
	return droneTable(
		[]string{"D001", "DJI M300", "LiDAR, RGB", "Available", "Bangalore", "-", "IP43 (Rain)", "2024-03-01"},
		[]string{"D002", "DJI Mavic 3", "RGB", "Available", "Mumbai", "-", "None (Clear Sky Only)", "2024-03-01"},
		[]string{"D003", "DJI Matrice 30T", "Thermal", "Deployed", "Bangalore", "PRJ001", "IP55", "2024-04-01"},
		[]string{"D004", "Autel Evo", "Thermal, RGB", "Maintenance", "Mumbai", "-", "None", "2024-04-01"},
	)
}

func fixtureMissions() entities.Table {
	return missionTable(
		[]string{"PRJ001", "Client A", "Bangalore", "Mapping", "DGCA, Thermal", "2024-01-01", "2024-01-05", "High", "20000"},
		[]string{"PRJ002", "Client B", "Pune", "Survey", "DGCA", "2024-01-01", "2024-01-03", "Normal", "5000"},
	)
}

func fixtureStore(backend recordstore.Backend) *recordstore.Store {
	if backend == nil {
		backend = recordstore.NewMemoryBackend()
	}
	return recordstore.NewFromTables(backend, fixturePilots(), fixtureDrones(), fixtureMissions())
}

// fakeProvider serves fixed remote tables.
type fakeProvider struct {
	writable   bool
	tables     map[string]entities.Table
	fetchErr   map[string]error
	replaceErr map[string]error

	mu       sync.Mutex
	replaced []string
}

func (f *fakeProvider) FetchTable(_ context.Context, table string) (entities.Table, error) {
	if err := f.fetchErr[table]; err != nil {
		return entities.Table{}, err
	}
	return f.tables[table].Clone(), nil
}

func (f *fakeProvider) ReplaceTable(_ context.Context, table entities.Table) error {
	if err := f.replaceErr[table.Name]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, table.Name)
	return nil
}

func (f *fakeProvider) CanWrite() bool          { return f.writable }
func (f *fakeProvider) GetProviderType() string { return "fake" }

func (f *fakeProvider) replacedTables() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.replaced...)
}

var errUnmapped = &providers.ProviderError{
	Code:    constants.ErrCodeTableNotMapped,
	Message: constants.GetErrorMessage(constants.ErrCodeTableNotMapped),
}

var errBoom = errors.New("boom")

type syncRecord struct {
	table, event string
	rows         int
	failed       bool
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []syncRecord
}

func (r *fakeRecorder) RecordSync(_ context.Context, table, event, _ string, rows int, syncErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, syncRecord{table: table, event: event, rows: rows, failed: syncErr != nil})
	return nil
}

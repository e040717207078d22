package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// How long after one of our own writes the watcher still attributes a file
// event to this process.
const selfWriteWindow = 2 * time.Second

// Store persists every entity as an independent JSON blob, one file per key.
// All list mutations are full read-modify-write of the collection; the mutex
// makes them atomic within this process. Across processes the last writer
// wins and silently discards the other's change; that weak model is the
// accepted consistency level for this data scale, and it must not be turned
// into incremental patching.
type Store struct {
	dir string
	bus *Bus

	mu           sync.Mutex
	recentWrites map[string]time.Time
}

// New opens (creating if needed) the data directory and returns a Store
// publishing change notifications on bus.
func New(dir string, bus *Bus) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data directory %s", dir)
	}

	return &Store{
		dir:          dir,
		bus:          bus,
		recentWrites: make(map[string]time.Time),
	}, nil
}

// Dir returns the data directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// RecentlyWritten reports whether this process wrote the named file within
// the self-write window. The external watcher uses it to skip events caused
// by our own saves.
func (s *Store) RecentlyWritten(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.recentWrites[name]
	return ok && time.Since(at) < selfWriteWindow
}

func fileName(key string) string {
	return filePrefix + key + ".json"
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, fileName(key))
}

// load reads and unmarshals the blob for key into v. Missing files and parse
// failures are not errors for callers: load reports false and the caller
// substitutes its documented default.
func (s *Store) load(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).WithField("key", key).Error("failed to read stored data, using default")
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		logrus.WithError(err).WithField("key", key).Error("stored data is corrupt, using default")
		return false
	}

	return true
}

// save marshals v and replaces the blob for key via a temp file rename.
// Write failures are logged and swallowed: the caller proceeds as if the
// write succeeded and in-memory state may drift from disk. Best effort,
// not a transactional guarantee.
func (s *Store) save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to serialize data")
		return
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to write data")
		return
	}

	if err := os.Rename(tmp, s.path(key)); err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to replace data file")
		return
	}

	s.recentWrites[fileName(key)] = time.Now()
}

// --- Sales ---

// Sales returns the sales list. When dummy-data mode is enabled in settings,
// a generated week is returned instead of the stored list; mutations always
// operate on the stored list.
func (s *Store) Sales() []domain.SaleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appSettingsLocked().EnableDummyData {
		return DummySales(dummyDataDays)
	}
	return s.storedSalesLocked()
}

func (s *Store) storedSalesLocked() []domain.SaleRecord {
	var records []domain.SaleRecord
	if !s.load(KeySales, &records) || records == nil {
		return []domain.SaleRecord{}
	}
	return records
}

// AddSale appends a record and returns the new stored list.
func (s *Store) AddSale(record domain.SaleRecord) []domain.SaleRecord {
	s.mu.Lock()
	updated := append(s.storedSalesLocked(), record)
	s.save(KeySales, updated)
	s.mu.Unlock()

	s.bus.Publish(TopicSalesUpdated)
	return updated
}

// UpdateSale replaces the record whose id matches. An unknown id leaves the
// list unchanged; the write and notification still happen.
func (s *Store) UpdateSale(record domain.SaleRecord) []domain.SaleRecord {
	s.mu.Lock()
	current := s.storedSalesLocked()
	updated := make([]domain.SaleRecord, len(current))
	for i, item := range current {
		if item.ID == record.ID {
			updated[i] = record
		} else {
			updated[i] = item
		}
	}
	s.save(KeySales, updated)
	s.mu.Unlock()

	s.bus.Publish(TopicSalesUpdated)
	return updated
}

// DeleteSale filters out the record with the given id and returns the new
// stored list.
func (s *Store) DeleteSale(id string) []domain.SaleRecord {
	s.mu.Lock()
	current := s.storedSalesLocked()
	updated := make([]domain.SaleRecord, 0, len(current))
	for _, item := range current {
		if item.ID != id {
			updated = append(updated, item)
		}
	}
	s.save(KeySales, updated)
	s.mu.Unlock()

	s.bus.Publish(TopicSalesUpdated)
	return updated
}

// --- Expenses (append-only ledger) ---

func (s *Store) Expenses() []domain.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []domain.ExpenseRecord
	if !s.load(KeyExpenses, &records) || records == nil {
		return []domain.ExpenseRecord{}
	}
	return records
}

// AddExpense appends an expense. Expenses have no update or delete path.
func (s *Store) AddExpense(record domain.ExpenseRecord) []domain.ExpenseRecord {
	s.mu.Lock()
	var current []domain.ExpenseRecord
	s.load(KeyExpenses, &current)
	updated := append(current, record)
	s.save(KeyExpenses, updated)
	s.mu.Unlock()

	s.bus.Publish(TopicExpensesUpdated)
	return updated
}

// --- Goals (upsert by month) ---

func (s *Store) SalesGoals() []domain.SalesGoal {
	s.mu.Lock()
	defer s.mu.Unlock()

	var goals []domain.SalesGoal
	if !s.load(KeyGoals, &goals) || goals == nil {
		return []domain.SalesGoal{}
	}
	return goals
}

// SaveSalesGoal upserts a goal keyed by month: at most one goal per month.
func (s *Store) SaveSalesGoal(goal domain.SalesGoal) []domain.SalesGoal {
	s.mu.Lock()
	defer s.mu.Unlock()

	var goals []domain.SalesGoal
	s.load(KeyGoals, &goals)

	replaced := false
	for i, g := range goals {
		if g.Month == goal.Month {
			goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		goals = append(goals, goal)
	}

	s.save(KeyGoals, goals)
	return goals
}

// --- Daily tasks ---

// DailyTasks returns the raw stored task list, stale entries included.
func (s *Store) DailyTasks() []domain.DailyTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyTasksLocked()
}

func (s *Store) dailyTasksLocked() []domain.DailyTask {
	var tasks []domain.DailyTask
	if !s.load(KeyTasks, &tasks) || tasks == nil {
		return []domain.DailyTask{}
	}
	return tasks
}

// RelevantTasks filters the list the way the dashboard shows it: tasks dated
// today plus unfinished ones from any day. Old incomplete tasks therefore
// persist indefinitely; that is existing behavior, not a bug to fix here.
func (s *Store) RelevantTasks(today string) []domain.DailyTask {
	all := s.DailyTasks()
	relevant := make([]domain.DailyTask, 0, len(all))
	for _, t := range all {
		if t.Date == today || !t.IsCompleted {
			relevant = append(relevant, t)
		}
	}
	return relevant
}

// SaveDailyTasks replaces the whole task list.
func (s *Store) SaveDailyTasks(tasks []domain.DailyTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(KeyTasks, tasks)
}

// ToggleTask flips the completion flag of the task with the given id and
// returns the new list.
func (s *Store) ToggleTask(id string) []domain.DailyTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.dailyTasksLocked()
	for i, t := range tasks {
		if t.ID == id {
			tasks[i].IsCompleted = !t.IsCompleted
		}
	}
	s.save(KeyTasks, tasks)
	return tasks
}

// --- Inventory (append-only) ---

func (s *Store) InventoryRecords() []domain.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []domain.InventoryRecord
	if !s.load(KeyInventory, &records) || records == nil {
		return []domain.InventoryRecord{}
	}
	return records
}

func (s *Store) AddInventoryRecord(record domain.InventoryRecord) []domain.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []domain.InventoryRecord
	s.load(KeyInventory, &current)
	updated := append(current, record)
	s.save(KeyInventory, updated)
	return updated
}

// --- Profile singleton ---

func (s *Store) StoreProfile() domain.StoreProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := domain.DefaultStoreProfile()
	if !s.load(KeyProfile, &profile) {
		return domain.DefaultStoreProfile()
	}
	return profile
}

func (s *Store) SaveStoreProfile(profile domain.StoreProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(KeyProfile, profile)
}

// --- Settings singleton ---

func (s *Store) AppSettings() domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appSettingsLocked()
}

func (s *Store) appSettingsLocked() domain.AppSettings {
	settings := domain.DefaultAppSettings()
	if !s.load(KeySettings, &settings) {
		return domain.DefaultAppSettings()
	}
	return settings
}

func (s *Store) SaveAppSettings(settings domain.AppSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(KeySettings, settings)
}

// --- Message quota tracker ---

// MessageTracker returns the raw tracker; a zero value means no assistant
// call was made yet.
func (s *Store) MessageTracker() domain.MessageTracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tracker domain.MessageTracker
	s.load(KeyMessageTracker, &tracker)
	return tracker
}

// CheckMessageLimit reports whether the daily assistant quota is exhausted.
// A tracker from a previous day never blocks; a read failure counts as not
// blocked.
func (s *Store) CheckMessageLimit(limit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tracker domain.MessageTracker
	if !s.load(KeyMessageTracker, &tracker) {
		return false
	}

	if tracker.LastReset < midnight(time.Now()) {
		return false
	}
	return tracker.Count >= limit
}

// IncrementMessageCount bumps today's counter, starting a fresh count when
// the stored tracker belongs to a previous day.
func (s *Store) IncrementMessageCount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := midnight(time.Now())

	var tracker domain.MessageTracker
	if s.load(KeyMessageTracker, &tracker) && tracker.LastReset >= today {
		tracker.Count++
	} else {
		tracker = domain.MessageTracker{Count: 1, LastReset: today}
	}

	s.save(KeyMessageTracker, tracker)
}

// ResetMessageTracker zeroes the counter at today's midnight. Used by the
// scheduled quota reset.
func (s *Store) ResetMessageTracker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(KeyMessageTracker, domain.MessageTracker{Count: 0, LastReset: midnight(time.Now())})
}

// midnight returns the unix-millisecond timestamp of t's local midnight.
func midnight(t time.Time) int64 {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).UnixMilli()
}

package reminder

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"moneta/internal/models"
	"moneta/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vmkteam/embedlog"
)

type delivery struct {
	userID, title, body string
}

type fakeDeliverer struct {
	mu   sync.Mutex
	sent []delivery
	err  error
}

func (f *fakeDeliverer) Deliver(_ context.Context, userID, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, delivery{userID, title, body})
	return f.err
}

func (f *fakeDeliverer) deliveries() []delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]delivery(nil), f.sent...)
}

// ReminderTestSuite provides a test suite for the reminder service and scheduler
type ReminderTestSuite struct {
	suite.Suite
	db        *storage.DB
	ctx       context.Context
	clock     time.Time
	deliverer *fakeDeliverer
	scheduler *Scheduler
	service   *Service
}

// SetupTest runs before each test
func (suite *ReminderTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")

	log := embedlog.NewDevLogger()
	suite.db = db
	suite.ctx = context.Background()
	suite.clock = time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)
	suite.deliverer = &fakeDeliverer{}

	now := func() time.Time { return suite.clock }
	suite.scheduler = NewScheduler(db, suite.deliverer, log, time.Millisecond)
	suite.scheduler.now = now
	suite.service = NewService(db, suite.scheduler, suite.deliverer, log)
	suite.service.now = now
}

// TearDownTest runs after each test
func (suite *ReminderTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ReminderTestSuite) enqueue(reminderID, title string, delay time.Duration) *storage.Job {
	j, err := suite.scheduler.enqueue(suite.ctx, suite.db.Queries, "u1", reminderID, title, JobMessage, delay)
	require.NoError(suite.T(), err)
	return j
}

func (suite *ReminderTestSuite) pending() []storage.Job {
	jobs, err := suite.db.DueJobs(suite.ctx, suite.clock.Add(48*time.Hour), 100)
	require.NoError(suite.T(), err)
	return jobs
}

func (suite *ReminderTestSuite) TestCreateTriggersAndSchedules() {
	r, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: " Evening ", Time: "8:00 PM"})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), r.ID)
	assert.Equal(suite.T(), "Evening", r.Name)
	assert.Equal(suite.T(), models.RepeatDaily, r.Repeat, "repeat defaults to daily")

	sent := suite.deliverer.deliveries()
	if assert.Len(suite.T(), sent, 1) {
		assert.Equal(suite.T(), delivery{"u1", "Evening", TriggerMessage}, sent[0])
	}

	jobs := suite.pending()
	if assert.Len(suite.T(), jobs, 1) {
		assert.Equal(suite.T(), r.ID, jobs[0].ReminderID)
		assert.Equal(suite.T(), "Evening", jobs[0].Title)
		assert.Equal(suite.T(), JobMessage, jobs[0].Message)
		assert.Equal(suite.T(), suite.clock.Add(2*time.Hour).UnixMilli(), jobs[0].FireAt.UnixMilli())
	}
}

func (suite *ReminderTestSuite) TestCreateKeepsGoingWhenTriggerFails() {
	suite.deliverer.err = errors.New("gateway down")

	_, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Morning", Time: "7:30 AM", Repeat: models.RepeatWeekly})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.pending(), 1)
}

func (suite *ReminderTestSuite) TestCreateInvalid() {
	_, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Bad", Time: "25:00 AM"})
	assert.ErrorIs(suite.T(), err, ErrInvalidTime)

	_, err = suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Bad", Time: "8:00 PM", Repeat: "Hourly"})
	assert.ErrorIs(suite.T(), err, models.ErrInvalidRepeat)

	_, err = suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "  ", Time: "8:00 PM"})
	assert.ErrorIs(suite.T(), err, ErrInvalidReminder)

	reminders, err := suite.service.List(suite.ctx, "u1")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), reminders)
	assert.Empty(suite.T(), suite.deliverer.deliveries())
}

func (suite *ReminderTestSuite) TestUpdateReschedules() {
	r, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Evening", Time: "8:00 PM"})
	require.NoError(suite.T(), err)

	r.Time = "5:00 PM"
	r.Repeat = models.RepeatMonthly
	updated, err := suite.service.Update(suite.ctx, "u1", *r)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "5:00 PM", updated.Time)
	assert.Equal(suite.T(), models.RepeatMonthly, updated.Repeat)

	jobs := suite.pending()
	if assert.Len(suite.T(), jobs, 1, "the previous job is cancelled") {
		assert.Equal(suite.T(), suite.clock.Add(23*time.Hour).UnixMilli(), jobs[0].FireAt.UnixMilli())
	}

	_, err = suite.service.Update(suite.ctx, "u2", *r)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *ReminderTestSuite) TestDeleteCancels() {
	r, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Evening", Time: "8:00 PM"})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.Delete(suite.ctx, "u1", r.ID))
	assert.Empty(suite.T(), suite.pending())

	_, err = suite.service.Get(suite.ctx, "u1", r.ID)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)

	assert.ErrorIs(suite.T(), suite.service.Delete(suite.ctx, "u1", r.ID), storage.ErrNotFound)
}

func (suite *ReminderTestSuite) TestRunOnceDeliversDueJobs() {
	suite.enqueue("r1", "Soon", time.Minute)
	suite.enqueue("r2", "Later", time.Hour)

	n, err := suite.scheduler.RunOnce(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, n, "nothing is due yet")

	suite.clock = suite.clock.Add(time.Minute)
	n, err = suite.scheduler.RunOnce(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, n)

	sent := suite.deliverer.deliveries()
	if assert.Len(suite.T(), sent, 1) {
		assert.Equal(suite.T(), "Soon", sent[0].title)
	}

	n, err = suite.scheduler.RunOnce(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, n, "delivered jobs do not run again")
}

func (suite *ReminderTestSuite) TestRunOnceMarksFailures() {
	suite.enqueue("r1", "Soon", 0)
	suite.deliverer.err = errors.New("gateway down")

	n, err := suite.scheduler.RunOnce(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, n)
	assert.Empty(suite.T(), suite.pending())

	suite.deliverer.err = nil
	n, err = suite.scheduler.RunOnce(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, n, "failed jobs are not retried")
	assert.Len(suite.T(), suite.deliverer.deliveries(), 1)
}

func (suite *ReminderTestSuite) TestRunReleasesInterruptedJobs() {
	j := suite.enqueue("r1", "Soon", 0)
	ok, err := suite.db.ClaimJob(suite.ctx, j.ID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)

	ctx, cancel := context.WithCancel(suite.ctx)
	done := make(chan error, 1)
	go func() { done <- suite.scheduler.Run(ctx) }()

	assert.Eventually(suite.T(), func() bool {
		return len(suite.deliverer.deliveries()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(suite.T(), err)
	case <-time.After(2 * time.Second):
		suite.T().Fatal("scheduler did not stop")
	}
}

func (suite *ReminderTestSuite) TestDelay() {
	d, err := suite.service.Delay("6:01 PM", "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Minute, d)

	// 18:00 UTC is 01:00 the next day in Bangkok
	d, err = suite.service.Delay("1:30 AM", "Asia/Bangkok")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 30*time.Minute, d)

	_, err = suite.service.Delay("6:01 PM", "Mars/Olympus")
	assert.ErrorIs(suite.T(), err, ErrInvalidTimezone)
}

func (suite *ReminderTestSuite) TestCreateUsesReminderTimezone() {
	home, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Home", Time: "9:00 PM"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), DefaultTimezone, home.Timezone)

	away, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Away", Time: "9:00 PM", Timezone: "Asia/Bangkok"})
	require.NoError(suite.T(), err)

	fireAt := map[string]time.Time{}
	for _, j := range suite.pending() {
		fireAt[j.ReminderID] = j.FireAt
	}
	require.Len(suite.T(), fireAt, 2)
	assert.Equal(suite.T(), time.Date(2024, time.March, 15, 21, 0, 0, 0, time.UTC).UnixMilli(), fireAt[home.ID].UnixMilli())
	assert.Equal(suite.T(), time.Date(2024, time.March, 16, 14, 0, 0, 0, time.UTC).UnixMilli(), fireAt[away.ID].UnixMilli())

	_, err = suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Lost", Time: "9:00 PM", Timezone: "Local"})
	assert.ErrorIs(suite.T(), err, ErrInvalidTimezone)
}

func (suite *ReminderTestSuite) TestUpdateMovesToNewTimezone() {
	r, err := suite.service.Create(suite.ctx, "u1", models.Reminder{Name: "Evening", Time: "9:00 PM"})
	require.NoError(suite.T(), err)

	r.Timezone = "America/New_York"
	updated, err := suite.service.Update(suite.ctx, "u1", *r)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "America/New_York", updated.Timezone)

	// 18:00 UTC is 14:00 EDT, so 9:00 PM there is 01:00 UTC the next day
	jobs := suite.pending()
	if assert.Len(suite.T(), jobs, 1) {
		assert.Equal(suite.T(), time.Date(2024, time.March, 16, 1, 0, 0, 0, time.UTC).UnixMilli(), jobs[0].FireAt.UnixMilli())
	}
}

func (suite *ReminderTestSuite) TestCreateRollsBackWhenSchedulingFails() {
	path := filepath.Join(suite.T().TempDir(), "moneta.db")
	db, err := storage.NewDB(path)
	require.NoError(suite.T(), err)
	defer db.Close()

	raw, err := sql.Open(storage.DriverSQLite, path)
	require.NoError(suite.T(), err)
	_, err = raw.Exec("DROP TABLE jobs")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), raw.Close())

	log := embedlog.NewDevLogger()
	service := NewService(db, NewScheduler(db, suite.deliverer, log, time.Millisecond), suite.deliverer, log)

	_, err = service.Create(suite.ctx, "u1", models.Reminder{Name: "Evening", Time: "8:00 PM"})
	require.Error(suite.T(), err)

	reminders, err := service.List(suite.ctx, "u1")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), reminders, "the reminder is not kept without its job")
	assert.Empty(suite.T(), suite.deliverer.deliveries(), "no trigger for a failed create")
}

func TestReminderSuite(t *testing.T) {
	suite.Run(t, new(ReminderTestSuite))
}

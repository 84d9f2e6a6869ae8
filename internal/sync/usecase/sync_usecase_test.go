package usecase

import (
	"context"
	"testing"
	"time"

	authdomain "melodica-backend/internal/auth/domain"
	authrepo "melodica-backend/internal/auth/repository"
	lessondomain "melodica-backend/internal/lesson/domain"
	lessonrepo "melodica-backend/internal/lesson/repository"
	syncdomain "melodica-backend/internal/sync/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeCalendarProvider returns a canned event list instead of calling the
// Google Calendar API.
type fakeCalendarProvider struct {
	events []*syncdomain.RemoteEvent
	err    error
}

func (f *fakeCalendarProvider) ListEvents(ctx context.Context, accessToken, refreshToken, calendarID string, timeMin, timeMax time.Time, query string, onTokenRefresh syncdomain.TokenUpdateFunc) ([]*syncdomain.RemoteEvent, error) {
	return f.events, f.err
}

// fakeProvisioner hands out stable student profiles keyed by email.
type fakeProvisioner struct {
	students map[string]*authdomain.User
}

func (f *fakeProvisioner) EnsureUserForEmail(email string) (*authdomain.User, error) {
	if f.students == nil {
		f.students = make(map[string]*authdomain.User)
	}
	if student, ok := f.students[email]; ok {
		return student, nil
	}
	student := &authdomain.User{
		ID:       uuid.New().String(),
		Email:    email,
		Role:     authdomain.RoleStudent,
		Provider: "shadow",
	}
	f.students[email] = student
	return student, nil
}

// spyNotifier records escalation notifications.
type spyNotifier struct {
	calls int
}

func (s *spyNotifier) NotifyConflict(teacherID string, conflict *lessondomain.SyncConflict, lessonTitle string) {
	s.calls++
}

type syncFixture struct {
	db           *gorm.DB
	provider     *fakeCalendarProvider
	notifier     *spyNotifier
	lessonRepo   lessonrepo.LessonRepository
	conflictRepo lessonrepo.SyncConflictRepository
	usecase      SyncUsecase
	teacher      *authdomain.User
}

func newSyncFixture(t *testing.T) *syncFixture {
	db := setupTestDB(t)
	userRepo := authrepo.NewUserRepository(db)
	lessonRepo := lessonrepo.NewLessonRepository(db)
	conflictRepo := lessonrepo.NewSyncConflictRepository(db)

	teacher := &authdomain.User{
		Email:       "teacher@studio.example",
		Name:        "Ms. Keys",
		Role:        authdomain.RoleTeacher,
		Provider:    "google",
		AccessToken: "access-token",
	}
	require.NoError(t, userRepo.Create(teacher))

	provider := &fakeCalendarProvider{}
	notifier := &spyNotifier{}
	applier := NewResolutionApplier(lessonRepo, conflictRepo, notifier)
	resolverCfg := ResolverConfig{ManualReviewEnabled: true, SimultaneousThreshold: time.Minute}

	uc := NewSyncUsecase(userRepo, lessonRepo, conflictRepo, provider, &fakeProvisioner{}, nil, applier, resolverCfg, "primary")

	return &syncFixture{
		db:           db,
		provider:     provider,
		notifier:     notifier,
		lessonRepo:   lessonRepo,
		conflictRepo: conflictRepo,
		usecase:      uc,
		teacher:      teacher,
	}
}

func (f *syncFixture) window() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-7 * 24 * time.Hour), now.Add(30 * 24 * time.Hour)
}

func calendarEvent(id, summary, studentEmail string, start, updated time.Time) *syncdomain.RemoteEvent {
	attendees := []string{"teacher@studio.example"}
	if studentEmail != "" {
		attendees = append(attendees, studentEmail)
	}
	return &syncdomain.RemoteEvent{
		ID:        id,
		Summary:   summary,
		Start:     start,
		Updated:   updated,
		Attendees: attendees,
	}
}

func TestSyncCalendarNotConnected(t *testing.T) {
	f := newSyncFixture(t)
	f.teacher.AccessToken = ""
	require.NoError(t, f.db.Save(f.teacher).Error)

	timeMin, timeMax := f.window()
	summary, err := f.usecase.SyncCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.False(t, summary.Connected)
	assert.Zero(t, summary.Created)
}

func TestSyncCalendarProjectsLessons(t *testing.T) {
	f := newSyncFixture(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	updated := time.Now().Add(-time.Hour).Truncate(time.Second)

	f.provider.events = []*syncdomain.RemoteEvent{
		calendarEvent("evt-1", "Piano Lesson", "ana@example.com", start, updated),
		calendarEvent("evt-2", "Dentist appointment", "ana@example.com", start.Add(time.Hour), updated),
		calendarEvent("evt-3", "Guitar Lesson", "", start.Add(2*time.Hour), updated),
	}

	timeMin, timeMax := f.window()
	summary, err := f.usecase.SyncCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)

	assert.True(t, summary.Connected)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 2, summary.Skipped, "non-lesson and attendee-less events are skipped")
	assert.Zero(t, summary.Failed)

	lesson, err := f.lessonRepo.FindByGoogleEventID("evt-1")
	require.NoError(t, err)
	require.NotNil(t, lesson)
	assert.Equal(t, f.teacher.ID, lesson.TeacherID)
	assert.NotEmpty(t, lesson.StudentID)

	// A second pass over the same feed converges without duplicates.
	summary, err = f.usecase.SyncCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.Zero(t, summary.Created)
	assert.Equal(t, 1, summary.Updated)
}

func TestReconcileCalendarLastWriteWins(t *testing.T) {
	f := newSyncFixture(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	lessonEdit := time.Now().Add(-time.Hour).Truncate(time.Second)

	f.provider.events = []*syncdomain.RemoteEvent{
		calendarEvent("evt-1", "Piano Lesson", "ana@example.com", start, lessonEdit),
	}
	timeMin, timeMax := f.window()
	_, err := f.usecase.SyncCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)

	lesson, err := f.lessonRepo.FindByGoogleEventID("evt-1")
	require.NoError(t, err)
	setUpdatedAt(t, f.db, lesson.ID, lessonEdit)

	// The remote side was edited two minutes after the local record: well
	// past the simultaneity window, so the newer remote wins outright.
	f.provider.events[0].Summary = "Piano Lesson (moved)"
	f.provider.events[0].Updated = lessonEdit.Add(2 * time.Minute)

	summary, err := f.usecase.ReconcileCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 1, summary.AutoResolved)
	assert.Zero(t, summary.Escalated)

	reloaded, err := f.lessonRepo.FindByID(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "Piano Lesson (moved)", reloaded.Title)
	assert.True(t, reloaded.UpdatedAt.After(lessonEdit), "auto-applied remote values count as a local write")
	assert.Zero(t, f.notifier.calls)
}

func TestReconcileCalendarLocalNewerKeepsLocal(t *testing.T) {
	f := newSyncFixture(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	remoteEdit := time.Now().Add(-2 * time.Hour).Truncate(time.Second)

	f.provider.events = []*syncdomain.RemoteEvent{
		calendarEvent("evt-1", "Piano Lesson", "ana@example.com", start, remoteEdit),
	}
	timeMin, timeMax := f.window()
	_, err := f.usecase.SyncCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)

	lesson, err := f.lessonRepo.FindByGoogleEventID("evt-1")
	require.NoError(t, err)
	lesson.Title = "Piano Lesson with Ana"
	require.NoError(t, f.lessonRepo.Update(lesson))
	localEdit := remoteEdit.Add(30 * time.Minute)
	setUpdatedAt(t, f.db, lesson.ID, localEdit)

	summary, err := f.usecase.ReconcileCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AutoResolved)

	reloaded, err := f.lessonRepo.FindByID(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "Piano Lesson with Ana", reloaded.Title)
	assert.True(t, reloaded.UpdatedAt.Equal(localEdit), "use_local leaves the lesson untouched")
}

func TestReconcileCalendarEscalatesSimultaneousEdits(t *testing.T) {
	f := newSyncFixture(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	lessonEdit := time.Now().Add(-time.Hour).Truncate(time.Second)

	f.provider.events = []*syncdomain.RemoteEvent{
		calendarEvent("evt-1", "Piano Lesson", "ana@example.com", start, lessonEdit),
	}
	timeMin, timeMax := f.window()
	_, err := f.usecase.SyncCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)

	lesson, err := f.lessonRepo.FindByGoogleEventID("evt-1")
	require.NoError(t, err)
	setUpdatedAt(t, f.db, lesson.ID, lessonEdit)

	// Remote edit lands 30 seconds after the local one: inside the window,
	// so neither side may win automatically.
	f.provider.events[0].Summary = "Piano Lesson (moved)"
	f.provider.events[0].Updated = lessonEdit.Add(30 * time.Second)

	summary, err := f.usecase.ReconcileCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Escalated)
	assert.Zero(t, summary.AutoResolved)
	assert.Equal(t, 1, f.notifier.calls)

	reloaded, err := f.lessonRepo.FindByID(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "Piano Lesson", reloaded.Title, "escalation leaves the lesson untouched")

	pending, err := f.conflictRepo.FindPendingByTeacherID(f.teacher.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Piano Lesson (moved)", pending[0].ConflictData.RemoteTitle)

	// While the conflict is pending the lesson is frozen: reconciling again
	// neither re-escalates nor applies anything.
	summary, err = f.usecase.ReconcileCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Checked)
	assert.Zero(t, summary.Escalated)
	assert.Zero(t, summary.AutoResolved)

	pending, err = f.conflictRepo.FindPendingByTeacherID(f.teacher.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, 1, f.notifier.calls)
}

func TestReconcileCalendarIgnoresUnpairedEvents(t *testing.T) {
	f := newSyncFixture(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	f.provider.events = []*syncdomain.RemoteEvent{
		calendarEvent("evt-unknown", "Piano Lesson", "ana@example.com", start, time.Now()),
	}

	timeMin, timeMax := f.window()
	summary, err := f.usecase.ReconcileCalendar(context.Background(), f.teacher.ID, timeMin, timeMax)
	require.NoError(t, err)
	assert.True(t, summary.Connected)
	assert.Zero(t, summary.Checked)
}

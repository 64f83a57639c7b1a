package service

import (
	"time"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

// ResolveScheduleForNow finds the schedule window during which the teacher
// is expected to teach at the given instant: teacher matches, weekday
// matches, and the wall-clock time falls within [start, end] inclusive on
// both ends. When several windows overlap (schedule misconfiguration) the
// first match in list order wins. Returns ErrNoScheduledClass when nothing
// matches.
func ResolveScheduleForNow(teacherID string, windows []models.ScheduleWindow, now time.Time) (*models.ScheduleWindow, error) {
	for i := range windows {
		if windows[i].TeacherID != teacherID {
			continue
		}
		if windows[i].Contains(now) {
			return &windows[i], nil
		}
	}
	return nil, appErrors.ErrNoScheduledClass
}

package job

import (
	"fmt"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// cronSchedule satisfies river.PeriodicSchedule through the embedded Next.
type cronSchedule struct {
	cron.Schedule
}

// ParseSchedule parses a five-field cron expression or a descriptor such as
// "@daily" into a River periodic schedule.
func ParseSchedule(expr string) (river.PeriodicSchedule, error) {
	s, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, expr, err)
	}
	return cronSchedule{s}, nil
}

package cli

import "github.com/mathieuvidal/examplan/internal/service"

// App bundles the services the commands operate on.
type App struct {
	Plans   service.PlanService
	Weekly  service.WeeklyService
	Review  service.ReviewService
	Entries service.EntryService
	SeedFn  func() error
}

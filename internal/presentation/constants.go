package presentation

const (
	AuthKey      = "Authorization"
	BearerPrefix = "Bearer "
	OwnerKey     = "owner"
	StoryIDParam = "id"
	DateQuery    = "date"
	TZQuery      = "tz"
	ReasonTag    = "X-Reason"
)
